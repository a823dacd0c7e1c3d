package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/contrib/static"
	"github.com/gin-gonic/gin"
)

var keySecret string
var Router *gin.Engine

func main() {
	cfg := loadConfig()
	keySecret = cfg.Secret

	DB = openDB(cfg.DBPath)
	defer DB.Close()
	if err := createTables(DB); err != nil {
		log.Fatal(err)
	}

	Router = newRouter()
	Router.Use(static.Serve("/", static.LocalFile("./static", true)))
	Router.Run("0.0.0.0:" + cfg.Port)
}

func newRouter() *gin.Engine {
	r := gin.Default()

	authRead := r.Group("/api")
	authRead.Use(AuthRead)

	authWrite := r.Group("/api")
	authWrite.Use(AuthWrite)

	// detail routes live on the singular path: the router tree cannot take a
	// param segment next to the static /search children
	authRead.GET("/accounts", accounts)
	authRead.GET("/accounts/search", accountsearch)
	authRead.GET("/account/:id", accountid)
	authWrite.POST("/accounts", accountadd)
	authWrite.PUT("/accounts", accountupdate)
	authWrite.DELETE("/account/:id", accountdel)

	authRead.GET("/items", items)
	authRead.GET("/items/search", itemsearch)
	authRead.GET("/item/:id", itemid)
	authWrite.POST("/items", itemadd)
	authWrite.PUT("/items", itemupdate)
	authWrite.DELETE("/item/:id", itemdel)

	authRead.GET("/sales", sales)
	authRead.GET("/sales/:id", saleid)
	authWrite.POST("/sales", saleadd)

	authRead.GET("/purchase", purchases)
	authRead.GET("/purchase/:id", purchaseid)
	authWrite.POST("/purchase", purchaseadd)

	authRead.GET("/payments", payments)
	authWrite.POST("/payments/receipt", receiptadd)
	authWrite.POST("/payments/payment", paymentadd)

	authRead.GET("/reports/stock", repstock)
	authRead.GET("/reports/payments", reppayments)

	authWrite.POST("/returns", returnsadd)

	r.POST("/api/auth/login", login)
	r.GET("/api/auth/logout", logout)

	return r
}

// Return/credit-note flow exists in the UI as a placeholder only.
func returnsadd(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"message": "Returns are not implemented"})
}
