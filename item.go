package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

type Item struct {
	Id           int64           `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Company      NullString      `db:"company" json:"company"`
	Category     NullString      `db:"category" json:"category"`
	Code         NullString      `db:"code" json:"code"`
	Unit         NullString      `db:"unit" json:"unit"`
	PurchaseRate decimal.Decimal `db:"purchase_rate" json:"purchase_rate"`
	SalesRate    decimal.Decimal `db:"sales_rate" json:"sales_rate"`
	GstPercent   decimal.Decimal `db:"gst_percent" json:"gst_percent"`
	Stock        decimal.Decimal `db:"stock" json:"stock"`
	CreatedAt    string          `db:"created_at" json:"created_at"`
}

func items(c *gin.Context) {
	items := []Item{}
	err := DB.Select(&items, "select * from items order by name asc")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	} else {
		c.JSON(http.StatusOK, items)
	}
}

func itemsearch(c *gin.Context) {
	query := "%" + c.Request.URL.Query().Get("query") + "%"
	items := []Item{}
	err := DB.Select(&items, "select * from items where name like ? or code like ?", query, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	} else {
		c.JSON(http.StatusOK, items)
	}
}

func itemid(c *gin.Context) {
	id := c.Param("id")
	item := Item{}
	err := DB.Get(&item, "select * from items where id=?", id)
	if err != nil {
		abortErr(c, storeErr(err))
	} else {
		c.JSON(http.StatusOK, item)
	}
}

func itemadd(c *gin.Context) {
	item := Item{}
	if err := c.BindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if item.Name == "" || item.PurchaseRate.IsNegative() || item.SalesRate.IsNegative() || item.GstPercent.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error: Invalid values!"})
		return
	}
	res, err := DB.NamedExec(`insert into items(name, company, category, code, unit, purchase_rate, sales_rate, gst_percent, stock)
                            values(:name, :company, :category, :code, :unit, :purchase_rate, :sales_rate, :gst_percent, :stock)`, &item)
	if err != nil {
		abortErr(c, storeErr(err))
		return
	}
	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Item created"})
}

func itemupdate(c *gin.Context) {
	item := Item{}
	if err := c.BindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if item.Name == "" || item.PurchaseRate.IsNegative() || item.SalesRate.IsNegative() || item.GstPercent.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error: Invalid values!"})
		return
	}
	_, err := DB.NamedExec(`update items set name=:name, company=:company, category=:category, code=:code,
                          unit=:unit, purchase_rate=:purchase_rate, sales_rate=:sales_rate,
                          gst_percent=:gst_percent where id=:id`, &item)
	if err != nil {
		abortErr(c, storeErr(err))
		return
	}
	// re-read so the echo carries the stored stock, not the client-sent value
	if err := DB.Get(&item, "select * from items where id=?", item.Id); err != nil {
		abortErr(c, storeErr(err))
		return
	}
	c.JSON(http.StatusOK, item)
}

func itemdel(c *gin.Context) {
	id := c.Param("id")
	res, err := DB.Exec("delete from items where id=?", id)
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			c.JSON(http.StatusConflict, gin.H{"message": "Item is referenced by invoices and cannot be deleted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}
