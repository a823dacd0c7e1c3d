package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const (
	GroupFarmer  = 1
	GroupCompany = 2
)

type Account struct {
	Id        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	GroupId   int             `db:"group_id" json:"group_id"`
	Mobile    NullString      `db:"mobile" json:"mobile"`
	Address   NullString      `db:"address" json:"address"`
	City      NullString      `db:"city" json:"city"`
	GstNumber NullString      `db:"gst_number" json:"gst_number"`
	Balance   decimal.Decimal `db:"balance" json:"balance"`
	CreatedAt string          `db:"created_at" json:"created_at"`
}

func accounts(c *gin.Context) {
	accounts := []Account{}
	err := DB.Select(&accounts, "select * from accounts order by name asc")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	} else {
		c.JSON(http.StatusOK, accounts)
	}
}

func accountsearch(c *gin.Context) {
	query := "%" + c.Request.URL.Query().Get("query") + "%"
	accounts := []Account{}
	err := DB.Select(&accounts, "select * from accounts where name like ?", query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	} else {
		c.JSON(http.StatusOK, accounts)
	}
}

func accountid(c *gin.Context) {
	id := c.Param("id")
	account := Account{}
	err := DB.Get(&account, "select * from accounts where id=?", id)
	if err != nil {
		abortErr(c, storeErr(err))
	} else {
		c.JSON(http.StatusOK, account)
	}
}

func accountadd(c *gin.Context) {
	account := Account{}
	if err := c.BindJSON(&account); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if account.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Account name is required"})
		return
	}
	if account.GroupId != GroupFarmer && account.GroupId != GroupCompany {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Group must be Farmer or Company"})
		return
	}
	res, err := DB.NamedExec(`insert into accounts(name, group_id, mobile, address, city, gst_number, balance)
                            values(:name, :group_id, :mobile, :address, :city, :gst_number, :balance)`, &account)
	if err != nil {
		abortErr(c, storeErr(err))
		return
	}
	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Account created"})
}

func accountupdate(c *gin.Context) {
	account := Account{}
	if err := c.BindJSON(&account); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if account.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Account name is required"})
		return
	}
	_, err := DB.NamedExec(`update accounts set name=:name, group_id=:group_id, mobile=:mobile,
                          address=:address, city=:city, gst_number=:gst_number where id=:id`, &account)
	if err != nil {
		abortErr(c, storeErr(err))
		return
	}
	// re-read so the echo carries the stored balance, not whatever the
	// client sent for the column this update ignores
	if err := DB.Get(&account, "select * from accounts where id=?", account.Id); err != nil {
		abortErr(c, storeErr(err))
		return
	}
	c.JSON(http.StatusOK, account)
}

// Deletion is guarded only by referential constraints: a party referenced by
// any invoice or payment stays put.
func accountdel(c *gin.Context) {
	id := c.Param("id")
	res, err := DB.Exec("delete from accounts where id=?", id)
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			c.JSON(http.StatusConflict, gin.H{"message": "Account is referenced by transactions and cannot be deleted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
