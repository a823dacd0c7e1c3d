package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type SalesHead struct {
	Id          int64           `db:"id" json:"id"`
	BillNo      string          `db:"bill_no" json:"bill_no"`
	BillDate    string          `db:"bill_date" json:"bill_date"`
	AccountId   int64           `db:"account_id" json:"account_id"`
	SubTotal    decimal.Decimal `db:"sub_total" json:"sub_total"`
	GrandTotal  decimal.Decimal `db:"grand_total" json:"grand_total"`
	PaymentMode string          `db:"payment_mode" json:"payment_mode"`
	Remarks     NullString      `db:"remarks" json:"remarks"`
	CreatedAt   string          `db:"created_at" json:"created_at"`
	PartyName   string          `db:"party_name" json:"party_name"`
}

type SalesLine struct {
	Id       int64           `db:"id" json:"id"`
	ItemId   int64           `db:"item_id" json:"item_id"`
	ItemName string          `db:"item_name" json:"item_name"`
	Qty      decimal.Decimal `db:"qty" json:"qty"`
	Rate     decimal.Decimal `db:"rate" json:"rate"`
	Amount   decimal.Decimal `db:"amount" json:"amount"`
}

func saleadd(c *gin.Context) {
	req := InvoiceReq{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.PaymentMode == "" {
		req.PaymentMode = "Cash"
	}
	subTotal, err := validateInvoice(&req, GroupFarmer, "Farmer")
	if err != nil {
		abortErr(c, err)
		return
	}
	id, err := saleTx(&req, subTotal)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Bill Saved Successfully"})
}

// saleTx is the atomic unit for a sales invoice: header, lines and per-line
// stock decrements commit together or not at all. The quantity comes off the
// stored column as a relative delta, never as a value computed in here, so
// concurrent sales against the same item cannot lose an update. Stock is
// allowed to go negative.
func saleTx(req *InvoiceReq, subTotal decimal.Decimal) (int64, error) {
	grandTotal := subTotal

	tx, err := DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`insert into sales_head(bill_no, bill_date, account_id, sub_total,
	                     grand_total, payment_mode, remarks) values(?,?,?,?,?,?,?)`,
		req.BillNo, req.BillDate, req.AccountId, subTotal, grandTotal, req.PaymentMode, req.Remarks)
	if err != nil {
		return 0, storeErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stDetail, err := tx.Prepare(`insert into sales_detail(sales_id, item_id, qty, rate, amount) values(?,?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer stDetail.Close()
	stStock, err := tx.Prepare(`update items set stock = stock - ? where id = ?`)
	if err != nil {
		return 0, err
	}
	defer stStock.Close()

	for _, ln := range req.Items {
		if _, err = stDetail.Exec(id, ln.ItemId, ln.Qty, ln.Rate, ln.Amount); err != nil {
			return 0, storeErr(err)
		}
		if _, err = stStock.Exec(ln.Qty, ln.ItemId); err != nil {
			return 0, storeErr(err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, storeErr(err)
	}
	return id, nil
}

func sales(c *gin.Context) {
	heads := []SalesHead{}
	err := DB.Select(&heads, `select s.*, a.name as party_name from sales_head s
	                          join accounts a on s.account_id = a.id
	                          order by s.bill_date desc`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	} else {
		c.JSON(http.StatusOK, heads)
	}
}

func saleid(c *gin.Context) {
	id := c.Param("id")
	head := SalesHead{}
	err := DB.Get(&head, `select s.*, a.name as party_name from sales_head s
	                      join accounts a on s.account_id = a.id where s.id=?`, id)
	if err != nil {
		abortErr(c, storeErr(err))
		return
	}
	lines := []SalesLine{}
	err = DB.Select(&lines, `select d.id, d.item_id, i.name as item_name, d.qty, d.rate, d.amount
	                         from sales_detail d join items i on d.item_id = i.id
	                         where d.sales_id=? order by d.id`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"head": head, "items": lines})
}
