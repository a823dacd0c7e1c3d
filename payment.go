package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PaymentReq struct {
	Date        string          `json:"date"`
	AccountId   int64           `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentMode string          `json:"payment_mode"`
	Remarks     string          `json:"remarks"`
}

type PaymentRow struct {
	Id          int64           `db:"id" json:"id"`
	PaymentDate string          `db:"payment_date" json:"payment_date"`
	AccountId   int64           `db:"account_id" json:"account_id"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	PaymentMode string          `db:"payment_mode" json:"payment_mode"`
	Type        string          `db:"type" json:"type"`
	Remarks     NullString      `db:"remarks" json:"remarks"`
	CreatedAt   string          `db:"created_at" json:"created_at"`
	PartyName   string          `db:"party_name" json:"party_name"`
}

func receiptadd(c *gin.Context) {
	moneyMovement(c, "receipt", "Receipt Entry Saved Successfully")
}

func paymentadd(c *gin.Context) {
	moneyMovement(c, "payment", "Payment Entry Saved Successfully")
}

func moneyMovement(c *gin.Context, kind, okMessage string) {
	req := PaymentReq{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.PaymentMode == "" {
		req.PaymentMode = "Cash"
	}
	if err := moneyTx(&req, kind); err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": okMessage})
}

// moneyTx inserts the movement row and applies balance = balance - amount in
// one transaction. Receipts and payments subtract identically; the caller is
// responsible for pairing the kind with the right party role. Flipping the
// sign by (kind, role) has been floated but never confirmed as intent.
func moneyTx(req *PaymentReq, kind string) error {
	if req.Date == "" {
		return validationErr("Date is required")
	}
	if req.Amount.Sign() <= 0 {
		return validationErr("Amount must be greater than zero")
	}

	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`insert into payments(payment_date, account_id, amount, payment_mode, type, remarks)
	                  values(?,?,?,?,?,?)`,
		req.Date, req.AccountId, req.Amount, req.PaymentMode, kind, req.Remarks)
	if err != nil {
		return storeErr(err)
	}
	_, err = tx.Exec(`update accounts set balance = balance - ? where id = ?`, req.Amount, req.AccountId)
	if err != nil {
		return storeErr(err)
	}

	if err = tx.Commit(); err != nil {
		return storeErr(err)
	}
	return nil
}

func payments(c *gin.Context) {
	rows := []PaymentRow{}
	err := DB.Select(&rows, `select p.*, a.name as party_name from payments p
	                         join accounts a on p.account_id = a.id
	                         order by p.id desc limit 20`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	} else {
		c.JSON(http.StatusOK, rows)
	}
}
