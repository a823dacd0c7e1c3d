package main

import (
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
)

type InvoiceLine struct {
	ItemId int64           `db:"item_id" json:"item_id"`
	Qty    decimal.Decimal `db:"qty" json:"qty"`
	Rate   decimal.Decimal `db:"rate" json:"rate"`
	Amount decimal.Decimal `db:"amount" json:"amount"`
}

type InvoiceReq struct {
	BillNo      string        `json:"bill_no"`
	BillDate    string        `json:"bill_date"`
	AccountId   int64         `json:"account_id"`
	PaymentMode string        `json:"payment_mode"`
	Remarks     string        `json:"remarks"`
	Items       []InvoiceLine `json:"items"`
}

// validateInvoice checks the request fields and that the billed party exists
// and carries the expected role. Line amounts are recomputed server side; the
// client-sent amount is never trusted.
func validateInvoice(req *InvoiceReq, wantGroup int, roleName string) (decimal.Decimal, error) {
	subTotal := decimal.Zero
	if req.BillNo == "" {
		return subTotal, validationErr("Bill number is required")
	}
	if req.BillDate == "" {
		return subTotal, validationErr("Bill date is required")
	}
	if len(req.Items) == 0 {
		return subTotal, validationErr("At least one item line is required")
	}
	for i := range req.Items {
		ln := &req.Items[i]
		if ln.Qty.Sign() <= 0 {
			return subTotal, validationErr("Item quantity must be greater than zero")
		}
		if ln.Rate.IsNegative() {
			return subTotal, validationErr("Item rate must not be negative")
		}
		ln.Amount = ln.Qty.Mul(ln.Rate)
		subTotal = subTotal.Add(ln.Amount)
	}

	var groupId int
	err := DB.Get(&groupId, "select group_id from accounts where id=?", req.AccountId)
	if errors.Is(err, sql.ErrNoRows) {
		return subTotal, notFoundErr("Party not found")
	}
	if err != nil {
		return subTotal, err
	}
	if groupId != wantGroup {
		return subTotal, validationErr("Party must be a %s", roleName)
	}
	return subTotal, nil
}
