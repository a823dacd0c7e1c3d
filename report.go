package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type StockRow struct {
	Id             int64           `db:"id" json:"id"`
	ItemName       string          `db:"item_name" json:"item_name"`
	Unit           NullString      `db:"unit" json:"unit"`
	TotalPurchased decimal.Decimal `db:"total_purchased" json:"total_purchased"`
	TotalSold      decimal.Decimal `db:"total_sold" json:"total_sold"`
	CurrentStock   decimal.Decimal `db:"current_stock" json:"current_stock"`
}

type ModeStat struct {
	Count int             `db:"count" json:"count"`
	Total decimal.Decimal `db:"total" json:"total"`
}

// repstock derives movement totals from the detail tables. Note this is the
// invoiced view: the items.stock counter only ever moves on sales, so the two
// figures drift apart as purchases come in.
func repstock(c *gin.Context) {
	rows := []StockRow{}
	err := DB.Select(&rows, `select i.id, i.name as item_name, i.unit,
	        ifnull(p.total_purchased, 0) as total_purchased,
	        ifnull(s.total_sold, 0) as total_sold,
	        (ifnull(p.total_purchased, 0) - ifnull(s.total_sold, 0)) as current_stock
	        from items i
	        left join (select item_id, sum(qty) as total_purchased
	                   from purchase_detail group by item_id) p on i.id = p.item_id
	        left join (select item_id, sum(qty) as total_sold
	                   from sales_detail group by item_id) s on i.id = s.item_id
	        order by i.name`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	} else {
		c.JSON(http.StatusOK, rows)
	}
}

// reppayments splits sales into cash and credit ("udhar") buckets.
func reppayments(c *gin.Context) {
	cash := ModeStat{}
	debit := ModeStat{}
	err1 := DB.Get(&cash, `select count(*) as count, ifnull(sum(grand_total), 0) as total
	                       from sales_head where payment_mode = 'Cash'`)
	err2 := DB.Get(&debit, `select count(*) as count, ifnull(sum(grand_total), 0) as total
	                        from sales_head where payment_mode != 'Cash'`)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to aggregate payment stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cash": cash, "debit": debit})
}
