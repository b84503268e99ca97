// Package report turns order data into display rows and printable HTML
// documents.
package report

import (
	"strconv"

	"github.com/Simplici0/orderdesk/internal/money"
	"github.com/Simplici0/orderdesk/internal/order"
)

// TableRow holds the visible ledger columns of one item.
type TableRow struct {
	Row    int
	Fabric string
	Type   string
	Color  string
	Size   string
	Qty    string
	Unit   string
	Total  string
	Status string
	Remark string
}

// ItemTable formats items for the ledger table.
func ItemTable(items []order.LineItem) []TableRow {
	rows := make([]TableRow, 0, len(items))
	for i, it := range items {
		rows = append(rows, TableRow{
			Row:    i,
			Fabric: it.Fabric,
			Type:   it.GarmentType,
			Color:  it.Color,
			Size:   it.Size,
			Qty:    strconv.Itoa(it.Quantity),
			Unit:   money.Format(it.UnitPrice),
			Total:  money.Format(it.LineTotal),
			Status: string(it.Status),
			Remark: it.Remark,
		})
	}
	return rows
}
