// Package order holds the line items of one order and keeps each line total
// consistent with the surcharges captured when the item was entered.
package order

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/orderdesk/internal/pricing"
)

// Status is the production stage of a line item. Any stage may be set at any time.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusCutting    Status = "Cutting"
	StatusStretching Status = "Stretching"
	StatusPrinting   Status = "Printing"
	StatusCompleted  Status = "Completed"
)

// Statuses lists every stage in shop-floor order.
var Statuses = []Status{StatusPending, StatusCutting, StatusStretching, StatusPrinting, StatusCompleted}

// StatusError reports status text that names no stage.
type StatusError struct {
	Value string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unknown status %q", e.Value)
}

// ParseStatus reads a stage name case-insensitively. Empty text is Pending.
func ParseStatus(text string) (Status, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return StatusPending, nil
	}
	if strings.EqualFold(t, "Streching") {
		return StatusStretching, nil
	}
	for _, s := range Statuses {
		if strings.EqualFold(t, string(s)) {
			return s, nil
		}
	}
	return "", &StatusError{Value: text}
}

// CollarFlag is the collar a shirt-like item was priced with.
type CollarFlag = pricing.CollarFlag

const (
	FlagNone  = pricing.FlagNone
	FlagSelf  = pricing.FlagSelf
	FlagRib   = pricing.FlagRib
	FlagPatti = pricing.FlagPatti
)

// Employees names who handles the item in each department.
type Employees struct {
	Cutting    string
	Printing   string
	RibCollar  string
	Stretching string
}

// Fields is the operator's input for one item, numbers still as typed.
type Fields struct {
	Fabric      string
	GarmentType string
	Color       string
	Size        string
	Quantity    string
	UnitPrice   string
	Status      string
	Barcode     string
	Remark      string
	Employees   Employees
}

// LineItem is one priced row of the order.
type LineItem struct {
	ID          uuid.UUID
	Fabric      string
	GarmentType string
	Color       string
	Size        string
	Quantity    int
	UnitPrice   decimal.Decimal
	Status      Status
	Barcode     string
	Remark      string
	Employees   Employees

	PrintAddOn  decimal.Decimal
	CollarAddOn decimal.Decimal
	TrackAddOn  decimal.Decimal
	CollarFlag  CollarFlag
	LineTotal   decimal.Decimal
}

// AddOns returns the surcharges stored on the item.
func (it LineItem) AddOns() pricing.AddOns {
	return pricing.AddOns{
		Print:      it.PrintAddOn,
		Collar:     it.CollarAddOn,
		Track:      it.TrackAddOn,
		CollarFlag: it.CollarFlag,
	}
}

// Fields returns the item as editable form input.
func (it LineItem) Fields() Fields {
	return Fields{
		Fabric:      it.Fabric,
		GarmentType: it.GarmentType,
		Color:       it.Color,
		Size:        it.Size,
		Quantity:    fmt.Sprint(it.Quantity),
		UnitPrice:   it.UnitPrice.String(),
		Status:      string(it.Status),
		Barcode:     it.Barcode,
		Remark:      it.Remark,
		Employees:   it.Employees,
	}
}

func (it *LineItem) recalculate() {
	it.LineTotal = pricing.LineTotalOf(it.UnitPrice, it.Quantity, it.AddOns())
}
