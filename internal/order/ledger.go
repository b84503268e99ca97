package order

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/orderdesk/internal/catalog"
	"github.com/Simplici0/orderdesk/internal/pricing"
)

// RowNotFoundError reports a row index outside the ledger.
type RowNotFoundError struct {
	Row int
	Len int
}

func (e *RowNotFoundError) Error() string {
	return fmt.Sprintf("row %d not found (ledger has %d rows)", e.Row, e.Len)
}

// ConfirmFunc is asked before a row is removed. Returning false cancels.
// Delete treats a nil ConfirmFunc as a refusal.
type ConfirmFunc func(item LineItem) bool

// Ledger is the ordered list of line items. A row's position is its identity.
type Ledger struct {
	calc     pricing.Calculator
	items    []LineItem
	onChange []func()
}

// NewLedger returns an empty ledger pricing items with calc.
func NewLedger(calc pricing.Calculator) *Ledger {
	return &Ledger{calc: calc}
}

// OnChange registers fn to run after every mutation.
func (l *Ledger) OnChange(fn func()) {
	l.onChange = append(l.onChange, fn)
}

func (l *Ledger) notify() {
	for _, fn := range l.onChange {
		fn()
	}
}

func (l *Ledger) build(fields Fields, snap catalog.Snapshot) (LineItem, error) {
	status, err := ParseStatus(fields.Status)
	if err != nil {
		return LineItem{}, err
	}
	addOns, err := l.calc.AddOns(fields.GarmentType, snap)
	if err != nil {
		return LineItem{}, err
	}
	line, err := pricing.ComputeLineTotal(fields.UnitPrice, fields.Quantity, addOns)
	if err != nil {
		return LineItem{}, err
	}

	return LineItem{
		Fabric:      strings.TrimSpace(fields.Fabric),
		GarmentType: strings.TrimSpace(fields.GarmentType),
		Color:       strings.TrimSpace(fields.Color),
		Size:        strings.TrimSpace(fields.Size),
		Quantity:    line.Quantity,
		UnitPrice:   line.UnitPrice,
		Status:      status,
		Barcode:     strings.TrimSpace(fields.Barcode),
		Remark:      strings.TrimSpace(fields.Remark),
		Employees:   fields.Employees,
		PrintAddOn:  addOns.Print,
		CollarAddOn: addOns.Collar,
		TrackAddOn:  addOns.Track,
		CollarFlag:  addOns.CollarFlag,
		LineTotal:   line.Total,
	}, nil
}

// Add validates fields, prices them against snap and appends the item.
func (l *Ledger) Add(fields Fields, snap catalog.Snapshot) (LineItem, error) {
	item, err := l.build(fields, snap)
	if err != nil {
		return LineItem{}, fmt.Errorf("add item: %w", err)
	}
	item.ID = uuid.New()
	l.items = append(l.items, item)
	l.notify()
	return item, nil
}

// Edit replaces row with freshly priced fields, keeping the row's ID.
func (l *Ledger) Edit(row int, fields Fields, snap catalog.Snapshot) (LineItem, error) {
	if row < 0 || row >= len(l.items) {
		return LineItem{}, &RowNotFoundError{Row: row, Len: len(l.items)}
	}
	item, err := l.build(fields, snap)
	if err != nil {
		return LineItem{}, fmt.Errorf("edit row %d: %w", row, err)
	}
	item.ID = l.items[row].ID
	l.items[row] = item
	l.notify()
	return item, nil
}

// Delete removes row once confirm agrees; a nil confirm never agrees.
// Later rows shift down by one.
func (l *Ledger) Delete(row int, confirm ConfirmFunc) (bool, error) {
	if row < 0 || row >= len(l.items) {
		return false, &RowNotFoundError{Row: row, Len: len(l.items)}
	}
	if confirm == nil || !confirm(l.items[row]) {
		return false, nil
	}
	l.items = append(l.items[:row], l.items[row+1:]...)
	l.notify()
	return true, nil
}

// RecalculateAll re-derives every line total from the surcharges stored on
// the items. The live catalog is not consulted.
func (l *Ledger) RecalculateAll() {
	for i := range l.items {
		l.items[i].recalculate()
	}
	l.notify()
}

// Row returns the item at i.
func (l *Ledger) Row(i int) (LineItem, bool) {
	if i < 0 || i >= len(l.items) {
		return LineItem{}, false
	}
	return l.items[i], true
}

// Items returns a copy of all rows in order.
func (l *Ledger) Items() []LineItem {
	return append([]LineItem(nil), l.items...)
}

func (l *Ledger) Len() int { return len(l.items) }

// LineTotals returns the line totals in row order.
func (l *Ledger) LineTotals() []decimal.Decimal {
	totals := make([]decimal.Decimal, 0, len(l.items))
	for _, it := range l.items {
		totals = append(totals, it.LineTotal)
	}
	return totals
}
