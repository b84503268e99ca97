// Package session is the single in-memory order being edited: catalog,
// ledger, tax and header, changed only through its commands.
package session

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Simplici0/orderdesk/internal/catalog"
	"github.com/Simplici0/orderdesk/internal/money"
	"github.com/Simplici0/orderdesk/internal/order"
	"github.com/Simplici0/orderdesk/internal/pricing"
	"github.com/Simplici0/orderdesk/internal/report"
)

// ItemForm is the operator's item input, numbers still as typed.
type ItemForm = order.Fields

// HeaderForm is the operator's order header input.
type HeaderForm struct {
	OrderNo      string
	OrderDate    string
	DeliveryDate string
	Barcode      string
	GSTNo        string
	AdvancePaid  string
	PartyName    string
	SchoolName   string
	Address      string
	Remark       string
}

// Options configures a new Session.
type Options struct {
	Definitions        catalog.Definitions
	StrictGarmentTypes bool
	Logger             *zap.Logger
}

// Session owns one order. It is not safe for concurrent use.
type Session struct {
	catalog    *catalog.Catalog
	ledger     *order.Ledger
	tax        pricing.TaxSetting
	header     report.Header
	headerForm HeaderForm
	totals     pricing.OrderTotals
	log        *zap.Logger
}

// New starts an empty order.
func New(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Session{
		catalog: catalog.New(opts.Definitions, log.Named("catalog")),
		ledger:  order.NewLedger(pricing.Calculator{Strict: opts.StrictGarmentTypes}),
		log:     log,
	}
	s.ledger.OnChange(s.refreshTotals)
	s.refreshTotals()
	return s
}

func (s *Session) refreshTotals() {
	s.totals = pricing.Summarize(s.ledger.LineTotals(), s.tax)
}

// AddItem prices form against the current catalog and appends it.
func (s *Session) AddItem(form ItemForm) (order.LineItem, error) {
	item, err := s.ledger.Add(form, s.catalog.Snapshot())
	if err != nil {
		return order.LineItem{}, err
	}
	s.log.Info("item added",
		zap.Stringer("id", item.ID),
		zap.String("garment_type", item.GarmentType),
		zap.String("line_total", money.Format(item.LineTotal)),
	)
	return item, nil
}

// EditItem re-prices row from form against the current catalog.
func (s *Session) EditItem(row int, form ItemForm) (order.LineItem, error) {
	item, err := s.ledger.Edit(row, form, s.catalog.Snapshot())
	if err != nil {
		return order.LineItem{}, err
	}
	s.log.Info("item edited",
		zap.Int("row", row),
		zap.String("line_total", money.Format(item.LineTotal)),
	)
	return item, nil
}

// DeleteItem removes row after confirm agrees.
func (s *Session) DeleteItem(row int, confirm order.ConfirmFunc) (bool, error) {
	deleted, err := s.ledger.Delete(row, confirm)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info("item deleted", zap.Int("row", row))
	}
	return deleted, nil
}

// RecalculateAll re-derives every line total from the stored surcharges.
func (s *Session) RecalculateAll() {
	s.ledger.RecalculateAll()
}

// SetTax switches tax on or off. Unreadable percentages count as 0.
func (s *Session) SetTax(enabled bool, percentageText string) {
	s.tax = pricing.ParseTaxSetting(s.log, enabled, percentageText)
	s.refreshTotals()
}

// SetHeader replaces the order header. An unreadable advance counts as 0.
func (s *Session) SetHeader(form HeaderForm) {
	s.headerForm = form
	s.header = report.Header{
		OrderNo:      strings.TrimSpace(form.OrderNo),
		OrderDate:    strings.TrimSpace(form.OrderDate),
		DeliveryDate: strings.TrimSpace(form.DeliveryDate),
		Barcode:      strings.TrimSpace(form.Barcode),
		GSTNo:        strings.TrimSpace(form.GSTNo),
		AdvancePaid:  decimal.Zero,
		PartyName:    strings.TrimSpace(form.PartyName),
		SchoolName:   strings.TrimSpace(form.SchoolName),
		Address:      strings.TrimSpace(form.Address),
		Remark:       strings.TrimSpace(form.Remark),
	}
	if strings.TrimSpace(form.AdvancePaid) != "" {
		s.header.AdvancePaid = money.ParseOrZero(s.log, form.AdvancePaid, "advance paid")
	}
}

// SelectOption toggles a catalog option. Existing items keep their prices.
func (s *Session) SelectOption(group catalog.Group, key string, selected bool) error {
	return s.catalog.Select(group, key, selected)
}

// SetOptionPrice changes a catalog price. Existing items keep their prices.
func (s *Session) SetOptionPrice(group catalog.Group, key, price string) error {
	return s.catalog.SetPrice(group, key, price)
}

func (s *Session) SetOptionExtra(key, extra string) error {
	return s.catalog.SetExtra(key, extra)
}

func (s *Session) SetButtonStyle(style string) error {
	return s.catalog.SetButtonStyle(style)
}

func (s *Session) SetCollarCloth(cloth string) error {
	return s.catalog.SetCollarCloth(cloth)
}

// Catalog exposes the live catalog for display. Mutate it through the session.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

func (s *Session) Items() []order.LineItem             { return s.ledger.Items() }
func (s *Session) Item(row int) (order.LineItem, bool) { return s.ledger.Row(row) }
func (s *Session) Len() int                            { return s.ledger.Len() }
func (s *Session) Totals() pricing.OrderTotals         { return s.totals }
func (s *Session) Tax() pricing.TaxSetting             { return s.tax }
func (s *Session) Header() report.Header               { return s.header }
func (s *Session) HeaderForm() HeaderForm              { return s.headerForm }

// TaxDisplay is the percentage shown next to the tax toggle, "0.0" when off.
func (s *Session) TaxDisplay() string {
	return money.FormatPercent(s.tax.EffectivePercentage())
}

// Table returns the visible ledger rows.
func (s *Session) Table() []report.TableRow {
	return report.ItemTable(s.ledger.Items())
}

// RibCollar returns the RIB collar breakdown of the current items.
func (s *Session) RibCollar() report.RibCollarBreakdown {
	return report.BuildRibCollar(s.ledger.Items())
}

// Document returns the data every printable document is rendered from.
func (s *Session) Document() report.Document {
	return report.Document{
		Header:     s.header,
		Selections: report.SelectionsOf(s.catalog),
		Items:      s.ledger.Items(),
		Totals:     s.totals,
	}
}
