package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Simplici0/orderdesk/internal/catalog"
	"github.com/Simplici0/orderdesk/internal/money"
	"github.com/Simplici0/orderdesk/internal/order"
	"github.com/Simplici0/orderdesk/internal/pricing"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"order.html", "jobslip.html", "ribcollar.html"}

// Header is the order-level information printed at the top of every document.
type Header struct {
	OrderNo      string
	OrderDate    string
	DeliveryDate string
	Barcode      string
	GSTNo        string
	AdvancePaid  decimal.Decimal
	PartyName    string
	SchoolName   string
	Address      string
	Remark       string
}

// Selections is what the operator chose in the catalog when printing.
type Selections struct {
	Printing    []catalog.Option
	Collar      []catalog.Option
	TrackPant   []catalog.Option
	ButtonStyle string
	CollarCloth string
}

// SelectionsOf copies the current selections out of c.
func SelectionsOf(c *catalog.Catalog) Selections {
	return Selections{
		Printing:    c.Selected(catalog.Printing),
		Collar:      c.Selected(catalog.Collar),
		TrackPant:   c.Selected(catalog.TrackPant),
		ButtonStyle: c.ButtonStyle(),
		CollarCloth: c.CollarCloth(),
	}
}

// Document is the plain data every report is rendered from.
type Document struct {
	Header     Header
	Selections Selections
	Items      []order.LineItem
	Totals     pricing.OrderTotals
}

// Department names a production department that receives job slips.
type Department string

const (
	Cutting    Department = "cutting"
	Stretching Department = "stretching"
	Printing   Department = "printing"
)

// ParseDepartment maps a lower-case department name to a Department.
func ParseDepartment(name string) (Department, bool) {
	switch d := Department(strings.ToLower(name)); d {
	case Cutting, Stretching, Printing:
		return d, true
	}
	return "", false
}

// Title is the heading shown on the department's slip.
func (d Department) Title() string {
	switch d {
	case Cutting:
		return "Cutting"
	case Stretching:
		return "Stretching (Job Work)"
	case Printing:
		return "Printing"
	}
	return string(d)
}

// Renderer produces HTML documents from embedded templates.
type Renderer struct {
	pages    map[string]*template.Template
	currency string
	log      *zap.Logger
}

// NewRenderer parses the embedded templates.
func NewRenderer(currency string, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	funcs := template.FuncMap{
		"inc":  func(i int) int { return i + 1 },
		"join": strings.Join,
	}

	r := &Renderer{pages: map[string]*template.Template{}, currency: currency, log: log}
	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// barcodeImage renders value as an image, or returns "" and logs when the
// value cannot be encoded. The barcode text is still printed.
func (r *Renderer) barcodeImage(value string) template.URL {
	img, err := BarcodeDataURI(value)
	if err != nil {
		r.log.Warn("barcode not encodable, printing text only",
			zap.String("barcode", value),
			zap.Error(err),
		)
		return ""
	}
	return img
}

func (r *Renderer) execute(w io.Writer, page string, data any) error {
	if err := r.pages[page].ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	return nil
}

type documentView struct {
	Title        string
	Currency     string
	Header       Header
	BarcodeImage template.URL
	Selections   Selections
	Rows         []TableRow
	Subtotal     string
	TaxPercent   string
	TaxAmount    string
	GrandTotal   string
	AdvancePaid  string
	BalanceDue   string
}

func (r *Renderer) renderOrder(w io.Writer, title string, doc Document) error {
	return r.execute(w, "order.html", documentView{
		Title:        title,
		Currency:     r.currency,
		Header:       doc.Header,
		BarcodeImage: r.barcodeImage(doc.Header.Barcode),
		Selections:   doc.Selections,
		Rows:         ItemTable(doc.Items),
		Subtotal:     money.Format(doc.Totals.Subtotal),
		TaxPercent:   money.FormatPercent(doc.Totals.TaxPercentage),
		TaxAmount:    money.Format(doc.Totals.TaxAmount),
		GrandTotal:   money.Format(doc.Totals.GrandTotal),
		AdvancePaid:  money.Format(doc.Header.AdvancePaid),
		BalanceDue:   money.Format(doc.Totals.BalanceDue(doc.Header.AdvancePaid)),
	})
}

// OrderSummary writes the customer order summary.
func (r *Renderer) OrderSummary(w io.Writer, doc Document) error {
	return r.renderOrder(w, "Order Summary", doc)
}

// Quotation writes the same body as OrderSummary under a quotation title.
func (r *Renderer) Quotation(w io.Writer, doc Document) error {
	return r.renderOrder(w, "Quotation / Estimate", doc)
}

type jobSlipView struct {
	Title        string
	Department   string
	Header       Header
	Barcode      string
	BarcodeImage template.URL
	Item         TableRow
	CollarFlag   order.CollarFlag
	ButtonStyle  string
	Employee     string
	OptionsTitle string
	Options      []catalog.Option
}

// JobSlip writes the slip handed to dept for one item.
func (r *Renderer) JobSlip(w io.Writer, dept Department, doc Document, row int) error {
	if row < 0 || row >= len(doc.Items) {
		return &order.RowNotFoundError{Row: row, Len: len(doc.Items)}
	}
	item := doc.Items[row]

	code := item.Barcode
	if code == "" {
		code = doc.Header.Barcode
	}
	view := jobSlipView{
		Title:        dept.Title() + " Job Slip",
		Department:   dept.Title(),
		Header:       doc.Header,
		Barcode:      code,
		BarcodeImage: r.barcodeImage(code),
		Item:         ItemTable(doc.Items)[row],
		CollarFlag:   item.CollarFlag,
		ButtonStyle:  doc.Selections.ButtonStyle,
	}
	switch dept {
	case Cutting:
		view.Employee = item.Employees.Cutting
	case Stretching:
		view.Employee = item.Employees.Stretching
		view.OptionsTitle = "Track Pant Options"
		view.Options = doc.Selections.TrackPant
	case Printing:
		view.Employee = item.Employees.Printing
		view.OptionsTitle = "Printing Options"
		view.Options = doc.Selections.Printing
	default:
		return fmt.Errorf("unknown department %q", dept)
	}
	return r.execute(w, "jobslip.html", view)
}

type ribRow struct {
	Size  string
	Cells []int
	Total int
}

type ribCollarView struct {
	Title       string
	Header      Header
	CollarCloth string
	Employees   []string
	Empty       bool
	Colors      []string
	Rows        []ribRow
	ColorTotals []int
	Total       int
}

// RibCollar writes the size by color RIB collar grid.
func (r *Renderer) RibCollar(w io.Writer, doc Document) error {
	b := BuildRibCollar(doc.Items)

	view := ribCollarView{
		Title:       "RIB Collar Breakdown",
		Header:      doc.Header,
		CollarCloth: doc.Selections.CollarCloth,
		Employees:   ribEmployees(doc.Items),
		Empty:       b.Empty(),
		Colors:      b.Colors,
		Total:       b.TotalQty,
	}
	for _, size := range b.Sizes {
		row := ribRow{Size: size, Total: b.SizeTotal(size)}
		for _, color := range b.Colors {
			row.Cells = append(row.Cells, b.Quantity(size, color))
		}
		view.Rows = append(view.Rows, row)
	}
	for _, color := range b.Colors {
		view.ColorTotals = append(view.ColorTotals, b.ColorTotal(color))
	}
	return r.execute(w, "ribcollar.html", view)
}

func ribEmployees(items []order.LineItem) []string {
	seen := map[string]bool{}
	var names []string
	for _, it := range items {
		name := strings.TrimSpace(it.Employees.RibCollar)
		if it.CollarFlag != order.FlagRib || name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
