package main

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/orderdesk/internal/catalog"
	"github.com/Simplici0/orderdesk/internal/money"
	"github.com/Simplici0/orderdesk/internal/order"
	"github.com/Simplici0/orderdesk/internal/report"
	"github.com/Simplici0/orderdesk/internal/session"
)

//go:embed templates/*.html
var pageFS embed.FS

type server struct {
	// mu serialises every request: the session has a single writer.
	mu       sync.Mutex
	session  *session.Session
	reports  *report.Renderer
	currency string
	log      *zap.Logger
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

type orderViewData struct {
	baseViewData
	Currency     string
	Header       session.HeaderForm
	Rows         []report.TableRow
	Printing     []catalog.Option
	Collar       []catalog.Option
	TrackPant    []catalog.Option
	ButtonStyles []string
	ButtonStyle  string
	CollarCloths []string
	CollarCloth  string
	Statuses     []order.Status
	TaxEnabled   bool
	TaxPercent   string
	Subtotal     string
	TaxAmount    string
	GrandTotal   string
	BalanceDue   string
}

type itemViewData struct {
	baseViewData
	Row      int
	Item     session.ItemForm
	Statuses []order.Status
}

type deleteViewData struct {
	baseViewData
	Row  int
	Item report.TableRow
}

type optionView struct {
	Group  string
	Option catalog.Option
}

var pageFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"option": func(group string, opt catalog.Option) optionView {
		return optionView{Group: group, Option: opt}
	},
	"newItem": func(statuses []order.Status) itemViewData {
		return itemViewData{Statuses: statuses}
	},
}

func newServer(sess *session.Session, reports *report.Renderer, currency string, log *zap.Logger) *server {
	return &server{session: sess, reports: reports, currency: currency, log: log}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// requestLogger wraps Recoverer so recovered panics are logged with their 500.
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.serialize)

	r.Get("/", s.handleOrder)
	r.Post("/header", s.handleHeader)
	r.Post("/catalog/style", s.handleStyle)
	r.Post("/catalog/{group}/{key}", s.handleCatalogOption)
	r.Post("/tax", s.handleTax)

	r.Post("/items", s.handleItemCreate)
	r.Post("/items/recalculate", s.handleRecalculate)
	r.Get("/items/{row}", s.handleItemForm)
	r.Post("/items/{row}", s.handleItemUpdate)
	r.Get("/items/{row}/delete", s.handleItemDeleteForm)
	r.Post("/items/{row}/delete", s.handleItemDelete)

	r.Get("/reports/order", s.handleOrderReport)
	r.Get("/reports/order/text", s.handleOrderText)
	r.Get("/reports/quotation", s.handleQuotationReport)
	r.Get("/reports/rib-collar", s.handleRibCollarReport)
	r.Get("/reports/items/{row}/{department}", s.handleJobSlip)
	return r
}

func (s *server) serialize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func messages(r *http.Request) baseViewData {
	return baseViewData{
		ErrorMessage:   r.URL.Query().Get("error"),
		SuccessMessage: r.URL.Query().Get("success"),
	}
}

// fail maps a command error to a response: missing rows and options are 404,
// everything else is a validation message on the order page.
func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *order.RowNotFoundError
	var unknownOption *catalog.UnknownOptionError
	if errors.As(err, &notFound) || errors.As(err, &unknownOption) {
		http.NotFound(w, r)
		return
	}
	s.log.Info("command rejected", zap.String("path", r.URL.Path), zap.Error(err))
	redirectError(w, r, "/", err)
}

func (s *server) handleOrder(w http.ResponseWriter, r *http.Request) {
	cat := s.session.Catalog()
	totals := s.session.Totals()
	s.renderTemplate(w, "order.html", orderViewData{
		baseViewData: messages(r),
		Currency:     s.currency,
		Header:       s.session.HeaderForm(),
		Rows:         s.session.Table(),
		Printing:     cat.Options(catalog.Printing),
		Collar:       cat.Options(catalog.Collar),
		TrackPant:    cat.Options(catalog.TrackPant),
		ButtonStyles: cat.ButtonStyles(),
		ButtonStyle:  cat.ButtonStyle(),
		CollarCloths: cat.CollarCloths(),
		CollarCloth:  cat.CollarCloth(),
		Statuses:     order.Statuses,
		TaxEnabled:   s.session.Tax().Enabled,
		TaxPercent:   s.session.TaxDisplay(),
		Subtotal:     money.Format(totals.Subtotal),
		TaxAmount:    money.Format(totals.TaxAmount),
		GrandTotal:   money.Format(totals.GrandTotal),
		BalanceDue:   money.Format(totals.BalanceDue(s.session.Header().AdvancePaid)),
	})
}

func (s *server) handleHeader(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	s.session.SetHeader(parseHeaderForm(r))
	redirectSuccess(w, r, "/", "Order details saved")
}

func (s *server) handleStyle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if style := r.FormValue("button_style"); style != "" {
		if err := s.session.SetButtonStyle(style); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	if cloth := r.FormValue("collar_cloth"); cloth != "" {
		if err := s.session.SetCollarCloth(cloth); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleCatalogOption(w http.ResponseWriter, r *http.Request) {
	group, ok := catalog.ParseGroup(chi.URLParam(r, "group"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	key := chi.URLParam(r, "key")

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if r.Form.Has("price") {
		if err := s.session.SetOptionPrice(group, key, strings.TrimSpace(r.FormValue("price"))); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	if group == catalog.TrackPant && r.Form.Has("extra") {
		if err := s.session.SetOptionExtra(key, strings.TrimSpace(r.FormValue("extra"))); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	if r.Form.Has("selected") {
		if err := s.session.SelectOption(group, key, parseFlag(r, "selected")); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleTax(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	s.session.SetTax(parseFlag(r, "enabled"), r.FormValue("percentage"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleItemCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if _, err := s.session.AddItem(parseItemForm(r)); err != nil {
		s.fail(w, r, err)
		return
	}
	redirectSuccess(w, r, "/", "Item added")
}

func (s *server) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	s.session.RecalculateAll()
	redirectSuccess(w, r, "/", "Totals recalculated")
}

func (s *server) handleItemForm(w http.ResponseWriter, r *http.Request) {
	row, err := parseRow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item, ok := s.session.Item(row)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.renderTemplate(w, "item.html", itemViewData{
		baseViewData: messages(r),
		Row:          row,
		Item:         item.Fields(),
		Statuses:     order.Statuses,
	})
}

func (s *server) handleItemUpdate(w http.ResponseWriter, r *http.Request) {
	row, err := parseRow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if _, err := s.session.EditItem(row, parseItemForm(r)); err != nil {
		s.fail(w, r, err)
		return
	}
	redirectSuccess(w, r, "/", "Item updated")
}

func (s *server) handleItemDeleteForm(w http.ResponseWriter, r *http.Request) {
	row, err := parseRow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, ok := s.session.Item(row); !ok {
		http.NotFound(w, r)
		return
	}
	s.renderTemplate(w, "delete.html", deleteViewData{
		baseViewData: messages(r),
		Row:          row,
		Item:         s.session.Table()[row],
	})
}

func (s *server) handleItemDelete(w http.ResponseWriter, r *http.Request) {
	row, err := parseRow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	confirmed := func(order.LineItem) bool { return r.FormValue("confirm") == "yes" }
	deleted, err := s.session.DeleteItem(row, confirmed)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !deleted {
		redirectSuccess(w, r, "/", "Item kept")
		return
	}
	redirectSuccess(w, r, "/", "Item deleted")
}

func (s *server) handleOrderReport(w http.ResponseWriter, r *http.Request) {
	s.writeReport(w, func(out io.Writer) error {
		return s.reports.OrderSummary(out, s.session.Document())
	})
}

func (s *server) handleQuotationReport(w http.ResponseWriter, r *http.Request) {
	s.writeReport(w, func(out io.Writer) error {
		return s.reports.Quotation(out, s.session.Document())
	})
}

func (s *server) handleRibCollarReport(w http.ResponseWriter, r *http.Request) {
	if s.session.RibCollar().Empty() {
		redirectError(w, r, "/", errors.New("no items marked as RIB collar were found in the order"))
		return
	}
	s.writeReport(w, func(out io.Writer) error {
		return s.reports.RibCollar(out, s.session.Document())
	})
}

func (s *server) handleJobSlip(w http.ResponseWriter, r *http.Request) {
	row, err := parseRow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dept, ok := report.ParseDepartment(chi.URLParam(r, "department"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, ok := s.session.Item(row); !ok {
		http.NotFound(w, r)
		return
	}
	s.writeReport(w, func(out io.Writer) error {
		return s.reports.JobSlip(out, dept, s.session.Document(), row)
	})
}

// handleOrderText returns a plain-text summary suitable for pasting into a chat.
func (s *server) handleOrderText(w http.ResponseWriter, r *http.Request) {
	doc := s.session.Document()

	var b strings.Builder
	fmt.Fprintf(&b, "Order No: %s\n", doc.Header.OrderNo)
	fmt.Fprintf(&b, "Party: %s\n", doc.Header.PartyName)
	if doc.Header.DeliveryDate != "" {
		fmt.Fprintf(&b, "Delivery: %s\n", doc.Header.DeliveryDate)
	}
	b.WriteString("\nItems:\n")
	for _, row := range report.ItemTable(doc.Items) {
		fmt.Fprintf(&b, "%d. %s %s %s %s x%s @ %s = %s\n", row.Row+1, row.Type, row.Fabric, row.Color, row.Size, row.Qty, row.Unit, row.Total)
	}
	fmt.Fprintf(&b, "\nSubtotal: %s %s\n", s.currency, money.Format(doc.Totals.Subtotal))
	fmt.Fprintf(&b, "Tax (%s%%): %s %s\n", money.FormatPercent(doc.Totals.TaxPercentage), s.currency, money.Format(doc.Totals.TaxAmount))
	fmt.Fprintf(&b, "Total: %s %s\n", s.currency, money.Format(doc.Totals.GrandTotal))
	fmt.Fprintf(&b, "Balance due: %s %s\n", s.currency, money.Format(doc.Totals.BalanceDue(doc.Header.AdvancePaid)))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, b.String())
}

func (s *server) writeReport(w http.ResponseWriter, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.log.Error("failed to render report", zap.Error(err))
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.New(page).Funcs(pageFuncs).ParseFS(pageFS, "templates/layout.html", "templates/"+page)
	if err != nil {
		s.log.Error("failed to parse template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.log.Error("failed to render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
