package session

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Simplici0/orderdesk/internal/catalog"
	"github.com/Simplici0/orderdesk/internal/money"
	"github.com/Simplici0/orderdesk/internal/order"
)

func newTestSession(t *testing.T) (*Session, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	return New(Options{Definitions: catalog.DefaultDefinitions(), Logger: zap.New(core)}), logs
}

func mustAddItem(t *testing.T, s *Session, form ItemForm) order.LineItem {
	t.Helper()
	item, err := s.AddItem(form)
	if err != nil {
		t.Fatalf("AddItem(%+v): %v", form, err)
	}
	return item
}

func totalsEqual(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s = %s, want %s", name, got, want)
	}
}

func TestSession_AddItemUpdatesTotals(t *testing.T) {
	s, logs := newTestSession(t)
	if err := s.SelectOption(catalog.Printing, "front", true); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}
	if err := s.SelectOption(catalog.Collar, catalog.CollarRib, true); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}

	mustAddItem(t, s, ItemForm{GarmentType: "T-shirt", Color: "Red", Size: "M", Quantity: "10", UnitPrice: "200"})

	totalsEqual(t, "subtotal", s.Totals().Subtotal, "2150")
	totalsEqual(t, "grandTotal", s.Totals().GrandTotal, "2150")
	if logs.FilterMessage("item added").Len() != 1 {
		t.Fatalf("item added logs = %d, want 1", logs.FilterMessage("item added").Len())
	}
}

func TestSession_TaxToggle(t *testing.T) {
	s, _ := newTestSession(t)
	mustAddItem(t, s, ItemForm{GarmentType: "Jacket", Quantity: "4", UnitPrice: "250"})

	s.SetTax(true, "18.0")
	totalsEqual(t, "taxAmount", s.Totals().TaxAmount, "180")
	totalsEqual(t, "grandTotal", s.Totals().GrandTotal, "1180")
	if s.TaxDisplay() != "18.0" {
		t.Fatalf("tax display = %q, want 18.0", s.TaxDisplay())
	}

	s.SetTax(false, "18.0")
	totalsEqual(t, "grandTotal", s.Totals().GrandTotal, "1000")
	if s.TaxDisplay() != "0.0" {
		t.Fatalf("tax display = %q, want 0.0", s.TaxDisplay())
	}
}

func TestSession_RejectedItemLeavesOrderUnchanged(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.AddItem(ItemForm{GarmentType: "T-shirt", Quantity: "abc", UnitPrice: "200"})

	var invalid *money.InvalidNumberError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidNumberError", err)
	}
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0", s.Len())
	}
	totalsEqual(t, "subtotal", s.Totals().Subtotal, "0")
}

func TestSession_DeleteRecomputesTotals(t *testing.T) {
	s, _ := newTestSession(t)
	mustAddItem(t, s, ItemForm{GarmentType: "Jacket", Quantity: "1", UnitPrice: "100"})
	mustAddItem(t, s, ItemForm{GarmentType: "Jacket", Quantity: "1", UnitPrice: "50"})
	s.SetTax(true, "10")

	deleted, err := s.DeleteItem(0, func(order.LineItem) bool { return true })
	if err != nil || !deleted {
		t.Fatalf("DeleteItem = %v, %v; want true, nil", deleted, err)
	}

	totalsEqual(t, "subtotal", s.Totals().Subtotal, "50")
	totalsEqual(t, "grandTotal", s.Totals().GrandTotal, "55")
}

func TestSession_CatalogChangesDoNotRepriceUntilEdit(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.SelectOption(catalog.TrackPant, "piping_2", true); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}
	item := mustAddItem(t, s, ItemForm{GarmentType: "Track-pant", Quantity: "2", UnitPrice: "300"})
	totalsEqual(t, "subtotal", s.Totals().Subtotal, "612")

	if err := s.SetOptionPrice(catalog.TrackPant, "piping_2", "10"); err != nil {
		t.Fatalf("SetOptionPrice: %v", err)
	}
	s.RecalculateAll()
	totalsEqual(t, "subtotal after recalc", s.Totals().Subtotal, "612")

	if _, err := s.EditItem(0, item.Fields()); err != nil {
		t.Fatalf("EditItem: %v", err)
	}
	totalsEqual(t, "subtotal after edit", s.Totals().Subtotal, "620")
}

func TestSession_HeaderAndDocument(t *testing.T) {
	s, logs := newTestSession(t)
	mustAddItem(t, s, ItemForm{GarmentType: "Jacket", Quantity: "1", UnitPrice: "1000"})

	s.SetHeader(HeaderForm{OrderNo: " 17 ", PartyName: "Sunrise School", AdvancePaid: "250"})
	doc := s.Document()

	if doc.Header.OrderNo != "17" {
		t.Fatalf("order no = %q, want 17", doc.Header.OrderNo)
	}
	totalsEqual(t, "balance", doc.Totals.BalanceDue(doc.Header.AdvancePaid), "750")

	s.SetHeader(HeaderForm{AdvancePaid: "lots"})
	totalsEqual(t, "advance", s.Header().AdvancePaid, "0")
	if logs.FilterMessage("invalid amount, using 0").Len() != 1 {
		t.Fatalf("expected one invalid amount warning")
	}
}

func TestSession_RibCollarUsesRecordedFlag(t *testing.T) {
	s, _ := newTestSession(t)
	if err := s.SelectOption(catalog.Collar, catalog.CollarRib, true); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}
	mustAddItem(t, s, ItemForm{GarmentType: "T-shirt", Color: "Red", Size: "M", Quantity: "5", UnitPrice: "100"})

	if err := s.SelectOption(catalog.Collar, catalog.CollarSelf, true); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}
	mustAddItem(t, s, ItemForm{GarmentType: "T-shirt", Color: "Blue", Size: "L", Quantity: "2", UnitPrice: "100"})

	b := s.RibCollar()
	if b.TotalQty != 5 || b.Quantity("M", "Red") != 5 {
		t.Fatalf("breakdown = %+v, want only M/Red 5", b)
	}
}
