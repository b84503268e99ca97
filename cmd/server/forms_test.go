package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/orderdesk/internal/config"
)

func TestParseItemForm_TrimsAndMapsEmployees(t *testing.T) {
	form := url.Values{}
	form.Set("garment_type", " T-shirt ")
	form.Set("quantity", " 12 ")
	form.Set("unit_price", "150")
	form.Set("employee_cutting", "Ravi")
	form.Set("employee_rib_collar", "Meena")

	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	req.Form = form

	item := parseItemForm(req)
	if item.GarmentType != "T-shirt" || item.Quantity != "12" {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.Employees.Cutting != "Ravi" || item.Employees.RibCollar != "Meena" {
		t.Fatalf("unexpected employees: %+v", item.Employees)
	}
}

func TestParseRow(t *testing.T) {
	for raw, wantErr := range map[string]bool{"0": false, "12": false, "-1": true, "x": true} {
		req := httptest.NewRequest(http.MethodGet, "/items/"+raw, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("row", raw)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		_, err := parseRow(req)
		if (err != nil) != wantErr {
			t.Fatalf("parseRow(%q) err = %v, wantErr %v", raw, err, wantErr)
		}
	}
}

func TestInitLogger(t *testing.T) {
	logger, err := initLogger(config.LogConfig{Level: "warn", Format: "json"})
	if err != nil {
		t.Fatalf("initLogger: %v", err)
	}
	if logger.Core().Enabled(-1) {
		t.Fatalf("debug enabled at warn level")
	}
}
