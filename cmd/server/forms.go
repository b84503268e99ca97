package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/orderdesk/internal/order"
	"github.com/Simplici0/orderdesk/internal/session"
)

func parseItemForm(r *http.Request) session.ItemForm {
	return session.ItemForm{
		Fabric:      strings.TrimSpace(r.FormValue("fabric")),
		GarmentType: strings.TrimSpace(r.FormValue("garment_type")),
		Color:       strings.TrimSpace(r.FormValue("color")),
		Size:        strings.TrimSpace(r.FormValue("size")),
		Quantity:    strings.TrimSpace(r.FormValue("quantity")),
		UnitPrice:   strings.TrimSpace(r.FormValue("unit_price")),
		Status:      strings.TrimSpace(r.FormValue("status")),
		Barcode:     strings.TrimSpace(r.FormValue("barcode")),
		Remark:      strings.TrimSpace(r.FormValue("remark")),
		Employees: order.Employees{
			Cutting:    strings.TrimSpace(r.FormValue("employee_cutting")),
			Printing:   strings.TrimSpace(r.FormValue("employee_printing")),
			RibCollar:  strings.TrimSpace(r.FormValue("employee_rib_collar")),
			Stretching: strings.TrimSpace(r.FormValue("employee_stretching")),
		},
	}
}

func parseHeaderForm(r *http.Request) session.HeaderForm {
	return session.HeaderForm{
		OrderNo:      r.FormValue("order_no"),
		OrderDate:    r.FormValue("order_date"),
		DeliveryDate: r.FormValue("delivery_date"),
		Barcode:      r.FormValue("barcode"),
		GSTNo:        r.FormValue("gst_no"),
		AdvancePaid:  r.FormValue("advance_paid"),
		PartyName:    r.FormValue("party_name"),
		SchoolName:   r.FormValue("school_name"),
		Address:      r.FormValue("address"),
		Remark:       r.FormValue("remark"),
	}
}

// parseRow reads the {row} URL parameter.
func parseRow(r *http.Request) (int, error) {
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil || row < 0 {
		return 0, fmt.Errorf("invalid row %q", chi.URLParam(r, "row"))
	}
	return row, nil
}

func parseFlag(r *http.Request, field string) bool {
	return r.FormValue(field) == "1"
}

func redirectError(w http.ResponseWriter, r *http.Request, path string, err error) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
}

func redirectSuccess(w http.ResponseWriter, r *http.Request, path, message string) {
	http.Redirect(w, r, path+"?success="+url.QueryEscape(message), http.StatusSeeOther)
}
