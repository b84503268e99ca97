package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseOrFail(t *testing.T) {
	got, err := ParseOrFail(" 200.50 ", "unit_price")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("200.5")) {
		t.Fatalf("unit_price = %s, want 200.5", got)
	}

	_, err = ParseOrFail("abc", "unit_price")
	var numErr *InvalidNumberError
	if !errors.As(err, &numErr) {
		t.Fatalf("expected InvalidNumberError, got %v", err)
	}
	if numErr.Field != "unit_price" || numErr.Value != "abc" {
		t.Fatalf("unexpected error fields: %+v", numErr)
	}
}

func TestParseNonNegativeRejectsNegative(t *testing.T) {
	if _, err := ParseNonNegative("-1", "unit_price"); err == nil {
		t.Fatalf("expected error for negative amount")
	}
	if _, err := ParseNonNegative("0", "unit_price"); err != nil {
		t.Fatalf("zero should be accepted: %v", err)
	}
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "10", want: 10},
		{raw: " 3 ", want: 3},
		{raw: "abc", wantErr: true},
		{raw: "2.5", wantErr: true},
		{raw: "0", wantErr: true},
		{raw: "-4", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseQuantity(tc.raw, "quantity")
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseQuantity(%q) expected error, got %d", tc.raw, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseQuantity(%q) unexpected err: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseQuantity(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestParseOrZeroLogsAndFallsBack(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)

	got := ParseOrZero(log, "5x", "printing.front")
	if !got.IsZero() {
		t.Fatalf("ParseOrZero = %s, want 0", got)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected 1 warning, got %d", logs.Len())
	}
	if field := logs.All()[0].ContextMap()["field"]; field != "printing.front" {
		t.Fatalf("logged field = %v, want printing.front", field)
	}

	if got := ParseOrZero(log, "7", "printing.back"); !got.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("ParseOrZero = %s, want 7", got)
	}
	if logs.Len() != 1 {
		t.Fatalf("valid amount should not log, got %d entries", logs.Len())
	}
}

func TestFormat(t *testing.T) {
	if got := Format(decimal.NewFromInt(2150)); got != "2150.00" {
		t.Fatalf("Format = %q, want 2150.00", got)
	}
	if got := FormatPercent(decimal.NewFromInt(18)); got != "18.0" {
		t.Fatalf("FormatPercent = %q, want 18.0", got)
	}
}
