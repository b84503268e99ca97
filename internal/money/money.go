// Package money centralises how operator-typed amounts are read.
//
// Two policies exist and every call site picks one of them explicitly:
// ParseOrFail for values that must block an operation (quantity, unit price)
// and ParseOrZero for values that degrade to zero with a warning (add-on
// prices, tax percentage).
package money

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvalidNumberError reports a form field whose text is not an acceptable number.
type InvalidNumberError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidNumberError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be numeric"
	}
	return fmt.Sprintf("%s %q %s", e.Field, e.Value, reason)
}

// ParseOrFail parses raw as a decimal amount.
func ParseOrFail(raw, field string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, &InvalidNumberError{Field: field, Value: raw}
	}
	return value, nil
}

// ParseNonNegative parses raw and rejects amounts below zero.
func ParseNonNegative(raw, field string) (decimal.Decimal, error) {
	value, err := ParseOrFail(raw, field)
	if err != nil {
		return decimal.Zero, err
	}
	if value.IsNegative() {
		return decimal.Zero, &InvalidNumberError{Field: field, Value: raw, Reason: "must be greater than or equal to 0"}
	}
	return value, nil
}

// ParseQuantity parses a whole, strictly positive piece count.
func ParseQuantity(raw, field string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &InvalidNumberError{Field: field, Value: raw, Reason: "must be a whole number"}
	}
	if qty <= 0 {
		return 0, &InvalidNumberError{Field: field, Value: raw, Reason: "must be greater than 0"}
	}
	return qty, nil
}

// ParseOrZero parses raw and falls back to zero when it is not numeric.
// The fallback is logged, never returned.
func ParseOrZero(log *zap.Logger, raw, field string) decimal.Decimal {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		if log != nil {
			log.Warn("invalid amount, using 0",
				zap.String("field", field),
				zap.String("value", raw),
			)
		}
		return decimal.Zero
	}
	return value
}

// Format renders an amount with two decimals, the way totals are displayed.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatPercent renders a tax percentage with one decimal ("18.0").
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(1)
}
