package pricing

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Simplici0/orderdesk/internal/money"
)

var hundred = decimal.NewFromInt(100)

// TaxSetting is the order-level tax toggle and rate.
type TaxSetting struct {
	Enabled    bool
	Percentage decimal.Decimal
}

// ParseTaxSetting reads the typed percentage; bad text is logged and counts as 0.
func ParseTaxSetting(log *zap.Logger, enabled bool, percentageText string) TaxSetting {
	return TaxSetting{
		Enabled:    enabled,
		Percentage: money.ParseOrZero(log, percentageText, "tax percentage"),
	}
}

// EffectivePercentage is the percentage actually applied.
func (t TaxSetting) EffectivePercentage() decimal.Decimal {
	if !t.Enabled {
		return decimal.Zero
	}
	return t.Percentage
}

// OrderTotals is derived in full from the line totals and tax setting.
type OrderTotals struct {
	Subtotal      decimal.Decimal
	TaxPercentage decimal.Decimal
	TaxAmount     decimal.Decimal
	GrandTotal    decimal.Decimal
}

// Summarize recomputes the order totals from scratch.
func Summarize(lineTotals []decimal.Decimal, tax TaxSetting) OrderTotals {
	subtotal := decimal.Zero
	for _, lt := range lineTotals {
		subtotal = subtotal.Add(lt)
	}

	pct := tax.EffectivePercentage()
	taxAmount := subtotal.Mul(pct).Div(hundred)

	return OrderTotals{
		Subtotal:      subtotal,
		TaxPercentage: pct,
		TaxAmount:     taxAmount,
		GrandTotal:    subtotal.Add(taxAmount),
	}
}

// BalanceDue is what remains after the advance already paid.
func (o OrderTotals) BalanceDue(advance decimal.Decimal) decimal.Decimal {
	return o.GrandTotal.Sub(advance)
}
