// Package pricing derives per-unit add-on surcharges, line totals and order
// totals. Every function is pure.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/orderdesk/internal/catalog"
	"github.com/Simplici0/orderdesk/internal/money"
)

// Category is the surcharge family a garment type belongs to.
type Category int

const (
	Other Category = iota
	Shirt
	Pant
)

func (c Category) String() string {
	switch c {
	case Shirt:
		return "shirt"
	case Pant:
		return "pant"
	}
	return "other"
}

// CollarFlag records which collar a shirt-like line item was priced with.
type CollarFlag string

const (
	FlagNone  CollarFlag = "NONE"
	FlagSelf  CollarFlag = "SELF"
	FlagRib   CollarFlag = "RIB"
	FlagPatti CollarFlag = "PATTI"
)

// FlagForCollar maps an active collar key to its flag.
func FlagForCollar(key string) CollarFlag {
	switch key {
	case catalog.CollarSelf:
		return FlagSelf
	case catalog.CollarRib:
		return FlagRib
	case catalog.CollarPatti:
		return FlagPatti
	}
	return FlagNone
}

// UnknownGarmentTypeError is returned in strict mode for types that match no category.
type UnknownGarmentTypeError struct {
	GarmentType string
}

func (e *UnknownGarmentTypeError) Error() string {
	return fmt.Sprintf("garment type %q matches no pricing category", e.GarmentType)
}

// Classify buckets a garment type by case-insensitive substring.
func Classify(garmentType string) Category {
	t := strings.ToLower(garmentType)
	switch {
	case strings.Contains(t, "t-shirt"):
		return Shirt
	case strings.Contains(t, "track-pant"), strings.Contains(t, "shorts"):
		return Pant
	}
	return Other
}

// ClassifyStrict is Classify but refuses types that fall into Other.
func ClassifyStrict(garmentType string) (Category, error) {
	c := Classify(garmentType)
	if c == Other {
		return Other, &UnknownGarmentTypeError{GarmentType: garmentType}
	}
	return c, nil
}

// AddOns holds the per-unit surcharges captured for one line item.
type AddOns struct {
	Print      decimal.Decimal
	Collar     decimal.Decimal
	Track      decimal.Decimal
	CollarFlag CollarFlag
}

// PerUnit is the sum of all surcharges for one piece.
func (a AddOns) PerUnit() decimal.Decimal {
	return a.Print.Add(a.Collar).Add(a.Track)
}

// ComputeAddOns selects the surcharges that apply to garmentType.
func ComputeAddOns(garmentType string, snap catalog.Snapshot) AddOns {
	return addOnsFor(Classify(garmentType), snap)
}

func addOnsFor(category Category, snap catalog.Snapshot) AddOns {
	switch category {
	case Shirt:
		return AddOns{
			Print:      snap.Printing,
			Collar:     snap.Collar,
			Track:      decimal.Zero,
			CollarFlag: FlagForCollar(snap.CollarKey),
		}
	case Pant:
		return AddOns{
			Print:      decimal.Zero,
			Collar:     decimal.Zero,
			Track:      snap.TrackPant,
			CollarFlag: FlagNone,
		}
	}
	return AddOns{
		Print:      decimal.Zero,
		Collar:     decimal.Zero,
		Track:      decimal.Zero,
		CollarFlag: FlagNone,
	}
}

// Calculator carries the classification policy.
type Calculator struct {
	Strict bool
}

// AddOns is ComputeAddOns honouring the calculator's strict mode.
func (c Calculator) AddOns(garmentType string, snap catalog.Snapshot) (AddOns, error) {
	if !c.Strict {
		return ComputeAddOns(garmentType, snap), nil
	}
	category, err := ClassifyStrict(garmentType)
	if err != nil {
		return AddOns{}, err
	}
	return addOnsFor(category, snap), nil
}

// LineTotal is a validated unit price and quantity with their total.
type LineTotal struct {
	UnitPrice decimal.Decimal
	Quantity  int
	Total     decimal.Decimal
}

// ComputeLineTotal parses the operator's text and prices one line.
func ComputeLineTotal(unitPriceText, quantityText string, addOns AddOns) (LineTotal, error) {
	qty, err := money.ParseQuantity(quantityText, "quantity")
	if err != nil {
		return LineTotal{}, err
	}
	unit, err := money.ParseNonNegative(unitPriceText, "unit price")
	if err != nil {
		return LineTotal{}, err
	}
	return LineTotal{
		UnitPrice: unit,
		Quantity:  qty,
		Total:     LineTotalOf(unit, qty, addOns),
	}, nil
}

// LineTotalOf returns (unitPrice + surcharges) * quantity.
func LineTotalOf(unitPrice decimal.Decimal, quantity int, addOns AddOns) decimal.Decimal {
	return unitPrice.Add(addOns.PerUnit()).Mul(decimal.NewFromInt(int64(quantity)))
}
