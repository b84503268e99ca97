package report

import (
	"sort"
	"strings"

	"github.com/Simplici0/orderdesk/internal/order"
	"github.com/Simplici0/orderdesk/internal/pricing"
)

// garmentSizes is the order sizes appear in on the size grid.
var garmentSizes = []string{"XS", "S", "M", "L", "XL", "XXL", "3XL"}

// SizeColor keys one cell of the RIB collar grid.
type SizeColor struct {
	Size  string
	Color string
}

// RibCollarBreakdown is the RIB collar quantity per size and color.
type RibCollarBreakdown struct {
	Breakdown map[SizeColor]int
	Colors    []string
	Sizes     []string
	TotalQty  int
}

// Empty reports whether no item needs a RIB collar.
func (b RibCollarBreakdown) Empty() bool {
	return len(b.Breakdown) == 0
}

// Quantity returns the quantity in one cell.
func (b RibCollarBreakdown) Quantity(size, color string) int {
	return b.Breakdown[SizeColor{Size: size, Color: color}]
}

// SizeTotal returns the quantity of a size across colors.
func (b RibCollarBreakdown) SizeTotal(size string) int {
	total := 0
	for _, c := range b.Colors {
		total += b.Quantity(size, c)
	}
	return total
}

// ColorTotal returns the quantity of a color across sizes.
func (b RibCollarBreakdown) ColorTotal(color string) int {
	total := 0
	for _, s := range b.Sizes {
		total += b.Quantity(s, color)
	}
	return total
}

// BuildRibCollar aggregates shirt-like items that were priced with a RIB collar.
// The collar flag recorded on each item is used as is.
func BuildRibCollar(items []order.LineItem) RibCollarBreakdown {
	b := RibCollarBreakdown{Breakdown: map[SizeColor]int{}}
	colors := map[string]struct{}{}
	sizes := map[string]struct{}{}

	for _, it := range items {
		if pricing.Classify(it.GarmentType) != pricing.Shirt || it.CollarFlag != order.FlagRib {
			continue
		}
		if it.Quantity <= 0 {
			continue
		}
		size := strings.TrimSpace(it.Size)
		color := strings.TrimSpace(it.Color)

		b.Breakdown[SizeColor{Size: size, Color: color}] += it.Quantity
		colors[color] = struct{}{}
		sizes[size] = struct{}{}
		b.TotalQty += it.Quantity
	}

	for c := range colors {
		b.Colors = append(b.Colors, c)
	}
	sort.Strings(b.Colors)
	b.Sizes = orderSizes(sizes)
	return b
}

func orderSizes(seen map[string]struct{}) []string {
	var out []string
	for _, s := range garmentSizes {
		if _, ok := seen[s]; ok {
			out = append(out, s)
			delete(seen, s)
		}
	}
	var rest []string
	for s := range seen {
		rest = append(rest, s)
	}
	sort.Strings(rest)
	return append(out, rest...)
}
