package catalog

import "sort"

// Collar option keys.
const (
	CollarSelf  = "self"
	CollarRib   = "rib"
	CollarPatti = "patti"
)

// Definition seeds one selectable option.
type Definition struct {
	Key   string
	Label string
	Price string
}

// Definitions describes every group the catalog starts with.
type Definitions struct {
	Printing      []Definition
	Collar        []Definition
	TrackPant     []Definition
	DefaultCollar string
	ButtonStyles  []string
	CollarCloths  []string
}

// DefaultDefinitions returns the workshop's standard option list and prices.
func DefaultDefinitions() Definitions {
	return Definitions{
		Printing: []Definition{
			{Key: "front", Label: "FRONT", Price: "5"},
			{Key: "back", Label: "BACK", Price: "7"},
			{Key: "patch", Label: "PATCH", Price: "5"},
			{Key: "embroidery", Label: "EMBROIDERY", Price: "15"},
			{Key: "dtf", Label: "DTF", Price: "0"},
			{Key: "front_sublimation", Label: "FRONT SUBLIMATION", Price: "60"},
			{Key: "back_sublimation", Label: "BACK SUBLIMATION", Price: "60"},
		},
		Collar: []Definition{
			{Key: CollarSelf, Label: "Self Collar", Price: "0"},
			{Key: CollarRib, Label: "RIB collar", Price: "10"},
			{Key: CollarPatti, Label: "RIB Patti", Price: "10"},
		},
		TrackPant: []Definition{
			{Key: "dori", Label: "Dori", Price: "0"},
			{Key: "piping_1", Label: "1 Piping", Price: "2"},
			{Key: "piping_2", Label: "2 Piping", Price: "6"},
			{Key: "other", Label: "Other", Price: "0"},
		},
		DefaultCollar: CollarSelf,
		ButtonStyles:  []string{"BUTTON", "PLAIN", "BOX", "V+"},
		CollarCloths:  []string{"Cotton", "Polyester", "Blended", "Other"},
	}
}

// WithPrices returns a copy of d whose prices for group are replaced by the
// matching entries of prices. Keys that match no option are returned so the
// caller can report them, sorted.
func (d Definitions) WithPrices(group Group, prices map[string]string) (Definitions, []string) {
	defs := d.group(group)
	updated := make([]Definition, len(defs))
	copy(updated, defs)

	var unknown []string
	for key, price := range prices {
		found := false
		for i := range updated {
			if updated[i].Key == key {
				updated[i].Price = price
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, key)
		}
	}

	sort.Strings(unknown)

	switch group {
	case Printing:
		d.Printing = updated
	case Collar:
		d.Collar = updated
	case TrackPant:
		d.TrackPant = updated
	}
	return d, unknown
}

func (d Definitions) group(group Group) []Definition {
	switch group {
	case Printing:
		return d.Printing
	case Collar:
		return d.Collar
	case TrackPant:
		return d.TrackPant
	}
	return nil
}
