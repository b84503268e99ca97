// Package catalog holds the selectable add-on options (printing, collar and
// track-pant) together with the prices the operator has typed for them.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Simplici0/orderdesk/internal/money"
)

// Group identifies one add-on option group.
type Group int

const (
	Printing Group = iota
	Collar
	TrackPant
)

var groupNames = [...]string{"printing", "collar", "track_pant"}

func (g Group) String() string {
	if int(g) < 0 || int(g) >= len(groupNames) {
		return "unknown"
	}
	return groupNames[g]
}

// ParseGroup maps a group name ("printing", "collar", "track_pant") to a Group.
func ParseGroup(name string) (Group, bool) {
	for i, n := range groupNames {
		if n == name {
			return Group(i), true
		}
	}
	return 0, false
}

// CollarRequiredError is returned when the active collar would be deselected.
type CollarRequiredError struct {
	Key string
}

func (e *CollarRequiredError) Error() string {
	return fmt.Sprintf("collar %q is active: select another collar instead", e.Key)
}

// UnknownOptionError reports an option key that does not exist in its group.
type UnknownOptionError struct {
	Group Group
	Key   string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown %s option %q", e.Group, e.Key)
}

// Option is one selectable add-on. PriceText is kept as typed and parsed on read.
type Option struct {
	Key       string
	Label     string
	PriceText string
	Selected  bool
	Extra     string
}

// Snapshot is the per-unit surcharge of every group at one instant.
type Snapshot struct {
	Printing  decimal.Decimal
	Collar    decimal.Decimal
	TrackPant decimal.Decimal
	CollarKey string
}

// Catalog is the live option state edited by the operator.
type Catalog struct {
	groups       [3][]Option
	buttonStyles []string
	buttonStyle  string
	collarCloths []string
	collarCloth  string
	log          *zap.Logger
}

// New builds a catalog from defs with nothing selected except the default collar.
func New(defs Definitions, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}

	c := &Catalog{
		buttonStyles: append([]string(nil), defs.ButtonStyles...),
		collarCloths: append([]string(nil), defs.CollarCloths...),
		log:          log,
	}
	c.groups[Printing] = optionsFrom(defs.Printing)
	c.groups[Collar] = optionsFrom(defs.Collar)
	c.groups[TrackPant] = optionsFrom(defs.TrackPant)

	if len(c.buttonStyles) > 0 {
		c.buttonStyle = c.buttonStyles[0]
	}
	if len(c.collarCloths) > 0 {
		c.collarCloth = c.collarCloths[0]
	}

	collars := c.groups[Collar]
	if len(collars) > 0 {
		active := 0
		for i, opt := range collars {
			if opt.Key == defs.DefaultCollar {
				active = i
				break
			}
		}
		collars[active].Selected = true
	}

	return c
}

func optionsFrom(defs []Definition) []Option {
	opts := make([]Option, 0, len(defs))
	for _, d := range defs {
		opts = append(opts, Option{Key: d.Key, Label: d.Label, PriceText: d.Price})
	}
	return opts
}

func (c *Catalog) find(group Group, key string) (*Option, error) {
	if group < Printing || group > TrackPant {
		return nil, &UnknownOptionError{Group: group, Key: key}
	}
	opts := c.groups[group]
	for i := range opts {
		if opts[i].Key == key {
			return &opts[i], nil
		}
	}
	return nil, &UnknownOptionError{Group: group, Key: key}
}

// Select marks an option selected or not. Selecting a collar deselects the
// previously active one; deselecting the active collar fails.
func (c *Catalog) Select(group Group, key string, selected bool) error {
	opt, err := c.find(group, key)
	if err != nil {
		return err
	}

	if group != Collar {
		opt.Selected = selected
		return nil
	}

	if !selected {
		if opt.Selected {
			return &CollarRequiredError{Key: key}
		}
		return nil
	}
	for i := range c.groups[Collar] {
		c.groups[Collar][i].Selected = false
	}
	opt.Selected = true
	return nil
}

// SetPrice stores the typed price of an option without validating it.
func (c *Catalog) SetPrice(group Group, key, price string) error {
	opt, err := c.find(group, key)
	if err != nil {
		return err
	}
	opt.PriceText = price
	return nil
}

// SetExtra stores the free-text detail of a track-pant option.
func (c *Catalog) SetExtra(key, extra string) error {
	opt, err := c.find(TrackPant, key)
	if err != nil {
		return err
	}
	opt.Extra = extra
	return nil
}

// SetButtonStyle changes the button style shown on documents.
func (c *Catalog) SetButtonStyle(style string) error {
	for _, s := range c.buttonStyles {
		if s == style {
			c.buttonStyle = style
			return nil
		}
	}
	return fmt.Errorf("unknown button style %q", style)
}

// SetCollarCloth changes the collar cloth shown on the RIB collar report.
func (c *Catalog) SetCollarCloth(cloth string) error {
	for _, s := range c.collarCloths {
		if s == cloth {
			c.collarCloth = cloth
			return nil
		}
	}
	return fmt.Errorf("unknown collar cloth %q", cloth)
}

func (c *Catalog) ButtonStyle() string    { return c.buttonStyle }
func (c *Catalog) ButtonStyles() []string { return append([]string(nil), c.buttonStyles...) }
func (c *Catalog) CollarCloth() string    { return c.collarCloth }
func (c *Catalog) CollarCloths() []string { return append([]string(nil), c.collarCloths...) }

// Options returns a copy of every option of group in display order.
func (c *Catalog) Options(group Group) []Option {
	if group < Printing || group > TrackPant {
		return nil
	}
	return append([]Option(nil), c.groups[group]...)
}

// Selected returns a copy of the selected options of group.
func (c *Catalog) Selected(group Group) []Option {
	var out []Option
	for _, opt := range c.Options(group) {
		if opt.Selected {
			out = append(out, opt)
		}
	}
	return out
}

// ActiveCollar returns the collar option currently selected.
func (c *Catalog) ActiveCollar() (Option, bool) {
	for _, opt := range c.groups[Collar] {
		if opt.Selected {
			return opt, true
		}
	}
	return Option{}, false
}

// TotalSelectedPrice returns the per-unit surcharge of group. Unparseable
// prices count as zero and are logged.
func (c *Catalog) TotalSelectedPrice(group Group) decimal.Decimal {
	if group == Collar {
		active, ok := c.ActiveCollar()
		if !ok {
			c.log.Warn("no collar option selected, using 0")
			return decimal.Zero
		}
		return money.ParseOrZero(c.log, active.PriceText, "collar."+active.Key)
	}

	total := decimal.Zero
	for _, opt := range c.Selected(group) {
		total = total.Add(money.ParseOrZero(c.log, opt.PriceText, group.String()+"."+opt.Key))
	}
	return total
}

// Snapshot captures the current surcharges of all groups.
func (c *Catalog) Snapshot() Snapshot {
	snap := Snapshot{
		Printing:  c.TotalSelectedPrice(Printing),
		Collar:    c.TotalSelectedPrice(Collar),
		TrackPant: c.TotalSelectedPrice(TrackPant),
	}
	if active, ok := c.ActiveCollar(); ok {
		snap.CollarKey = active.Key
	}
	return snap
}
