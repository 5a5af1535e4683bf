package style

import (
	"github.com/matzehuels/folio/pkg/errors"
)

// Cascade resolves style names against a sheet. It holds no mutable state
// and may be shared between builds and goroutines.
type Cascade struct {
	sheet *Sheet
	names []string
}

// NewCascade validates every style the sheet can produce.
func NewCascade(sheet *Sheet) (*Cascade, error) {
	if sheet == nil {
		return nil, errors.Configuration("a style sheet is required")
	}
	if err := sheet.base.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "base style")
	}
	c := &Cascade{sheet: sheet, names: sheet.Names()}
	for _, name := range c.names {
		d := c.derive(sheet.rules[name])
		if err := d.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "style %q", name)
		}
	}
	return c, nil
}

// MustDefault returns a cascade over DefaultSheet.
func MustDefault() *Cascade {
	c, err := NewCascade(DefaultSheet())
	if err != nil {
		panic(err)
	}
	return c
}

// Resolve returns the concrete attributes of the named style.
func (c *Cascade) Resolve(name string) (Definition, error) {
	rule, ok := c.sheet.rules[name]
	if !ok {
		return Definition{}, errors.UnknownStyle(name, c.AvailableStyles())
	}
	return c.derive(rule), nil
}

// AvailableStyles returns the resolvable names in sorted order. The base
// style is not included.
func (c *Cascade) AvailableStyles() []string {
	return append([]string(nil), c.names...)
}

// Has reports whether name is a resolvable style.
func (c *Cascade) Has(name string) bool {
	_, ok := c.sheet.rules[name]
	return ok
}

// Base returns the base style.
func (c *Cascade) Base() Definition {
	return c.sheet.Base()
}

// Sheet returns the sheet the cascade was built from.
func (c *Cascade) Sheet() *Sheet {
	return c.sheet
}

func (c *Cascade) derive(r Rule) Definition {
	d := clone(c.sheet.base)

	factor := r.Factor
	if factor == 0 {
		factor = 1
	}
	d.Size = d.Size * factor

	o := r.Overrides
	if o.Size != nil {
		d.Size = *o.Size
	}
	if o.FontStyle != "" {
		d.FontStyle = o.FontStyle
	}
	if o.Align != "" {
		d.Align = o.Align
	}
	if o.Leading != 0 {
		d.Leading = o.Leading
	}
	if o.InlineFormat != nil {
		d.InlineFormat = *o.InlineFormat
	}
	if o.Color != "" {
		d.Color = o.Color
	}

	d.Normalize()
	return d
}
