// Package style resolves named text styles.
//
// Every style is derived from one base style: its size is the base size
// times a factor, and individual attributes may be overridden. Changing the
// base size therefore moves every derived style proportionally unless the
// derived style pins its own size.
//
//	c, _ := style.NewCascade(style.DefaultSheet())
//	h1, _ := c.Resolve("h1") // size 25, bold, leading 8
//
//	big := style.DefaultSheet().WithBase(func(d *style.Definition) { d.Size = 12 })
//	c, _ = style.NewCascade(big)
//	h1, _ = c.Resolve("h1") // size 30
//
// Unknown names fail with an [errors.UnknownStyleError]; callers check
// [Cascade.Has] or [Cascade.AvailableStyles] to decide whether an identifier
// is a style at all.
package style

import (
	"fmt"

	"github.com/matzehuels/folio/pkg/errors"
)

// FontStyle is the weight/slant descriptor of a style.
type FontStyle string

// Font styles understood by the surfaces.
const (
	Normal     FontStyle = "normal"
	Bold       FontStyle = "bold"
	Italic     FontStyle = "italic"
	BoldItalic FontStyle = "bold_italic"
)

// Align is the horizontal text alignment.
type Align string

// Alignments understood by the surfaces.
const (
	AlignLeft    Align = "left"
	AlignCenter  Align = "center"
	AlignRight   Align = "right"
	AlignJustify Align = "justify"
)

// Definition holds concrete text rendering attributes.
//
// FontSize and Styles are explicit aliases of Size and FontStyle for
// surfaces that expect those names; Normalize keeps them in sync.
type Definition struct {
	Size         float64     `json:"size"`
	FontStyle    FontStyle   `json:"style"`
	Align        Align       `json:"align"`
	Leading      float64     `json:"leading"`
	InlineFormat bool        `json:"inline_format"`
	Color        string      `json:"color"`
	FontSize     float64     `json:"font_size"`
	Styles       []FontStyle `json:"styles"`
}

// Normalize recomputes the alias fields.
func (d *Definition) Normalize() {
	d.FontSize = d.Size
	d.Styles = []FontStyle{d.FontStyle}
}

// Validate checks that every attribute holds a usable value.
func (d Definition) Validate() error {
	if err := errors.ValidatePositive("size", d.Size); err != nil {
		return err
	}
	if err := errors.ValidatePositive("leading", d.Leading); err != nil {
		return err
	}
	if err := errors.ValidateHexColor(d.Color); err != nil {
		return err
	}
	if !validFontStyles[d.FontStyle] {
		return errors.Configuration("invalid font style %q", d.FontStyle)
	}
	if !validAligns[d.Align] {
		return errors.Configuration("invalid align %q", d.Align)
	}
	return nil
}

// RGB returns the color as 0-255 components. Invalid colors yield black.
func (d Definition) RGB() (r, g, b int) {
	if _, err := fmt.Sscanf(d.Color, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0
	}
	return r, g, b
}

// IsBold reports whether the weight is bold.
func (d Definition) IsBold() bool {
	return d.FontStyle == Bold || d.FontStyle == BoldItalic
}

// IsItalic reports whether the slant is italic.
func (d Definition) IsItalic() bool {
	return d.FontStyle == Italic || d.FontStyle == BoldItalic
}

var validFontStyles = map[FontStyle]bool{
	Normal:     true,
	Bold:       true,
	Italic:     true,
	BoldItalic: true,
}

var validAligns = map[Align]bool{
	AlignLeft:    true,
	AlignCenter:  true,
	AlignRight:   true,
	AlignJustify: true,
}
