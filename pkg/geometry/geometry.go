package geometry

import (
	"github.com/matzehuels/folio/pkg/errors"
)

// Point is a position in the margin box.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width and height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PageBounds is the margin box the surface reports.
type PageBounds = Size

// HeaderSpace is the part of the header settings that reserves space.
type HeaderSpace struct {
	Render        bool
	Height        float64
	BottomPadding float64
}

// Reserved returns the vertical space the header takes from the body. A
// header that is not rendered reserves nothing.
func (h HeaderSpace) Reserved() float64 {
	if !h.Render {
		return 0
	}
	return h.Height + h.BottomPadding
}

// FooterSpace is the part of the footer settings that reserves space.
type FooterSpace struct {
	Render     bool
	Height     float64
	TopPadding float64
}

// Reserved returns the vertical space the footer takes from the body.
func (f FooterSpace) Reserved() float64 {
	if !f.Render {
		return 0
	}
	return f.Height + f.TopPadding
}

// BodyBounds locates the body: Top is measured from the bottom of the margin
// box, Height extends downwards from Top.
type BodyBounds struct {
	Top    float64
	Height float64
}

// ComputeBodyBounds returns the body's top offset and height. Reserved
// heights that do not fit on the page are a configuration error.
func ComputeBodyBounds(page PageBounds, header HeaderSpace, footer FooterSpace) (BodyBounds, error) {
	if err := errors.ValidatePositive("page height", page.Height); err != nil {
		return BodyBounds{}, err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"header.height", header.Height},
		{"header.bottom_padding", header.BottomPadding},
		{"footer.height", footer.Height},
		{"footer.top_padding", footer.TopPadding},
	} {
		if err := errors.ValidateNonNegative(f.name, f.v); err != nil {
			return BodyBounds{}, err
		}
	}

	top := page.Height - header.Reserved()
	height := top - footer.Reserved()
	if height < 0 {
		return BodyBounds{}, errors.Configuration(
			"header (%g) and footer (%g) reserve more than the page height (%g)",
			header.Reserved(), footer.Reserved(), page.Height)
	}
	return BodyBounds{Top: top, Height: height}, nil
}
