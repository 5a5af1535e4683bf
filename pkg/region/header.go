package region

import (
	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/geometry"
	"github.com/matzehuels/folio/pkg/render"
)

// Header is a single box anchored at the top of the page.
type Header struct {
	frame
	opts config.Header
}

// NewHeader creates the header for the surface's margin box.
func NewHeader(s render.Surface, opts config.Header) (*Header, error) {
	if err := requireSurface(s, KindHeader); err != nil {
		return nil, err
	}
	if err := errors.ValidateNonNegative("header.height", opts.Height); err != nil {
		return nil, err
	}
	return &Header{
		frame: frame{
			kind:     KindHeader,
			surface:  s,
			box:      geometry.HeaderBox(s.Bounds(), opts.Height),
			repeated: opts.Repeated,
		},
		opts: opts,
	}, nil
}

// Draw implements Region.
func (h *Header) Draw(content ContentFunc) error {
	return h.draw(func() {
		h.boundingBox(func() {
			if content != nil {
				content(Scope{Kind: KindHeader, Box: h.box})
			}
		})
	})
}
