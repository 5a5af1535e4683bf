package region

import (
	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/geometry"
	"github.com/matzehuels/folio/pkg/render"
)

// Body spans the page between header and footer. Its Top and Height must
// already be set from geometry.ComputeBodyBounds.
type Body struct {
	frame
	opts config.Body
}

// NewBody creates the body region.
func NewBody(s render.Surface, opts config.Body) (*Body, error) {
	if err := requireSurface(s, KindBody); err != nil {
		return nil, err
	}
	if err := errors.ValidateNonNegative("body.height", opts.Height); err != nil {
		return nil, err
	}
	bounds := geometry.BodyBounds{Top: opts.Top, Height: opts.Height}
	return &Body{
		frame: frame{
			kind:     KindBody,
			surface:  s,
			box:      geometry.BodyBox(s.Bounds(), bounds),
			repeated: opts.Repeated,
		},
		opts: opts,
	}, nil
}

// Draw implements Region.
func (b *Body) Draw(content ContentFunc) error {
	return b.draw(func() {
		b.boundingBox(func() {
			if content != nil {
				content(Scope{Kind: KindBody, Box: b.box})
			}
		})
	})
}
