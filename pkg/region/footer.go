package region

import (
	"math"

	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/geometry"
	"github.com/matzehuels/folio/pkg/render"
	"github.com/matzehuels/folio/pkg/style"
)

// FooterStyle names the style footer.style defaults to.
const FooterStyle = "footer"

// Footer is anchored at the bottom of the page and split into a spacer, a
// content column and a page number column.
type Footer struct {
	frame
	opts      config.Footer
	style     style.Definition
	numbering render.NumberingOptions
}

// NewFooter creates the footer. base is the style that footer.style and
// numbering_options are applied over.
func NewFooter(s render.Surface, opts config.Footer, base style.Definition) (*Footer, error) {
	if err := requireSurface(s, KindFooter); err != nil {
		return nil, err
	}
	if err := errors.ValidateNonNegative("footer.height", opts.Height); err != nil {
		return nil, err
	}

	st, err := style.FromTree(base, config.Tree(opts.Style))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "footer.style")
	}
	numbering, err := numberingOptions(base, opts)
	if err != nil {
		return nil, err
	}

	return &Footer{
		frame: frame{
			kind:     KindFooter,
			surface:  s,
			box:      geometry.FooterBox(s.Bounds(), opts.Height),
			repeated: opts.Repeated,
		},
		opts:      opts,
		style:     st,
		numbering: numbering,
	}, nil
}

// Style returns the style injected into the content column.
func (f *Footer) Style() style.Definition { return f.style }

// Numbering returns the options used to stamp page numbers.
func (f *Footer) Numbering() render.NumberingOptions { return f.numbering }

// Draw implements Region. Page numbers are stamped on every page even when
// the footer content is drawn once.
func (f *Footer) Draw(content ContentFunc) error {
	err := f.draw(func() {
		f.boundingBox(func() {
			left, center, right := geometry.FooterColumns(f.box)
			f.column(left, func() {})
			f.column(center, func() {
				if content != nil {
					st := f.style
					content(Scope{Kind: KindFooter, Box: absolute(f.box, center), Style: &st})
				}
			})
			f.column(right, func() {
				if f.repeated {
					f.stampNumber()
				}
			})
		})
	})
	if err != nil {
		return err
	}
	if !f.repeated && f.opts.NumberPages {
		f.surface.RepeatAcrossPages(func() {
			f.boundingBox(func() {
				_, _, right := geometry.FooterColumns(f.box)
				f.column(right, f.stampNumber)
			})
		})
	}
	return nil
}

func (f *Footer) stampNumber() {
	if f.opts.NumberPages {
		f.surface.NumberPages(f.opts.NumberingString, f.numbering)
	}
}

func (f *Footer) column(b geometry.Box, body func()) {
	f.surface.BoundingBox(b.Origin, b.Width, b.Height, body)
}

// NumberingTree returns footer.style overlaid with footer.numbering_options.
func NumberingTree(opts config.Footer) config.Tree {
	out := config.Tree{}
	for k, v := range config.CanonicalStyle(opts.Style) {
		out[k] = v
	}
	for k, v := range config.CanonicalStyle(opts.NumberingOptions) {
		out[k] = v
	}
	return out
}

func numberingOptions(base style.Definition, opts config.Footer) (render.NumberingOptions, error) {
	tree := NumberingTree(opts)
	st, err := style.FromTree(base, tree)
	if err != nil {
		return render.NumberingOptions{}, errors.Wrap(errors.ErrCodeConfiguration, err, "footer.numbering_options")
	}
	start := config.DefaultStartCountAt
	if v, ok := tree.Float("start_count_at"); ok {
		if v != math.Trunc(v) {
			return render.NumberingOptions{}, errors.Configuration("footer.numbering_options.start_count_at must be a whole number, got %v", v)
		}
		start = int(v)
	}
	return render.NumberingOptions{Align: st.Align, StartCountAt: start, Style: st}, nil
}

// absolute converts a column box relative to the footer into margin box
// coordinates.
func absolute(footer, col geometry.Box) geometry.Box {
	col.Origin.X += footer.Left()
	col.Origin.Y += footer.Bottom()
	return col
}
