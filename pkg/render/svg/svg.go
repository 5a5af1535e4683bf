// Package svg renders documents as SVG.
//
// The surface records drawing operations with the recorder from package
// record and encodes the finished transcript: one nested <svg> per page,
// stacked vertically inside a wrapping document. [EncodePage] produces a
// standalone page, which is what PNG conversion consumes.
package svg

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"

	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/geometry"
	"github.com/matzehuels/folio/pkg/render"
	"github.com/matzehuels/folio/pkg/render/record"
	"github.com/matzehuels/folio/pkg/style"
)

// Option configures SVG output.
type Option func(*encoder)

type encoder struct {
	fontFamily string
	background string
	gap        float64
}

// WithFontFamily sets the CSS font family of all text.
func WithFontFamily(family string) Option { return func(e *encoder) { e.fontFamily = family } }

// WithBackground sets the page fill color (6 digit hex).
func WithBackground(color string) Option { return func(e *encoder) { e.background = color } }

// WithPageGap sets the vertical gap between stacked pages.
func WithPageGap(gap float64) Option { return func(e *encoder) { e.gap = gap } }

func newEncoder(opts ...Option) encoder {
	e := encoder{fontFamily: "Helvetica, Arial, sans-serif", background: "ffffff", gap: 16}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Surface is a recorder whose Render produces SVG.
type Surface struct {
	*record.Surface
	enc      encoder
	rendered bool
}

var _ render.Surface = (*Surface)(nil)

// New creates an SVG surface.
func New(paper geometry.Size, margins geometry.Margins, opts ...Option) (*Surface, error) {
	rec, err := record.New(paper, margins)
	if err != nil {
		return nil, err
	}
	return &Surface{Surface: rec, enc: newEncoder(opts...)}, nil
}

// Factory returns a render.Factory producing SVG surfaces.
func Factory(opts ...Option) render.Factory {
	return func(paper geometry.Size, margins geometry.Margins) (render.Surface, error) {
		return New(paper, margins, opts...)
	}
}

// Render implements render.Surface.
func (s *Surface) Render() ([]byte, error) {
	if s.rendered {
		return nil, errors.New(errors.ErrCodeInternal, "surface already rendered")
	}
	s.rendered = true
	t, err := s.Finish()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	s.enc.document(&buf, t)
	return buf.Bytes(), nil
}

// Encode renders a finished transcript as one SVG document.
func Encode(t *record.Transcript, opts ...Option) []byte {
	var buf bytes.Buffer
	newEncoder(opts...).document(&buf, t)
	return buf.Bytes()
}

// EncodePage renders one page of a transcript as a standalone SVG.
func EncodePage(t *record.Transcript, index int, opts ...Option) ([]byte, error) {
	if index < 0 || index >= len(t.Pages) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "page %d out of range (document has %d pages)", index+1, len(t.Pages))
	}
	e := newEncoder(opts...)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		t.Paper.Width, t.Paper.Height, t.Paper.Width, t.Paper.Height)
	e.page(&buf, t, t.Pages[index])
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func (e encoder) document(w io.Writer, t *record.Transcript) {
	n := float64(len(t.Pages))
	total := t.Paper.Height*n + e.gap*(n-1)
	if n == 0 {
		total = 0
	}
	fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		t.Paper.Width, total, t.Paper.Width, total)
	for i, p := range t.Pages {
		y := float64(i) * (t.Paper.Height + e.gap)
		fmt.Fprintf(w, `  <svg id="page-%d" x="0" y="%.2f" width="%.2f" height="%.2f" viewBox="0 0 %.2f %.2f">`+"\n",
			i+1, y, t.Paper.Width, t.Paper.Height, t.Paper.Width, t.Paper.Height)
		e.page(w, t, p)
		fmt.Fprintln(w, `  </svg>`)
	}
	fmt.Fprintln(w, `</svg>`)
}

func (e encoder) page(w io.Writer, t *record.Transcript, p record.Page) {
	fmt.Fprintf(w, `    <rect x="0" y="0" width="%.2f" height="%.2f" fill="#%s"/>`+"\n",
		t.Paper.Width, t.Paper.Height, e.background)
	for _, op := range p.Ops {
		if op.Kind == record.OpBox || op.Style == nil {
			continue
		}
		e.text(w, t, op)
	}
}

func (e encoder) text(w io.Writer, t *record.Transcript, op record.Op) {
	d := *op.Style
	x, anchor := anchorFor(op, d.Align)
	x += t.Margins.Left
	// Op coordinates are y-up from the bottom margin; SVG is y-down from the
	// paper edge. Y is the line's top, the baseline sits one size below.
	y := t.Paper.Height - (t.Margins.Bottom + op.Y) + d.Size

	weight, slant := "normal", "normal"
	if d.IsBold() {
		weight = "bold"
	}
	if d.IsItalic() {
		slant = "italic"
	}
	fmt.Fprintf(w, `    <text x="%.2f" y="%.2f" text-anchor="%s" font-family="%s" font-size="%.2f" font-weight="%s" font-style="%s" fill="#%s">%s</text>`+"\n",
		x, y, anchor, html.EscapeString(e.fontFamily), d.Size, weight, slant, d.Color, html.EscapeString(op.Text))
}

func anchorFor(op record.Op, align style.Align) (float64, string) {
	switch align {
	case style.AlignCenter:
		return op.X + op.Width/2, "middle"
	case style.AlignRight:
		return op.X + op.Width, "end"
	default:
		return op.X, "start"
	}
}
