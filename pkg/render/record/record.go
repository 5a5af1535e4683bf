// Package record implements an in-memory surface that keeps every drawing
// operation. Rendering yields a JSON transcript of the pages.
//
// The recorder is the reference backend: it applies the same pagination and
// repeat semantics as the PDF surface without any font machinery, which
// makes it the surface of choice for tests and for the json output format.
// The svg surface renders from a recorder's transcript.
package record

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/geometry"
	"github.com/matzehuels/folio/pkg/render"
	"github.com/matzehuels/folio/pkg/style"
)

// OpKind identifies a recorded operation.
type OpKind string

// Recorded operations.
const (
	OpBox        OpKind = "box"
	OpText       OpKind = "text"
	OpPageNumber OpKind = "page_number"
)

// Op is one drawing operation in margin box coordinates. For text, (X, Y)
// is the top-left corner of the line and Width the width of the box the
// line was drawn in.
type Op struct {
	Kind     OpKind            `json:"kind"`
	X        float64           `json:"x"`
	Y        float64           `json:"y"`
	Width    float64           `json:"width"`
	Height   float64           `json:"height,omitempty"`
	Text     string            `json:"text,omitempty"`
	Style    *style.Definition `json:"style,omitempty"`
	Repeated bool              `json:"repeated,omitempty"`
}

// Page holds the operations of one page in drawing order.
type Page struct {
	Index int  `json:"index"`
	Ops   []Op `json:"ops"`
}

// Texts returns the text of every text and page number operation.
func (p Page) Texts() []string {
	var out []string
	for _, op := range p.Ops {
		if op.Kind == OpText || op.Kind == OpPageNumber {
			out = append(out, op.Text)
		}
	}
	return out
}

// Transcript is the finished document.
type Transcript struct {
	Paper   geometry.Size    `json:"paper"`
	Margins geometry.Margins `json:"margins"`
	Bounds  geometry.Size    `json:"bounds"`
	Pages   []Page           `json:"pages"`
}

// Surface records drawing operations.
type Surface struct {
	paper   geometry.Size
	margins geometry.Margins
	bounds  geometry.Size

	pages     []Page
	current   int
	frames    *render.Frames
	repeaters []render.Repeater
	replaying bool

	transcript *Transcript
	err        error
}

var (
	_ render.Surface   = (*Surface)(nil)
	_ render.Paginator = (*Surface)(nil)
	_ render.Flow      = (*Surface)(nil)
)

// New creates a recorder for the paper size and margins.
func New(paper geometry.Size, margins geometry.Margins) (*Surface, error) {
	bounds, err := geometry.MarginBox(paper, margins)
	if err != nil {
		return nil, err
	}
	return &Surface{
		paper:   paper,
		margins: margins,
		bounds:  bounds,
		pages:   []Page{{Index: 0}},
		frames:  render.NewFrames(bounds),
	}, nil
}

// Factory creates recorders; it satisfies render.Factory.
func Factory(paper geometry.Size, margins geometry.Margins) (render.Surface, error) {
	return New(paper, margins)
}

// BoundingBox implements render.Surface.
func (s *Surface) BoundingBox(origin render.Point, width, height float64, body func()) {
	if !s.usable() {
		return
	}
	box := s.frames.Push(origin, width, height)
	defer s.frames.Pop()
	s.emit(Op{Kind: OpBox, X: box.Left(), Y: box.Top(), Width: box.Width, Height: box.Height})
	body()
}

// RepeatAcrossPages implements render.Surface. A repeat requested while
// repeaters are replaying runs immediately on the page being replayed.
func (s *Surface) RepeatAcrossPages(body func()) {
	if !s.usable() {
		return
	}
	if s.replaying {
		body()
		return
	}
	s.repeaters = append(s.repeaters, render.Repeater{Body: body, Frames: s.frames.Snapshot()})
}

// Bounds implements render.Surface.
func (s *Surface) Bounds() render.Size {
	box := s.frames.Current()
	return render.Size{Width: box.Width, Height: box.Height}
}

// DrawText implements render.Surface. Each line of text is one operation;
// a line that does not fit below the cursor starts a new page, except while
// repeaters replay.
func (s *Surface) DrawText(text string, attrs style.Definition) {
	if !s.usable() {
		return
	}
	lh := render.LineHeight(attrs)
	for _, line := range strings.Split(text, "\n") {
		if !s.frames.Fits(lh) && !s.replaying {
			s.StartNewPage()
		}
		box := s.frames.Current()
		a := attrs
		s.emit(Op{Kind: OpText, X: box.Left(), Y: s.frames.CursorY(), Width: box.Width, Height: lh, Text: line, Style: &a})
		s.frames.Advance(lh)
	}
}

// NumberPages implements render.Surface.
func (s *Surface) NumberPages(template string, opts render.NumberingOptions) {
	if !s.usable() {
		return
	}
	text := render.FormatPageNumber(template, s.current, len(s.pages), opts)
	attrs := opts.Style
	if opts.Align != "" {
		attrs.Align = opts.Align
	}
	box := s.frames.Current()
	s.emit(Op{Kind: OpPageNumber, X: box.Left(), Y: box.Top(), Width: box.Width, Height: render.LineHeight(attrs), Text: text, Style: &attrs})
}

// StartNewPage implements render.Paginator.
func (s *Surface) StartNewPage() {
	if !s.usable() {
		return
	}
	if s.replaying {
		s.err = errors.New(errors.ErrCodeRender, "page break inside repeated content")
		return
	}
	s.pages = append(s.pages, Page{Index: len(s.pages)})
	s.current = len(s.pages) - 1
	s.frames.ResetCursors()
}

// Cursor implements render.Flow.
func (s *Surface) Cursor() float64 { return s.frames.Cursor() }

// MoveDown implements render.Flow.
func (s *Surface) MoveDown(dy float64) { s.frames.Advance(dy) }

// Remaining implements render.Flow.
func (s *Surface) Remaining() float64 { return s.frames.Remaining() }

// PageCount implements render.Paginator.
func (s *Surface) PageCount() int { return len(s.pages) }

// Finish replays repeaters and returns the transcript. It may be called
// more than once; repeaters replay only the first time.
func (s *Surface) Finish() (*Transcript, error) {
	if s.transcript != nil || s.err != nil {
		return s.transcript, s.err
	}

	saved := s.frames
	s.replaying = true
	for _, rep := range s.repeaters {
		for i := range s.pages {
			s.current = i
			s.frames = rep.Frames.Snapshot()
			rep.Body()
		}
	}
	s.replaying = false
	s.frames = saved

	s.transcript = &Transcript{
		Paper:   s.paper,
		Margins: s.margins,
		Bounds:  s.bounds,
		Pages:   s.pages,
	}
	return s.transcript, s.err
}

// Render implements render.Surface and returns the transcript as JSON.
func (s *Surface) Render() ([]byte, error) {
	if s.transcript != nil {
		return nil, errors.New(errors.ErrCodeInternal, "surface already rendered")
	}
	t, err := s.Finish()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode transcript")
	}
	return data, nil
}

func (s *Surface) usable() bool {
	if s.transcript != nil && s.err == nil {
		s.err = errors.New(errors.ErrCodeInternal, "drawing on a rendered surface")
	}
	return s.err == nil
}

func (s *Surface) emit(op Op) {
	op.Repeated = s.replaying
	page := &s.pages[s.current]
	page.Ops = append(page.Ops, op)
}
