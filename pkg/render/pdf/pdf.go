// Package pdf renders documents as PDF using gofpdf.
//
// Text is set in the PDF core fonts (Helvetica by default) and translated to
// cp1252. Lines wrap at the width of the current bounding box; a line that
// does not fit below the cursor starts a new page. Repeaters replay on every
// page after the body has been laid out.
package pdf

import (
	"bytes"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/geometry"
	"github.com/matzehuels/folio/pkg/render"
	"github.com/matzehuels/folio/pkg/style"
)

// Option configures a PDF surface.
type Option func(*options)

type options struct {
	title      string
	author     string
	subject    string
	creator    string
	fontFamily string
	created    time.Time
	compress   bool
}

// WithTitle sets the document title metadata.
func WithTitle(title string) Option { return func(o *options) { o.title = title } }

// WithAuthor sets the document author metadata.
func WithAuthor(author string) Option { return func(o *options) { o.author = author } }

// WithSubject sets the document subject metadata.
func WithSubject(subject string) Option { return func(o *options) { o.subject = subject } }

// WithCreator sets the creating application metadata.
func WithCreator(creator string) Option { return func(o *options) { o.creator = creator } }

// WithFontFamily selects a core font family (helvetica, times or courier).
func WithFontFamily(family string) Option { return func(o *options) { o.fontFamily = family } }

// WithCreationDate fixes the creation date, making output reproducible.
func WithCreationDate(t time.Time) Option { return func(o *options) { o.created = t } }

// WithoutCompression disables stream compression.
func WithoutCompression() Option { return func(o *options) { o.compress = false } }

// Surface draws on a gofpdf document.
type Surface struct {
	pdf       *gofpdf.Fpdf
	paper     geometry.Size
	margins   geometry.Margins
	bounds    geometry.Size
	family    string
	translate func(string) string

	frames    *render.Frames
	repeaters []render.Repeater
	replaying bool
	rendered  bool
	err       error
}

var (
	_ render.Surface   = (*Surface)(nil)
	_ render.Paginator = (*Surface)(nil)
	_ render.Flow      = (*Surface)(nil)
)

// New creates a PDF surface with one empty page.
func New(paper geometry.Size, margins geometry.Margins, opts ...Option) (*Surface, error) {
	bounds, err := geometry.MarginBox(paper, margins)
	if err != nil {
		return nil, err
	}
	o := options{fontFamily: "Helvetica", compress: true}
	for _, opt := range opts {
		opt(&o)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: paper.Width, Ht: paper.Height},
	})
	pdf.SetMargins(margins.Left, margins.Top, margins.Right)
	pdf.SetAutoPageBreak(false, margins.Bottom)
	pdf.SetCompression(o.compress)
	pdf.SetCatalogSort(true)
	if !o.created.IsZero() {
		pdf.SetCreationDate(o.created)
	}
	if o.title != "" {
		pdf.SetTitle(o.title, true)
	}
	if o.author != "" {
		pdf.SetAuthor(o.author, true)
	}
	if o.subject != "" {
		pdf.SetSubject(o.subject, true)
	}
	if o.creator != "" {
		pdf.SetCreator(o.creator, true)
	}
	pdf.AddPage()

	if pdf.Err() {
		return nil, errors.Wrap(errors.ErrCodeRender, pdf.Error(), "initialize pdf")
	}
	return &Surface{
		pdf:       pdf,
		paper:     paper,
		margins:   margins,
		bounds:    bounds,
		family:    o.fontFamily,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
		frames:    render.NewFrames(bounds),
	}, nil
}

// Factory returns a render.Factory producing PDF surfaces.
func Factory(opts ...Option) render.Factory {
	return func(paper geometry.Size, margins geometry.Margins) (render.Surface, error) {
		return New(paper, margins, opts...)
	}
}

// BoundingBox implements render.Surface.
func (s *Surface) BoundingBox(origin render.Point, width, height float64, body func()) {
	if !s.usable() {
		return
	}
	s.frames.Push(origin, width, height)
	defer s.frames.Pop()
	body()
}

// RepeatAcrossPages implements render.Surface.
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

// DrawText implements render.Surface.
func (s *Surface) DrawText(text string, attrs style.Definition) {
	if !s.usable() {
		return
	}
	s.setFont(attrs)
	lh := render.LineHeight(attrs)
	box := s.frames.Current()

	for _, para := range strings.Split(text, "\n") {
		lines := s.pdf.SplitLines([]byte(s.translate(para)), box.Width)
		if len(lines) == 0 {
			lines = [][]byte{nil}
		}
		for _, line := range lines {
			if !s.frames.Fits(lh) && !s.replaying {
				s.StartNewPage()
				s.setFont(attrs)
			}
			s.pdf.SetXY(s.x(box.Left()), s.y(s.frames.CursorY()))
			s.pdf.CellFormat(box.Width, lh, string(line), "", 0, alignStr(attrs.Align), false, 0, "")
			s.frames.Advance(lh)
		}
	}
}

// NumberPages implements render.Surface.
func (s *Surface) NumberPages(template string, opts render.NumberingOptions) {
	if !s.usable() {
		return
	}
	attrs := opts.Style
	if opts.Align != "" {
		attrs.Align = opts.Align
	}
	text := render.FormatPageNumber(template, s.pdf.PageNo()-1, s.pdf.PageCount(), opts)

	s.setFont(attrs)
	box := s.frames.Current()
	s.pdf.SetXY(s.x(box.Left()), s.y(box.Top()))
	s.pdf.CellFormat(box.Width, render.LineHeight(attrs), s.translate(text), "", 0, alignStr(attrs.Align), false, 0, "")
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
	s.pdf.AddPage()
	s.frames.ResetCursors()
}

// Cursor implements render.Flow.
func (s *Surface) Cursor() float64 { return s.frames.Cursor() }

// MoveDown implements render.Flow.
func (s *Surface) MoveDown(dy float64) { s.frames.Advance(dy) }

// Remaining implements render.Flow.
func (s *Surface) Remaining() float64 { return s.frames.Remaining() }

// PageCount implements render.Paginator.
func (s *Surface) PageCount() int { return s.pdf.PageCount() }

// Render implements render.Surface.
func (s *Surface) Render() ([]byte, error) {
	if s.rendered {
		return nil, errors.New(errors.ErrCodeInternal, "surface already rendered")
	}
	if s.err != nil {
		return nil, s.err
	}

	n := s.pdf.PageCount()
	saved := s.frames
	s.replaying = true
	for _, rep := range s.repeaters {
		for page := 1; page <= n; page++ {
			s.pdf.SetPage(page)
			s.frames = rep.Frames.Snapshot()
			rep.Body()
		}
	}
	s.replaying = false
	s.frames = saved
	s.pdf.SetPage(n)
	s.rendered = true

	if s.err != nil {
		return nil, s.err
	}
	if s.pdf.Err() {
		return nil, errors.Wrap(errors.ErrCodeRender, s.pdf.Error(), "render pdf")
	}
	var buf bytes.Buffer
	if err := s.pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "write pdf")
	}
	return buf.Bytes(), nil
}

func (s *Surface) usable() bool {
	if s.rendered && s.err == nil {
		s.err = errors.New(errors.ErrCodeInternal, "drawing on a rendered surface")
	}
	return s.err == nil
}

func (s *Surface) setFont(attrs style.Definition) {
	s.pdf.SetFont(s.family, fontStyleStr(attrs), attrs.Size)
	r, g, b := attrs.RGB()
	s.pdf.SetTextColor(r, g, b)
}

// x and y convert margin box coordinates (y up) to gofpdf page coordinates
// (y down from the paper edge).
func (s *Surface) x(x float64) float64 { return s.margins.Left + x }
func (s *Surface) y(y float64) float64 { return s.paper.Height - s.margins.Bottom - y }

func fontStyleStr(attrs style.Definition) string {
	var b strings.Builder
	if attrs.IsBold() {
		b.WriteString("B")
	}
	if attrs.IsItalic() {
		b.WriteString("I")
	}
	return b.String()
}

func alignStr(a style.Align) string {
	switch a {
	case style.AlignCenter:
		return "C"
	case style.AlignRight:
		return "R"
	default:
		return "L"
	}
}
