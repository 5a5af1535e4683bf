package render

import (
	"strconv"
	"strings"

	"github.com/matzehuels/folio/pkg/geometry"
	"github.com/matzehuels/folio/pkg/style"
)

// Point is a position relative to the current bounding box.
type Point = geometry.Point

// Size is the width and height of a bounding box.
type Size = geometry.Size

// Surface is a paged drawing backend.
type Surface interface {
	// BoundingBox runs body with a new box positioned at origin (its
	// top-left corner, relative to the current box).
	BoundingBox(origin Point, width, height float64, body func())
	// RepeatAcrossPages replays body on every page when the document is
	// rendered.
	RepeatAcrossPages(body func())
	// Bounds returns the size of the current box.
	Bounds() Size
	// DrawText writes text at the cursor of the current box.
	DrawText(text string, attrs style.Definition)
	// NumberPages stamps the page number of the current page.
	NumberPages(template string, opts NumberingOptions)
	// Render finalizes the document. A surface renders once.
	Render() ([]byte, error)
}

// Paginator is implemented by surfaces that expose explicit page control.
type Paginator interface {
	StartNewPage()
	PageCount() int
}

// Flow is implemented by surfaces that expose the text cursor of the
// current bounding box.
type Flow interface {
	// Cursor returns the distance of the cursor below the top of the box.
	Cursor() float64
	// MoveDown advances the cursor.
	MoveDown(dy float64)
	// Remaining returns the space left below the cursor.
	Remaining() float64
}

// Factory creates a surface for a paper size and margins.
type Factory func(paper geometry.Size, margins geometry.Margins) (Surface, error)

// Placeholders expanded by FormatPageNumber.
const (
	PagePlaceholder  = "<page>"
	TotalPlaceholder = "<total>"
)

// NumberingOptions controls page number stamping.
type NumberingOptions struct {
	Align        style.Align
	StartCountAt int
	Style        style.Definition
}

// FormatPageNumber expands the numbering template for the zero-based page
// index out of total pages.
func FormatPageNumber(template string, index, total int, opts NumberingOptions) string {
	shown := opts.StartCountAt + index
	r := strings.NewReplacer(
		PagePlaceholder, strconv.Itoa(shown),
		TotalPlaceholder, strconv.Itoa(total),
	)
	return r.Replace(template)
}

// LineHeight returns the vertical advance of one line of text.
func LineHeight(attrs style.Definition) float64 {
	return attrs.Size*lineFactor + attrs.Leading
}

const lineFactor = 1.15
