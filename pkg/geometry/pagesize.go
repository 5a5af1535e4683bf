package geometry

import (
	"sort"
	"strings"

	"github.com/matzehuels/folio/pkg/errors"
)

// Page layouts.
const (
	Portrait  = "portrait"
	Landscape = "landscape"
)

// paperSizes holds portrait dimensions in points.
var paperSizes = map[string]Size{
	"A0":        {2383.94, 3370.39},
	"A1":        {1683.78, 2383.94},
	"A2":        {1190.55, 1683.78},
	"A3":        {841.89, 1190.55},
	"A4":        {595.28, 841.89},
	"A5":        {419.53, 595.28},
	"A6":        {297.64, 419.53},
	"B4":        {708.66, 1000.63},
	"B5":        {498.90, 708.66},
	"LETTER":    {612.00, 792.00},
	"LEGAL":     {612.00, 1008.00},
	"TABLOID":   {792.00, 1224.00},
	"EXECUTIVE": {521.86, 756.00},
	"FOLIO":     {612.00, 936.00},
}

// PaperNames returns the supported named sizes in sorted order.
func PaperNames() []string {
	names := make([]string, 0, len(paperSizes))
	for name := range paperSizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PageSize resolves a page_size value and a page_layout into paper
// dimensions. The value is either a paper name or a [width, height] pair.
func PageSize(value any, layout string) (Size, error) {
	size, err := parseSize(value)
	if err != nil {
		return Size{}, err
	}
	switch strings.ToLower(layout) {
	case "", Portrait:
		return size, nil
	case Landscape:
		return Size{Width: size.Height, Height: size.Width}, nil
	default:
		return Size{}, errors.Configuration("page_layout must be %q or %q, got %q", Portrait, Landscape, layout)
	}
}

func parseSize(value any) (Size, error) {
	switch v := value.(type) {
	case nil:
		return paperSizes["A4"], nil
	case string:
		size, ok := paperSizes[strings.ToUpper(v)]
		if !ok {
			return Size{}, errors.Configuration("unknown page_size %q (known: %s)", v, strings.Join(PaperNames(), ", "))
		}
		return size, nil
	case []float64:
		return pairSize(len(v), func(i int) (float64, bool) { return v[i], true })
	case []any:
		return pairSize(len(v), func(i int) (float64, bool) { return number(v[i]) })
	default:
		return Size{}, errors.Configuration("page_size must be a name or [width, height], got %T", value)
	}
}

func pairSize(n int, at func(int) (float64, bool)) (Size, error) {
	if n != 2 {
		return Size{}, errors.Configuration("page_size must have exactly two dimensions, got %d", n)
	}
	w, okW := at(0)
	h, okH := at(1)
	if !okW || !okH || w <= 0 || h <= 0 {
		return Size{}, errors.Configuration("page_size dimensions must be positive numbers")
	}
	return Size{Width: w, Height: h}, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Margins are the distances between the paper edge and the margin box.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// MarginBox returns the page bounds left after removing the margins.
func MarginBox(paper Size, m Margins) (PageBounds, error) {
	w := paper.Width - m.Left - m.Right
	h := paper.Height - m.Top - m.Bottom
	if w <= 0 || h <= 0 {
		return PageBounds{}, errors.Configuration("margins leave no room on a %gx%g page", paper.Width, paper.Height)
	}
	return PageBounds{Width: w, Height: h}, nil
}
