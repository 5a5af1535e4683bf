package pdf

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/geometry"
	"github.com/matzehuels/folio/pkg/render"
	"github.com/matzehuels/folio/pkg/style"
)

var (
	a4      = geometry.Size{Width: 595.28, Height: 841.89}
	margins = geometry.Margins{Top: 36, Right: 54, Bottom: 36, Left: 54}
	body    = style.Definition{Size: 10, Leading: 1, FontStyle: style.Normal, Align: style.AlignLeft, Color: "000000"}
)

func newSurface(t *testing.T, opts ...Option) *Surface {
	t.Helper()
	opts = append([]Option{WithoutCompression(), WithCreationDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))}, opts...)
	s, err := New(a4, margins, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestRenderProducesPDF(t *testing.T) {
	s := newSurface(t, WithTitle("Report"))
	s.DrawText("Hello, world", body)

	out, err := s.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", out[:8])
	}
	if !bytes.Contains(out, []byte("Hello, world")) {
		t.Error("uncompressed output should contain the text")
	}
}

func TestTextPaginates(t *testing.T) {
	s := newSurface(t)
	s.BoundingBox(render.Point{X: 0, Y: 300}, 487, 100, func() {
		for i := 0; i < 30; i++ {
			s.DrawText(fmt.Sprintf("line %d", i), body)
		}
	})
	if s.PageCount() < 3 {
		t.Errorf("PageCount = %d, want at least 3", s.PageCount())
	}
	if _, err := s.Render(); err != nil {
		t.Fatal(err)
	}
}

func TestRepeatedPageNumbers(t *testing.T) {
	s := newSurface(t)
	s.DrawText("one", body)
	s.StartNewPage()
	s.DrawText("two", body)

	calls := 0
	s.BoundingBox(render.Point{X: 0, Y: 33}, 487, 33, func() {
		s.RepeatAcrossPages(func() {
			calls++
			s.NumberPages("<page> / <total>", render.NumberingOptions{Align: style.AlignRight, StartCountAt: 1, Style: body})
		})
	})

	out, err := s.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if calls != 2 {
		t.Errorf("repeater ran %d times, want 2", calls)
	}
	for _, want := range []string{"(1 / 2)", "(2 / 2)"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("output missing %s", want)
		}
	}
}

func TestPageBreakInRepeaterFails(t *testing.T) {
	s := newSurface(t)
	s.RepeatAcrossPages(func() { s.StartNewPage() })
	if _, err := s.Render(); !errors.Is(err, errors.ErrCodeRender) {
		t.Errorf("err = %v, want RENDER", err)
	}
}

func TestRenderOnce(t *testing.T) {
	s := newSurface(t)
	if _, err := s.Render(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Render(); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("err = %v, want INTERNAL", err)
	}
}

func TestFontStyleStr(t *testing.T) {
	tests := map[style.FontStyle]string{
		style.Normal:     "",
		style.Bold:       "B",
		style.Italic:     "I",
		style.BoldItalic: "BI",
	}
	for fs, want := range tests {
		if got := fontStyleStr(style.Definition{FontStyle: fs}); got != want {
			t.Errorf("fontStyleStr(%s) = %q, want %q", fs, got, want)
		}
	}
}

func TestAlignStr(t *testing.T) {
	tests := map[style.Align]string{
		style.AlignLeft:    "L",
		style.AlignCenter:  "C",
		style.AlignRight:   "R",
		style.AlignJustify: "L",
	}
	for a, want := range tests {
		if got := alignStr(a); got != want {
			t.Errorf("alignStr(%s) = %q, want %q", a, got, want)
		}
	}
}
