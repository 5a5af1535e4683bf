package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/folio/pkg/errors"
)

func TestComputeBodyBounds(t *testing.T) {
	page := PageBounds{Width: 500, Height: 840}

	tests := []struct {
		name   string
		header HeaderSpace
		footer FooterSpace
		want   BodyBounds
	}{
		{
			name:   "defaults",
			header: HeaderSpace{Render: true, Height: 33, BottomPadding: 20},
			footer: FooterSpace{Render: true, Height: 33, TopPadding: 20},
			want:   BodyBounds{Top: 787, Height: 734},
		},
		{
			name:   "header off",
			header: HeaderSpace{Render: false, Height: 33, BottomPadding: 20},
			footer: FooterSpace{Render: true, Height: 33, TopPadding: 20},
			want:   BodyBounds{Top: 840, Height: 787},
		},
		{
			name:   "footer off",
			header: HeaderSpace{Render: true, Height: 33, BottomPadding: 20},
			footer: FooterSpace{Render: false, Height: 33, TopPadding: 20},
			want:   BodyBounds{Top: 787, Height: 787},
		},
		{
			name: "both off",
			want: BodyBounds{Top: 840, Height: 840},
		},
		{
			name:   "exactly full",
			header: HeaderSpace{Render: true, Height: 400, BottomPadding: 20},
			footer: FooterSpace{Render: true, Height: 400, TopPadding: 20},
			want:   BodyBounds{Top: 420, Height: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeBodyBounds(page, tt.header, tt.footer)
			if err != nil {
				t.Fatalf("ComputeBodyBounds: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReservedIsZeroWhenNotRendered(t *testing.T) {
	h := HeaderSpace{Height: 99, BottomPadding: 99}
	f := FooterSpace{Height: 99, TopPadding: 99}
	if h.Reserved() != 0 || f.Reserved() != 0 {
		t.Errorf("reserved = %v/%v, want 0/0", h.Reserved(), f.Reserved())
	}
	h.Render, f.Render = true, true
	if h.Reserved() != 198 || f.Reserved() != 198 {
		t.Errorf("reserved = %v/%v, want 198/198", h.Reserved(), f.Reserved())
	}
}

func TestComputeBodyBoundsErrors(t *testing.T) {
	tests := []struct {
		name   string
		page   PageBounds
		header HeaderSpace
		footer FooterSpace
	}{
		{
			name:   "overflow",
			page:   PageBounds{Width: 500, Height: 100},
			header: HeaderSpace{Render: true, Height: 60, BottomPadding: 0},
			footer: FooterSpace{Render: true, Height: 60, TopPadding: 0},
		},
		{
			name: "zero page",
			page: PageBounds{Width: 500},
		},
		{
			name:   "negative padding",
			page:   PageBounds{Width: 500, Height: 800},
			header: HeaderSpace{Render: true, Height: 10, BottomPadding: -5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeBodyBounds(tt.page, tt.header, tt.footer)
			if !errors.Is(err, errors.ErrCodeConfiguration) {
				t.Errorf("err = %v, want CONFIGURATION", err)
			}
		})
	}
}

func TestRegionBoxes(t *testing.T) {
	page := PageBounds{Width: 500, Height: 840}
	body := BodyBounds{Top: 787, Height: 734}

	header := HeaderBox(page, 33)
	if diff := cmp.Diff(Box{Origin: Point{0, 840}, Width: 500, Height: 33}, header); diff != "" {
		t.Errorf("header box (-want +got):\n%s", diff)
	}
	bodyBox := BodyBox(page, body)
	if bodyBox.Top() != 787 || bodyBox.Bottom() != 53 {
		t.Errorf("body spans %v..%v, want 53..787", bodyBox.Bottom(), bodyBox.Top())
	}
	footer := FooterBox(page, 33)
	if footer.Bottom() != 0 || footer.Top() != 33 {
		t.Errorf("footer spans %v..%v, want 0..33", footer.Bottom(), footer.Top())
	}

	pageBox := Box{Origin: Point{0, page.Height}, Width: page.Width, Height: page.Height}
	for name, b := range map[string]Box{"header": header, "body": bodyBox, "footer": footer} {
		if !pageBox.Contains(b) {
			t.Errorf("%s box %+v is outside the page", name, b)
		}
	}
	if header.Bottom() < bodyBox.Top() || footer.Top() > bodyBox.Bottom() {
		t.Error("region boxes overlap")
	}
}

func TestFooterColumns(t *testing.T) {
	footer := FooterBox(PageBounds{Width: 1000, Height: 800}, 40)
	left, center, right := FooterColumns(footer)

	tests := []struct {
		name    string
		box     Box
		x, w    float64
		wantTop float64
	}{
		{"left", left, 0, 150, 40},
		{"center", center, 150, 700, 40},
		{"right", right, 850, 150, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.box.Origin.X != tt.x || tt.box.Width != tt.w {
				t.Errorf("x=%v w=%v, want x=%v w=%v", tt.box.Origin.X, tt.box.Width, tt.x, tt.w)
			}
			if tt.box.Top() != tt.wantTop || tt.box.Height != 40 {
				t.Errorf("top=%v h=%v", tt.box.Top(), tt.box.Height)
			}
		})
	}
	if got := left.Width + center.Width + right.Width; got != footer.Width {
		t.Errorf("columns cover %v, want %v", got, footer.Width)
	}
}

func TestPageSize(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		layout string
		want   Size
	}{
		{"default", nil, "", Size{595.28, 841.89}},
		{"a4 portrait", "A4", "portrait", Size{595.28, 841.89}},
		{"lowercase landscape", "letter", "Landscape", Size{792, 612}},
		{"pair any", []any{int64(400), 600.5}, "portrait", Size{400, 600.5}},
		{"pair floats landscape", []float64{400, 600}, "landscape", Size{600, 400}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PageSize(tt.value, tt.layout)
			if err != nil {
				t.Fatalf("PageSize: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPageSizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		layout string
	}{
		{"unknown name", "A9", "portrait"},
		{"bad layout", "A4", "sideways"},
		{"three dims", []any{1, 2, 3}, ""},
		{"negative", []any{-1, 2}, ""},
		{"wrong type", 42, ""},
		{"non-numeric pair", []any{"a", "b"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PageSize(tt.value, tt.layout); !errors.Is(err, errors.ErrCodeConfiguration) {
				t.Errorf("err = %v, want CONFIGURATION", err)
			}
		})
	}
}

func TestMarginBox(t *testing.T) {
	got, err := MarginBox(Size{595.28, 841.89}, Margins{Top: 36, Right: 54, Bottom: 36, Left: 54})
	if err != nil {
		t.Fatal(err)
	}
	paper := Size{595.28, 841.89}
	want := PageBounds{Width: paper.Width - 54 - 54, Height: paper.Height - 36 - 36}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if _, err := MarginBox(Size{100, 100}, Margins{Left: 60, Right: 60}); err == nil {
		t.Error("expected error for margins wider than the page")
	}
}

func TestPaperNamesSorted(t *testing.T) {
	names := PaperNames()
	if len(names) != 14 || names[0] != "A0" {
		t.Errorf("PaperNames() = %v", names)
	}
}
