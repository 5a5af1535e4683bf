package style

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/errors"
)

func TestDefinitionTreeRoundTrip(t *testing.T) {
	c := MustDefault()
	footer, err := c.Resolve("footer")
	if err != nil {
		t.Fatal(err)
	}

	tree := footer.Tree()
	if tree["size"] != footer.Size || tree["color"] != "666666" || tree["align"] != "center" {
		t.Errorf("Tree() = %v", tree)
	}
	for _, alias := range []string{"font_size", "styles"} {
		if _, ok := tree[alias]; ok {
			t.Errorf("Tree() carries alias key %q", alias)
		}
	}

	back, err := FromTree(Definition{}, tree)
	if err != nil {
		t.Fatalf("FromTree: %v", err)
	}
	if diff := cmp.Diff(footer, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromTreeOverlay(t *testing.T) {
	base := MustDefault().Base()

	tests := []struct {
		name string
		tree config.Tree
		want func(*Definition)
	}{
		{
			name: "size only",
			tree: config.Tree{"size": 12},
			want: func(d *Definition) { d.Size = 12 },
		},
		{
			name: "font_size alias",
			tree: config.Tree{"font_size": int64(9)},
			want: func(d *Definition) { d.Size = 9 },
		},
		{
			name: "styles alias",
			tree: config.Tree{"styles": []any{"italic"}},
			want: func(d *Definition) { d.FontStyle = Italic },
		},
		{
			name: "numbering keys ignored",
			tree: config.Tree{"align": "right", "start_count_at": 1, "color": "333333"},
			want: func(d *Definition) { d.Align = AlignRight; d.Color = "333333" },
		},
		{
			name: "inline format false",
			tree: config.Tree{"inline_format": false},
			want: func(d *Definition) { d.InlineFormat = false },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := clone(base)
			tt.want(&want)
			want.Normalize()

			got, err := FromTree(base, tt.tree)
			if err != nil {
				t.Fatalf("FromTree: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromTreeInvalid(t *testing.T) {
	base := MustDefault().Base()
	for _, tree := range []config.Tree{
		{"size": -1},
		{"color": "black"},
		{"style": "heavy"},
		{"size": "large"},
	} {
		if _, err := FromTree(base, tree); !errors.Is(err, errors.ErrCodeConfiguration) {
			t.Errorf("FromTree(%v) err = %v, want CONFIGURATION", tree, err)
		}
	}
}

func TestSheetApply(t *testing.T) {
	cfg := config.Tree{
		"size": int64(12),
		"callout": map[string]any{
			"factor": 1.5,
			"style":  "bold",
			"color":  "aa0000",
		},
		"h1": config.Tree{"leading": 4},
		"h6": config.Tree{"size": 7},
	}

	sheet, err := DefaultSheet().Apply(cfg)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	c, err := NewCascade(sheet)
	if err != nil {
		t.Fatalf("NewCascade: %v", err)
	}

	callout, err := c.Resolve("callout")
	if err != nil {
		t.Fatalf("Resolve(callout): %v", err)
	}
	if callout.Size != 18 || callout.FontStyle != Bold || callout.Color != "aa0000" {
		t.Errorf("callout = %+v", callout)
	}

	h1, _ := c.Resolve("h1")
	if h1.Size != 30 || h1.Leading != 4 || h1.FontStyle != Bold {
		t.Errorf("h1 should keep factor and weight, change leading: %+v", h1)
	}

	h6, _ := c.Resolve("h6")
	if h6.Size != 7 || h6.FontStyle != Italic {
		t.Errorf("h6 = %+v", h6)
	}

	if DefaultSheet().Base().Size != 10 {
		t.Error("Apply mutated the default sheet")
	}
}

func TestSheetApplyErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Tree
	}{
		{"factor on base", config.Tree{"factor": 2}},
		{"base as rule", config.Tree{"default": config.Tree{"size": 3}}},
		{"bad rule name", config.Tree{"Big": config.Tree{"factor": 2}}},
		{"bad base color", config.Tree{"color": "nope"}},
		{"bad rule value", config.Tree{"x": config.Tree{"factor": "huge"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DefaultSheet().Apply(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSheetApplyEmpty(t *testing.T) {
	sheet, err := DefaultSheet().Apply(nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultSheet().Names(), sheet.Names()); diff != "" {
		t.Errorf("names changed (-want +got):\n%s", diff)
	}
}
