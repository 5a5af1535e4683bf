package content

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/folio/pkg/document"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/render/record"
	"github.com/matzehuels/folio/pkg/table"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Block
	}{
		{
			name: "headings and paragraphs",
			src:  "# Title\n\nSome text.\n\n### Section\n",
			want: []Block{{Style: "h1", Text: "Title"}, {Text: "Some text."}, {Style: "h3", Text: "Section"}},
		},
		{
			name: "inline markup is flattened",
			src:  "A *very* **bold** `claim` &amp; more\n",
			want: []Block{{Text: "A very bold claim & more"}},
		},
		{
			name: "unordered list",
			src:  "- one\n- two\n",
			want: []Block{{Text: Bullet + "one"}, {Text: Bullet + "two"}},
		},
		{
			name: "ordered list",
			src:  "1. first\n2. second\n",
			want: []Block{{Text: "1. first"}, {Text: "2. second"}},
		},
		{
			name: "nested list",
			src:  "- outer\n    - inner\n- next\n",
			want: []Block{{Text: Bullet + "outer"}, {Text: "  " + Bullet + "inner"}, {Text: Bullet + "next"}},
		},
		{
			name: "hard line break",
			src:  "line one\nline two\n",
			want: []Block{{Text: "line one\nline two"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("blocks (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTable(t *testing.T) {
	src := "| Name | Qty |\n|------|-----|\n| ink | 2 |\n| paper | 500 |\n"
	blocks, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 || blocks[0].Table == nil {
		t.Fatalf("blocks = %+v, want one table", blocks)
	}
	tbl := blocks[0].Table
	if diff := cmp.Diff([]table.Row{{"Name", "Qty"}}, tbl.HeaderRows()); diff != "" {
		t.Errorf("header (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]table.Row{{"ink", "2"}, {"paper", "500"}}, tbl.BodyRows()); diff != "" {
		t.Errorf("body (-want +got):\n%s", diff)
	}
}

func build(t *testing.T, fn document.ContentFunc) record.Transcript {
	t.Helper()
	c, err := document.NewComposer(document.DefaultTemplate(), document.WithSurfaceFactory(record.Factory))
	if err != nil {
		t.Fatal(err)
	}
	data, err := c.Build(context.Background(), &document.Builder{Contents: document.Contents{Body: fn}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var tr record.Transcript
	if err := json.Unmarshal(data, &tr); err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestMarkdownDrawsWithCascadeStyles(t *testing.T) {
	fn, err := Markdown([]byte("# Report\n\nBody text.\n"))
	if err != nil {
		t.Fatal(err)
	}
	tr := build(t, fn)

	sizes := map[string]float64{}
	for _, op := range tr.Pages[0].Ops {
		if op.Kind == record.OpText && op.Style != nil {
			sizes[op.Text] = op.Style.Size
		}
	}
	if sizes["Report"] <= sizes["Body text."] {
		t.Errorf("heading size %v not larger than body %v", sizes["Report"], sizes["Body text."])
	}
}

func TestBlocksStopAtFirstFailure(t *testing.T) {
	c, err := document.NewComposer(document.DefaultTemplate(), document.WithSurfaceFactory(record.Factory))
	if err != nil {
		t.Fatal(err)
	}
	fn := Blocks([]Block{{Style: "missing", Text: "x"}, {Text: "after"}})
	_, err = c.Build(context.Background(), &document.Builder{Contents: document.Contents{Body: fn}})
	if !errors.Is(err, errors.ErrCodeUnknownStyle) {
		t.Errorf("Build err = %v, want UNKNOWN_STYLE", err)
	}
}
