// Package table draws simple row tables into the current bounding box.
//
// A table has header, body and footer rows. Header rows are drawn again at
// the top of every page the table continues onto unless header_repeat is
// false. Settings merge like document settings, with cell_style,
// header_format and footer_format merged one level deep (see
// config.MergeTable).
//
// Column layout is deliberately plain: widths are either given or split
// evenly, and each cell holds a single line of text.
package table

import (
	"fmt"
	"strings"

	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/render"
	"github.com/matzehuels/folio/pkg/style"
)

// Row is one table row.
type Row []string

// Table holds rows and setting overrides.
type Table struct {
	header []Row
	body   []Row
	footer []Row
	// Overrides are merged over DefaultSettings, most authoritative first.
	Overrides []config.Tree
}

// New creates an empty table.
func New(overrides ...config.Tree) *Table {
	return &Table{Overrides: overrides}
}

// HeaderRows returns the header rows.
func (t *Table) HeaderRows() []Row { return t.header }

// BodyRows returns the body rows.
func (t *Table) BodyRows() []Row { return t.body }

// FooterRows returns the footer rows.
func (t *Table) FooterRows() []Row { return t.footer }

// SetHeaderRows replaces the header rows. rows must be a sequence.
func (t *Table) SetHeaderRows(rows any) error {
	r, err := toRows("header_rows", rows)
	if err != nil {
		return err
	}
	t.header = r
	return nil
}

// SetBodyRows replaces the body rows. rows must be a sequence.
func (t *Table) SetBodyRows(rows any) error {
	r, err := toRows("body_rows", rows)
	if err != nil {
		return err
	}
	t.body = r
	return nil
}

// SetFooterRows replaces the footer rows. rows must be a sequence.
func (t *Table) SetFooterRows(rows any) error {
	r, err := toRows("footer_rows", rows)
	if err != nil {
		return err
	}
	t.footer = r
	return nil
}

// Data returns header, body and footer rows in drawing order.
func (t *Table) Data() []Row {
	out := make([]Row, 0, len(t.header)+len(t.body)+len(t.footer))
	out = append(out, t.header...)
	out = append(out, t.body...)
	return append(out, t.footer...)
}

// toRows accepts [][]string, []Row, []string (one cell per row) and []any
// whose elements are strings or sequences of values.
func toRows(field string, v any) ([]Row, error) {
	switch rows := v.(type) {
	case []Row:
		return append([]Row(nil), rows...), nil
	case [][]string:
		out := make([]Row, len(rows))
		for i, r := range rows {
			out[i] = append(Row(nil), r...)
		}
		return out, nil
	case []string:
		out := make([]Row, len(rows))
		for i, cell := range rows {
			out[i] = Row{cell}
		}
		return out, nil
	case []any:
		out := make([]Row, len(rows))
		for i, r := range rows {
			row, err := toRow(r)
			if err != nil {
				return nil, errors.Shape(fmt.Sprintf("%s[%d]", field, i), r)
			}
			out[i] = row
		}
		return out, nil
	}
	return nil, errors.Shape(field, v)
}

func toRow(v any) (Row, error) {
	switch r := v.(type) {
	case string:
		return Row{r}, nil
	case Row:
		return append(Row(nil), r...), nil
	case []string:
		return append(Row(nil), r...), nil
	case []any:
		row := make(Row, len(r))
		for i, cell := range r {
			row[i] = fmt.Sprint(cell)
		}
		return row, nil
	}
	return nil, errors.Shape("row", v)
}

// Draw draws the table at the cursor of the surface's current box. The
// surface must implement render.Flow.
func (t *Table) Draw(s render.Surface, base style.Definition, overrides ...config.Tree) error {
	flow, ok := s.(render.Flow)
	if !ok {
		return errors.New(errors.ErrCodeUnsupported, "surface %T has no text cursor", s)
	}
	bounds := s.Bounds()
	settings, err := Resolve(bounds.Width, append(overrides, t.Overrides...)...)
	if err != nil {
		return err
	}
	cols := t.columns()
	if cols == 0 {
		return nil
	}
	widths, err := settings.columnWidths(cols)
	if err != nil {
		return err
	}

	cell, err := style.FromTree(base, settings.CellStyle)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "cell_style")
	}
	header, err := style.FromTree(cell, settings.HeaderFormat)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "header_format")
	}
	footer, err := style.FromTree(cell, settings.FooterFormat)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "footer_format")
	}

	d := drawer{
		surface: s,
		flow:    flow,
		x:       settings.offset(bounds.Width),
		widths:  widths,
		height:  render.LineHeight(cell),
	}
	pager, _ := s.(render.Paginator)

	d.rows(t.header, header)
	for _, row := range t.body {
		if flow.Remaining() < d.height && pager != nil {
			pager.StartNewPage()
			if settings.HeaderRepeat {
				d.rows(t.header, header)
			}
		}
		d.row(row, cell)
	}
	d.rows(t.footer, footer)
	return nil
}

func (t *Table) columns() int {
	n := 0
	for _, r := range t.Data() {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}

type drawer struct {
	surface render.Surface
	flow    render.Flow
	x       float64
	widths  []float64
	height  float64
}

func (d drawer) rows(rows []Row, attrs style.Definition) {
	for _, r := range rows {
		d.row(r, attrs)
	}
}

func (d drawer) row(r Row, attrs style.Definition) {
	top := d.surface.Bounds().Height - d.flow.Cursor()
	x := d.x
	for i, w := range d.widths {
		text := ""
		if i < len(r) {
			text = strings.ReplaceAll(r[i], "\n", " ")
		}
		d.surface.BoundingBox(render.Point{X: x, Y: top}, w, d.height, func() {
			d.surface.DrawText(text, attrs)
		})
		x += w
	}
	d.flow.MoveDown(d.height)
}
