package table

import (
	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/errors"
)

// Positions of the table within its box.
const (
	PositionLeft   = "left"
	PositionCenter = "center"
	PositionRight  = "right"
)

// Settings are the resolved table settings.
type Settings struct {
	Width        float64     `mapstructure:"width"`
	Position     string      `mapstructure:"position"`
	HeaderRepeat bool        `mapstructure:"header_repeat"`
	ColumnWidths []float64   `mapstructure:"column_widths"`
	CellStyle    config.Tree `mapstructure:"cell_style"`
	HeaderFormat config.Tree `mapstructure:"header_format"`
	FooterFormat config.Tree `mapstructure:"footer_format"`
}

// DefaultSettings returns the defaults for a table in a box of the given
// width.
func DefaultSettings(width float64) config.Tree {
	return config.Tree{
		"width":         width,
		"position":      PositionCenter,
		"header_repeat": true,
		"cell_style": config.Tree{
			"borders":       []any{"top", "bottom"},
			"border_width":  0.5,
			"inline_format": true,
			"size":          10.0,
		},
		"header_format": config.Tree{
			"align": "center",
			"style": "bold",
		},
		"footer_format": config.Tree{
			"style": "bold",
		},
	}
}

// Resolve merges overrides (most authoritative first) over the defaults.
func Resolve(width float64, overrides ...config.Tree) (Settings, error) {
	sources := append(append([]config.Tree(nil), overrides...), DefaultSettings(width))
	merged := config.MergeTable(sources...)

	var s Settings
	if err := config.DecodeBranch(merged, &s); err != nil {
		return Settings{}, err
	}
	switch s.Position {
	case PositionLeft, PositionCenter, PositionRight:
	default:
		return Settings{}, errors.Configuration("table position must be left, center or right, got %q", s.Position)
	}
	if err := errors.ValidatePositive("table width", s.Width); err != nil {
		return Settings{}, err
	}
	if s.Width > width+1e-9 {
		return Settings{}, errors.Configuration("table width %g exceeds the box width %g", s.Width, width)
	}
	return s, nil
}

func (s Settings) columnWidths(cols int) ([]float64, error) {
	if len(s.ColumnWidths) == 0 {
		out := make([]float64, cols)
		for i := range out {
			out[i] = s.Width / float64(cols)
		}
		return out, nil
	}
	if len(s.ColumnWidths) != cols {
		return nil, errors.Configuration("column_widths has %d entries for %d columns", len(s.ColumnWidths), cols)
	}
	return s.ColumnWidths, nil
}

func (s Settings) offset(boxWidth float64) float64 {
	switch s.Position {
	case PositionLeft:
		return 0
	case PositionRight:
		return boxWidth - s.Width
	default:
		return (boxWidth - s.Width) / 2
	}
}
