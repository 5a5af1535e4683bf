package config

import (
	"github.com/mitchellh/mapstructure"

	"github.com/matzehuels/folio/pkg/errors"
)

// Page holds the top-level page settings.
type Page struct {
	Size         any     `mapstructure:"page_size"`
	Layout       string  `mapstructure:"page_layout"`
	LeftMargin   float64 `mapstructure:"left_margin"`
	RightMargin  float64 `mapstructure:"right_margin"`
	TopMargin    float64 `mapstructure:"top_margin"`
	BottomMargin float64 `mapstructure:"bottom_margin"`
}

// Header holds the merged header branch.
type Header struct {
	Render        bool           `mapstructure:"render"`
	Height        float64        `mapstructure:"height"`
	BottomPadding float64        `mapstructure:"bottom_padding"`
	Repeated      bool           `mapstructure:"repeated"`
	Extra         map[string]any `mapstructure:",remain"`
}

// Footer holds the merged footer branch.
type Footer struct {
	Render           bool           `mapstructure:"render"`
	Height           float64        `mapstructure:"height"`
	TopPadding       float64        `mapstructure:"top_padding"`
	Repeated         bool           `mapstructure:"repeated"`
	NumberPages      bool           `mapstructure:"number_pages"`
	NumberingString  string         `mapstructure:"numbering_string"`
	NumberingOptions map[string]any `mapstructure:"numbering_options"`
	Style            map[string]any `mapstructure:"style"`
	Extra            map[string]any `mapstructure:",remain"`
}

// Body holds the merged body branch. Top and Height are injected by the
// composer after geometry has been computed.
type Body struct {
	Render   bool           `mapstructure:"render"`
	Repeated bool           `mapstructure:"repeated"`
	Top      float64        `mapstructure:"top"`
	Height   float64        `mapstructure:"height"`
	Extra    map[string]any `mapstructure:",remain"`
}

// Document is the typed view of a merged tree.
type Document struct {
	Page   `mapstructure:",squash"`
	Header Header         `mapstructure:"header"`
	Footer Footer         `mapstructure:"footer"`
	Body   Body           `mapstructure:"body"`
	Styles map[string]any `mapstructure:"styles"`
	Extra  map[string]any `mapstructure:",remain"`
}

// Decode converts a merged tree into typed options. Numbers may be any
// numeric type (TOML yields int64, JSON float64).
func Decode(t Tree) (Document, error) {
	var doc Document
	if err := decodeInto(map[string]any(plain(t)), &doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeConfiguration, err, "decode settings")
	}
	return doc, nil
}

// DecodeBranch decodes one branch (for example a region's options) into out.
func DecodeBranch(t Tree, out any) error {
	if err := decodeInto(map[string]any(plain(t)), out); err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "decode branch")
	}
	return nil
}

func decodeInto(input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// plain converts nested Tree values to map[string]any so mapstructure sees a
// uniform shape.
func plain(t Tree) Tree {
	out := make(Tree, len(t))
	for k, v := range t {
		if sub, ok := AsTree(v); ok {
			out[k] = map[string]any(plain(sub))
			continue
		}
		out[k] = v
	}
	return out
}
