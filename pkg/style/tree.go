package style

import (
	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/errors"
)

// Tree returns the definition as a config tree, as used for footer.style.
// Only canonical keys are emitted; the font_size and styles aliases are
// left to the sources that use them.
func (d Definition) Tree() config.Tree {
	return config.Tree{
		"size":          d.Size,
		"style":         string(d.FontStyle),
		"align":         string(d.Align),
		"leading":       d.Leading,
		"inline_format": d.InlineFormat,
		"color":         d.Color,
	}
}

// attrs is the decoded form of a style tree. Pointer fields distinguish
// absent keys from zero values.
type attrs struct {
	Factor       *float64 `mapstructure:"factor"`
	Size         *float64 `mapstructure:"size"`
	FontSize     *float64 `mapstructure:"font_size"`
	Style        *string  `mapstructure:"style"`
	Styles       []string `mapstructure:"styles"`
	Align        *string  `mapstructure:"align"`
	Leading      *float64 `mapstructure:"leading"`
	InlineFormat *bool    `mapstructure:"inline_format"`
	Color        *string  `mapstructure:"color"`
}

func decodeAttrs(t config.Tree) (attrs, error) {
	var a attrs
	if err := config.DecodeBranch(t, &a); err != nil {
		return attrs{}, err
	}
	// font_size and styles are accepted as aliases.
	if a.Size == nil && a.FontSize != nil {
		a.Size = a.FontSize
	}
	if a.Style == nil && len(a.Styles) > 0 {
		s := a.Styles[0]
		a.Style = &s
	}
	return a, nil
}

// FromTree overlays the keys present in t onto base. Keys that are not style
// attributes are ignored, so a footer.style tree carrying numbering options
// decodes cleanly.
func FromTree(base Definition, t config.Tree) (Definition, error) {
	a, err := decodeAttrs(t)
	if err != nil {
		return Definition{}, err
	}
	d := clone(base)
	if a.Size != nil {
		d.Size = *a.Size
	}
	if a.Style != nil {
		d.FontStyle = FontStyle(*a.Style)
	}
	if a.Align != nil {
		d.Align = Align(*a.Align)
	}
	if a.Leading != nil {
		d.Leading = *a.Leading
	}
	if a.InlineFormat != nil {
		d.InlineFormat = *a.InlineFormat
	}
	if a.Color != nil {
		d.Color = *a.Color
	}
	d.Normalize()
	return d, d.Validate()
}

// Apply returns a copy of the sheet with overrides from a settings file.
//
// Scalar keys modify the base style. Map-valued keys add or modify the rule
// of that name; a modified rule keeps the attributes it does not mention.
//
//	[styles]
//	size = 12
//
//	[styles.callout]
//	factor = 1.2
//	style = "bold"
func (s *Sheet) Apply(cfg config.Tree) (*Sheet, error) {
	out := s.copy()
	if len(cfg) == 0 {
		return out, nil
	}

	base := config.Tree{}
	for k, v := range cfg {
		if _, ok := config.AsTree(v); !ok {
			base[k] = v
		}
	}
	if len(base) > 0 {
		if _, ok := base["factor"]; ok {
			return nil, errors.Configuration("the base style has no factor")
		}
		d, err := FromTree(out.base, base)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "base style")
		}
		out.base = d
	}

	for _, name := range cfg.Keys() {
		sub := cfg.Branch(name)
		if sub == nil {
			continue
		}
		if name == BaseName {
			return nil, errors.Configuration("set base attributes directly under styles, not styles.%s", BaseName)
		}
		if err := errors.ValidateStyleName(name); err != nil {
			return nil, err
		}
		a, err := decodeAttrs(sub)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "style %q", name)
		}
		out.rules[name] = a.apply(out.rules[name])
	}
	return out, nil
}

func (a attrs) apply(r Rule) Rule {
	if a.Factor != nil {
		r.Factor = *a.Factor
	}
	if a.Size != nil {
		size := *a.Size
		r.Overrides.Size = &size
	}
	if a.Style != nil {
		r.Overrides.FontStyle = FontStyle(*a.Style)
	}
	if a.Align != nil {
		r.Overrides.Align = Align(*a.Align)
	}
	if a.Leading != nil {
		r.Overrides.Leading = *a.Leading
	}
	if a.InlineFormat != nil {
		b := *a.InlineFormat
		r.Overrides.InlineFormat = &b
	}
	if a.Color != nil {
		r.Overrides.Color = *a.Color
	}
	return r
}
