package style

import (
	"sort"

	"github.com/matzehuels/folio/pkg/errors"
)

// BaseName is the name of the base style. It is not a resolvable style.
const BaseName = "default"

// Overrides replace individual attributes of the base style. Zero values
// inherit; Size and InlineFormat are pointers because zero is meaningful.
type Overrides struct {
	Size         *float64
	FontStyle    FontStyle
	Align        Align
	Leading      float64
	InlineFormat *bool
	Color        string
}

// Rule derives a named style from the base style.
type Rule struct {
	// Factor multiplies the base size. Zero means 1.
	Factor    float64
	Overrides Overrides
}

// Sheet is an immutable set of rules over one base style. The With* methods
// return modified copies.
type Sheet struct {
	base  Definition
	rules map[string]Rule
}

// NewSheet creates a sheet with the given base and no rules.
func NewSheet(base Definition) *Sheet {
	base.Normalize()
	return &Sheet{base: base, rules: make(map[string]Rule)}
}

// DefaultSheet returns the built-in style sheet: body, h1-h6 and footer.
func DefaultSheet() *Sheet {
	s := NewSheet(Definition{
		Size:         10,
		FontStyle:    Normal,
		Align:        AlignLeft,
		Leading:      1,
		InlineFormat: true,
		Color:        "000000",
	})
	s.rules["body"] = Rule{Factor: 1}
	s.rules["h1"] = Rule{Factor: 2.5, Overrides: Overrides{FontStyle: Bold, Leading: 8}}
	s.rules["h2"] = Rule{Factor: 2.14, Overrides: Overrides{FontStyle: Bold, Leading: 2}}
	s.rules["h3"] = Rule{Factor: 1.7, Overrides: Overrides{FontStyle: Bold}}
	s.rules["h4"] = Rule{Factor: 1.3, Overrides: Overrides{FontStyle: BoldItalic}}
	s.rules["h5"] = Rule{Factor: 1}
	s.rules["h6"] = Rule{Factor: 0.85, Overrides: Overrides{FontStyle: Italic}}
	s.rules["footer"] = Rule{Factor: 0.8, Overrides: Overrides{Color: "666666", Align: AlignCenter}}
	return s
}

// Base returns the base style.
func (s *Sheet) Base() Definition {
	return clone(s.base)
}

// Rule returns the rule registered under name.
func (s *Sheet) Rule(name string) (Rule, bool) {
	r, ok := s.rules[name]
	return r, ok
}

// Names returns the registered rule names in sorted order.
func (s *Sheet) Names() []string {
	names := make([]string, 0, len(s.rules))
	for name := range s.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithBase returns a copy whose base style has been modified by fn.
func (s *Sheet) WithBase(fn func(*Definition)) *Sheet {
	out := s.copy()
	fn(&out.base)
	out.base.Normalize()
	return out
}

// WithRule returns a copy with name registered (or replaced).
func (s *Sheet) WithRule(name string, r Rule) (*Sheet, error) {
	if name == BaseName {
		return nil, errors.Configuration("%q names the base style; use WithBase", name)
	}
	if err := errors.ValidateStyleName(name); err != nil {
		return nil, err
	}
	out := s.copy()
	out.rules[name] = r
	return out, nil
}

// WithoutRule returns a copy with name removed.
func (s *Sheet) WithoutRule(name string) *Sheet {
	out := s.copy()
	delete(out.rules, name)
	return out
}

func (s *Sheet) copy() *Sheet {
	rules := make(map[string]Rule, len(s.rules))
	for k, v := range s.rules {
		rules[k] = v
	}
	return &Sheet{base: clone(s.base), rules: rules}
}

func clone(d Definition) Definition {
	d.Styles = append([]FontStyle(nil), d.Styles...)
	return d
}
