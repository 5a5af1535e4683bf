package document

import (
	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/style"
)

// ContentFunc draws content onto a canvas. Header and footer content may run
// once per page.
type ContentFunc func(*Canvas)

// Contents holds optional content for each region.
type Contents struct {
	Header ContentFunc
	Body   ContentFunc
	Footer ContentFunc
}

// Template holds shared settings, styles and content.
type Template struct {
	Settings config.Tree
	Sheet    *style.Sheet
	Contents Contents
}

// DefaultTemplate returns a template with no settings or content over the
// default style sheet.
func DefaultTemplate() *Template {
	return &Template{Sheet: style.DefaultSheet()}
}

// Builder holds the settings and content of one document.
type Builder struct {
	Settings config.Tree
	Contents Contents
}

func sequence(fns ...ContentFunc) ContentFunc {
	var out []ContentFunc
	for _, fn := range fns {
		if fn != nil {
			out = append(out, fn)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return func(cv *Canvas) {
		for _, fn := range out {
			fn(cv)
		}
	}
}
