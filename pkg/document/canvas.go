package document

import (
	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/region"
	"github.com/matzehuels/folio/pkg/render"
	"github.com/matzehuels/folio/pkg/style"
	"github.com/matzehuels/folio/pkg/table"
)

const bodyStyle = "body"

// Canvas is what content callbacks draw on.
type Canvas struct {
	surface render.Surface
	styles  *style.Cascade
	scope   region.Scope
	build   *buildState
}

// buildState collects failures from content callbacks. Callbacks have no
// error return and may run during Render, so the first error is kept and
// fails the build afterwards.
type buildState struct {
	err error
}

func (b *buildState) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Surface returns the underlying surface for drawing the canvas does not
// cover.
func (c *Canvas) Surface() render.Surface { return c.surface }

// Styles returns the style cascade of the build.
func (c *Canvas) Styles() *style.Cascade { return c.styles }

// Region returns the kind of region being drawn.
func (c *Canvas) Region() region.Kind { return c.scope.Kind }

// Bounds returns the size of the current bounding box.
func (c *Canvas) Bounds() render.Size { return c.surface.Bounds() }

// Text draws text in the named style. An unknown style fails the build.
func (c *Canvas) Text(styleName, text string) error {
	attrs, err := c.styles.Resolve(styleName)
	if err != nil {
		c.build.fail(err)
		return err
	}
	c.surface.DrawText(text, attrs)
	return nil
}

// Write draws text in the style the region injects, or the body style when
// the region injects none.
func (c *Canvas) Write(text string) error {
	if c.scope.Style != nil {
		c.surface.DrawText(text, *c.scope.Style)
		return nil
	}
	if !c.styles.Has(bodyStyle) {
		c.surface.DrawText(text, c.styles.Base())
		return nil
	}
	return c.Text(bodyStyle, text)
}

// Table draws t at the cursor with the cascade's base style. A failure
// fails the build.
func (c *Canvas) Table(t *table.Table, overrides ...config.Tree) error {
	if err := t.Draw(c.surface, c.styles.Base(), overrides...); err != nil {
		c.build.fail(err)
		return err
	}
	return nil
}

// Fail records err as the build's failure unless one is already recorded.
func (c *Canvas) Fail(err error) {
	if err != nil {
		c.build.fail(err)
	}
}

// Err returns the first failure recorded during the build.
func (c *Canvas) Err() error { return c.build.err }
