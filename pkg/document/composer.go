package document

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/config"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/geometry"
	"github.com/matzehuels/folio/pkg/observability"
	"github.com/matzehuels/folio/pkg/region"
	"github.com/matzehuels/folio/pkg/render"
	"github.com/matzehuels/folio/pkg/render/pdf"
	"github.com/matzehuels/folio/pkg/style"
)

// Option configures a Composer.
type Option func(*Composer)

// WithSurfaceFactory selects the rendering backend. The default renders PDF.
func WithSurfaceFactory(f render.Factory) Option {
	return func(c *Composer) {
		if f != nil {
			c.factory = f
		}
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *log.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHooks overrides the globally registered build hooks.
func WithHooks(h observability.BuildHooks) Option {
	return func(c *Composer) { c.hooks = h }
}

// Composer builds documents from one template. It holds no per-build state
// and is safe for concurrent use.
type Composer struct {
	template *Template
	cascade  *style.Cascade
	factory  render.Factory
	logger   *log.Logger
	hooks    observability.BuildHooks
}

// Result is a finished document.
type Result struct {
	Data []byte
	// Pages is the page count, or 0 when the surface does not paginate.
	Pages int
	// Settings is the merged settings tree, including body.top and
	// body.height.
	Settings config.Tree
}

// NewComposer validates the template and its style sheet.
func NewComposer(tpl *Template, opts ...Option) (*Composer, error) {
	if tpl == nil {
		return nil, errors.Configuration("a template is required")
	}
	if tpl.Sheet == nil {
		return nil, errors.Configuration("the template has no style sheet")
	}
	cascade, err := style.NewCascade(tpl.Sheet)
	if err != nil {
		return nil, err
	}

	c := &Composer{
		template: tpl,
		cascade:  cascade,
		factory:  pdf.Factory(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Template returns the composer's template.
func (c *Composer) Template() *Template { return c.template }

// Cascade returns the cascade of the template's style sheet.
func (c *Composer) Cascade() *style.Cascade { return c.cascade }

// Build composes the document and returns the rendered bytes.
func (c *Composer) Build(ctx context.Context, b *Builder) ([]byte, error) {
	res, err := c.Compose(ctx, b)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// Compose composes the document. No partial output is returned on error.
func (c *Composer) Compose(ctx context.Context, b *Builder) (res *Result, err error) {
	if b == nil {
		b = &Builder{}
	}
	hooks := c.buildHooks()
	start := time.Now()
	hooks.OnBuildStart(ctx)
	defer func() {
		pages := 0
		if res != nil {
			pages = res.Pages
		}
		hooks.OnBuildComplete(ctx, pages, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := c.plan(b)
	if err != nil {
		return nil, err
	}

	surface, err := c.factory(p.paper, p.margins)
	if err != nil {
		return nil, err
	}
	if err := p.placeBody(surface.Bounds()); err != nil {
		return nil, err
	}
	c.logger.Debug("computed geometry",
		"bounds", surface.Bounds(),
		"body_top", p.doc.Body.Top,
		"body_height", p.doc.Body.Height)

	state := &buildState{}
	canvas := func(fn ContentFunc) region.ContentFunc {
		if fn == nil {
			return nil
		}
		return func(sc region.Scope) {
			fn(&Canvas{surface: surface, styles: p.cascade, scope: sc, build: state})
		}
	}

	tc, bc := c.template.Contents, b.Contents
	steps := []struct {
		kind    region.Kind
		enabled bool
		make    func() (region.Region, error)
		content ContentFunc
	}{
		{
			kind:    region.KindBody,
			enabled: p.doc.Body.Render,
			make:    func() (region.Region, error) { return region.NewBody(surface, p.doc.Body) },
			content: sequence(tc.Body, bc.Body),
		},
		{
			kind:    region.KindHeader,
			enabled: p.doc.Header.Render,
			make:    func() (region.Region, error) { return region.NewHeader(surface, p.doc.Header) },
			content: sequence(tc.Header, bc.Header),
		},
		{
			kind:    region.KindFooter,
			enabled: p.doc.Footer.Render,
			make: func() (region.Region, error) {
				return region.NewFooter(surface, p.doc.Footer, p.cascade.Base())
			},
			content: sequence(bc.Footer, tc.Footer),
		},
	}

	for _, step := range steps {
		if !step.enabled {
			c.logger.Debug("skipping region", "region", step.kind)
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := step.make()
		if err != nil {
			return nil, err
		}
		drawStart := time.Now()
		if err := r.Draw(canvas(step.content)); err != nil {
			return nil, err
		}
		hooks.OnRegionDrawn(ctx, string(step.kind), time.Since(drawStart))
		if state.err != nil {
			return nil, state.err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := surface.Render()
	if state.err != nil {
		return nil, state.err
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render document")
	}

	res = &Result{Data: data, Settings: p.merged}
	if pg, ok := surface.(render.Paginator); ok {
		res.Pages = pg.PageCount()
	}
	c.logger.Debug("rendered document", "pages", res.Pages, "bytes", len(data))
	return res, nil
}

// Settings returns the merged settings a build of b would use, with body
// bounds computed for the margin box of the configured paper.
func (c *Composer) Settings(b *Builder) (config.Tree, error) {
	if b == nil {
		b = &Builder{}
	}
	p, err := c.plan(b)
	if err != nil {
		return nil, err
	}
	bounds, err := geometry.MarginBox(p.paper, p.margins)
	if err != nil {
		return nil, err
	}
	if err := p.placeBody(bounds); err != nil {
		return nil, err
	}
	return p.merged, nil
}

func (c *Composer) buildHooks() observability.BuildHooks {
	if c.hooks != nil {
		return c.hooks
	}
	return observability.Build()
}

// plan is everything a build needs before a surface exists.
type plan struct {
	merged  config.Tree
	doc     config.Document
	cascade *style.Cascade
	paper   geometry.Size
	margins geometry.Margins
}

func (c *Composer) plan(b *Builder) (*plan, error) {
	cascade, err := c.cascadeFor(b.Settings, c.template.Settings)
	if err != nil {
		return nil, err
	}

	footerStyle := cascade.Base()
	if cascade.Has(region.FooterStyle) {
		footerStyle, _ = cascade.Resolve(region.FooterStyle)
	}

	merged := config.Merge(
		b.Settings,
		c.template.Settings,
		config.Defaults(),
		config.ComponentDefaults(footerStyle.Tree()),
	)
	doc, err := config.Decode(merged)
	if err != nil {
		return nil, err
	}

	paper, err := geometry.PageSize(doc.Size, doc.Layout)
	if err != nil {
		return nil, err
	}
	margins := geometry.Margins{
		Top:    doc.TopMargin,
		Right:  doc.RightMargin,
		Bottom: doc.BottomMargin,
		Left:   doc.LeftMargin,
	}
	c.logger.Debug("merged settings", "page_size", doc.Size, "page_layout", doc.Layout, "paper", paper)

	return &plan{merged: merged, doc: doc, cascade: cascade, paper: paper, margins: margins}, nil
}

// placeBody computes the body bounds and injects them into the settings.
func (p *plan) placeBody(bounds geometry.PageBounds) error {
	body, err := geometry.ComputeBodyBounds(bounds,
		geometry.HeaderSpace{Render: p.doc.Header.Render, Height: p.doc.Header.Height, BottomPadding: p.doc.Header.BottomPadding},
		geometry.FooterSpace{Render: p.doc.Footer.Render, Height: p.doc.Footer.Height, TopPadding: p.doc.Footer.TopPadding},
	)
	if err != nil {
		return err
	}
	p.doc.Body.Top = body.Top
	p.doc.Body.Height = body.Height
	branch := p.merged.Branch(config.KeyBody)
	branch["top"] = body.Top
	branch["height"] = body.Height
	return nil
}

// cascadeFor applies the most authoritative styles override, if any.
func (c *Composer) cascadeFor(sources ...config.Tree) (*style.Cascade, error) {
	for _, src := range sources {
		override := src.Branch(config.KeyStyles)
		if override == nil {
			continue
		}
		sheet, err := c.template.Sheet.Apply(override)
		if err != nil {
			return nil, err
		}
		return style.NewCascade(sheet)
	}
	return c.cascade, nil
}
