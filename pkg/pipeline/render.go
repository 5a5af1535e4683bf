package pipeline

import (
	"context"

	"github.com/matzehuels/folio/pkg/document"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/geometry"
	"github.com/matzehuels/folio/pkg/render"
	"github.com/matzehuels/folio/pkg/render/pdf"
	"github.com/matzehuels/folio/pkg/render/record"
	"github.com/matzehuels/folio/pkg/render/svg"
)

// Rendered holds the artifacts of one composition pass.
type Rendered struct {
	Artifacts map[string][]byte
	Pages     int
}

// Render composes the document and produces every requested format. PDF is
// composed on its own surface; JSON, SVG and PNG share one recorded
// transcript.
func Render(ctx context.Context, b *document.Builder, opts Options) (*Rendered, error) {
	out := &Rendered{Artifacts: make(map[string][]byte, len(opts.Formats))}

	if opts.needs(FormatPDF) {
		data, pages, err := composePDF(ctx, b, opts)
		if err != nil {
			return nil, err
		}
		out.Artifacts[FormatPDF] = data
		out.Pages = pages
	}

	if opts.needs(FormatJSON) || opts.needs(FormatSVG) || opts.needs(FormatPNG) {
		tr, data, err := composeTranscript(ctx, b, opts)
		if err != nil {
			return nil, err
		}
		if out.Pages == 0 {
			out.Pages = len(tr.Pages)
		}
		if opts.needs(FormatJSON) {
			out.Artifacts[FormatJSON] = data
		}
		if opts.needs(FormatSVG) {
			out.Artifacts[FormatSVG] = svg.Encode(tr)
		}
		if opts.needs(FormatPNG) {
			page, err := svg.EncodePage(tr, 0)
			if err != nil {
				return nil, err
			}
			png, err := render.ToPNG(page, opts.Scale)
			if err != nil {
				return nil, err
			}
			out.Artifacts[FormatPNG] = png
		}
	}
	return out, nil
}

func composePDF(ctx context.Context, b *document.Builder, opts Options) ([]byte, int, error) {
	factory := pdf.Factory(
		pdf.WithTitle(opts.Title),
		pdf.WithAuthor(opts.Author),
		pdf.WithCreator(DefaultCreator),
	)
	res, err := compose(ctx, b, opts, factory)
	if err != nil {
		return nil, 0, err
	}
	return res.Data, res.Pages, nil
}

func composeTranscript(ctx context.Context, b *document.Builder, opts Options) (*record.Transcript, []byte, error) {
	var rec *record.Surface
	factory := func(paper geometry.Size, margins geometry.Margins) (render.Surface, error) {
		s, err := record.New(paper, margins)
		rec = s
		return s, err
	}
	res, err := compose(ctx, b, opts, factory)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, errors.New(errors.ErrCodeInternal, "recorder was not created")
	}
	tr, err := rec.Finish()
	if err != nil {
		return nil, nil, err
	}
	return tr, res.Data, nil
}

func compose(ctx context.Context, b *document.Builder, opts Options, f render.Factory) (*document.Result, error) {
	c, err := document.NewComposer(opts.Template,
		document.WithSurfaceFactory(f),
		document.WithLogger(opts.Logger),
	)
	if err != nil {
		return nil, err
	}
	return c.Compose(ctx, b)
}
