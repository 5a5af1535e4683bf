// Package pkg provides the libraries behind Folio, a paged document renderer.
//
// # Overview
//
// Every Folio page has three regions: a header, a body and a footer. Settings
// from several sources are merged into one tree, the tree fixes the page
// geometry, and content is drawn into each region through a [render.Surface].
// The pkg directory is organized into these areas:
//
//  1. [config] and [style] - settings trees, merging and the style cascade
//  2. [geometry] and [region] - page boxes and the three page regions
//  3. [document] - the composer that builds whole documents
//  4. [content] and [table] - Markdown bodies and tables drawn into regions
//  5. [render] - the surface interface and its PDF, SVG and recorder backends
//  6. [pipeline], [cache] and [server] - orchestration, caching and the HTTP API
//
// # Architecture
//
// The data flow of one build:
//
//	settings files + inline settings
//	         ↓
//	    [config] Merge (first source wins, branches merge per key)
//	         ↓
//	    [geometry] margin box and body bounds
//	         ↓
//	    [document] Composer (header, body and footer per page)
//	         ↓
//	    [render] surface → PDF / SVG / PNG / JSON
//
// # Quick Start
//
//	composer, err := document.NewComposer(document.DefaultTemplate())
//	if err != nil {
//	    return err
//	}
//	body, err := content.Markdown([]byte("# Report\n\nHello."))
//	if err != nil {
//	    return err
//	}
//	pdf, err := composer.Build(ctx, &document.Builder{
//	    Settings: config.Tree{"page_size": "LETTER"},
//	    Contents: document.Contents{Body: body},
//	})
//
// # Coordinates
//
// Positions are in points with the origin at the bottom-left of the margin
// box and y growing upward. Boxes are anchored at their top-left corner.
//
// [config]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/config
// [style]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/style
// [geometry]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/geometry
// [region]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/region
// [document]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/document
// [content]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/content
// [table]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/table
// [render]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/render
// [render.Surface]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/render#Surface
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/folio/pkg/server
package pkg
