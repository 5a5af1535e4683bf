// Package document composes paged documents from a template and a builder.
//
// A [Template] carries the house settings, the style sheet and optional
// header/body/footer content shared by many documents. A [Builder] carries
// per-document settings and content. The [Composer] merges both over the
// library defaults, computes region geometry, draws the regions and renders
// the surface:
//
//	tpl := &document.Template{
//	    Settings: config.Tree{"footer": config.Tree{"numbering_string": "<page> / <total>"}},
//	    Sheet:    style.DefaultSheet(),
//	}
//	c, err := document.NewComposer(tpl)
//	pdf, err := c.Build(ctx, &document.Builder{
//	    Contents: document.Contents{
//	        Body: func(cv *document.Canvas) {
//	            cv.Text("h1", "Quarterly report")
//	            cv.Text("body", "Revenue grew.")
//	        },
//	    },
//	})
//
// # Settings Precedence
//
// Builder settings outrank template settings, which outrank [config.Defaults]
// and [config.ComponentDefaults]. See package config for the merge rules.
//
// # Draw Order
//
// The body is drawn first so that the page count is final before the header
// and footer repeat across pages. Template header and body content run
// before builder content; for the footer, builder content runs first.
package document
