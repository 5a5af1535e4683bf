// Package render defines the drawing surface documents are composed on.
//
// # Overview
//
// A [Surface] is the rendering backend: it owns pages, nested bounding
// boxes, the text cursor and the "repeat on every page" primitive. Regions
// never talk to a backend directly; they only use the Surface contract.
//
// Shipped surfaces live in subpackages:
//
//   - [record]: in-memory transcript, rendered as JSON
//   - [svg]: one SVG page per document page
//   - [pdf]: PDF through gofpdf
//
// # Coordinates
//
// Coordinates are points inside the current bounding box with the origin at
// its bottom-left corner; a box is positioned by its top-left corner. The
// outermost box is the page's margin box.
//
// # Repeaters
//
// [Surface.RepeatAcrossPages] stores a callback. When [Surface.Render] runs,
// each stored callback is replayed once per page, in registration order, with
// the bounding boxes that were active at registration. This is why the body
// is drawn before the header and footer: by the time repeaters replay, the
// page count is final.
//
// # Page Numbers
//
// [FormatPageNumber] expands the <page> and <total> placeholders. The shown
// number is the zero-based page index plus [NumberingOptions.StartCountAt].
//
// # Format Conversion
//
// [ToPNG] converts an SVG page to PNG using the external rsvg-convert tool.
//
// [record]: github.com/matzehuels/folio/pkg/render/record
// [svg]: github.com/matzehuels/folio/pkg/render/svg
// [pdf]: github.com/matzehuels/folio/pkg/render/pdf
package render
