// Package geometry computes where the header, body and footer of a page go.
//
// All coordinates are PDF points in the page's margin box, with the origin at
// the bottom-left corner and y growing upwards. A [Box] is anchored at its
// top-left corner, so a header box sits at (0, page height) and extends
// downwards.
//
//	┌──────────────────────────┐ ← page.Height
//	│ header  (height)         │
//	│ bottom_padding           │
//	├──────────────────────────┤ ← body.Top
//	│                          │
//	│ body    (body.Height)    │
//	│                          │
//	├──────────────────────────┤
//	│ top_padding              │
//	│ footer  (height)         │
//	└──────────────────────────┘ ← 0
//
// The footer is split into three columns: a left spacer, the centered
// content column and a right column holding the page number.
package geometry
