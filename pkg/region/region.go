// Package region draws the header, body and footer of a document.
//
// A region is bound to a surface, a box computed by package geometry and a
// repeat policy. Drawing a repeated region registers its content with the
// surface's repeat primitive, so the content runs once per page when the
// surface renders; a region that is not repeated draws once, on the page
// that is current at the time.
//
// Regions are single-use: each is drawn at most once per build.
package region

import (
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/geometry"
	"github.com/matzehuels/folio/pkg/render"
	"github.com/matzehuels/folio/pkg/style"
)

// Kind names a region.
type Kind string

// Region kinds.
const (
	KindHeader Kind = "header"
	KindBody   Kind = "body"
	KindFooter Kind = "footer"
)

// Scope describes where content is being drawn.
type Scope struct {
	Kind Kind
	// Box is the box content draws into, in margin box coordinates.
	Box geometry.Box
	// Style is the style injected by the region, or nil.
	Style *style.Definition
}

// ContentFunc draws caller content. It may run once per page.
type ContentFunc func(Scope)

// Region is a drawable part of a page.
type Region interface {
	Kind() Kind
	Box() geometry.Box
	Draw(content ContentFunc) error
}

type state int

const (
	idle state = iota
	drawing
	done
)

// frame holds what every region shares.
type frame struct {
	kind     Kind
	surface  render.Surface
	box      geometry.Box
	repeated bool
	state    state
}

func (f *frame) Kind() Kind        { return f.kind }
func (f *frame) Box() geometry.Box { return f.box }

// draw runs the lifecycle around fn, which establishes the bounding box.
func (f *frame) draw(fn func()) error {
	switch f.state {
	case drawing:
		return errors.New(errors.ErrCodeInternal, "%s region is already drawing", f.kind)
	case done:
		return errors.New(errors.ErrCodeInternal, "%s region was already drawn", f.kind)
	}
	f.state = drawing
	defer func() { f.state = done }()

	if f.repeated {
		f.surface.RepeatAcrossPages(fn)
	} else {
		fn()
	}
	return nil
}

func (f *frame) boundingBox(body func()) {
	f.surface.BoundingBox(f.box.Origin, f.box.Width, f.box.Height, body)
}

func requireSurface(s render.Surface, kind Kind) error {
	if s == nil {
		return errors.New(errors.ErrCodeInternal, "%s region needs a surface", kind)
	}
	return nil
}
