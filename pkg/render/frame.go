package render

import "github.com/matzehuels/folio/pkg/geometry"

// Frames is the stack of nested bounding boxes a surface draws into. Boxes
// are stored in margin box coordinates; each keeps its own text cursor,
// measured downwards from its top edge.
type Frames struct {
	frames []frame
}

type frame struct {
	box    geometry.Box
	cursor float64
}

// NewFrames starts a stack at the margin box.
func NewFrames(bounds Size) *Frames {
	root := geometry.Box{Origin: Point{X: 0, Y: bounds.Height}, Width: bounds.Width, Height: bounds.Height}
	return &Frames{frames: []frame{{box: root}}}
}

// Push opens a box relative to the current one and returns it in absolute
// coordinates.
func (f *Frames) Push(origin Point, width, height float64) geometry.Box {
	parent := f.Current()
	box := geometry.Box{
		Origin: Point{X: parent.Left() + origin.X, Y: parent.Bottom() + origin.Y},
		Width:  width,
		Height: height,
	}
	f.frames = append(f.frames, frame{box: box})
	return box
}

// Pop closes the innermost box. The margin box is never popped.
func (f *Frames) Pop() {
	if len(f.frames) > 1 {
		f.frames = f.frames[:len(f.frames)-1]
	}
}

// Depth returns the number of open boxes, counting the margin box.
func (f *Frames) Depth() int { return len(f.frames) }

// Current returns the innermost box.
func (f *Frames) Current() geometry.Box {
	return f.frames[len(f.frames)-1].box
}

// CursorY returns the absolute y of the text cursor in the innermost box.
func (f *Frames) CursorY() float64 {
	fr := f.frames[len(f.frames)-1]
	return fr.box.Top() - fr.cursor
}

// Fits reports whether a line of the given height fits below the cursor. An
// empty box accepts one line regardless of its height.
func (f *Frames) Fits(height float64) bool {
	fr := f.frames[len(f.frames)-1]
	return fr.cursor == 0 || fr.cursor+height <= fr.box.Height+1e-9
}

// Cursor returns the cursor offset below the top of the innermost box.
func (f *Frames) Cursor() float64 {
	return f.frames[len(f.frames)-1].cursor
}

// Remaining returns the height left below the cursor, never negative.
func (f *Frames) Remaining() float64 {
	fr := f.frames[len(f.frames)-1]
	if r := fr.box.Height - fr.cursor; r > 0 {
		return r
	}
	return 0
}

// Advance moves the cursor down.
func (f *Frames) Advance(height float64) {
	f.frames[len(f.frames)-1].cursor += height
}

// ResetCursors moves every cursor back to the top of its box, as after a
// page break.
func (f *Frames) ResetCursors() {
	for i := range f.frames {
		f.frames[i].cursor = 0
	}
}

// Snapshot returns an independent copy with fresh cursors.
func (f *Frames) Snapshot() *Frames {
	out := &Frames{frames: make([]frame, len(f.frames))}
	for i, fr := range f.frames {
		out.frames[i] = frame{box: fr.box}
	}
	return out
}

// Repeater is a callback registered with RepeatAcrossPages together with the
// boxes that were open at registration.
type Repeater struct {
	Body   func()
	Frames *Frames
}
