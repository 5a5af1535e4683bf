package geometry

// Box is a rectangle anchored at its top-left corner.
type Box struct {
	Origin Point   `json:"origin"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Top returns the y coordinate of the upper edge.
func (b Box) Top() float64 { return b.Origin.Y }

// Bottom returns the y coordinate of the lower edge.
func (b Box) Bottom() float64 { return b.Origin.Y - b.Height }

// Left returns the x coordinate of the left edge.
func (b Box) Left() float64 { return b.Origin.X }

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.Origin.X + b.Width }

// Contains reports whether o lies entirely inside b.
func (b Box) Contains(o Box) bool {
	const eps = 1e-9
	return o.Left() >= b.Left()-eps && o.Right() <= b.Right()+eps &&
		o.Bottom() >= b.Bottom()-eps && o.Top() <= b.Top()+eps
}

// HeaderBox anchors the header at the top of the page.
func HeaderBox(page PageBounds, height float64) Box {
	return Box{Origin: Point{0, page.Height}, Width: page.Width, Height: height}
}

// BodyBox spans the page width between the header and footer reservations.
func BodyBox(page PageBounds, body BodyBounds) Box {
	return Box{Origin: Point{0, body.Top}, Width: page.Width, Height: body.Height}
}

// FooterBox anchors the footer at the bottom of the page.
func FooterBox(page PageBounds, height float64) Box {
	return Box{Origin: Point{0, height}, Width: page.Width, Height: height}
}

// Footer column proportions of the page width.
const (
	FooterLeftShare   = 0.15
	FooterCenterShare = 0.70
	FooterRightShare  = 0.15
)

// FooterColumns splits a footer box into spacer, content and page number
// columns. Origins are relative to the footer box.
func FooterColumns(footer Box) (left, center, right Box) {
	lw := footer.Width * FooterLeftShare
	cw := footer.Width * FooterCenterShare
	rw := footer.Width * FooterRightShare
	top := footer.Height

	left = Box{Origin: Point{0, top}, Width: lw, Height: footer.Height}
	center = Box{Origin: Point{lw, top}, Width: cw, Height: footer.Height}
	right = Box{Origin: Point{lw + cw, top}, Width: rw, Height: footer.Height}
	return left, center, right
}
