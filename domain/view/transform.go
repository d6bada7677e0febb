package view

// Transform operations between image space and screen space, plus the
// zoom/pan constraint policy. All mutations happen in place on the Viewport;
// callers trigger a re-render afterwards. Nothing here draws.

// ResetForImage sets the scale to the fit-to-window minimum times margin
// (margin < 1 leaves a border around the image) and centers the image in the
// display. Called on every successful image load and on an explicit center
// request.
func (vp *Viewport) ResetForImage(imgW, imgH int, margin float64) {
	if vp == nil {
		return
	}
	if margin <= 0 {
		margin = 1
	}
	vp.Scale = MinScale(*vp, imgW, imgH) * margin
	vp.X = float64(imgW)/2 - (float64(vp.Width)/2)/vp.Scale
	vp.Y = float64(imgH)/2 - (float64(vp.Height)/2)/vp.Scale
}

// Resize updates the display dimensions in place. It deliberately does not
// re-clamp the scale or re-center: a window resize must not cause a visual
// jump. The scale may transiently drop below MinScale until the next Zoom.
func (vp *Viewport) Resize(width, height int) {
	if vp == nil {
		return
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	vp.Width = width
	vp.Height = height
}

// Zoom adjusts the scale by delta*rate, clamped to [MinScale, maxZoom].
// The lower bound keeps the whole image reachable; the upper bound caps
// magnification.
func (vp *Viewport) Zoom(imgW, imgH int, delta, rate, maxZoom float64) {
	if vp == nil {
		return
	}
	s := vp.Scale + delta*rate
	if lo := MinScale(*vp, imgW, imgH); s < lo {
		s = lo
	}
	if s > maxZoom {
		s = maxZoom
	}
	vp.Scale = s
}

// Pan shifts the viewport by a screen-space delta. Dividing by the scale
// keeps panning speed constant regardless of zoom. X/Y are unbounded;
// panning past the image edge shows background fill.
func (vp *Viewport) Pan(dx, dy float64) {
	if vp == nil || vp.Scale <= 0 {
		return
	}
	vp.X += dx / vp.Scale
	vp.Y += dy / vp.Scale
}

// ToScreen maps an image-space point to screen space.
func (vp Viewport) ToScreen(p Point) Point {
	return Point{
		X: (p.X - vp.X) * vp.Scale,
		Y: (p.Y - vp.Y) * vp.Scale,
	}
}

// ToImage maps a screen-space point to image space. It is the exact
// algebraic inverse of ToScreen.
func (vp Viewport) ToImage(p Point) Point {
	return Point{
		X: p.X/vp.Scale + vp.X,
		Y: p.Y/vp.Scale + vp.Y,
	}
}
