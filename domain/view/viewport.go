package view

import "math"

// Point is a 2D coordinate in either image space or screen space.
type Point struct {
	X float64
	Y float64
}

// Viewport describes the window onto the source image that is currently
// mapped to the display surface. X/Y are the image-space coordinates of the
// display's top-left corner; Width/Height are display pixels; Scale is
// display pixels per image pixel. The zero value is not usable until
// ResetForImage establishes a positive scale.
type Viewport struct {
	X      float64
	Y      float64
	Width  int
	Height int
	Scale  float64
}

// MinScale returns the smallest scale at which the whole image is visible:
// the scale that makes the image exactly fill the shorter display dimension.
// A zero-size image yields +Inf; loaders reject such images before any scale
// computation, so callers never divide by zero here.
func MinScale(vp Viewport, imgW, imgH int) float64 {
	if imgW <= 0 || imgH <= 0 {
		return math.Inf(1)
	}
	sx := float64(vp.Width) / float64(imgW)
	sy := float64(vp.Height) / float64(imgH)
	if sx < sy {
		return sx
	}
	return sy
}

// VisibleSize returns the image-space width and height covered by the
// viewport at its current scale.
func (vp Viewport) VisibleSize() (w, h float64) {
	if vp.Scale <= 0 {
		return 0, 0
	}
	return float64(vp.Width) / vp.Scale, float64(vp.Height) / vp.Scale
}
