package detect

import "image"

// Detection is a single detected object in patch-local coordinates: X/Y is
// the box center relative to the capture patch origin, W/H the box size in
// patch pixels, Class the index into the consumer's class list.
type Detection struct {
	X     float64
	Y     float64
	W     float64
	H     float64
	Class int
}

// Detector produces detections for a captured patch. Implementations must
// treat the patch as read-only.
type Detector interface {
	Detect(patch *image.RGBA) ([]Detection, error)
}
