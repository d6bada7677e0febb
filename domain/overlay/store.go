// Package overlay holds the mutable collection of detected objects anchored
// to the current image, in image-space coordinates.
package overlay

import (
	"github.com/google/uuid"

	"github.com/soocke/spotview-go/domain/detect"
	"github.com/soocke/spotview-go/domain/view"
)

// Object is a detected object in image space. X/Y is the center, W/H the
// size in image pixels. ID is a stable identifier assigned at insertion so
// consumers can reference individual detections later.
type Object struct {
	ID    uuid.UUID
	X     float64
	Y     float64
	W     float64
	H     float64
	Class int
}

// Store is an insertion-ordered collection of Objects. Order is rendering
// order; duplicates are permitted. No synchronization: all mutation happens
// on the UI loop, like the rest of the session state.
type Store struct {
	objects []Object
}

func NewStore() *Store { return &Store{} }

// AddBatch converts detections from patch-local coordinates to image space
// and appends them. The patch of patchW x patchH screen pixels was centered
// at anchor (a screen-space point); the incoming coordinate plus the patch's
// screen placement composes with the screen-to-image transform of vp.
// Returns the stored objects for the batch.
func (s *Store) AddBatch(dets []detect.Detection, anchor view.Point, patchW, patchH int, vp view.Viewport) []Object {
	if s == nil || vp.Scale <= 0 {
		return nil
	}
	added := make([]Object, 0, len(dets))
	for _, d := range dets {
		obj := Object{
			ID:    uuid.New(),
			X:     d.X/vp.Scale + vp.X + anchor.X - float64(patchW)/2,
			Y:     d.Y/vp.Scale + vp.Y + anchor.Y - float64(patchH)/2,
			W:     d.W / vp.Scale,
			H:     d.H / vp.Scale,
			Class: d.Class,
		}
		s.objects = append(s.objects, obj)
		added = append(added, obj)
	}
	return added
}

// VisibleIn returns the objects whose center lies within the image-space
// rectangle currently covered by vp. Both bounds are inclusive: an object
// sitting exactly on the far edge is still visible. The filter is
// non-destructive; culled objects remain stored.
func (s *Store) VisibleIn(vp view.Viewport) []Object {
	if s == nil || vp.Scale <= 0 {
		return nil
	}
	w, h := vp.VisibleSize()
	maxX := vp.X + w
	maxY := vp.Y + h
	var out []Object
	for _, o := range s.objects {
		if o.X >= vp.X && o.X <= maxX && o.Y >= vp.Y && o.Y <= maxY {
			out = append(out, o)
		}
	}
	return out
}

// Len reports the number of stored objects.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.objects)
}

// All returns the stored objects in insertion order. The returned slice is
// shared; callers must not mutate it.
func (s *Store) All() []Object {
	if s == nil {
		return nil
	}
	return s.objects
}

// Reset clears the collection. Called exactly when a new image is loaded.
func (s *Store) Reset() {
	if s == nil {
		return
	}
	s.objects = nil
}
