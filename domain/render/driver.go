package render

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/soocke/spotview-go/domain/overlay"
	"github.com/soocke/spotview-go/domain/view"
)

// Driver rasterizes the session state onto a Surface once per frame. It
// holds no frame-to-frame state beyond instrumentation counters, so a frame
// render is idempotent with respect to the model.
type Driver struct {
	logger *slog.Logger
	labels []string

	frames     atomic.Uint64
	frameNanos atomic.Uint64
	lastFrame  atomic.Int64 // unix nanos of the most recent frame
}

// RenderStats summarises frame rendering for instrumentation.
type RenderStats struct {
	Frames    uint64
	AvgFrame  time.Duration
	LastFrame time.Time
}

// NewDriver constructs a render driver. labels maps class indexes to display
// names; missing entries fall back to a numeric label.
func NewDriver(logger *slog.Logger, labels []string) *Driver {
	return &Driver{logger: logger, labels: labels}
}

// Label returns the display name for a class index.
func (d *Driver) Label(class int) string {
	if d != nil && class >= 0 && class < len(d.labels) {
		return d.labels[class]
	}
	return fmt.Sprintf("class %d", class)
}

// Frame draws one complete frame: background fill, the visible image region
// stretched to the display, then every visible overlay rectangle with its
// label. alpha is the overlay fill opacity and is always explicit.
func (d *Driver) Frame(s Surface, vp view.Viewport, img image.Image, store *overlay.Store, bg color.Color, alpha float64) error {
	if s == nil {
		return ErrNotInitialized
	}
	start := time.Now()
	w, h := s.Size()
	s.Fill(image.Rect(0, 0, w, h), bg)

	if img != nil && vp.Scale > 0 {
		d.blitVisible(s, vp, img)
	}

	if store != nil && vp.Scale > 0 {
		for _, o := range store.VisibleIn(vp) {
			d.drawObject(s, vp, o, alpha)
		}
	}

	elapsed := time.Since(start)
	d.frames.Add(1)
	d.frameNanos.Add(uint64(elapsed.Nanoseconds()))
	d.lastFrame.Store(start.UnixNano())
	return nil
}

// blitVisible performs the single stretched blit that realizes pan and zoom:
// image sub-rectangle [vp.X, vp.Y, Width/scale, Height/scale] onto the full
// display. The source is clipped to the image bounds and the destination
// derived through ToScreen, so panning past an edge leaves background.
func (d *Driver) blitVisible(s Surface, vp view.Viewport, img image.Image) {
	b := img.Bounds()
	visW, visH := vp.VisibleSize()

	x0 := math.Max(vp.X, float64(b.Min.X))
	y0 := math.Max(vp.Y, float64(b.Min.Y))
	x1 := math.Min(vp.X+visW, float64(b.Max.X))
	y1 := math.Min(vp.Y+visH, float64(b.Max.Y))
	if x1 <= x0 || y1 <= y0 {
		return
	}

	sr := image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x1)), int(math.Ceil(y1)),
	).Intersect(b)
	if sr.Empty() {
		return
	}

	tl := vp.ToScreen(view.Point{X: float64(sr.Min.X), Y: float64(sr.Min.Y)})
	br := vp.ToScreen(view.Point{X: float64(sr.Max.X), Y: float64(sr.Max.Y)})
	dr := image.Rect(
		int(math.Round(tl.X)), int(math.Round(tl.Y)),
		int(math.Round(br.X)), int(math.Round(br.Y)),
	)
	s.Blit(img, sr, dr)
}

func (d *Driver) drawObject(s Surface, vp view.Viewport, o overlay.Object, alpha float64) {
	c := vp.ToScreen(view.Point{X: o.X, Y: o.Y})
	halfW := o.W * vp.Scale / 2
	halfH := o.H * vp.Scale / 2
	r := image.Rect(
		int(math.Round(c.X-halfW)), int(math.Round(c.Y-halfH)),
		int(math.Round(c.X+halfW)), int(math.Round(c.Y+halfH)),
	)
	s.Fill(r, ClassColor(o.Class, alpha))
	s.Text(d.Label(o.Class), image.Pt(int(math.Round(c.X)), int(math.Round(c.Y))), color.White)
}

// Highlight dims everything outside a centered rectangle of the given size,
// marking the sub-region that would be sent for detection. The rectangle is
// clamped so it never extends past the display. Returns the clamped rect.
func (d *Driver) Highlight(s Surface, center, size image.Point, dim color.Color) (image.Rectangle, error) {
	if s == nil {
		return image.Rectangle{}, ErrNotInitialized
	}
	w, h := s.Size()
	r := clampPatchRect(w, h, center, size)
	// four bands: top, bottom, left, right
	s.Fill(image.Rect(0, 0, w, r.Min.Y), dim)
	s.Fill(image.Rect(0, r.Max.Y, w, h), dim)
	s.Fill(image.Rect(0, r.Min.Y, r.Min.X, r.Max.Y), dim)
	s.Fill(image.Rect(r.Max.X, r.Min.Y, w, r.Max.Y), dim)
	return r, nil
}

// CapturePatch reads the raw pixel block at the same clamped rectangle
// Highlight uses, for handoff to a detector.
func (d *Driver) CapturePatch(s Surface, center, size image.Point) (*image.RGBA, image.Rectangle, error) {
	if s == nil {
		return nil, image.Rectangle{}, ErrNotInitialized
	}
	w, h := s.Size()
	r := clampPatchRect(w, h, center, size)
	return s.Read(r), r, nil
}

// clampPatchRect positions a size-sized rectangle around center, clamped per
// axis to [0, surface-size]. Oversized requests shrink to the surface.
func clampPatchRect(w, h int, center, size image.Point) image.Rectangle {
	if size.X > w {
		size.X = w
	}
	if size.Y > h {
		size.Y = h
	}
	if size.X < 0 {
		size.X = 0
	}
	if size.Y < 0 {
		size.Y = 0
	}
	x := clampInt(center.X-size.X/2, 0, w-size.X)
	y := clampInt(center.Y-size.Y/2, 0, h-size.Y)
	return image.Rect(x, y, x+size.X, y+size.Y)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LogStats emits a debug line with the current frame counters.
func (d *Driver) LogStats() {
	if d == nil || d.logger == nil {
		return
	}
	st := d.Stats()
	d.logger.Debug("render.stats", "frames", st.Frames, "avg_frame", st.AvgFrame)
}

// Stats returns a snapshot of the frame counters.
func (d *Driver) Stats() RenderStats {
	frames := d.frames.Load()
	total := d.frameNanos.Load()
	var avg time.Duration
	if frames > 0 {
		avg = time.Duration(total / frames)
	}
	var last time.Time
	if n := d.lastFrame.Load(); n != 0 {
		last = time.Unix(0, n)
	}
	return RenderStats{Frames: frames, AvgFrame: avg, LastFrame: last}
}
