package app

import (
	"errors"
	"image"
	"image/color"
	"log/slog"

	"github.com/soocke/spotview-go/config"
	"github.com/soocke/spotview-go/domain/detect"
	"github.com/soocke/spotview-go/domain/load"
	"github.com/soocke/spotview-go/domain/overlay"
	"github.com/soocke/spotview-go/domain/render"
	"github.com/soocke/spotview-go/domain/view"
)

// Session owns the per-image state of the viewer: the current image, the
// viewport onto it, and the overlay collection. All methods are synchronous
// and must be called from a single event loop (the Tk loop in this app);
// nothing here is safe for concurrent writers.
type Session struct {
	cfg    *config.Config
	logger *slog.Logger

	vp     view.Viewport
	img    image.Image
	store  *overlay.Store
	driver *render.Driver

	bg  color.NRGBA
	dim color.NRGBA
}

// NewSession builds a session for a width x height display. No image is
// loaded yet; viewport mutations are rejected until SetImage succeeds.
func NewSession(cfg *config.Config, logger *slog.Logger, width, height int) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bg, err := render.ParseHex(cfg.Background)
	if err != nil {
		bg = color.NRGBA{0x1e, 0x29, 0x3b, 0xff}
		if logger != nil {
			logger.Warn("session: bad background color, using default", "value", cfg.Background, "error", err)
		}
	}
	dim := color.NRGBA{A: alphaByte(cfg.HighlightAlpha)}
	return &Session{
		cfg:    cfg,
		logger: logger,
		vp:     view.Viewport{Width: width, Height: height},
		store:  overlay.NewStore(),
		driver: render.NewDriver(logger, cfg.ClassNames),
		bg:     bg,
		dim:    dim,
	}
}

func alphaByte(a float64) uint8 {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return uint8(a*255 + 0.5)
}

// Ready reports whether an image has been loaded.
func (s *Session) Ready() bool { return s != nil && s.img != nil }

// SetImage replaces the session image wholesale: the overlay collection is
// cleared and the viewport re-centered. A nil or degenerate image is
// rejected and the previous image, viewport and overlays stay untouched.
func (s *Session) SetImage(img image.Image) error {
	if s == nil {
		return errors.New("nil session")
	}
	if img == nil {
		return errors.New("session: nil image")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return load.ErrDegenerateImage
	}
	s.img = img
	s.store.Reset()
	s.vp.ResetForImage(b.Dx(), b.Dy(), s.cfg.FitMargin)
	if s.logger != nil {
		s.logger.Info("session.image", "width", b.Dx(), "height", b.Dy(), "scale", s.vp.Scale)
	}
	return nil
}

// Center re-runs the load-time reset: fit-with-margin scale, image centered.
func (s *Session) Center() {
	if !s.Ready() {
		return
	}
	b := s.img.Bounds()
	s.vp.ResetForImage(b.Dx(), b.Dy(), s.cfg.FitMargin)
}

// Resize updates the display dimensions. Allowed before an image loads so
// the window can settle; it never touches scale or position.
func (s *Session) Resize(width, height int) {
	if s == nil {
		return
	}
	s.vp.Resize(width, height)
}

// Zoom applies a wheel delta through the configured rate, clamped between
// fit-to-window and the configured maximum magnification.
func (s *Session) Zoom(delta float64) {
	if !s.Ready() {
		if s != nil && s.logger != nil {
			s.logger.Debug("session: zoom before image, rejected")
		}
		return
	}
	b := s.img.Bounds()
	s.vp.Zoom(b.Dx(), b.Dy(), delta, s.cfg.ZoomRate, s.cfg.MaxZoom)
}

// Pan shifts the viewport by a screen-space delta.
func (s *Session) Pan(dx, dy float64) {
	if !s.Ready() {
		if s != nil && s.logger != nil {
			s.logger.Debug("session: pan before image, rejected")
		}
		return
	}
	s.vp.Pan(dx, dy)
}

// Viewport returns a copy of the current viewport.
func (s *Session) Viewport() view.Viewport {
	if s == nil {
		return view.Viewport{}
	}
	return s.vp
}

// Image returns the current image, or nil before the first load.
func (s *Session) Image() image.Image {
	if s == nil {
		return nil
	}
	return s.img
}

// Store exposes the overlay collection.
func (s *Session) Store() *overlay.Store {
	if s == nil {
		return nil
	}
	return s.store
}

// Driver exposes the render driver, e.g. for stats.
func (s *Session) Driver() *render.Driver {
	if s == nil {
		return nil
	}
	return s.driver
}

// AddDetections anchors a detector batch to the viewport state at capture
// time and appends the objects.
func (s *Session) AddDetections(dets []detect.Detection, anchor view.Point, patchW, patchH int) []overlay.Object {
	if !s.Ready() {
		return nil
	}
	return s.store.AddBatch(dets, anchor, patchW, patchH, s.vp)
}

// Render draws one frame of the current state onto surface.
func (s *Session) Render(surface render.Surface) error {
	if s == nil {
		return errors.New("nil session")
	}
	return s.driver.Frame(surface, s.vp, s.img, s.store, s.bg, s.cfg.OverlayAlpha)
}

// Highlight dims the display outside the centered patch rectangle, showing
// which region a detection request would capture.
func (s *Session) Highlight(surface render.Surface, center, size image.Point) (image.Rectangle, error) {
	if s == nil {
		return image.Rectangle{}, errors.New("nil session")
	}
	return s.driver.Highlight(surface, center, size, s.dim)
}

// CapturePatch reads the rendered pixels at the clamped patch rectangle for
// handoff to the detector.
func (s *Session) CapturePatch(surface render.Surface, center, size image.Point) (*image.RGBA, image.Rectangle, error) {
	if s == nil {
		return nil, image.Rectangle{}, errors.New("nil session")
	}
	return s.driver.CapturePatch(surface, center, size)
}
