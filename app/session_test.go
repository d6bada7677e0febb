package app

import (
	"image"
	"log/slog"
	"math"
	"testing"

	"github.com/soocke/spotview-go/config"
	"github.com/soocke/spotview-go/domain/detect"
	"github.com/soocke/spotview-go/domain/load"
	"github.com/soocke/spotview-go/domain/view"
)

var testLogger = slog.New(slog.NewTextHandler(discard{}, nil))

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(config.DefaultConfig(), testLogger, 800, 600)
}

func TestSession_RejectsMutationsBeforeImage(t *testing.T) {
	s := newTestSession(t)
	s.Zoom(120)
	s.Pan(10, 10)
	if vp := s.Viewport(); vp.Scale != 0 || vp.X != 0 || vp.Y != 0 {
		t.Fatalf("mutations before load must be rejected, got %+v", vp)
	}
	if s.Ready() {
		t.Fatalf("session must not be ready without an image")
	}
}

func TestSession_SetImageResetsAndCenters(t *testing.T) {
	s := newTestSession(t)
	img := image.NewRGBA(image.Rect(0, 0, 1600, 1200))
	if err := s.SetImage(img); err != nil {
		t.Fatalf("set image: %v", err)
	}
	vp := s.Viewport()
	want := view.MinScale(vp, 1600, 1200) * 0.75
	if math.Abs(vp.Scale-want) > 1e-9 {
		t.Fatalf("scale: expected %v got %v", want, vp.Scale)
	}
	c := vp.ToScreen(view.Point{X: 800, Y: 600})
	if math.Abs(c.X-400) > 1e-6 || math.Abs(c.Y-300) > 1e-6 {
		t.Fatalf("image center should map to display center, got %+v", c)
	}
}

func TestSession_SetImageRejectsDegenerate(t *testing.T) {
	s := newTestSession(t)
	if err := s.SetImage(image.NewRGBA(image.Rect(0, 0, 0, 100))); err != load.ErrDegenerateImage {
		t.Fatalf("expected ErrDegenerateImage, got %v", err)
	}
	if err := s.SetImage(nil); err == nil {
		t.Fatalf("expected error for nil image")
	}
}

func TestSession_SecondLoadResetsOverlays_FailedLoadPreserves(t *testing.T) {
	s := newTestSession(t)
	if err := s.SetImage(image.NewRGBA(image.Rect(0, 0, 1000, 1000))); err != nil {
		t.Fatal(err)
	}
	s.AddDetections([]detect.Detection{{X: 10, Y: 10, W: 4, H: 4}}, view.Point{X: 320, Y: 320}, 640, 640)
	if s.Store().Len() != 1 {
		t.Fatalf("expected 1 stored detection, got %d", s.Store().Len())
	}
	before := s.Viewport()

	// Failed load: degenerate image leaves image, viewport and overlays.
	if err := s.SetImage(image.NewRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Fatalf("expected failure")
	}
	if s.Store().Len() != 1 || s.Viewport() != before || s.Image() == nil {
		t.Fatalf("failed load must not mutate session state")
	}

	// Successful second load resets overlays and recenters.
	if err := s.SetImage(image.NewRGBA(image.Rect(0, 0, 500, 500))); err != nil {
		t.Fatal(err)
	}
	if s.Store().Len() != 0 {
		t.Fatalf("second load must clear overlays, len=%d", s.Store().Len())
	}
	if s.Viewport() == before {
		t.Fatalf("second load must recenter the viewport")
	}
}

func TestSession_ZoomHonorsConfiguredBounds(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MaxZoom = 10
	s := NewSession(cfg, testLogger, 800, 600)
	if err := s.SetImage(image.NewRGBA(image.Rect(0, 0, 1600, 1200))); err != nil {
		t.Fatal(err)
	}
	s.Zoom(1e12)
	if got := s.Viewport().Scale; math.Abs(got-10) > 1e-9 {
		t.Fatalf("expected max zoom 10, got %v", got)
	}
	s.Zoom(-1e12)
	lo := view.MinScale(s.Viewport(), 1600, 1200)
	if got := s.Viewport().Scale; math.Abs(got-lo) > 1e-9 {
		t.Fatalf("expected fit floor %v, got %v", lo, got)
	}
}

func TestSession_PanIsScaleInvariant(t *testing.T) {
	s := newTestSession(t)
	if err := s.SetImage(image.NewRGBA(image.Rect(0, 0, 100, 100))); err != nil {
		t.Fatal(err)
	}
	vp := s.Viewport()
	s.Pan(vp.Scale*10, 0) // ten image pixels worth of screen delta
	if got := s.Viewport().X - vp.X; math.Abs(got-10) > 1e-9 {
		t.Fatalf("expected +10 image units, got %v", got)
	}
}

func TestSession_AddDetectionsUsesCurrentViewport(t *testing.T) {
	s := newTestSession(t)
	if err := s.SetImage(image.NewRGBA(image.Rect(0, 0, 800, 600))); err != nil {
		t.Fatal(err)
	}
	// Force an identity viewport so patch coordinates map straight through.
	s.vp = view.Viewport{X: 0, Y: 0, Width: 800, Height: 600, Scale: 1}
	added := s.AddDetections([]detect.Detection{{X: 0, Y: 0}}, view.Point{X: 320, Y: 320}, 640, 640)
	if len(added) != 1 || added[0].X != 0 || added[0].Y != 0 {
		t.Fatalf("patch anchoring identity failed: %+v", added)
	}
}
