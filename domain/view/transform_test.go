package view

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestMinScale_ShorterDimensionWins(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}
	// 1600x600 image: sx=0.5, sy=1.0 -> 0.5
	if got := MinScale(vp, 1600, 600); !almostEqual(got, 0.5) {
		t.Fatalf("expected 0.5, got %v", got)
	}
	// 400x1200 image: sx=2.0, sy=0.5 -> 0.5
	if got := MinScale(vp, 400, 1200); !almostEqual(got, 0.5) {
		t.Fatalf("expected 0.5, got %v", got)
	}
}

func TestMinScale_DegenerateImageIsUnconstrained(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}
	if got := MinScale(vp, 0, 600); !math.IsInf(got, 1) {
		t.Fatalf("zero-width image should yield +Inf, got %v", got)
	}
}

func TestResetForImage_ScaleAndCentering(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}
	vp.ResetForImage(1600, 1200, 0.75)

	want := MinScale(vp, 1600, 1200) * 0.75
	if !almostEqual(vp.Scale, want) {
		t.Fatalf("scale: expected %v got %v", want, vp.Scale)
	}
	// The image center must map to the display center.
	c := vp.ToScreen(Point{X: 800, Y: 600})
	if !almostEqual(c.X, 400) || !almostEqual(c.Y, 300) {
		t.Fatalf("image center maps to (%v,%v), expected (400,300)", c.X, c.Y)
	}
}

func TestResize_DoesNotReclampScale(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}
	vp.ResetForImage(1000, 1000, 0.75)
	before := vp
	vp.Resize(4000, 3000)
	if vp.Scale != before.Scale || vp.X != before.X || vp.Y != before.Y {
		t.Fatalf("resize must only touch dimensions: before=%+v after=%+v", before, vp)
	}
	if vp.Scale >= MinScale(vp, 1000, 1000) {
		t.Fatalf("test premise broken: enlarge should leave scale below the floor")
	}
	// The next zoom re-establishes the floor.
	vp.Zoom(1000, 1000, -1, 0.001, 10)
	if vp.Scale < MinScale(vp, 1000, 1000) {
		t.Fatalf("zoom must re-clamp to MinScale, got %v < %v", vp.Scale, MinScale(vp, 1000, 1000))
	}
}

func TestZoom_ClampsBothBounds(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}
	vp.ResetForImage(1600, 1200, 0.75)
	lo := MinScale(vp, 1600, 1200)

	deltas := []float64{-10000, -120, 0, 120, 5000, 1e9, -1e9}
	for _, d := range deltas {
		vp.Zoom(1600, 1200, d, 0.001, 10)
		if vp.Scale < lo-eps || vp.Scale > 10+eps {
			t.Fatalf("delta %v drove scale out of [%v,10]: %v", d, lo, vp.Scale)
		}
	}
	vp.Zoom(1600, 1200, 1e12, 0.001, 10)
	if !almostEqual(vp.Scale, 10) {
		t.Fatalf("expected saturation at 10, got %v", vp.Scale)
	}
	vp.Zoom(1600, 1200, -1e12, 0.001, 10)
	if !almostEqual(vp.Scale, lo) {
		t.Fatalf("expected saturation at MinScale %v, got %v", lo, vp.Scale)
	}
}

func TestPan_ScaleInvariantAndUnbounded(t *testing.T) {
	vp := Viewport{X: 0, Y: 0, Width: 800, Height: 600, Scale: 2}
	vp.Pan(100, -50)
	if !almostEqual(vp.X, 50) || !almostEqual(vp.Y, -25) {
		t.Fatalf("pan at scale 2: got (%v,%v), expected (50,-25)", vp.X, vp.Y)
	}
	// Panning far past the image edge is permitted.
	vp.Pan(-1e6, 0)
	if vp.X >= 0 {
		t.Fatalf("expected unbounded negative offset, got %v", vp.X)
	}
}

func TestTransform_RoundTrip(t *testing.T) {
	vps := []Viewport{
		{X: 0, Y: 0, Width: 800, Height: 600, Scale: 1},
		{X: -37.25, Y: 1021.5, Width: 1280, Height: 720, Scale: 0.31},
		{X: 512, Y: 512, Width: 100, Height: 100, Scale: 9.7},
	}
	pts := []Point{{0, 0}, {1, 1}, {-400.5, 12.125}, {4096, 2048}, {0.333, -0.333}}
	for _, vp := range vps {
		for _, p := range pts {
			if got := vp.ToImage(vp.ToScreen(p)); !almostEqual(got.X, p.X) || !almostEqual(got.Y, p.Y) {
				t.Fatalf("toImage(toScreen(%v)) = %v under %+v", p, got, vp)
			}
			if got := vp.ToScreen(vp.ToImage(p)); !almostEqual(got.X, p.X) || !almostEqual(got.Y, p.Y) {
				t.Fatalf("toScreen(toImage(%v)) = %v under %+v", p, got, vp)
			}
		}
	}
}

func TestVisibleSize(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600, Scale: 2}
	w, h := vp.VisibleSize()
	if !almostEqual(w, 400) || !almostEqual(h, 300) {
		t.Fatalf("expected 400x300 image units, got %vx%v", w, h)
	}
}
