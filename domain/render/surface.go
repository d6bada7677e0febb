package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrNotInitialized is returned when a drawing operation runs before a
// surface exists. Fatal to the calling operation; not retried internally.
var ErrNotInitialized = errors.New("render: surface not initialized")

// Surface is the addressable 2D raster the driver draws onto. It supports
// rectangle fill, blits with independent source and destination rectangles,
// centered text at a fixed size, and pixel-block reads.
type Surface interface {
	Size() (w, h int)
	Fill(r image.Rectangle, c color.Color)
	Blit(src image.Image, sr, dr image.Rectangle)
	Text(s string, center image.Point, c color.Color)
	Read(r image.Rectangle) *image.RGBA
}

// ImageSurface is a software Surface backed by an *image.RGBA. Scaled blits
// use the nearest-neighbour scaler; text uses the bundled Go Regular face at
// a fixed pixel size, independent of the viewport scale.
type ImageSurface struct {
	img  *image.RGBA
	face font.Face
}

// NewImageSurface allocates a w x h surface with labels rendered at fontSize
// pixels.
func NewImageSurface(w, h int, fontSize float64) (*ImageSurface, error) {
	if w < 0 || h < 0 {
		return nil, errors.New("render: negative surface dimensions")
	}
	if fontSize <= 0 {
		fontSize = 13
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: fontSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	return &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, w, h)), face: face}, nil
}

// Size returns the surface dimensions in pixels.
func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the backing raster. Contents are discarded; the caller
// renders the next frame immediately after.
func (s *ImageSurface) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Fill paints r with c, compositing alpha over the existing pixels.
func (s *ImageSurface) Fill(r image.Rectangle, c color.Color) {
	draw.Draw(s.img, r.Intersect(s.img.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Over)
}

// Blit stretches the sr region of src over the dr region of the surface.
func (s *ImageSurface) Blit(src image.Image, sr, dr image.Rectangle) {
	if src == nil || sr.Empty() || dr.Empty() {
		return
	}
	xdraw.NearestNeighbor.Scale(s.img, dr, src, sr, xdraw.Over, nil)
}

// Text draws a string centered on the given point.
func (s *ImageSurface) Text(text string, center image.Point, c color.Color) {
	if text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  s.img,
		Src:  &image.Uniform{C: c},
		Face: s.face,
	}
	width := d.MeasureString(text)
	m := s.face.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.I(center.X) - width/2,
		Y: fixed.I(center.Y) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(text)
}

// Read copies the pixel block at r, clamped to the surface bounds. The copy
// is independent of the surface; its bounds start at (0,0).
func (s *ImageSurface) Read(r image.Rectangle) *image.RGBA {
	r = r.Intersect(s.img.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), s.img, r.Min, draw.Src)
	return out
}

// RGBA exposes the backing raster for display, e.g. PNG encoding into a
// photo widget. Callers must treat it as read-only.
func (s *ImageSurface) RGBA() *image.RGBA { return s.img }
