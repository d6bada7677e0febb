// Package load supplies decoded rasters to the viewer session: files,
// screen captures, and a generated placeholder. Decoding failures are
// reported to the caller and never mutate session state.
package load

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"

	"github.com/disintegration/imaging"
)

// ErrDegenerateImage rejects zero-width or zero-height rasters before any
// scale computation can divide by zero.
var ErrDegenerateImage = errors.New("load: degenerate image (zero width or height)")

// Open decodes the image at path, applying EXIF auto-orientation.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return checked(img)
}

// Decode decodes an image from r.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	return checked(img)
}

func checked(img image.Image) (image.Image, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrDegenerateImage
	}
	return img, nil
}

// Result carries one asynchronous load outcome.
type Result struct {
	Img  image.Image
	Path string
	Err  error
}

// Start decodes path on its own goroutine and delivers exactly one Result on
// the returned channel, then closes it. The consumer applies the image (or
// drops the error) on its own event loop, so viewport state only changes
// after decoding has succeeded.
func Start(path string, logger *slog.Logger) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		img, err := Open(path)
		if err != nil && logger != nil {
			logger.Error("load", "path", path, "error", err)
		}
		ch <- Result{Img: img, Path: path, Err: err}
	}()
	return ch
}

// Placeholder returns a generated checkerboard raster shown before the first
// image loads.
func Placeholder(w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	light := color.RGBA{0x64, 0x74, 0x8b, 0xff}
	dark := color.RGBA{0x47, 0x55, 0x69, 0xff}
	const cell = 16
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}
