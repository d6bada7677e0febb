package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodePNG encodes an image to PNG bytes for Tk photo widgets. Errors are
// ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// Thumbnail scales src down to fit within maxW x maxH preserving aspect
// ratio. If the source already fits, the original is returned.
func Thumbnail(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	return imaging.Fit(src, maxW, maxH, imaging.NearestNeighbor)
}
