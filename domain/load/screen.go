package load

import (
	"image"

	"github.com/vova616/screenshot"
)

// Screen grabs the current screen contents as the image to view.
func Screen() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, err
	}
	if _, err := checked(img); err != nil {
		return nil, err
	}
	return img, nil
}
