package view

import (
	"image"

	"github.com/soocke/spotview-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// FrameDisplay owns the label showing the rendered viewport frame. It
// disposes the previous Tk photo before replacing it so off-screen pixel
// data does not accumulate across frames.
type FrameDisplay interface {
	Update(img image.Image)
	Reset()
}

type frameDisplay struct {
	label     *LabelWidget
	prevPhoto *Img
	width     int
	height    int
}

// NewFrameDisplay creates the display label at the given grid row, sized to
// the fixed viewport dimensions.
func NewFrameDisplay(row, width, height int) FrameDisplay {
	placeholder := image.NewRGBA(image.Rect(0, 0, width, height))
	photo := NewPhoto(Data(images.EncodePNG(placeholder)))
	label := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(label, Row(row), Column(0), Columnspan(6), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
	return &frameDisplay{label: label, prevPhoto: photo, width: width, height: height}
}

func (v *frameDisplay) Update(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(img)
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	newPhoto := NewPhoto(Data(pngBytes))
	v.prevPhoto = newPhoto
	v.label.Configure(Image(newPhoto))
}

func (v *frameDisplay) Reset() {
	if v == nil || v.label == nil {
		return
	}
	v.Update(image.NewRGBA(image.Rect(0, 0, v.width, v.height)))
}
