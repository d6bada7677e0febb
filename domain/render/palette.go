package render

import (
	"fmt"
	"image/color"
	"math"
)

// paletteHex is the fixed class color cycle. Class indexes wrap modulo the
// palette length.
var paletteHex = [...]string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231", "#911eb4",
	"#46f0f0", "#f032e6", "#bcf60c", "#fabebe", "#008080", "#e6beff",
	"#9a6324", "#fffac8", "#800000", "#aaffc3", "#808000", "#ffd8b1",
	"#000075", "#808080", "#ffffff", "#000000",
}

// PaletteSize is the number of distinct class colors before the cycle wraps.
const PaletteSize = len(paletteHex)

// ClassColor returns the palette color for a class index with the given
// opacity. Alpha is deliberately a parameter at every call site; there is no
// global overlay opacity.
func ClassColor(class int, alpha float64) color.NRGBA {
	c, _ := ParseHex(paletteHex[wrap(class)])
	c.A = alphaByte(alpha)
	return c
}

// ClassHex returns the palette entry for a class index as "#rrggbbaa", the
// two-digit alpha byte being round(alpha*255).
func ClassHex(class int, alpha float64) string {
	return fmt.Sprintf("%s%02x", paletteHex[wrap(class)], alphaByte(alpha))
}

func wrap(class int) int {
	i := class % PaletteSize
	if i < 0 {
		i += PaletteSize
	}
	return i
}

func alphaByte(alpha float64) uint8 {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return uint8(math.Round(alpha * 255))
}

// ParseHex parses "#rrggbb" or "#rrggbbaa" into an NRGBA color. Alpha
// defaults to opaque when absent.
func ParseHex(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	switch len(s) {
	case 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
	case 9:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
			return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
	default:
		return color.NRGBA{}, fmt.Errorf("parse color %q: bad length", s)
	}
	return c, nil
}
