package detect

import (
	"errors"
	"image"
	"math"
)

// Template pairs a reference image with the class index it represents.
// Transparent template pixels (alpha==0) are masked out during matching.
type Template struct {
	Image image.Image
	Class int
}

// Options configures normalized cross-correlation matching.
type Options struct {
	Threshold      float64 // minimum NCC score for a positive match (default 0.80)
	Stride         int     // coarse scan stride (default 1)
	Refine         bool    // if true and Stride>1, rescan a window around the coarse best
	ReturnBestEven bool    // if true, emit the best candidate even below Threshold
}

// TemplateDetector finds known templates in a capture patch via masked
// grayscale normalized cross-correlation. At most one detection is emitted
// per template: the best-scoring window.
type TemplateDetector struct {
	templates []tmplState
	opts      Options
}

type tmplState struct {
	gray  []float64
	w, h  int
	mean  float64
	std   float64
	class int
}

// NewTemplateDetector precomputes grayscale statistics for every template.
// Templates with a zero dimension are rejected.
func NewTemplateDetector(templates []Template, opts Options) (*TemplateDetector, error) {
	if len(templates) == 0 {
		return nil, errors.New("no templates")
	}
	if opts.Threshold <= 0 {
		opts.Threshold = 0.80
	}
	if opts.Stride <= 0 {
		opts.Stride = 1
	}
	d := &TemplateDetector{opts: opts}
	for _, t := range templates {
		st, err := precompute(t)
		if err != nil {
			return nil, err
		}
		d.templates = append(d.templates, st)
	}
	return d, nil
}

func precompute(t Template) (tmplState, error) {
	if t.Image == nil {
		return tmplState{}, errors.New("nil template image")
	}
	b := t.Image.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return tmplState{}, errors.New("empty template image")
	}
	gray := make([]float64, w*h)
	var sum, sum2 float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, a := t.Image.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if a == 0 { // masked
				continue
			}
			v := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(bl)
			gray[y*w+x] = v
			sum += v
			sum2 += v * v
		}
	}
	n := float64(w * h)
	mean := sum / n
	variance := (sum2 - sum*sum/n) / n
	std := 0.0
	if variance > 0 {
		std = math.Sqrt(variance)
	}
	return tmplState{gray: gray, w: w, h: h, mean: mean, std: std, class: t.Class}, nil
}

// patchGray holds per-pixel grayscale values of a patch plus summed-area
// tables, allowing O(1) window mean/variance queries during the scan.
type patchGray struct {
	gray       []float64
	integral   []float64
	integralSq []float64
	w, h       int
}

func grayscale(patch *image.RGBA) *patchGray {
	b := patch.Bounds()
	w, h := b.Dx(), b.Dy()
	p := &patchGray{
		gray:       make([]float64, w*h),
		integral:   make([]float64, w*h),
		integralSq: make([]float64, w*h),
		w:          w,
		h:          h,
	}
	for y := 0; y < h; y++ {
		var rowSum, rowSum2 float64
		for x := 0; x < w; x++ {
			i := patch.PixOffset(b.Min.X+x, b.Min.Y+y)
			var v float64
			if patch.Pix[i+3] != 0 {
				r := float64(patch.Pix[i]) * 0x101
				g := float64(patch.Pix[i+1]) * 0x101
				bl := float64(patch.Pix[i+2]) * 0x101
				v = 0.2126*r + 0.7152*g + 0.0722*bl
			}
			off := y*w + x
			p.gray[off] = v
			rowSum += v
			rowSum2 += v * v
			if y == 0 {
				p.integral[off] = rowSum
				p.integralSq[off] = rowSum2
			} else {
				p.integral[off] = p.integral[off-w] + rowSum
				p.integralSq[off] = p.integralSq[off-w] + rowSum2
			}
		}
	}
	return p
}

// windowSum returns the inclusive grayscale sum over [x0..x1] x [y0..y1].
func (p *patchGray) windowSum(table []float64, x0, y0, x1, y1 int) float64 {
	at := func(x, y int) float64 {
		if x < 0 || y < 0 {
			return 0
		}
		return table[y*p.w+x]
	}
	return at(x1, y1) - at(x0-1, y1) - at(x1, y0-1) + at(x0-1, y0-1)
}

// Detect scans the patch for every template and returns patch-local
// detections (box centers) for those whose best NCC score passes the
// threshold.
func (d *TemplateDetector) Detect(patch *image.RGBA) ([]Detection, error) {
	if d == nil || len(d.templates) == 0 {
		return nil, errors.New("detector not initialized")
	}
	if patch == nil {
		return nil, errors.New("nil patch")
	}
	pg := grayscale(patch)
	var out []Detection
	for _, st := range d.templates {
		x, y, _, ok := d.match(pg, st)
		if !ok && !d.opts.ReturnBestEven {
			continue
		}
		out = append(out, Detection{
			X:     float64(x) + float64(st.w)/2,
			Y:     float64(y) + float64(st.h)/2,
			W:     float64(st.w),
			H:     float64(st.h),
			Class: st.class,
		})
	}
	return out, nil
}

func (d *TemplateDetector) match(pg *patchGray, st tmplState) (bestX, bestY int, bestScore float64, ok bool) {
	W, H := pg.w, pg.h
	w, h := st.w, st.h
	bestScore = -1
	if w == 0 || h == 0 || W < w || H < h || st.std <= 1e-9 {
		return 0, 0, -1, false
	}
	n := float64(w * h)
	stride := d.opts.Stride

	score := func(x, y int) float64 {
		sumF := pg.windowSum(pg.integral, x, y, x+w-1, y+h-1)
		sumF2 := pg.windowSum(pg.integralSq, x, y, x+w-1, y+h-1)
		meanF := sumF / n
		varF := (sumF2 - sumF*sumF/n) / n
		if varF <= 1e-9 {
			return -1
		}
		var sumFT float64
		for ty := 0; ty < h; ty++ {
			frow := (y + ty) * W
			trow := ty * w
			for tx := 0; tx < w; tx++ {
				sumFT += pg.gray[frow+x+tx] * st.gray[trow+tx]
			}
		}
		denom := n * math.Sqrt(varF) * st.std
		if denom <= 0 {
			return -1
		}
		return (sumFT - n*meanF*st.mean) / denom
	}

	for y := 0; y <= H-h; y += stride {
		for x := 0; x <= W-w; x += stride {
			if s := score(x, y); s > bestScore {
				bestScore, bestX, bestY = s, x, y
			}
		}
	}
	if d.opts.Refine && stride > 1 {
		x0, x1 := maxInt(0, bestX-stride), minInt(W-w, bestX+stride)
		y0, y1 := maxInt(0, bestY-stride), minInt(H-h, bestY+stride)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if s := score(x, y); s > bestScore {
					bestScore, bestX, bestY = s, x, y
				}
			}
		}
	}
	return bestX, bestY, bestScore, bestScore >= d.opts.Threshold
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
