package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/spotview-go/domain/render"
	"github.com/soocke/spotview-go/domain/view"
	"github.com/soocke/spotview-go/ui/model"
)

// ReadyModel reports whether an image is loaded and viewable.
type ReadyModel interface{ Ready() bool }

// StatusView displays formatted viewing durations and renderer status.
type StatusView interface {
	SetSession(session, total time.Duration)
	SetStatus(text string)
}

// StatusPresenter formats session durations, zoom level, and render stats
// from the models to the view.
type StatusPresenter struct {
	sess     *model.SessionModel
	ready    ReadyModel
	viewport func() view.Viewport
	stats    func() render.RenderStats
	view     StatusView
}

// NewStatusPresenter returns a new StatusPresenter.
func NewStatusPresenter(sess *model.SessionModel, ready ReadyModel, viewport func() view.Viewport, stats func() render.RenderStats, v StatusView) *StatusPresenter {
	return &StatusPresenter{sess: sess, ready: ready, viewport: viewport, stats: stats, view: v}
}

// Tick updates the presenter: advance the session model and push values to the view.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.ready == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.ready.Ready(), now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
	p.view.SetStatus(p.statusLine())
}

func (p *StatusPresenter) statusLine() string {
	if !p.ready.Ready() {
		return "no image"
	}
	zoom := 0.0
	if p.viewport != nil {
		zoom = p.viewport().Scale
	}
	line := fmt.Sprintf("zoom %.0f%%", zoom*100)
	if p.stats != nil {
		rs := p.stats()
		if rs.Frames > 0 {
			line += fmt.Sprintf(" | frames %d avg %s", rs.Frames, rs.AvgFrame.Round(10*time.Microsecond))
		}
	}
	return line
}
