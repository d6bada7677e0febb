package presenter

import (
	"strings"
	"testing"
	"time"

	"github.com/soocke/spotview-go/domain/render"
	"github.com/soocke/spotview-go/domain/view"
	"github.com/soocke/spotview-go/ui/model"
)

type mockReady struct{ ready bool }

func (m *mockReady) Ready() bool { return m.ready }

type mockStatusView struct {
	session, total time.Duration
	status         string
	sets           int
}

func (v *mockStatusView) SetSession(s, t time.Duration) {
	v.session, v.total = s, t
	v.sets++
}

func (v *mockStatusView) SetStatus(text string) { v.status = text }

func TestStatusPresenter_TickFormatsDurationsAndZoom(t *testing.T) {
	sess := model.NewSessionModel()
	ready := &mockReady{ready: true}
	vp := view.Viewport{Width: 800, Height: 600, Scale: 0.75}
	mv := &mockStatusView{}
	p := NewStatusPresenter(sess, ready, func() view.Viewport { return vp }, nil, mv)

	base := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	p.Tick(base)
	p.Tick(base.Add(3 * time.Second))

	if mv.sets != 2 {
		t.Fatalf("sets = %d, want 2", mv.sets)
	}
	if mv.session != 3*time.Second || mv.total != 3*time.Second {
		t.Fatalf("session=%v total=%v, want 3s each", mv.session, mv.total)
	}
	if mv.status != "zoom 75%" {
		t.Fatalf("status = %q, want zoom 75%%", mv.status)
	}
}

func TestStatusPresenter_NotReadyShowsNoImage(t *testing.T) {
	sess := model.NewSessionModel()
	mv := &mockStatusView{}
	p := NewStatusPresenter(sess, &mockReady{}, nil, nil, mv)

	p.Tick(time.Now())
	if mv.status != "no image" {
		t.Fatalf("status = %q, want no image", mv.status)
	}
	if mv.session != 0 {
		t.Fatalf("session = %v, want zero while not viewing", mv.session)
	}
}

func TestStatusPresenter_IncludesRenderStats(t *testing.T) {
	sess := model.NewSessionModel()
	stats := func() render.RenderStats {
		return render.RenderStats{Frames: 42, AvgFrame: 1500 * time.Microsecond}
	}
	mv := &mockStatusView{}
	p := NewStatusPresenter(sess, &mockReady{ready: true}, func() view.Viewport { return view.Viewport{Scale: 1} }, stats, mv)

	p.Tick(time.Now())
	if !strings.Contains(mv.status, "frames 42") {
		t.Fatalf("status = %q, want frame count", mv.status)
	}
}
