package app

import (
	"image"
	"log/slog"

	"github.com/soocke/spotview-go/config"
	"github.com/soocke/spotview-go/domain/detect"
	"github.com/soocke/spotview-go/domain/render"
	"github.com/soocke/spotview-go/domain/view"
	"github.com/soocke/spotview-go/ui/model"
	"github.com/soocke/spotview-go/ui/presenter"
	uiview "github.com/soocke/spotview-go/ui/view"
)

// AppContainer assembles models, the session, presenters and the root view.
type AppContainer struct {
	Config  *config.Config
	Logger  *slog.Logger
	Session *Session
	Surface *render.ImageSurface

	Highlight    *model.HighlightModel
	SessionModel *model.SessionModel

	RootView *uiview.RootView
	UI       uiview.UI

	// Presenters
	Input              *presenter.InputPresenter
	HighlightPresenter *presenter.HighlightPresenter
	StatusPresenter    *presenter.StatusPresenter
	DetectPresenter    *presenter.DetectPresenter
	Loop               *presenter.Loop
}

// BuildContainer constructs all components for a width x height display.
// The detector may be nil; detection requests then log and do nothing.
func BuildContainer(cfg *config.Config, logger *slog.Logger, width, height int, detector detect.Detector) (*AppContainer, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &AppContainer{Config: cfg, Logger: logger}

	surface, err := render.NewImageSurface(width, height, cfg.LabelSize)
	if err != nil {
		return nil, err
	}
	c.Surface = surface
	c.Session = NewSession(cfg, logger, width, height)
	c.Highlight = &model.HighlightModel{}
	c.SessionModel = model.NewSessionModel()

	// View
	c.RootView = uiview.NewRootView(cfg, logger)
	c.UI = c.RootView

	// Presenters. Loop.Invalidate marks the frame dirty; the loop renders
	// on its next tick, keeping all drawing on the Tk thread.
	c.Loop = presenter.NewLoop(nil, nil, nil, nil)
	invalidate := c.Loop.Invalidate

	c.Input = presenter.NewInputPresenter(c.Session, invalidate)
	c.HighlightPresenter = presenter.NewHighlightPresenter(c.Highlight, c.RootView, invalidate)
	c.StatusPresenter = presenter.NewStatusPresenter(
		c.SessionModel,
		c.Session,
		func() view.Viewport { return c.Session.Viewport() },
		func() render.RenderStats { return c.Session.Driver().Stats() },
		c.RootView,
	)
	c.DetectPresenter = presenter.NewDetectPresenter(
		c.Session.Ready,
		patchSource{c},
		c.Session,
		detector,
		invalidate,
		logger,
	)
	c.Loop.Status = c.StatusPresenter
	c.Loop.Detect = c.DetectPresenter
	return c, nil
}

// patchSource captures the centered patch from a fresh frame render, so the
// detector sees the viewport content without highlight dimming or overlays
// from a stale frame.
type patchSource struct{ c *AppContainer }

func (p patchSource) CapturePatch() (*image.RGBA, view.Point, int, int, error) {
	c := p.c
	if err := c.Session.Render(c.Surface); err != nil {
		return nil, view.Point{}, 0, 0, err
	}
	w, h := c.Surface.Size()
	center := image.Pt(w/2, h/2)
	size := image.Pt(c.Config.PatchSize, c.Config.PatchSize)
	patch, rect, err := c.Session.CapturePatch(c.Surface, center, size)
	if err != nil {
		return nil, view.Point{}, 0, 0, err
	}
	anchor := view.Point{
		X: float64(rect.Min.X) + float64(rect.Dx())/2,
		Y: float64(rect.Min.Y) + float64(rect.Dy())/2,
	}
	return patch, anchor, rect.Dx(), rect.Dy(), nil
}

var _ presenter.PatchSource = patchSource{}
var _ presenter.DetectionSink = (*Session)(nil)
var _ presenter.SessionOps = (*Session)(nil)
