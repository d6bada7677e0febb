package view

import (
	"image"
	"time"

	"log/slog"

	"github.com/soocke/spotview-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers carries the user action callbacks wired by the container.
type Handlers struct {
	OnReload          func()
	OnScreenshot      func()
	OnCenter          func()
	OnDetect          func()
	OnToggleHighlight func()
	OnExit            func()
	OnZoom            func(delta float64)
	OnPan             func(dx, dy float64)
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg    *config.Config
	logger *slog.Logger

	// Subviews
	Stats   ViewerStats
	Display FrameDisplay

	// Widgets
	highlightBtn *ButtonWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	SetSession(session, total time.Duration)
	SetStatus(text string)
	SetHighlightActive(active bool)
	SetFrame(img image.Image)
}

func NewRootView(cfg *config.Config, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, logger: logger}
}

// Build constructs the layout. width and height fix the frame display size.
// Handlers are invoked on user actions.
func (rv *RootView) Build(width, height int, h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: viewing stats, status line, buttons frame
	rv.Stats = NewViewerStats(0, 0)

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(5), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	reloadBtn := Button(Txt("Reload"), Command(h.OnReload))
	Grid(reloadBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	shotBtn := Button(Txt("Screenshot"), Command(h.OnScreenshot))
	Grid(shotBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	centerBtn := Button(Txt("Center"), Command(h.OnCenter))
	Grid(centerBtn, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	detectBtn := Button(Txt("Detect"), Command(h.OnDetect))
	Grid(detectBtn, In(btnFrame), Row(3), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.highlightBtn = Button(Txt("Highlight: off"), Command(h.OnToggleHighlight))
	Grid(rv.highlightBtn, In(btnFrame), Row(4), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := Button(Txt("Exit"), Command(h.OnExit))
	Grid(exitBtn, In(btnFrame), Row(5), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Row 1: the rendered viewport frame
	rv.Display = NewFrameDisplay(1, width, height)

	rv.bindKeys(h)
}

// bindKeys wires keyboard navigation: arrows pan, plus/minus zoom about the
// display center, space toggles the highlight frame.
func (rv *RootView) bindKeys(h Handlers) {
	step := 40.0
	if rv.cfg != nil && rv.cfg.PanStep > 0 {
		step = float64(rv.cfg.PanStep)
	}
	if h.OnPan != nil {
		Bind(App, "<Left>", Command(func() { h.OnPan(-step, 0) }))
		Bind(App, "<Right>", Command(func() { h.OnPan(step, 0) }))
		Bind(App, "<Up>", Command(func() { h.OnPan(0, -step) }))
		Bind(App, "<Down>", Command(func() { h.OnPan(0, step) }))
	}
	if h.OnZoom != nil {
		Bind(App, "<plus>", Command(func() { h.OnZoom(120) }))
		Bind(App, "<equal>", Command(func() { h.OnZoom(120) }))
		Bind(App, "<minus>", Command(func() { h.OnZoom(-120) }))
	}
	if h.OnToggleHighlight != nil {
		Bind(App, "<space>", Command(h.OnToggleHighlight))
	}
	if h.OnCenter != nil {
		Bind(App, "<c>", Command(h.OnCenter))
	}
	if h.OnDetect != nil {
		Bind(App, "<d>", Command(h.OnDetect))
	}
}

// SetSession updates both current and total viewing durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv == nil || rv.Stats == nil {
		return
	}
	rv.Stats.SetSession(session)
	rv.Stats.SetTotal(total)
}

// SetStatus updates the status line text.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.Stats != nil {
		rv.Stats.SetStatus(text)
	}
}

// SetHighlightActive reflects the highlight toggle state on its button.
func (rv *RootView) SetHighlightActive(active bool) {
	if rv == nil || rv.highlightBtn == nil {
		return
	}
	if active {
		rv.highlightBtn.Configure(Txt("Highlight: on"))
	} else {
		rv.highlightBtn.Configure(Txt("Highlight: off"))
	}
}

// SetFrame proxies the rendered frame to the display label.
func (rv *RootView) SetFrame(img image.Image) {
	if rv != nil && rv.Display != nil {
		rv.Display.Update(img)
	}
}
