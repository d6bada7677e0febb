package app

import (
	"fmt"
	"image"
	"time"

	"log/slog"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/spotview-go/config"
	"github.com/soocke/spotview-go/domain/detect"
	"github.com/soocke/spotview-go/domain/load"
	"github.com/soocke/spotview-go/ui/theme"
	uiview "github.com/soocke/spotview-go/ui/view"
)

const tick = 50 * time.Millisecond

// application owns the Tk shell: window lifetime, the update loop, and the
// bridge between async load results and the session.
type application struct {
	cfg    *config.Config
	logger *slog.Logger

	width   int
	height  int
	afterID string

	container *AppContainer
	imagePath string
	loadCh    <-chan load.Result
}

// NewApp builds the container and the main window. width and height size
// the frame display; the window adds room for the control row.
func NewApp(title string, width, height int, cfg *config.Config, logger *slog.Logger, detector detect.Detector, imagePath string) (*application, error) {
	c, err := BuildContainer(cfg, logger, width, height, detector)
	if err != nil {
		return nil, err
	}
	a := &application{
		cfg:       c.Config,
		logger:    logger,
		width:     width,
		height:    height,
		container: c,
		imagePath: imagePath,
	}
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width+16, height+120))
	return a, nil
}

// Start builds the layout, kicks off the update loop and blocks until exit.
func (a *application) Start() {
	theme.InitStyles()
	c := a.container

	c.RootView.Build(a.width, a.height, uiview.Handlers{
		OnReload:          a.reload,
		OnScreenshot:      a.screenshot,
		OnCenter:          c.Input.OnCenter,
		OnDetect:          a.detect,
		OnToggleHighlight: c.HighlightPresenter.Toggle,
		OnExit:            a.exitHandler,
		OnZoom:            c.Input.OnWheel,
		OnPan:             c.Input.OnPanBy,
	})

	c.Loop.Render = a.renderFrame
	c.Loop.Schedule = a.scheduleUpdate

	if a.imagePath != "" {
		a.loadCh = load.Start(a.imagePath, a.logger)
	} else {
		c.UI.SetFrame(load.Placeholder(a.width, a.height))
	}

	a.scheduleUpdate()
	App.Wait()
}

// update runs once per tick on the Tk event loop thread.
func (a *application) update() {
	if a.loadCh != nil {
		select {
		case res, ok := <-a.loadCh:
			a.loadCh = nil
			if ok {
				a.onLoadResult(res)
			}
		default:
		}
	}
	a.container.Loop.Tick()
}

func (a *application) onLoadResult(res load.Result) {
	c := a.container
	if res.Err != nil {
		if a.logger != nil {
			a.logger.Warn("image load failed", "path", res.Path, "error", res.Err.Error())
		}
		return
	}
	if err := c.Session.SetImage(res.Img); err != nil {
		if a.logger != nil {
			a.logger.Warn("image rejected", "path", res.Path, "error", err.Error())
		}
		return
	}
	c.SessionModel.OnNewImage(time.Now())
	c.Loop.Invalidate()
}

// renderFrame draws one frame into the software surface and pushes it to
// the display label. Widget updates are recover-guarded in case the window
// is being torn down.
func (a *application) renderFrame() {
	c := a.container
	if err := c.Session.Render(c.Surface); err != nil {
		if a.logger != nil {
			a.logger.Warn("render failed", "error", err.Error())
		}
		return
	}
	if c.Highlight.Shown() && c.Session.Ready() {
		w, h := c.Surface.Size()
		size := image.Pt(a.cfg.PatchSize, a.cfg.PatchSize)
		if _, err := c.Session.Highlight(c.Surface, image.Pt(w/2, h/2), size); err != nil && a.logger != nil {
			a.logger.Warn("highlight failed", "error", err.Error())
		}
	}
	func() {
		defer func() { _ = recover() }()
		c.UI.SetFrame(c.Surface.RGBA())
	}()
	if a.cfg.Debug {
		c.Session.Driver().LogStats()
	}
}

// reload restarts the async load of the configured image path.
func (a *application) reload() {
	if a.imagePath == "" || a.loadCh != nil {
		return
	}
	a.loadCh = load.Start(a.imagePath, a.logger)
}

// screenshot grabs the screen and views it as the session image.
func (a *application) screenshot() {
	c := a.container
	img, err := load.Screen()
	if err != nil {
		if a.logger != nil {
			a.logger.Warn("screen capture failed", "error", err.Error())
		}
		return
	}
	if err := c.Session.SetImage(img); err != nil {
		if a.logger != nil {
			a.logger.Warn("screen capture rejected", "error", err.Error())
		}
		return
	}
	c.SessionModel.OnNewImage(time.Now())
	c.Loop.Invalidate()
}

// detect requests one detection pass; the worker picks it up on the next
// tick. Invalidate so the post-capture frame is redrawn with any highlight.
func (a *application) detect() {
	a.container.DetectPresenter.Request()
	a.container.Loop.Invalidate()
}

func (a *application) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	Destroy(App)
}

func (a *application) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.update() })
}
