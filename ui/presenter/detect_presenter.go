package presenter

import (
	"errors"
	"image"
	"sync"
	"time"

	"log/slog"

	"github.com/soocke/spotview-go/domain/detect"
	"github.com/soocke/spotview-go/domain/overlay"
	"github.com/soocke/spotview-go/domain/view"
)

// PatchSource captures the current display patch for detection. The
// returned anchor is the patch center in screen coordinates.
type PatchSource interface {
	CapturePatch() (patch *image.RGBA, anchor view.Point, width, height int, err error)
}

// DetectionSink receives detections to be anchored into the overlay store.
type DetectionSink interface {
	AddDetections(dets []detect.Detection, anchor view.Point, patchW, patchH int) []overlay.Object
}

type detectTask struct {
	patch    *image.RGBA
	anchor   view.Point
	width    int
	height   int
	sequence uint64
}

type detectResult struct {
	dets     []detect.Detection
	anchor   view.Point
	width    int
	height   int
	sequence uint64
	err      error
	duration time.Duration
}

// DetectPresenter runs the detector off the UI loop. Work travels through
// 1-deep channels; a newer request replaces a stale queued one on both the
// task and result side, so at most one detection is ever in flight and the
// UI loop never blocks.
type DetectPresenter struct {
	Enabled  func() bool
	Source   PatchSource
	Sink     DetectionSink
	Detector detect.Detector
	logger   *slog.Logger

	invalidate func()

	workerOnce sync.Once
	workCh     chan detectTask
	resultCh   chan detectResult

	requested bool
	sequence  uint64
	lastDone  uint64
}

// NewDetectPresenter constructs a detection presenter.
func NewDetectPresenter(enabled func() bool, source PatchSource, sink DetectionSink, detector detect.Detector, invalidate func(), logger *slog.Logger) *DetectPresenter {
	return &DetectPresenter{
		Enabled:    enabled,
		Source:     source,
		Sink:       sink,
		Detector:   detector,
		logger:     logger,
		invalidate: invalidate,
		workCh:     make(chan detectTask, 1),
		resultCh:   make(chan detectResult, 1),
	}
}

// Request asks for one detection pass over the current patch. Safe to call
// repeatedly; requests coalesce until the next Tick dispatches.
func (p *DetectPresenter) Request() {
	if p == nil {
		return
	}
	p.requested = true
}

// Busy reports whether a detection pass is still in flight.
func (p *DetectPresenter) Busy() bool {
	if p == nil {
		return false
	}
	return p.sequence != p.lastDone
}

// Tick drains finished results into the sink and dispatches a pending
// request. Called from the UI update loop.
func (p *DetectPresenter) Tick() {
	if p == nil || p.Enabled == nil || p.Source == nil || p.Sink == nil {
		return
	}

	p.ensureWorker()

	for {
		select {
		case res := <-p.resultCh:
			p.handleResult(res)
		default:
			goto drained
		}
	}

drained:
	if !p.requested || !p.Enabled() {
		return
	}
	p.requested = false

	patch, anchor, w, h, err := p.Source.CapturePatch()
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("patch capture failed", slog.String("error", err.Error()))
		}
		return
	}

	p.sequence++
	p.dispatchTask(detectTask{
		patch:    patch,
		anchor:   anchor,
		width:    w,
		height:   h,
		sequence: p.sequence,
	})
}

func (p *DetectPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *DetectPresenter) runWorker() {
	for task := range p.workCh {
		res := p.executeTask(task)
		select {
		case p.resultCh <- res:
		default:
			select {
			case <-p.resultCh:
			default:
			}
			select {
			case p.resultCh <- res:
			default:
			}
		}
	}
}

func (p *DetectPresenter) dispatchTask(task detectTask) {
	select {
	case p.workCh <- task:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}

func (p *DetectPresenter) executeTask(task detectTask) detectResult {
	res := detectResult{
		anchor:   task.anchor,
		width:    task.width,
		height:   task.height,
		sequence: task.sequence,
	}
	if task.patch == nil {
		res.err = errors.New("nil patch")
		return res
	}
	if p.Detector == nil {
		res.err = errors.New("no detector configured")
		return res
	}
	start := time.Now()
	dets, err := p.Detector.Detect(task.patch)
	res.duration = time.Since(start)
	if err != nil {
		res.err = err
		return res
	}
	res.dets = dets
	return res
}

func (p *DetectPresenter) handleResult(res detectResult) {
	if res.sequence > p.lastDone {
		p.lastDone = res.sequence
	}
	if res.err != nil {
		if p.logger != nil {
			p.logger.Warn("detection failed", slog.String("error", res.err.Error()))
		}
		return
	}
	added := p.Sink.AddDetections(res.dets, res.anchor, res.width, res.height)
	if p.logger != nil {
		p.logger.Info("detection finished",
			slog.Int("detections", len(res.dets)),
			slog.Int("added", len(added)),
			slog.Duration("duration", res.duration),
		)
	}
	if len(added) > 0 && p.invalidate != nil {
		p.invalidate()
	}
}
