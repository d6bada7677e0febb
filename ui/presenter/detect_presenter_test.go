package presenter

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/soocke/spotview-go/domain/detect"
	"github.com/soocke/spotview-go/domain/overlay"
	"github.com/soocke/spotview-go/domain/view"
)

type mockPatchSource struct {
	patch    *image.RGBA
	anchor   view.Point
	w, h     int
	err      error
	captures int
}

func (s *mockPatchSource) CapturePatch() (*image.RGBA, view.Point, int, int, error) {
	s.captures++
	return s.patch, s.anchor, s.w, s.h, s.err
}

type mockSink struct {
	batches [][]detect.Detection
	anchors []view.Point
}

func (s *mockSink) AddDetections(dets []detect.Detection, anchor view.Point, patchW, patchH int) []overlay.Object {
	s.batches = append(s.batches, dets)
	s.anchors = append(s.anchors, anchor)
	objs := make([]overlay.Object, len(dets))
	return objs
}

type stubDetector struct {
	dets []detect.Detection
	err  error
}

func (d *stubDetector) Detect(patch *image.RGBA) ([]detect.Detection, error) {
	return d.dets, d.err
}

func newTestPresenter(src *mockPatchSource, sink *mockSink, det detect.Detector) *DetectPresenter {
	return NewDetectPresenter(func() bool { return true }, src, sink, det, nil, nil)
}

// drive ticks the presenter until the condition holds or the deadline passes.
func drive(t *testing.T, p *DetectPresenter, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.Tick()
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not reached before deadline")
}

func TestDetectPresenter_RequestDeliversDetections(t *testing.T) {
	src := &mockPatchSource{
		patch:  image.NewRGBA(image.Rect(0, 0, 8, 8)),
		anchor: view.Point{X: 320, Y: 240},
		w:      640, h: 480,
	}
	sink := &mockSink{}
	det := &stubDetector{dets: []detect.Detection{{X: 4, Y: 4, W: 2, H: 2, Class: 3}}}
	p := newTestPresenter(src, sink, det)

	p.Request()
	drive(t, p, func() bool { return len(sink.batches) == 1 })

	if src.captures != 1 {
		t.Fatalf("captures = %d, want 1", src.captures)
	}
	if len(sink.batches[0]) != 1 || sink.batches[0][0].Class != 3 {
		t.Fatalf("batch = %v", sink.batches[0])
	}
	if sink.anchors[0] != (view.Point{X: 320, Y: 240}) {
		t.Fatalf("anchor = %v", sink.anchors[0])
	}
	if p.Busy() {
		t.Fatalf("presenter still busy after result handled")
	}
}

func TestDetectPresenter_RequestsCoalesce(t *testing.T) {
	src := &mockPatchSource{patch: image.NewRGBA(image.Rect(0, 0, 4, 4)), w: 4, h: 4}
	sink := &mockSink{}
	p := newTestPresenter(src, sink, &stubDetector{})

	p.Request()
	p.Request()
	p.Request()
	drive(t, p, func() bool { return !p.Busy() && src.captures > 0 })

	if src.captures != 1 {
		t.Fatalf("captures = %d, want 1 for coalesced requests", src.captures)
	}
}

func TestDetectPresenter_DetectorErrorKeepsSinkUntouched(t *testing.T) {
	src := &mockPatchSource{patch: image.NewRGBA(image.Rect(0, 0, 4, 4)), w: 4, h: 4}
	sink := &mockSink{}
	p := newTestPresenter(src, sink, &stubDetector{err: errors.New("boom")})

	p.Request()
	drive(t, p, func() bool { return !p.Busy() && src.captures > 0 })

	if len(sink.batches) != 0 {
		t.Fatalf("sink received %d batches, want none on error", len(sink.batches))
	}
}

func TestDetectPresenter_CaptureErrorSkipsDispatch(t *testing.T) {
	src := &mockPatchSource{err: errors.New("not ready")}
	sink := &mockSink{}
	p := newTestPresenter(src, sink, &stubDetector{})

	p.Request()
	p.Tick()
	if p.Busy() {
		t.Fatalf("busy after failed capture")
	}
	if src.captures != 1 {
		t.Fatalf("captures = %d, want 1", src.captures)
	}
	p.Tick()
	if src.captures != 1 {
		t.Fatalf("request not consumed: captures = %d", src.captures)
	}
}

func TestDetectPresenter_DisabledIgnoresRequest(t *testing.T) {
	src := &mockPatchSource{patch: image.NewRGBA(image.Rect(0, 0, 4, 4))}
	sink := &mockSink{}
	p := NewDetectPresenter(func() bool { return false }, src, sink, &stubDetector{}, nil, nil)

	p.Request()
	p.Tick()
	p.Tick()
	if src.captures != 0 {
		t.Fatalf("captures = %d, want 0 while disabled", src.captures)
	}
}

func TestDetectPresenter_DispatchReplacesStaleTask(t *testing.T) {
	p := newTestPresenter(&mockPatchSource{}, &mockSink{}, &stubDetector{})
	// Fill the 1-deep queue without a running worker, then dispatch again.
	p.dispatchTask(detectTask{sequence: 1})
	p.dispatchTask(detectTask{sequence: 2})
	task := <-p.workCh
	if task.sequence != 2 {
		t.Fatalf("queued sequence = %d, want the newer task to win", task.sequence)
	}
	select {
	case extra := <-p.workCh:
		t.Fatalf("unexpected second queued task %v", extra)
	default:
	}
}
