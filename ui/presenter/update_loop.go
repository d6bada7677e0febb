package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters, renders when something invalidated
// the frame, and invokes a scheduler callback. The zero value is usable
// (methods are nil-safe).
type Loop struct {
	Status   *StatusPresenter
	Detect   *DetectPresenter
	Render   func()
	Schedule func()

	dirty bool
}

func NewLoop(status *StatusPresenter, detect *DetectPresenter, render func(), schedule func()) *Loop {
	return &Loop{Status: status, Detect: detect, Render: render, Schedule: schedule, dirty: true}
}

// Invalidate requests a redraw on the next tick.
func (l *Loop) Invalidate() {
	if l == nil {
		return
	}
	l.dirty = true
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Status != nil {
		l.Status.Tick(now)
	}
	if l.Detect != nil {
		l.Detect.Tick()
	}
	if l.dirty && l.Render != nil {
		l.dirty = false
		l.Render()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
