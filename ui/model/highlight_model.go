package model

import (
	"sync/atomic"
)

// HighlightModel tracks whether the capture-region highlight is shown. The
// zero value is hidden and usable. Concurrency-safe via atomic Bool because
// UI callbacks and presenter ticks may race.
type HighlightModel struct{ shown atomic.Bool }

// Shown reports whether the highlight is currently displayed.
func (m *HighlightModel) Shown() bool {
	if m == nil {
		return false
	}
	return m.shown.Load()
}

// SetShown stores the highlight flag.
func (m *HighlightModel) SetShown(b bool) {
	if m == nil {
		return
	}
	prev := m.shown.Load()
	if prev == b { // no change
		return
	}
	m.shown.Store(b)
}
