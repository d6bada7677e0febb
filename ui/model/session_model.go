package model

import (
	"time"
)

// SessionModel tracks how long the current image has been viewed and the
// accumulated viewing time across loads. It is decoupled from the UI;
// presenters should poll Values() and update views. The zero value is ready
// to use.
type SessionModel struct {
	viewing          bool
	viewStart        time.Time
	lastViewDuration time.Duration
	accumulated      time.Duration
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model using the current loaded state and timestamp.
// Call periodically from the presenter tick; viewing flips to true once an
// image is loaded and back to false when the session is cleared.
func (m *SessionModel) OnTick(viewing bool, now time.Time) {
	if m == nil {
		return
	}
	if viewing {
		if !m.viewing { // transition off -> on
			m.viewing = true
			m.viewStart = now
			m.lastViewDuration = 0
		}
		m.lastViewDuration = now.Sub(m.viewStart)
	} else if m.viewing { // transition on -> off
		m.lastViewDuration = now.Sub(m.viewStart)
		m.accumulated += m.lastViewDuration
		m.viewing = false
	}
}

// OnNewImage finalizes the current viewing span and starts a new one, so a
// reload does not inflate the current-image duration.
func (m *SessionModel) OnNewImage(now time.Time) {
	if m == nil {
		return
	}
	m.OnTick(false, now)
	m.OnTick(true, now)
}

// Values returns the current image's viewing duration and the total across
// all images. The total includes the ongoing span when active.
func (m *SessionModel) Values() (current, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	current = m.lastViewDuration
	total = m.accumulated
	if m.viewing {
		total += current
	}
	return
}
