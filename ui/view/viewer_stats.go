package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// ViewerStats updates the viewing duration labels and the status line.
type ViewerStats interface {
	SetSession(d time.Duration)
	SetTotal(d time.Duration)
	SetStatus(text string)
}

type viewerStats struct {
	sessionLbl *LabelWidget
	totalLbl   *LabelWidget
	statusLbl  *LabelWidget
}

// NewViewerStats creates the duration labels at (row, startCol) and
// (row, startCol+1), with the status line at (row, startCol+2).
func NewViewerStats(row, startCol int) ViewerStats {
	s := &viewerStats{
		sessionLbl: Label(Width(14)),
		totalLbl:   Label(Width(14)),
		statusLbl:  Label(Borderwidth(1), Relief("ridge")),
	}
	Grid(s.sessionLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.totalLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	Grid(s.statusLbl, Row(row), Column(startCol+2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	s.sessionLbl.Configure(Txt("Viewing: 00:00"))
	s.totalLbl.Configure(Txt("Total: 00:00"))
	s.statusLbl.Configure(Txt("no image"))
	return s
}

// SetSession updates the current image viewing duration display.
func (s *viewerStats) SetSession(d time.Duration) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	seconds := int(d.Seconds())
	min, sec := seconds/60, seconds%60
	s.sessionLbl.Configure(Txt(fmt.Sprintf("Viewing: %02d:%02d", min, sec)))
}

// SetTotal updates the accumulated duration display.
func (s *viewerStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	seconds := int(d.Seconds())
	min, sec := seconds/60, seconds%60
	s.totalLbl.Configure(Txt(fmt.Sprintf("Total: %02d:%02d", min, sec)))
}

// SetStatus updates the renderer status line.
func (s *viewerStats) SetStatus(text string) {
	if s == nil || s.statusLbl == nil {
		return
	}
	s.statusLbl.Configure(Txt(text))
}
