package presenter

// SessionOps narrows what the input presenter needs from the session.
type SessionOps interface {
	Zoom(delta float64)
	Pan(dx, dy float64)
	Resize(width, height int)
	Center()
	Ready() bool
}

// InputPresenter routes discrete input events (wheel, drag, resize, center)
// into session mutations and requests a re-render afterwards. The session
// never draws as a side effect of a setter; invalidate is the explicit
// "mutate, then render" step.
type InputPresenter struct {
	session    SessionOps
	invalidate func()

	dragging     bool
	dragX, dragY float64
}

// NewInputPresenter returns a presenter driving session through the given
// invalidate callback.
func NewInputPresenter(session SessionOps, invalidate func()) *InputPresenter {
	return &InputPresenter{session: session, invalidate: invalidate}
}

// OnWheel applies a zoom wheel delta.
func (p *InputPresenter) OnWheel(delta float64) {
	if p == nil || p.session == nil {
		return
	}
	p.session.Zoom(delta)
	p.requestRender()
}

// OnDragStart records the drag origin in screen coordinates.
func (p *InputPresenter) OnDragStart(x, y float64) {
	if p == nil {
		return
	}
	p.dragging = true
	p.dragX, p.dragY = x, y
}

// OnDragMove pans so the image content follows the cursor.
func (p *InputPresenter) OnDragMove(x, y float64) {
	if p == nil || p.session == nil || !p.dragging {
		return
	}
	p.session.Pan(p.dragX-x, p.dragY-y)
	p.dragX, p.dragY = x, y
	p.requestRender()
}

// OnDragEnd finishes a drag gesture.
func (p *InputPresenter) OnDragEnd() {
	if p == nil {
		return
	}
	p.dragging = false
}

// OnPanBy applies a discrete pan step in screen pixels, e.g. from arrow keys.
func (p *InputPresenter) OnPanBy(dx, dy float64) {
	if p == nil || p.session == nil {
		return
	}
	p.session.Pan(dx, dy)
	p.requestRender()
}

// OnResize propagates new display dimensions. Scale is deliberately left
// alone; see the session resize contract.
func (p *InputPresenter) OnResize(width, height int) {
	if p == nil || p.session == nil {
		return
	}
	p.session.Resize(width, height)
	p.requestRender()
}

// OnCenter re-centers the image at the fit-with-margin scale.
func (p *InputPresenter) OnCenter() {
	if p == nil || p.session == nil {
		return
	}
	p.session.Center()
	p.requestRender()
}

func (p *InputPresenter) requestRender() {
	if p.invalidate != nil {
		p.invalidate()
	}
}
