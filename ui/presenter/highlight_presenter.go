package presenter

// HighlightModelContract is what the presenter needs from the highlight model.
type HighlightModelContract interface {
	Shown() bool
	SetShown(shown bool)
}

// HighlightViewContract is the view surface the presenter updates.
type HighlightViewContract interface {
	SetHighlightActive(active bool)
}

// HighlightPresenter toggles the patch highlight frame. Enable and Disable
// are idempotent so callers can wire both a keybinding and a button without
// double-toggling.
type HighlightPresenter struct {
	model      HighlightModelContract
	view       HighlightViewContract
	invalidate func()
}

func NewHighlightPresenter(model HighlightModelContract, view HighlightViewContract, invalidate func()) *HighlightPresenter {
	return &HighlightPresenter{model: model, view: view, invalidate: invalidate}
}

// Enable shows the highlight frame.
func (p *HighlightPresenter) Enable() {
	if p == nil || p.model == nil {
		return
	}
	if p.model.Shown() {
		return
	}
	p.model.SetShown(true)
	p.sync()
}

// Disable hides the highlight frame.
func (p *HighlightPresenter) Disable() {
	if p == nil || p.model == nil {
		return
	}
	if !p.model.Shown() {
		return
	}
	p.model.SetShown(false)
	p.sync()
}

// Toggle flips the highlight state.
func (p *HighlightPresenter) Toggle() {
	if p == nil || p.model == nil {
		return
	}
	if p.model.Shown() {
		p.Disable()
	} else {
		p.Enable()
	}
}

// Shown reports whether the highlight frame is active.
func (p *HighlightPresenter) Shown() bool {
	if p == nil || p.model == nil {
		return false
	}
	return p.model.Shown()
}

func (p *HighlightPresenter) sync() {
	if p.view != nil {
		p.view.SetHighlightActive(p.model.Shown())
	}
	if p.invalidate != nil {
		p.invalidate()
	}
}
