package presenter

// Loop aggregates feature presenters and drives periodic updates.
//
// It runs on the Tk event-loop thread via a scheduler callback. The zero
// value is usable (methods are nil-safe).
type Loop struct {
	Draw     *DrawPresenter
	Preview  *PreviewPresenter
	Schedule func()
}

func NewLoop(drawP *DrawPresenter, preview *PreviewPresenter, schedule func()) *Loop {
	return &Loop{Draw: drawP, Preview: preview, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	if l.Draw != nil {
		l.Draw.Tick()
	}
	if l.Preview != nil {
		l.Preview.Tick()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
