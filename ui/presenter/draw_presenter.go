package presenter

import (
	"github.com/soocke/autodraw-go/domain/draw"
	"github.com/soocke/autodraw-go/domain/render"
	"github.com/soocke/autodraw-go/ui/model"
)

// KeyPoller reports whether a virtual key is currently held down.
type KeyPoller func(vk byte) bool

// ReplayStarter narrows the engine to what the presenter needs.
type ReplayStarter interface {
	Start(gen *render.Generation, passPoints int) bool
}

// GenerationSource provides the latest cached generation.
type GenerationSource interface {
	Latest() *render.Generation
}

// StateView sets the state label in the view.
type StateView interface{ SetStateLabel(string) }

// DrawPresenter polls the global hotkeys once per UI tick and reflects the
// draw state into the view. It only reads the controller; blocking work
// happens on the engine's goroutine.
type DrawPresenter struct {
	ctrl   *draw.Controller
	engine ReplayStarter
	gens   GenerationSource
	params *model.ParamsModel
	view   StateView
	poll   KeyPoller

	startVK byte
	stopVK  byte

	latest draw.State // last state reflected to the view
	shown  bool
}

// NewDrawPresenter returns a presenter wired to the given collaborators.
func NewDrawPresenter(ctrl *draw.Controller, engine ReplayStarter, gens GenerationSource, params *model.ParamsModel, view StateView, poll KeyPoller, startVK, stopVK byte) *DrawPresenter {
	return &DrawPresenter{ctrl: ctrl, engine: engine, gens: gens, params: params, view: view, poll: poll, startVK: startVK, stopVK: stopVK}
}

// Tick performs one hotkey poll and view refresh.
func (p *DrawPresenter) Tick() {
	if p == nil || p.ctrl == nil {
		return
	}
	if p.poll != nil {
		// Start only fires from a fully settled idle state; the engine's
		// latch swallows a second press racing the first worker.
		if p.poll(p.startVK) && p.ctrl.CanStart() && p.engine != nil && p.gens != nil {
			pass := 0
			if p.params != nil {
				pass = p.params.PassPoints()
			}
			p.engine.Start(p.gens.Latest(), pass)
		}
		if p.poll(p.stopVK) {
			p.ctrl.RequestStop()
		}
	}
	if p.view != nil {
		if s := p.ctrl.Current(); !p.shown || s != p.latest {
			p.latest = s
			p.shown = true
			p.view.SetStateLabel("State: " + s.String())
		}
	}
}
