package app

import (
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/autodraw-go/config"
	"github.com/soocke/autodraw-go/domain/action"
	"github.com/soocke/autodraw-go/ui/presenter"
	"github.com/soocke/autodraw-go/ui/view"
)

// Hotkey polling interval. Stop latency is bounded by the replay engine's
// per-point checks, not by this tick, so a coarse UI cadence is fine.
const tick = 50 * time.Millisecond

type app struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	c       *AppContainer
	afterID string
}

// NewApp builds the container and the top-level window.
func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) (*app, error) {
	c, err := BuildContainer(cfg, logger, cfgPath)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, cfgPath: cfgPath, logger: logger, c: c}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a, nil
}

// Start builds the view, wires the presenters and enters the Tk main loop.
func (a *app) Start() {
	a.c.RootView.Build(view.Callbacks{
		OnOpenPath: a.onOpenPath,
		OnApply:    a.onApply,
		OnExit:     a.exitHandler,
	})

	startVK, ok := action.ParseVK(a.cfg.StartKey)
	if !ok {
		a.logger.Warn("unknown start_key, falling back to F1", "key", a.cfg.StartKey)
	}
	stopVK, ok := action.ParseVK(a.cfg.StopKey)
	if !ok {
		a.logger.Warn("unknown stop_key, falling back to F1", "key", a.cfg.StopKey)
	}
	a.c.DrawPresenter = presenter.NewDrawPresenter(
		a.c.Controller, a.c.Engine, a.c.Pipeline, a.c.Params, a.c.RootView,
		action.IsKeyPressed, startVK, stopVK,
	)
	a.c.PreviewPresenter = presenter.NewPreviewPresenter(a.c.Pipeline, a.c.RootView, a.logger)
	a.c.Loop = presenter.NewLoop(a.c.DrawPresenter, a.c.PreviewPresenter, a.scheduleTick)

	a.scheduleTick()
	App.Wait()
}

func (a *app) onOpenPath(path string) {
	a.c.Pipeline.OpenFile(path)
}

// onApply pushes changed parameters into the pipeline. Pass points is
// replay-side only and needs no regeneration.
func (a *app) onApply(threshold, area, passPoints int) {
	prevT := a.c.Params.Threshold()
	prevA := a.c.Params.Area()
	a.c.Params.SetThreshold(threshold)
	a.c.Params.SetArea(area)
	a.c.Params.SetPassPoints(passPoints)
	if area != prevA {
		a.c.Pipeline.SetAreaPercent(area)
	}
	if threshold != prevT {
		a.c.Pipeline.SetThreshold(threshold)
	}
}

func (a *app) scheduleTick() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.c.Controller.RequestStop()
	a.c.Pipeline.Close()
	Destroy(App)
}
