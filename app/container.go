package app

import (
	"log/slog"

	"github.com/soocke/autodraw-go/config"
	"github.com/soocke/autodraw-go/domain/action"
	"github.com/soocke/autodraw-go/domain/draw"
	"github.com/soocke/autodraw-go/domain/render"
	"github.com/soocke/autodraw-go/domain/screen"
	"github.com/soocke/autodraw-go/ui/model"
	"github.com/soocke/autodraw-go/ui/presenter"
	"github.com/soocke/autodraw-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	Logger     *slog.Logger
	Screen     *screen.Provider
	Pipeline   *render.Pipeline
	Controller *draw.Controller
	Engine     *draw.Engine
	Params     *model.ParamsModel
	RootView   *view.RootView
	UI         view.UI

	// Presenters, wired after the view is built.
	DrawPresenter    *presenter.DrawPresenter
	PreviewPresenter *presenter.PreviewPresenter
	Loop             *presenter.Loop
}

// BuildContainer constructs all components. Screen geometry is a required
// precondition: without it no coordinate mapping is possible, so a probe
// failure aborts construction.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Screen = screen.NewProvider()
	if _, err := c.Screen.Geometry(); err != nil {
		return nil, err
	}
	c.Pipeline = render.NewPipeline(logger, c.Screen, cfg)
	c.Controller = draw.NewController()
	c.Engine = draw.NewEngine(c.Controller, draw.PointerCallbacks{
		Move:    action.MoveCursor,
		Press:   action.PressLeft,
		Release: action.ReleaseLeft,
	}, logger, cfg)
	c.Params = model.NewParamsModel(cfg.CannyLowThreshold, cfg.AreaPercent, cfg.PassPoints)
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView
	// Presenters wired after the Tk layout exists (app wrapper).
	return c, nil
}
