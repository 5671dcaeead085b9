package view

import (
	"image"
	"log/slog"
	"strings"

	"github.com/soocke/autodraw-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	ConfigPanel ConfigPanel
	Preview     PreviewPane

	// Widgets
	StateLabel *LabelWidget
	pathEntry  *TextWidget
	hintLabel  *LabelWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling
// decoupling from the concrete RootView implementation.
type UI interface {
	SetStateLabel(text string)
	UpdatePreview(img image.Image)
}

// Callbacks are invoked on user actions. All run on the Tk event-loop thread.
type Callbacks struct {
	OnOpenPath func(path string)
	OnApply    func(threshold, area, passPoints int)
	OnExit     func()
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout.
func (rv *RootView) Build(cb Callbacks) {
	if rv == nil {
		return
	}
	// Row 0: image path entry + load button + exit button.
	rv.pathEntry = Text(Height(1), Width(48))
	Grid(rv.pathEntry, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	loadBtn := Button(Txt("Load Image"), Command(func() {
		path := strings.TrimSpace(rv.entryText())
		if path == "" {
			return
		}
		if cb.OnOpenPath != nil {
			cb.OnOpenPath(path)
		}
	}))
	Grid(loadBtn, Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := Button(Txt("Exit"), Command(func() {
		if cb.OnExit != nil {
			cb.OnExit()
		}
	}))
	Grid(exitBtn, Row(0), Column(3), Sticky("ne"), Padx("0.2m"), Pady("0.2m"))

	// Row 1: draw state + hotkey hint.
	rv.StateLabel = Label(Txt("State: idle"), Borderwidth(1), Relief("ridge"))
	Grid(rv.StateLabel, Row(1), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.hintLabel = Label(Txt(hotkeyHint(rv.cfg)), Anchor("w"))
	Grid(rv.hintLabel, Row(1), Column(1), Columnspan(3), Sticky("w"), Padx("0.4m"), Pady("0.3m"))

	// Config panel rows.
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, cb.OnApply)
	endRow := rv.ConfigPanel.Build(2)

	// Edge preview below the panel.
	rv.Preview = NewPreviewPane(endRow)
}

func (rv *RootView) entryText() string {
	if rv.pathEntry == nil {
		return ""
	}
	return strings.Join(rv.pathEntry.Get("1.0", END), "")
}

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// UpdatePreview proxies to the preview pane.
func (rv *RootView) UpdatePreview(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Update(img)
	}
}

func hotkeyHint(cfg *config.Config) string {
	start, stop := "F1", "F2"
	if cfg != nil {
		if cfg.StartKey != "" {
			start = cfg.StartKey
		}
		if cfg.StopKey != "" {
			stop = cfg.StopKey
		}
	}
	return start + ": start drawing   " + stop + ": stop"
}
