package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/autodraw-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the parameter form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	ApplyChanges()                   // parses widget text into underlying config, persists, notifies
}

type configPanel struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	onApply func(threshold, area, passPoints int)
	widgets map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg. onApply receives the
// validated values after each successful apply.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApply func(threshold, area, passPoints int)) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApply: onApply, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("threshold", "Low Threshold (high = 3x)", fmt.Sprintf("%d", c.CannyLowThreshold))
	makeRow("area", "Draw Area %", fmt.Sprintf("%d", c.AreaPercent))
	makeRow("passPoints", "Pass Points", fmt.Sprintf("%d", c.PassPoints))
	applyBtn := Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

// ApplyChanges parses widget values into the config, persists it and calls
// onApply. Unparseable fields keep their previous values.
func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	assignInt := func(id string, dst *int) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if i, ok := parseIntField(strings.TrimSpace(v.text(w))); ok {
			*dst = i
		}
	}
	assignInt("threshold", &v.cfg.CannyLowThreshold)
	assignInt("area", &v.cfg.AreaPercent)
	assignInt("passPoints", &v.cfg.PassPoints)
	_ = v.cfg.Validate()

	if v.cfgPath != "" {
		if err := v.cfg.Save(v.cfgPath); err != nil && v.logger != nil {
			v.logger.Error("config save", "path", v.cfgPath, "error", err)
		}
	}
	if v.onApply != nil {
		v.onApply(v.cfg.CannyLowThreshold, v.cfg.AreaPercent, v.cfg.PassPoints)
	}
}

func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return i, true
}
