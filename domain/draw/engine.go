package draw

import (
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/soocke/autodraw-go/config"
	"github.com/soocke/autodraw-go/domain/render"
)

// PointerCallbacks externalize OS pointer interactions (absolute moves,
// left-button press/release). Calls are best-effort: a failed move must not
// halt an otherwise-long drawing session.
type PointerCallbacks struct {
	Move    func(x, y int) error
	Press   func() error
	Release func() error
}

// Engine replays a cached contour generation as pointer motion on a
// background goroutine. It is not reentrant: a start while a previous
// session has not fully unwound is rejected by the controller latch.
type Engine struct {
	ctrl    *Controller
	pointer PointerCallbacks
	logger  *slog.Logger

	pointDelay   time.Duration
	contourPause time.Duration

	// sleep is swappable so tests replay instantly.
	sleep func(time.Duration)
}

// NewEngine constructs an engine with timing taken from cfg.
func NewEngine(ctrl *Controller, pointer PointerCallbacks, logger *slog.Logger, cfg *config.Config) *Engine {
	e := &Engine{
		ctrl:         ctrl,
		pointer:      pointer,
		logger:       logger,
		pointDelay:   100 * time.Microsecond,
		contourPause: 100 * time.Millisecond,
		sleep:        time.Sleep,
	}
	if cfg != nil {
		if cfg.PointDelayMicros > 0 {
			e.pointDelay = time.Duration(cfg.PointDelayMicros) * time.Microsecond
		}
		if cfg.ContourPauseMillis > 0 {
			e.contourPause = time.Duration(cfg.ContourPauseMillis) * time.Millisecond
		}
	}
	return e
}

// Start begins replaying gen, skipping contours with at most passPoints
// points. It returns false without side effects when another session is
// active or still unwinding, and returns false after an immediate
// start-and-finish when there is nothing to draw.
func (e *Engine) Start(gen *render.Generation, passPoints int) bool {
	if !e.ctrl.begin() {
		return false
	}
	if gen == nil || len(gen.Contours) == 0 {
		// Degenerate start: no cached contours, back to idle right away.
		e.ctrl.finish()
		return false
	}
	go e.run(gen, passPoints)
	return true
}

func (e *Engine) run(gen *render.Generation, passPoints int) {
	pressed := false
	defer func() {
		if r := recover(); r != nil {
			if e.logger != nil {
				e.logger.Error("replay panic", "error", r, "stack", string(debug.Stack()))
			}
		}
		if pressed {
			e.call(e.pointer.Release, "release")
		}
		e.ctrl.finish()
	}()

	if e.logger != nil {
		e.logger.Info("replay started", "sequence", gen.Sequence, "contours", len(gen.Contours))
	}

	for _, contour := range gen.Contours {
		if e.ctrl.Current() != StateDrawing {
			if e.logger != nil {
				e.logger.Info("replay stopped", "sequence", gen.Sequence)
			}
			return
		}
		if len(contour.Points) <= passPoints {
			continue
		}

		for i, pt := range contour.Points {
			if e.ctrl.Current() != StateDrawing {
				break
			}
			e.move(pt.X, pt.Y)
			if i == 0 {
				e.call(e.pointer.Press, "press")
				pressed = true
			}
			e.sleep(e.pointDelay)
		}

		// Pen lift between strokes. Always release before pausing so a stop
		// mid-contour never leaves the button held down.
		e.call(e.pointer.Release, "release")
		pressed = false
		if e.ctrl.Current() != StateDrawing {
			if e.logger != nil {
				e.logger.Info("replay stopped", "sequence", gen.Sequence)
			}
			return
		}
		e.sleep(e.contourPause)
	}

	if e.logger != nil {
		e.logger.Info("replay completed", "sequence", gen.Sequence)
	}
}

func (e *Engine) move(x, y int) {
	if e.pointer.Move == nil {
		return
	}
	if err := e.pointer.Move(x, y); err != nil && e.logger != nil {
		e.logger.Debug("pointer move failed", "x", x, "y", y, "error", err)
	}
}

func (e *Engine) call(fn func() error, name string) {
	if fn == nil {
		return
	}
	if err := fn(); err != nil && e.logger != nil {
		e.logger.Debug("pointer "+name+" failed", "error", err)
	}
}
