package draw

import "sync/atomic"

// State enumerates the drawing lifecycle.
type State int32

const (
	StateIdle State = iota
	StateDrawing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// Controller is the process-wide draw context shared between the UI polling
// tick and the replay goroutine. The state value alone is not enough to
// guard session starts: a stop request flips it to idle while the worker is
// still unwinding, so a separate active latch covers that window.
type Controller struct {
	state  atomic.Int32
	active atomic.Bool
}

// NewController returns a controller in the idle state.
func NewController() *Controller { return &Controller{} }

// Current returns the current draw state.
func (c *Controller) Current() State { return State(c.state.Load()) }

// ReplayActive reports whether a replay goroutine exists, including one
// that has been asked to stop but has not yet exited.
func (c *Controller) ReplayActive() bool { return c.active.Load() }

// CanStart reports whether a new session may begin: idle and no worker
// still unwinding.
func (c *Controller) CanStart() bool {
	return c.Current() == StateIdle && !c.active.Load()
}

// RequestStop asks the running session to abort. The worker observes the
// state change at its next per-point or per-contour check. Safe to call in
// any state.
func (c *Controller) RequestStop() { c.state.Store(int32(StateIdle)) }

// begin claims the single replay slot. The active latch is the arbiter:
// exactly one of two racing starts wins the swap.
func (c *Controller) begin() bool {
	if !c.active.CompareAndSwap(false, true) {
		return false
	}
	if c.Current() != StateIdle {
		c.active.Store(false)
		return false
	}
	c.state.Store(int32(StateDrawing))
	return true
}

// finish returns the controller to idle and releases the replay slot.
func (c *Controller) finish() {
	c.state.Store(int32(StateIdle))
	c.active.Store(false)
}
