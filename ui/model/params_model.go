package model

import "sync/atomic"

// ParamsModel holds the user-tunable trace and replay parameters.
// Concurrency-safe via atomics because the UI apply callback and the
// presenter tick may race with background reads.
type ParamsModel struct {
	threshold  atomic.Int32
	area       atomic.Int32
	passPoints atomic.Int32
}

// NewParamsModel returns a model seeded with the given values.
func NewParamsModel(threshold, area, passPoints int) *ParamsModel {
	m := &ParamsModel{}
	m.SetThreshold(threshold)
	m.SetArea(area)
	m.SetPassPoints(passPoints)
	return m
}

// Threshold returns the Canny low threshold.
func (m *ParamsModel) Threshold() int { return int(m.threshold.Load()) }

// SetThreshold stores the Canny low threshold, clamped to >= 1.
func (m *ParamsModel) SetThreshold(v int) {
	if v < 1 {
		v = 1
	}
	m.threshold.Store(int32(v))
}

// Area returns the drawing-area percentage.
func (m *ParamsModel) Area() int { return int(m.area.Load()) }

// SetArea stores the drawing-area percentage, clamped to 0..100.
func (m *ParamsModel) SetArea(v int) {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	m.area.Store(int32(v))
}

// PassPoints returns the minimum contour point count for replay.
func (m *ParamsModel) PassPoints() int { return int(m.passPoints.Load()) }

// SetPassPoints stores the pass-points filter, clamped to >= 0.
func (m *ParamsModel) SetPassPoints(v int) {
	if v < 0 {
		v = 0
	}
	m.passPoints.Store(int32(v))
}
