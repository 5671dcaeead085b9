package render

import (
	"image"
	"time"

	"github.com/soocke/autodraw-go/domain/trace"
)

// Preview is the encoded edge-map image shown to the user. ID is a fresh
// unique identifier per regeneration so the display layer never reuses a
// stale cached bitmap for new pixels.
type Preview struct {
	ID  string
	PNG []byte
}

// Generation bundles everything derived from one (source, area, threshold)
// configuration: the encoded preview, the contour set in absolute screen
// coordinates, and the centering offset. Generations are immutable and
// replaced wholesale, so a reader can never observe a preview from one
// generation paired with contours from another.
type Generation struct {
	Preview  *Preview // nil when preview encoding failed
	Contours []trace.Contour
	Offset   image.Point
	WorkingW int
	WorkingH int
	Sequence uint64
	BuiltAt  time.Time
}

// PipelineStats summarises pipeline behaviour for instrumentation.
type PipelineStats struct {
	Regens         uint64
	Failures       uint64
	AvgRegen       time.Duration
	LastSequence   uint64
	LastGeneration time.Time
}
