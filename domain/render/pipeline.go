package render

import (
	"bytes"
	"image"
	"image/png"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/soocke/autodraw-go/config"
	"github.com/soocke/autodraw-go/domain/screen"
	"github.com/soocke/autodraw-go/domain/trace"
)

// Pipeline owns the source image and its derived artifacts and rebuilds
// them off the interactive thread. Parameter changes and image loads are
// queued as background jobs; the UI only ever reads Latest(), which is a
// single atomic cell so preview, contours and offset always belong to the
// same generation.
type Pipeline struct {
	logger *slog.Logger
	scr    *screen.Provider

	mu           sync.RWMutex
	source       image.Image
	working      *image.NRGBA
	offset       image.Point
	area         int
	threshold    int
	allowUpscale bool

	jobs   chan job
	closed atomic.Bool

	latest     atomic.Pointer[Generation]
	sequence   atomic.Uint64
	regens     atomic.Uint64
	failures   atomic.Uint64
	regenNanos atomic.Uint64
}

type job struct {
	name string
	run  func()
}

// NewPipeline constructs a pipeline with initial parameters from cfg and
// starts its worker goroutine.
func NewPipeline(logger *slog.Logger, scr *screen.Provider, cfg *config.Config) *Pipeline {
	p := &Pipeline{logger: logger, scr: scr, jobs: make(chan job, 64)}
	if cfg != nil {
		p.area = cfg.AreaPercent
		p.threshold = cfg.CannyLowThreshold
		p.allowUpscale = cfg.AllowUpscale
	}
	go p.loop()
	return p
}

// loop drains jobs one at a time so rebuilds are serialized: a threshold
// change queued behind an area change sees the rescaled raster.
func (p *Pipeline) loop() {
	for j := range p.jobs {
		p.runJob(j)
	}
}

func (p *Pipeline) runJob(j job) {
	defer func() {
		if r := recover(); r != nil {
			if p.logger != nil {
				p.logger.Error("pipeline panic", "job", j.name, "error", r, "stack", string(debug.Stack()))
			}
		}
	}()
	j.run()
}

// Close stops the worker goroutine. Queued jobs are still processed.
func (p *Pipeline) Close() {
	if p.closed.CompareAndSwap(false, true) {
		close(p.jobs)
	}
}

// Latest returns the most recent generation, or nil before the first build.
func (p *Pipeline) Latest() *Generation { return p.latest.Load() }

// HasSource reports whether a source image has been loaded.
func (p *Pipeline) HasSource() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.source != nil
}

// Stats returns instrumentation counters for the pipeline.
func (p *Pipeline) Stats() PipelineStats {
	regens := p.regens.Load()
	total := p.regenNanos.Load()
	var avg time.Duration
	if regens > 0 {
		avg = time.Duration(total / regens)
	}
	st := PipelineStats{
		Regens:   regens,
		Failures: p.failures.Load(),
		AvgRegen: avg,
	}
	if gen := p.Latest(); gen != nil {
		st.LastSequence = gen.Sequence
		st.LastGeneration = gen.BuiltAt
	}
	return st
}

// OpenFile decodes the image at path on a background goroutine and makes it
// the new source. Decode failures leave the last good generation in place.
func (p *Pipeline) OpenFile(path string) {
	p.spawn("open", func() {
		img, err := imaging.Open(path)
		if err != nil {
			p.failures.Add(1)
			if p.logger != nil {
				p.logger.Error("image open", "path", path, "error", err)
			}
			return
		}
		p.replaceSource(img)
	})
}

// SetSource makes img the new source image (e.g. a clipboard paste) and
// rebuilds everything derived from it.
func (p *Pipeline) SetSource(img image.Image) {
	if img == nil {
		return
	}
	p.spawn("source", func() { p.replaceSource(img) })
}

// SetAreaPercent updates the drawing-area percentage and rebuilds the
// working raster, offset, preview and contours.
func (p *Pipeline) SetAreaPercent(percent int) {
	p.spawn("area", func() {
		p.mu.Lock()
		p.area = percent
		p.rescaleLocked()
		p.mu.Unlock()
		p.extract()
	})
}

// SetThreshold updates the Canny low threshold and rebuilds preview and
// contours. The working raster and offset are untouched.
func (p *Pipeline) SetThreshold(low int) {
	p.spawn("threshold", func() {
		p.mu.Lock()
		p.threshold = low
		p.mu.Unlock()
		p.extract()
	})
}

func (p *Pipeline) replaceSource(img image.Image) {
	p.mu.Lock()
	p.source = img
	p.rescaleLocked()
	p.mu.Unlock()
	p.extract()
}

// rescaleLocked derives the working raster and centering offset from the
// current source and area. Callers hold p.mu.
func (p *Pipeline) rescaleLocked() {
	if p.source == nil {
		return
	}
	geo, err := p.scr.Geometry()
	if err != nil {
		if p.logger != nil {
			p.logger.Error("screen geometry", "error", err)
		}
		return
	}
	p.working, p.offset = trace.FitToArea(p.source, geo, p.area, p.allowUpscale)
}

// extract runs edge detection and contour tracing over the working raster
// and publishes a new generation. A preview-encoding failure only omits the
// preview; contours are still published.
func (p *Pipeline) extract() {
	start := time.Now()

	p.mu.RLock()
	working := p.working
	offset := p.offset
	low := p.threshold
	p.mu.RUnlock()

	if working == nil {
		return
	}

	gray := trace.ToGray(working)
	edges := trace.Canny(gray, float64(low))

	var preview *Preview
	var buf bytes.Buffer
	if err := png.Encode(&buf, edges); err != nil {
		p.failures.Add(1)
		if p.logger != nil {
			p.logger.Error("preview encode", "error", err)
		}
	} else {
		preview = &Preview{ID: uuid.NewString(), PNG: buf.Bytes()}
	}

	contours := trace.FindContours(edges)
	trace.Translate(contours, offset)

	wb := working.Bounds()
	gen := &Generation{
		Preview:  preview,
		Contours: contours,
		Offset:   offset,
		WorkingW: wb.Dx(),
		WorkingH: wb.Dy(),
		Sequence: p.sequence.Add(1),
		BuiltAt:  time.Now(),
	}
	p.latest.Store(gen)

	elapsed := time.Since(start)
	p.regens.Add(1)
	p.regenNanos.Add(uint64(elapsed.Nanoseconds()))
	if p.logger != nil {
		p.logger.Debug("pipeline.regen",
			"sequence", gen.Sequence,
			"contours", len(contours),
			"working_w", gen.WorkingW,
			"working_h", gen.WorkingH,
			"elapsed", elapsed,
		)
	}
}

// spawn queues a job for the worker. Never blocks the caller: if the queue
// is somehow full the job is dropped with a log line, since every job
// recomputes from current state and the next one will catch up.
func (p *Pipeline) spawn(name string, run func()) {
	if p.closed.Load() {
		return
	}
	select {
	case p.jobs <- job{name: name, run: run}:
	default:
		if p.logger != nil {
			p.logger.Warn("pipeline queue full, job dropped", "job", name)
		}
	}
}
