package render

import (
	"image"
	"log/slog"
	"testing"
	"time"

	"github.com/soocke/autodraw-go/config"
	"github.com/soocke/autodraw-go/domain/screen"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func testProvider() *screen.Provider {
	return screen.NewProviderFunc(func() (screen.Geometry, error) {
		return screen.Geometry{Width: 1920, Height: 1080}, nil
	})
}

// testSource is a dark raster with a bright centered rectangle: four clean
// edges for the detector to find.
func testSource() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 400, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 400; x++ {
			i := y*img.Stride + x*4
			v := uint8(15)
			if x >= 100 && x < 300 && y >= 75 && y < 225 {
				v = 240
			}
			img.Pix[i] = v
			img.Pix[i+1] = v
			img.Pix[i+2] = v
			img.Pix[i+3] = 255
		}
	}
	return img
}

func newTestPipeline() *Pipeline {
	return NewPipeline(discardLogger, testProvider(), config.DefaultConfig())
}

// waitForSequence polls until the latest generation reaches at least seq.
func waitForSequence(t *testing.T, p *Pipeline, seq uint64, timeout time.Duration) *Generation {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if gen := p.Latest(); gen != nil && gen.Sequence >= seq {
			return gen
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for generation %d", seq)
	return nil
}

func TestPipeline_SetSourcePublishesGeneration(t *testing.T) {
	p := newTestPipeline()
	defer p.Close()

	p.SetSource(testSource())
	gen := waitForSequence(t, p, 1, 2*time.Second)

	// 400x300 source is tall (h/w >= 2/3) and smaller than the 70% box, so
	// it passes through at native size.
	if gen.WorkingW != 400 || gen.WorkingH != 300 {
		t.Fatalf("expected 400x300 working raster, got %dx%d", gen.WorkingW, gen.WorkingH)
	}
	if gen.Offset.X != 760 || gen.Offset.Y != 390 {
		t.Fatalf("expected offset (760,390), got %v", gen.Offset)
	}
	if gen.Preview == nil || gen.Preview.ID == "" || len(gen.Preview.PNG) == 0 {
		t.Fatal("expected an encoded preview with a fresh id")
	}
	if len(gen.Contours) == 0 {
		t.Fatal("expected contours from the rectangle edges")
	}
}

func TestPipeline_ContourPointsInScreenCoordinates(t *testing.T) {
	p := newTestPipeline()
	defer p.Close()

	p.SetSource(testSource())
	gen := waitForSequence(t, p, 1, 2*time.Second)

	// Every point must land inside the working raster's screen rectangle
	// (plus edge-detection boundary slop); raster-local points would sit
	// near the origin instead.
	const slop = 4
	minX, minY := gen.Offset.X-slop, gen.Offset.Y-slop
	maxX, maxY := gen.Offset.X+gen.WorkingW+slop, gen.Offset.Y+gen.WorkingH+slop
	for _, c := range gen.Contours {
		for _, pt := range c.Points {
			if pt.X < minX || pt.X > maxX || pt.Y < minY || pt.Y > maxY {
				t.Fatalf("point %v outside screen-mapped bounds [%d,%d]x[%d,%d]", pt, minX, maxX, minY, maxY)
			}
		}
	}
}

func TestPipeline_ThresholdChangeKeepsOffset(t *testing.T) {
	p := newTestPipeline()
	defer p.Close()

	p.SetSource(testSource())
	first := waitForSequence(t, p, 1, 2*time.Second)

	p.SetThreshold(50)
	second := waitForSequence(t, p, 2, 2*time.Second)

	if second.Preview == nil || second.Preview.ID == first.Preview.ID {
		t.Fatal("threshold change must mint a new preview id")
	}
	if second.Offset != first.Offset {
		t.Fatalf("threshold change must not move the offset: %v -> %v", first.Offset, second.Offset)
	}
	if second.WorkingW != first.WorkingW || second.WorkingH != first.WorkingH {
		t.Fatal("threshold change must not rescale the working raster")
	}
}

func TestPipeline_SameThresholdYieldsSameGeometry(t *testing.T) {
	p := newTestPipeline()
	defer p.Close()

	p.SetSource(testSource())
	first := waitForSequence(t, p, 1, 2*time.Second)

	// Re-running extraction with unchanged parameters must reproduce the
	// contour geometry exactly; only the preview id differs.
	p.SetThreshold(config.DefaultConfig().CannyLowThreshold)
	second := waitForSequence(t, p, 2, 2*time.Second)

	if second.Preview.ID == first.Preview.ID {
		t.Fatal("regeneration must carry a fresh preview id")
	}
	if len(first.Contours) != len(second.Contours) {
		t.Fatalf("contour count changed: %d -> %d", len(first.Contours), len(second.Contours))
	}
	for i := range first.Contours {
		a, b := first.Contours[i].Points, second.Contours[i].Points
		if len(a) != len(b) {
			t.Fatalf("contour %d length changed: %d -> %d", i, len(a), len(b))
		}
		for j := range a {
			if a[j] != b[j] {
				t.Fatalf("contour %d point %d changed: %v -> %v", i, j, a[j], b[j])
			}
		}
	}
}

func TestPipeline_AreaChangeRescales(t *testing.T) {
	p := NewPipeline(discardLogger, testProvider(), &config.Config{
		CannyLowThreshold: 25,
		AreaPercent:       70,
		AllowUpscale:      true,
	})
	defer p.Close()

	p.SetSource(testSource())
	first := waitForSequence(t, p, 1, 2*time.Second)

	p.SetAreaPercent(30)
	second := waitForSequence(t, p, 2, 2*time.Second)

	if second.WorkingH >= first.WorkingH {
		t.Fatalf("smaller area must shrink the raster: %d -> %d", first.WorkingH, second.WorkingH)
	}
	if second.Offset == first.Offset {
		t.Fatal("area change must recompute the centering offset")
	}
}

func TestPipeline_OpenFileFailureKeepsLastGeneration(t *testing.T) {
	p := newTestPipeline()
	defer p.Close()

	p.SetSource(testSource())
	first := waitForSequence(t, p, 1, 2*time.Second)

	p.OpenFile("does-not-exist.png")
	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		if p.Stats().Failures > 0 {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	if p.Stats().Failures == 0 {
		t.Fatal("expected a recorded failure for the bad path")
	}
	if gen := p.Latest(); gen == nil || gen.Sequence != first.Sequence {
		t.Fatal("failed load must leave the last good generation in place")
	}
}

func TestPipeline_NoSourceNoGeneration(t *testing.T) {
	p := newTestPipeline()
	defer p.Close()

	p.SetThreshold(40)
	p.SetAreaPercent(20)
	time.Sleep(50 * time.Millisecond)
	if p.Latest() != nil {
		t.Fatal("parameter changes without a source must not publish generations")
	}
	if p.HasSource() {
		t.Fatal("no source expected")
	}
}

func TestPipeline_StatsTrackRegens(t *testing.T) {
	p := newTestPipeline()
	defer p.Close()

	p.SetSource(testSource())
	waitForSequence(t, p, 1, 2*time.Second)
	p.SetThreshold(60)
	waitForSequence(t, p, 2, 2*time.Second)

	st := p.Stats()
	if st.Regens < 2 {
		t.Fatalf("expected at least 2 regens, got %d", st.Regens)
	}
	if st.LastSequence != 2 {
		t.Fatalf("expected last sequence 2, got %d", st.LastSequence)
	}
}
