package trace

import (
	"image"
	"image/color"
	"testing"

	"github.com/soocke/autodraw-go/domain/screen"
)

func solidImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	return img
}

func TestFitToArea_WideSourceScenario(t *testing.T) {
	// 1920x1080 source on a 1920x1080 screen at 50%: h/w = 0.5625 < 2/3,
	// so the bound is screen width * 0.5 = 960 on the longer dimension.
	geo := screen.Geometry{Width: 1920, Height: 1080}
	src := solidImage(1920, 1080)

	working, offset := FitToArea(src, geo, 50, false)
	b := working.Bounds()
	if b.Dx() != 960 || b.Dy() != 540 {
		t.Fatalf("expected 960x540 working raster, got %dx%d", b.Dx(), b.Dy())
	}
	if offset.X != 480 || offset.Y != 270 {
		t.Fatalf("expected offset (480,270), got %v", offset)
	}
}

func TestFitToArea_TallSourceUsesHeightBound(t *testing.T) {
	geo := screen.Geometry{Width: 1920, Height: 1080}
	src := solidImage(1000, 2000) // h/w = 2 >= 2/3

	working, _ := FitToArea(src, geo, 50, false)
	b := working.Bounds()
	// Height bound: 1080 * 0.5 = 540 on the longer dimension.
	if b.Dy() != 540 {
		t.Fatalf("expected height 540, got %d", b.Dy())
	}
	if b.Dx() != 270 {
		t.Fatalf("expected width 270, got %d", b.Dx())
	}
}

func TestFitToArea_MonotoneInArea(t *testing.T) {
	geo := screen.Geometry{Width: 1920, Height: 1080}
	src := solidImage(4000, 2000)

	prev := 0
	for _, p := range []int{10, 20, 30, 50, 70, 90, 100} {
		working, _ := FitToArea(src, geo, p, false)
		w := working.Bounds().Dx()
		if w < prev {
			t.Fatalf("bounding dimension decreased: area=%d width=%d prev=%d", p, w, prev)
		}
		prev = w
	}
}

func TestFitToArea_OffsetCentersExactly(t *testing.T) {
	geo := screen.Geometry{Width: 1920, Height: 1080}
	for _, dims := range [][2]int{{800, 600}, {1921, 333}, {50, 50}} {
		src := solidImage(dims[0], dims[1])
		working, offset := FitToArea(src, geo, 80, false)
		b := working.Bounds()
		// offset + dim + offset must recover the screen dimension within 1px
		// of integer rounding.
		if d := geo.Width - (2*offset.X + b.Dx()); d < 0 || d > 1 {
			t.Fatalf("dims %v: x not centered: offset=%d width=%d", dims, offset.X, b.Dx())
		}
		if d := geo.Height - (2*offset.Y + b.Dy()); d < 0 || d > 1 {
			t.Fatalf("dims %v: y not centered: offset=%d height=%d", dims, offset.Y, b.Dy())
		}
	}
}

func TestFitToArea_NoUpscaleByDefault(t *testing.T) {
	geo := screen.Geometry{Width: 1920, Height: 1080}
	src := solidImage(100, 80)

	working, offset := FitToArea(src, geo, 70, false)
	b := working.Bounds()
	if b.Dx() != 100 || b.Dy() != 80 {
		t.Fatalf("small source should keep native size, got %dx%d", b.Dx(), b.Dy())
	}
	if offset.X != (1920-100)/2 || offset.Y != (1080-80)/2 {
		t.Fatalf("unexpected offset %v", offset)
	}
}

func TestFitToArea_UpscaleWhenAllowed(t *testing.T) {
	geo := screen.Geometry{Width: 1920, Height: 1080}

	// Wide source (h/w < 2/3): width bound 960, aspect preserved.
	working, _ := FitToArea(solidImage(100, 50), geo, 50, true)
	if b := working.Bounds(); b.Dx() != 960 || b.Dy() != 480 {
		t.Fatalf("expected 960x480 wide upscale, got %dx%d", b.Dx(), b.Dy())
	}

	// Squarish source (h/w >= 2/3): height bound 540, aspect preserved.
	working, _ = FitToArea(solidImage(100, 80), geo, 50, true)
	if b := working.Bounds(); b.Dx() != 540 || b.Dy() != 432 {
		t.Fatalf("expected 540x432 tall upscale, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestFitToArea_NegativeOffsetAllowed(t *testing.T) {
	// Portrait screen, squarish source: the height-derived bound exceeds the
	// screen width, the raster passes through wider than the screen and the
	// offset goes negative instead of clamping.
	geo := screen.Geometry{Width: 600, Height: 800}
	src := solidImage(700, 500) // h/w >= 2/3: height bound = 800, source fits the box

	working, offset := FitToArea(src, geo, 100, false)
	b := working.Bounds()
	if b.Dx() != 700 || b.Dy() != 500 {
		t.Fatalf("expected native 700x500 passthrough, got %dx%d", b.Dx(), b.Dy())
	}
	if offset.X != -50 {
		t.Fatalf("expected offset.X=-50, got %d", offset.X)
	}
	if offset.Y != 150 {
		t.Fatalf("expected offset.Y=150, got %d", offset.Y)
	}
}

func TestToGray_Dimensions(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 7))
	for y := 0; y < 7; y++ {
		for x := 0; x < 10; x++ {
			src.Set(x, y, color.NRGBA{R: uint8(x * 20), G: 0, B: 0, A: 255})
		}
	}
	g := ToGray(src)
	if g.Bounds() != image.Rect(0, 0, 10, 7) {
		t.Fatalf("unexpected bounds %v", g.Bounds())
	}
}
