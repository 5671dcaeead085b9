package trace

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/soocke/autodraw-go/domain/screen"
)

// Aspect threshold separating "wide" sources (bounded by screen width) from
// "tall" ones (bounded by screen height).
const tallRatio = 2.0 / 3.0

// FitToArea scales src so that its longer relevant dimension fits within
// areaPercent of the screen, preserving aspect ratio with Lanczos
// resampling. The bounding box is square: screen width × p/100 for wide
// sources (height/width below 2:3), screen height × p/100 for tall ones.
//
// When allowUpscale is false a source already smaller than the box is left
// at its native size. The returned offset centers the working raster on
// screen; it may be negative when the raster exceeds screen bounds, which
// simply places points off-screen.
func FitToArea(src image.Image, geo screen.Geometry, areaPercent int, allowUpscale bool) (*image.NRGBA, image.Point) {
	if areaPercent < 0 {
		areaPercent = 0
	}
	if areaPercent > 100 {
		areaPercent = 100
	}

	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()

	bound := int(float64(geo.Width) * float64(areaPercent) / 100.0)
	if float64(srcH)/float64(srcW) >= tallRatio {
		bound = int(float64(geo.Height) * float64(areaPercent) / 100.0)
	}
	if bound < 1 {
		bound = 1
	}

	var working *image.NRGBA
	if allowUpscale && srcW <= bound && srcH <= bound {
		// Enlarge to the box while preserving aspect ratio.
		if srcW >= srcH {
			working = imaging.Resize(src, bound, 0, imaging.Lanczos)
		} else {
			working = imaging.Resize(src, 0, bound, imaging.Lanczos)
		}
	} else {
		// Fit never upscales; sources within the box pass through unchanged.
		working = imaging.Fit(src, bound, bound, imaging.Lanczos)
	}

	wb := working.Bounds()
	offset := image.Pt((geo.Width-wb.Dx())/2, (geo.Height-wb.Dy())/2)
	return working, offset
}

// ToGray converts img to an 8-bit grayscale raster anchored at the origin.
func ToGray(img image.Image) *image.Gray {
	g := imaging.Grayscale(img)
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		si := g.PixOffset(b.Min.X, b.Min.Y+y)
		di := out.PixOffset(0, y)
		for x := 0; x < w; x++ {
			// Grayscale output has R == G == B.
			out.Pix[di+x] = g.Pix[si+x*4]
		}
	}
	return out
}
