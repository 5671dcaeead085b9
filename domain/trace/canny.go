package trace

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Sigma for the Gaussian smoothing stage. Matches the usual Canny
// preprocessing strength for thin line work.
const blurSigma = 1.4

// Canny runs Canny edge detection over gray with hysteresis thresholds
// (low, 3*low) and returns a binary edge map: 255 on edges, 0 elsewhere.
// The 1:3 ratio is the standard hysteresis convention; callers tune only
// the low threshold.
func Canny(gray *image.Gray, low float64) *image.Gray {
	if low < 1 {
		low = 1
	}
	high := 3 * low

	smoothed := ToGray(imaging.Blur(gray, blurSigma))
	b := smoothed.Bounds()
	w, h := b.Dx(), b.Dy()

	out := image.NewGray(image.Rect(0, 0, w, h))
	if w < 3 || h < 3 {
		return out
	}

	mag, dir := sobel(smoothed, w, h)
	thin := nonMaxSuppress(mag, dir, w, h)
	hysteresis(thin, w, h, low, high, out.Pix)
	return out
}

// sobel computes gradient magnitude and a quantized direction (0, 45, 90,
// 135 degrees encoded as 0..3) for every interior pixel.
func sobel(g *image.Gray, w, h int) (mag []float64, dir []uint8) {
	mag = make([]float64, w*h)
	dir = make([]uint8, w*h)
	pix := g.Pix
	stride := g.Stride
	at := func(x, y int) float64 { return float64(pix[y*stride+x]) }

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)

			i := y*w + x
			m := gx*gx + gy*gy
			if m == 0 {
				continue
			}
			mag[i] = math.Sqrt(m)
			dir[i] = quantizeDir(gx, gy)
		}
	}
	return mag, dir
}

// quantizeDir buckets the gradient angle into one of four directions:
// 0=horizontal, 1=diag(/), 2=vertical, 3=diag(\).
func quantizeDir(gx, gy float64) uint8 {
	ax, ay := gx, gy
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}
	// tan(22.5°) ≈ 0.4142, tan(67.5°) ≈ 2.4142
	switch {
	case ay <= 0.4142*ax:
		return 0
	case ay >= 2.4142*ax:
		return 2
	case (gx > 0) == (gy > 0):
		return 3
	default:
		return 1
	}
}

// nonMaxSuppress zeroes gradient magnitudes that are not a local maximum
// along their gradient direction, thinning ridges to single-pixel lines.
func nonMaxSuppress(mag []float64, dir []uint8, w, h int) []float64 {
	thin := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			m := mag[i]
			if m == 0 {
				continue
			}
			var a, b float64
			switch dir[i] {
			case 0: // horizontal gradient: compare left/right
				a, b = mag[i-1], mag[i+1]
			case 2: // vertical gradient: compare up/down
				a, b = mag[i-w], mag[i+w]
			case 3: // gradient along \: compare NW/SE
				a, b = mag[i-w-1], mag[i+w+1]
			default: // gradient along /: compare NE/SW
				a, b = mag[i-w+1], mag[i+w-1]
			}
			if m >= a && m >= b {
				thin[i] = m
			}
		}
	}
	return thin
}

// hysteresis marks pixels at or above high as edges and grows them through
// 8-connected neighbours at or above low, writing 255 into out.
func hysteresis(mag []float64, w, h int, low, high float64, out []uint8) {
	stack := make([]int, 0, 256)
	for i, m := range mag {
		if m >= high && out[i] == 0 {
			out[i] = 255
			stack = append(stack, i)
			for len(stack) > 0 {
				j := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				x, y := j%w, j/w
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := x+dx, y+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						n := ny*w + nx
						if out[n] == 0 && mag[n] >= low {
							out[n] = 255
							stack = append(stack, n)
						}
					}
				}
			}
		}
	}
}
