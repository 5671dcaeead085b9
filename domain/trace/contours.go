package trace

import "image"

// FindContours traces every 8-connected component of the binary edge map
// into an ordered boundary polyline using Moore-neighbour tracing with
// Jacob's stopping criterion. Components are discovered in row-major scan
// order and neighbours are visited in a fixed clockwise order, so repeated
// runs over the same map yield identical output.
//
// Returned points are raster-local; callers translate them to screen
// coordinates separately.
func FindContours(edges *image.Gray) []Contour {
	b := edges.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	isEdge := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return edges.Pix[y*edges.Stride+x] != 0
	}

	visited := make([]bool, w*h)
	var contours []Contour

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !isEdge(x, y) || visited[y*w+x] {
				continue
			}
			markComponent(isEdge, visited, w, h, x, y)
			pts := traceBoundary(isEdge, w, h, x, y)
			if len(pts) == 0 {
				pts = []image.Point{{X: x, Y: y}}
			}
			contours = append(contours, Contour{Points: pts})
		}
	}
	return contours
}

// markComponent flood-fills the 8-connected component containing (sx, sy)
// so later scan positions do not retrace it.
func markComponent(isEdge func(int, int) bool, visited []bool, w, h, sx, sy int) {
	stack := []image.Point{{X: sx, Y: sy}}
	visited[sy*w+sx] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				if isEdge(nx, ny) && !visited[ny*w+nx] {
					visited[ny*w+nx] = true
					stack = append(stack, image.Point{X: nx, Y: ny})
				}
			}
		}
	}
}

// Clockwise 8-neighbourhood order: E, SE, S, SW, W, NW, N, NE.
var (
	mooreDX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	mooreDY = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
)

func moorDirIndex(dx, dy int) int {
	for i := 0; i < 8; i++ {
		if mooreDX[i] == dx && mooreDY[i] == dy {
			return i
		}
	}
	return 0
}

// traceBoundary walks the component boundary starting at (sx, sy). The
// start pixel is the component's first pixel in row-major scan order, so
// its western neighbour is guaranteed outside the component and serves as
// the initial backtrack.
func traceBoundary(isEdge func(int, int) bool, w, h, sx, sy int) []image.Point {
	pts := make([]image.Point, 0, 64)
	pts = append(pts, image.Point{X: sx, Y: sy})

	cx, cy := sx, sy
	bx, by := sx-1, sy
	startBx, startBy := bx, by

	// Bounded to keep a malformed map from spinning forever.
	maxSteps := w*h*4 + 8
	for step := 0; step < maxSteps; step++ {
		nx, ny, nbx, nby, found := nextBoundary(isEdge, cx, cy, bx, by)
		if !found {
			break
		}
		cx, cy, bx, by = nx, ny, nbx, nby
		if cx == sx && cy == sy && bx == startBx && by == startBy {
			break
		}
		last := pts[len(pts)-1]
		if last.X != cx || last.Y != cy {
			pts = append(pts, image.Point{X: cx, Y: cy})
		}
	}

	// Drop a duplicated closing point.
	if n := len(pts); n >= 2 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return pts
}

// nextBoundary scans the Moore neighbourhood of (cx, cy) clockwise starting
// just after the backtrack position and returns the first edge pixel along
// with the background pixel preceding it (the new backtrack).
func nextBoundary(isEdge func(int, int) bool, cx, cy, bx, by int) (nx, ny, nbx, nby int, found bool) {
	start := (moorDirIndex(bx-cx, by-cy) + 1) % 8
	px, py := bx, by
	for k := 0; k < 8; k++ {
		i := (start + k) % 8
		tx, ty := cx+mooreDX[i], cy+mooreDY[i]
		if isEdge(tx, ty) {
			return tx, ty, px, py, true
		}
		px, py = tx, ty
	}
	return 0, 0, 0, 0, false
}
