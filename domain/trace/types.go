package trace

import "image"

// Contour is an ordered run of pixel coordinates tracing one connected edge.
// Points start in raster-local coordinates; Translate shifts them into
// absolute screen coordinates before they are cached for replay.
type Contour struct {
	Points []image.Point
}

// Translate shifts every point of every contour by offset, in place.
func Translate(contours []Contour, offset image.Point) {
	for i := range contours {
		pts := contours[i].Points
		for j := range pts {
			pts[j] = pts[j].Add(offset)
		}
	}
}
