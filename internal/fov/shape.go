package fov

import (
	"fmt"
	"math"
	"strings"
)

// Shape selects the distance metric used for the radius boundary and the
// brightness falloff. The name describes the outline of the lit area on an
// open map.
type Shape uint8

const (
	ShapeCircle  Shape = iota // Euclidean distance
	ShapeSquare               // Chebyshev distance
	ShapeDiamond              // Manhattan distance
)

// Distance returns the metric distance of offset (dx, dy) from the origin.
// Pure and total over all integer offsets.
func (s Shape) Distance(dx, dy int) float64 {
	ax, ay := dx, dy
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}
	switch s {
	case ShapeSquare:
		return float64(max(ax, ay))
	case ShapeDiamond:
		return float64(ax + ay)
	default:
		return math.Sqrt(float64(dx*dx + dy*dy))
	}
}

// String returns the lowercase metric name.
func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeDiamond:
		return "diamond"
	default:
		return "circle"
	}
}

// ParseShape converts a metric name ("circle", "square", "diamond") to a Shape.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(name) {
	case "circle":
		return ShapeCircle, nil
	case "square":
		return ShapeSquare, nil
	case "diamond":
		return ShapeDiamond, nil
	}
	return ShapeCircle, fmt.Errorf("fov: unknown shape %q", name)
}
