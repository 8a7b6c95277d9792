package fov

import (
	"math"
	"testing"
)

func TestShapeDistances(t *testing.T) {
	cases := []struct {
		shape  Shape
		dx, dy int
		want   float64
	}{
		{ShapeSquare, 3, -4, 4},
		{ShapeSquare, -2, 1, 2},
		{ShapeSquare, 0, 0, 0},
		{ShapeDiamond, 3, -4, 7},
		{ShapeDiamond, -2, 1, 3},
		{ShapeDiamond, 0, 0, 0},
		{ShapeCircle, 3, -4, 5},
		{ShapeCircle, 0, 0, 0},
		{ShapeCircle, -1, 1, math.Sqrt2},
	}
	for _, tc := range cases {
		if got := tc.shape.Distance(tc.dx, tc.dy); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("%v.Distance(%d,%d) = %v, want %v", tc.shape, tc.dx, tc.dy, got, tc.want)
		}
	}
}

func TestShapeDistanceSignInvariant(t *testing.T) {
	for _, shape := range []Shape{ShapeCircle, ShapeSquare, ShapeDiamond} {
		for dy := -3; dy <= 3; dy++ {
			for dx := -3; dx <= 3; dx++ {
				base := shape.Distance(dx, dy)
				if got := shape.Distance(-dx, dy); got != base {
					t.Errorf("%v.Distance not symmetric in dx at (%d,%d)", shape, dx, dy)
				}
				if got := shape.Distance(dx, -dy); got != base {
					t.Errorf("%v.Distance not symmetric in dy at (%d,%d)", shape, dx, dy)
				}
			}
		}
	}
}

func TestParseShape(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Shape
	}{
		{"circle", ShapeCircle},
		{"Square", ShapeSquare},
		{"DIAMOND", ShapeDiamond},
	} {
		got, err := ParseShape(tc.in)
		if err != nil {
			t.Errorf("ParseShape(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseShape(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseShape("hexagon"); err == nil {
		t.Error("ParseShape should reject unknown names")
	}
}

func TestShapeRoundTripsThroughString(t *testing.T) {
	for _, shape := range []Shape{ShapeCircle, ShapeSquare, ShapeDiamond} {
		got, err := ParseShape(shape.String())
		if err != nil {
			t.Fatalf("ParseShape(%q): %v", shape.String(), err)
		}
		if got != shape {
			t.Errorf("round trip through String changed %v to %v", shape, got)
		}
	}
}
