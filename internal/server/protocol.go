package server

import "gridlight/internal/grid"

// Request is one JSON operation from an inspector client.
//
// Ops:
//   - "calculate": run unrestricted FOV from (x, y) with radius/shape
//   - "cone":      run cone FOV; adds angle and span
//   - "set":       replace the cell at (x, y) with the named kind
//   - "dump":      return textual dumps of the last calculation
type Request struct {
	Op     string  `json:"op"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Radius float64 `json:"radius,omitempty"`
	Shape  string  `json:"shape,omitempty"`
	Angle  float64 `json:"angle,omitempty"`
	Span   float64 `json:"span,omitempty"`
	Cell   string  `json:"cell,omitempty"` // wall, floor, door, glass
}

// Response answers one Request. Light is row-major, length Width*Height.
type Response struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`

	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	Light       []float64       `json:"light,omitempty"`
	Visible     []grid.Position `json:"visible,omitempty"`
	NewlySeen   []grid.Position `json:"newly_seen,omitempty"`
	NewlyUnseen []grid.Position `json:"newly_unseen,omitempty"`

	Map   string `json:"map,omitempty"`
	Dump  string `json:"dump,omitempty"`
	Glyph string `json:"glyph,omitempty"`
}
