package fov

import (
	"fmt"
	"strings"
)

// LightMap is a dense row-major grid of brightness values in [0,1].
// 1.0 is the origin's own brightness, 0.0 is fully dark. It is owned by a
// Calculator: packages outside fov can read it but never write it.
type LightMap struct {
	w, h  int
	cells []float64
}

// NewLightMap creates a cleared LightMap of the given dimensions.
func NewLightMap(width, height int) *LightMap {
	return &LightMap{w: width, h: height, cells: make([]float64, width*height)}
}

// Size returns the map dimensions.
func (m *LightMap) Size() (width, height int) {
	return m.w, m.h
}

// Len returns the number of cells (width × height).
func (m *LightMap) Len() int {
	return len(m.cells)
}

// At returns the brightness at (x, y), or 0 when out of bounds.
func (m *LightMap) At(x, y int) float64 {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return 0
	}
	return m.cells[y*m.w+x]
}

// AtIndex returns the brightness at flattened index i (y*width + x).
func (m *LightMap) AtIndex(i int) float64 {
	return m.cells[i]
}

// set writes brightness v at (x, y). Callers bounds-check first.
func (m *LightMap) set(x, y int, v float64) {
	m.cells[y*m.w+x] = v
}

// clear zeroes every cell in place without reallocating.
func (m *LightMap) clear() {
	for i := range m.cells {
		m.cells[i] = 0
	}
}

// resize reallocates the backing array when the dimensions differ from the
// current ones; otherwise it is a no-op. Reallocation happens only when the
// transparency map's size changed between calculations.
func (m *LightMap) resize(width, height int) {
	if m.w == width && m.h == height {
		return
	}
	m.w, m.h = width, height
	m.cells = make([]float64, width*height)
}

// DumpVisible renders a binary glyph map: '*' where brightness > 0, '-'
// elsewhere. One row per line.
func (m *LightMap) DumpVisible() string {
	var b strings.Builder
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.cells[y*m.w+x] > 0 {
				b.WriteByte('*')
			} else {
				b.WriteByte('-')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Dump renders raw brightness values rounded to decimals places, cells
// separated by single spaces, one row per line.
func (m *LightMap) Dump(decimals int) string {
	var b strings.Builder
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%.*f", decimals, m.cells[y*m.w+x])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
