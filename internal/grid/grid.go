package grid

import (
	"fmt"
	"strings"
)

// Position identifies one grid cell by integer coordinates.
type Position struct {
	X, Y int
}

// Grid holds a rectangular field of cells. It is the concrete transparency
// map the FOV engine reads from: the engine only ever calls Size and
// IsTransparent and never writes through it.
type Grid struct {
	W, H  int
	Cells [][]Cell
}

// New creates a Grid of the given dimensions filled with walls.
func New(width, height int) *Grid {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = MakeWall()
		}
	}
	return &Grid{W: width, H: height, Cells: cells}
}

// Size returns the grid dimensions.
func (g *Grid) Size() (width, height int) {
	return g.W, g.H
}

// InBounds reports whether (x, y) is within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns a pointer to the cell at (x, y). Panics if out of bounds.
func (g *Grid) At(x, y int) *Cell {
	return &g.Cells[y][x]
}

// Set replaces the cell at (x, y).
func (g *Grid) Set(x, y int, c Cell) {
	g.Cells[y][x] = c
}

// IsTransparent returns true when (x, y) is in bounds and passes light.
func (g *Grid) IsTransparent(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.Cells[y][x].Transparent
}

// IsWalkable returns true when (x, y) is in bounds and walkable.
func (g *Grid) IsWalkable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.Cells[y][x].Walkable
}

// Fill sets every cell to c.
func (g *Grid) Fill(c Cell) {
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			g.Cells[y][x] = c
		}
	}
}

// Parse builds a Grid from rows of glyphs: '#' wall, '.' floor, '+' door,
// '=' glass. Rows must be non-empty and equal in length.
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("grid: empty layout")
	}
	g := New(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.W {
			return nil, fmt.Errorf("grid: row %d has %d cells, want %d", y, len(row), g.W)
		}
		for x, r := range row {
			switch r {
			case '#':
				g.Set(x, y, MakeWall())
			case '.':
				g.Set(x, y, MakeFloor())
			case '+':
				g.Set(x, y, MakeDoor())
			case '=':
				g.Set(x, y, MakeGlass())
			default:
				return nil, fmt.Errorf("grid: unknown glyph %q at (%d,%d)", r, x, y)
			}
		}
	}
	return g, nil
}

// String renders the grid using the same glyphs Parse accepts.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			switch g.Cells[y][x].Kind {
			case CellWall:
				b.WriteByte('#')
			case CellFloor:
				b.WriteByte('.')
			case CellDoor:
				b.WriteByte('+')
			case CellGlass:
				b.WriteByte('=')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
