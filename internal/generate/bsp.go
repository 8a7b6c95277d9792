// Package generate builds demo maps for the FOV front ends: BSP-split
// rooms joined by corridors, with occasional doors and glass panes so the
// opaque/transparent cell kinds all show up.
package generate

import (
	"math/rand"

	"gridlight/internal/grid"
)

// Rect is an axis-aligned rectangle used for rooms.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Config drives one map generation.
type Config struct {
	Width, Height int
	MinLeafSize   int
	MaxLeafSize   int
	MinRoomSize   int
	RoomPadding   int
	CorridorStyle CorridorStyle
	DoorChance    int // 0–100: chance per room to turn one wall cell into a door
	GlassChance   int // 0–100: chance per room to turn one wall cell into glass
	Rand          *rand.Rand
}

// DefaultConfig returns generation parameters suited to terminal-sized maps.
func DefaultConfig(width, height int, rng *rand.Rand) *Config {
	return &Config{
		Width:       width,
		Height:      height,
		MinLeafSize: 8,
		MaxLeafSize: 20,
		MinRoomSize: 4,
		RoomPadding: 1,
		DoorChance:  40,
		GlassChance: 25,
		Rand:        rng,
	}
}

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *Rect
}

// split divides the leaf into two children, returning false when the leaf
// is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false // already split
	}
	// Split direction: horizontal when taller, vertical when wider.
	splitH := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		splitH = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		splitH = true
	}

	maxSize := l.H
	if !splitH {
		maxSize = l.W
	}
	if maxSize <= cfg.MinLeafSize*2 {
		return false // too small to split
	}

	lo := cfg.MinLeafSize
	hi := maxSize - cfg.MinLeafSize
	if lo >= hi {
		return false
	}
	at := lo + cfg.Rand.Intn(hi-lo+1)

	if splitH {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: at}
		l.right = &bspLeaf{X: l.X, Y: l.Y + at, W: l.W, H: l.H - at}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: at, H: l.H}
		l.right = &bspLeaf{X: l.X + at, Y: l.Y, W: l.W - at, H: l.H}
	}
	return true
}

// createRooms recursively carves rooms inside terminal leaves, collecting
// them into rooms.
func (l *bspLeaf) createRooms(g *grid.Grid, cfg *Config, rooms *[]Rect) {
	if l.left != nil || l.right != nil {
		if l.left != nil {
			l.left.createRooms(g, cfg, rooms)
		}
		if l.right != nil {
			l.right.createRooms(g, cfg, rooms)
		}
		return
	}

	pad := cfg.RoomPadding
	minSize := cfg.MinRoomSize

	availW := max(l.W-2*pad, minSize)
	availH := max(l.H-2*pad, minSize)

	rw := minSize + cfg.Rand.Intn(max(1, availW-minSize+1))
	rh := minSize + cfg.Rand.Intn(max(1, availH-minSize+1))

	// Clamp to leaf bounds.
	rw = min(rw, l.W-2*pad)
	rh = min(rh, l.H-2*pad)
	if rw < 3 || rh < 3 {
		return
	}

	rx := l.X + pad + cfg.Rand.Intn(max(1, l.W-rw-2*pad+1))
	ry := l.Y + pad + cfg.Rand.Intn(max(1, l.H-rh-2*pad+1))

	// Keep a 1-cell wall border around the map edge.
	rx = max(rx, 1)
	ry = max(ry, 1)
	if rx+rw >= g.W {
		rw = g.W - rx - 1
	}
	if ry+rh >= g.H {
		rh = g.H - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			g.Set(x, y, grid.MakeFloor())
		}
	}
	*rooms = append(*rooms, room)
}

// getRoom returns a room from this subtree, preferring the leaf's own.
func (l *bspLeaf) getRoom() *Rect {
	if l.room != nil {
		return l.room
	}
	var lRoom, rRoom *Rect
	if l.left != nil {
		lRoom = l.left.getRoom()
	}
	if l.right != nil {
		rRoom = l.right.getRoom()
	}
	if lRoom == nil {
		return rRoom
	}
	return lRoom
}

// connectChildren carves corridors between the two children of a split leaf.
func (l *bspLeaf) connectChildren(g *grid.Grid, cfg *Config) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connectChildren(g, cfg)
	l.right.connectChildren(g, cfg)

	lRoom := l.left.getRoom()
	rRoom := l.right.getRoom()
	if lRoom == nil || rRoom == nil {
		return
	}
	lCX, lCY := lRoom.Center()
	rCX, rCY := rRoom.Center()
	carveCorridor(g, lCX, lCY, rCX, rCY, cfg)
}

// decorate turns the occasional room-wall cell into a door or glass pane.
func decorate(g *grid.Grid, cfg *Config, rooms []Rect) {
	for _, room := range rooms {
		if cfg.Rand.Intn(100) < cfg.DoorChance {
			placeOnWall(g, cfg, room, grid.MakeDoor())
		}
		if cfg.Rand.Intn(100) < cfg.GlassChance {
			placeOnWall(g, cfg, room, grid.MakeGlass())
		}
	}
}

// placeOnWall puts c on a random wall cell on the room's top or bottom edge.
func placeOnWall(g *grid.Grid, cfg *Config, room Rect, c grid.Cell) {
	for i := 0; i < 8; i++ {
		x := room.X1 + cfg.Rand.Intn(room.X2-room.X1+1)
		y := room.Y1 - 1
		if cfg.Rand.Intn(2) == 0 {
			y = room.Y2 + 1
		}
		if g.InBounds(x, y) && g.At(x, y).Kind == grid.CellWall {
			g.Set(x, y, c)
			return
		}
	}
}

// Generate runs BSP generation and returns the map plus a start position
// inside the first room.
func Generate(cfg *Config) (*grid.Grid, grid.Position) {
	g := grid.New(cfg.Width, cfg.Height)

	root := &bspLeaf{X: 0, Y: 0, W: cfg.Width, H: cfg.Height}

	// Build the BSP tree breadth-first until nothing splits.
	leaves := []*bspLeaf{root}
	splitAny := true
	for splitAny {
		splitAny = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if leaf.left != nil || leaf.right != nil {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize ||
				cfg.Rand.Float64() > 0.25 {
				if leaf.split(cfg) {
					next = append(next, leaf.left, leaf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	var rooms []Rect
	root.createRooms(g, cfg, &rooms)
	root.connectChildren(g, cfg)
	decorate(g, cfg, rooms)

	start := grid.Position{X: 1, Y: 1}
	if len(rooms) > 0 {
		start.X, start.Y = rooms[0].Center()
	}
	return g, start
}
