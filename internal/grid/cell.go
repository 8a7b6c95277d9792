package grid

// CellKind identifies the type of a grid cell.
type CellKind uint8

const (
	CellWall CellKind = iota
	CellFloor
	CellDoor
	CellGlass
)

// Cell holds the terrain properties of one grid position.
type Cell struct {
	Kind        CellKind
	Walkable    bool
	Transparent bool
}

// MakeWall returns a blocking, opaque wall cell.
func MakeWall() Cell {
	return Cell{Kind: CellWall, Walkable: false, Transparent: false}
}

// MakeFloor returns a passable, transparent floor cell.
func MakeFloor() Cell {
	return Cell{Kind: CellFloor, Walkable: true, Transparent: true}
}

// MakeDoor returns a closed door: passable but opaque.
func MakeDoor() Cell {
	return Cell{Kind: CellDoor, Walkable: true, Transparent: false}
}

// MakeGlass returns a glass pane: blocking but see-through.
func MakeGlass() Cell {
	return Cell{Kind: CellGlass, Walkable: false, Transparent: true}
}
