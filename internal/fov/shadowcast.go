package fov

import (
	"math"

	"gridlight/internal/grid"
)

// octant transform matrices.
// For each octant, a (dx, dy) sweep pair maps to a world offset via:
//   worldX = ox + dx*xx + dy*xy
//   worldY = oy + dx*yx + dy*yy
// where dx sweeps horizontally within the row and dy is the fixed row index.
// These match the standard RogueBasin recursive shadowcasting multipliers.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// session carries the state of one visibility calculation through the
// recursive octant scans. Threading it explicitly keeps castOctant
// reentrant and testable apart from the Calculator facade.
type session struct {
	view  TransparencyView
	light *LightMap
	seen  map[grid.Position]struct{}

	ox, oy  int
	radius  float64
	decay   float64 // 1/(radius+1)
	shape   Shape
	maxRows int // min(radius, width+height): hard cap on scan distance

	cone  bool
	angle float64 // cone center, degrees, 0 = +x axis, increasing toward +y
	span  float64 // total arc width, degrees
}

// run scans all eight octants from the origin outward. The origin cell
// itself is lit by the caller, not here.
func (s *session) run() {
	for _, m := range octants {
		s.castOctant(1, 1.0, 0.0, m[0], m[1], m[2], m[3])
	}
}

// castOctant casts light through one octant using recursive shadowcasting.
//
// Algorithm (generalized from the boolean RogueBasin form):
//   - j is the current row (distance from origin along the main axis)
//   - dy = -j is fixed for the entire inner sweep (the row coordinate)
//   - dx sweeps from -j to 0 (the column coordinate within the row)
//   - world position: (ox + dx*xx + dy*xy,  oy + dx*yx + dy*yy)
//   - lSlope = (dx - 0.5) / (dy + 0.5)   rSlope = (dx + 0.5) / (dy - 0.5)
//
// Slopes come from cell edges rather than centers, which is what keeps
// shadow boundaries exact at obstacle corners. Brightness decays linearly
// with metric distance; the cone predicate, when active, gates lighting
// only — opaque cells outside the cone still cast shadows.
func (s *session) castOctant(row int, start, end float64, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	width, height := s.view.Size()
	newStart := start

	for j := row; j <= s.maxRows; j++ {
		dy := -j // fixed row index (always negative — moving away from origin)
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			// Map sweep coordinates to world position.
			wx := s.ox + dx*xx + dy*xy
			wy := s.oy + dx*yx + dy*yy

			// Slope of the left and right edges of this cell.
			// dy is negative so (dy+0.5) and (dy-0.5) are both negative,
			// making the slopes positive for dx < 0 — slopes decrease
			// toward 0 as dx moves right.
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue // cell is entirely below the current wedge
			}
			if end > lSlope {
				break // cell is above the wedge; so is the rest of the row
			}

			inBounds := wx >= 0 && wx < width && wy >= 0 && wy < height

			// Light this cell if it is within the metric radius.
			if inBounds {
				if dist := s.shape.Distance(dx, dy); dist <= s.radius {
					if !s.cone || s.inCone(wx-s.ox, wy-s.oy) {
						if bright := 1 - s.decay*dist; bright > 0 {
							s.light.set(wx, wy, bright)
							s.seen[grid.Position{X: wx, Y: wy}] = struct{}{}
						}
					}
				}
			}

			opaque := !inBounds || !s.view.IsTransparent(wx, wy)

			if blocked {
				if opaque {
					// Still inside a wall run — advance the shadow boundary.
					newStart = rSlope
				} else {
					// Transitioned wall→open: resume with updated start slope.
					blocked = false
					start = newStart
				}
			} else {
				if opaque && j < s.maxRows {
					// Hit a new wall — cast a child scan beyond it.
					blocked = true
					s.castOctant(j+1, start, lSlope, xx, xy, yx, yy)
					newStart = rSlope
				}
			}
		}
		if blocked {
			break // entire row ended in wall; no light beyond
		}
	}
}

// inCone reports whether offset (dx, dy) from the origin falls inside the
// configured cone. The comparison wraps correctly across 0°/360°.
func (s *session) inCone(dx, dy int) bool {
	if dx == 0 && dy == 0 {
		return true
	}
	a := math.Atan2(float64(dy), float64(dx)) * 180 / math.Pi
	diff := math.Mod(math.Abs(a-s.angle), 360)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff <= s.span/2
}
