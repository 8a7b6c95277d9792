package fov

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gridlight/internal/grid"
)

// Unlimited is the radius sentinel for effectively-infinite sight range.
// The scan is still capped at width+height rows, so cost stays bounded by
// the map size.
const Unlimited = math.MaxFloat64

// ErrOriginOutOfBounds is returned when a calculation origin lies outside
// the transparency map. No buffer is mutated on this path.
var ErrOriginOutOfBounds = errors.New("fov: origin out of bounds")

// TransparencyView is the read-only map interface the engine consumes.
// true means the cell passes light. The engine bounds-checks every
// coordinate before querying, and never writes through this interface.
type TransparencyView interface {
	Size() (width, height int)
	IsTransparent(x, y int) bool
}

// Recalculation describes one completed calculation. It is handed to
// subscribers and records the parameters that were actually used (after
// radius clamping).
type Recalculation struct {
	Origin grid.Position
	Radius float64
	Shape  Shape
	Cone   bool
	Angle  float64 // cone center, degrees; meaningful only when Cone
	Span   float64 // total arc width, degrees; meaningful only when Cone
}

// Calculator owns the light map and visible sets for one observer and runs
// the shadowcasting scan on demand. It is not safe for concurrent use;
// give each observer its own Calculator.
type Calculator struct {
	view     TransparencyView
	light    *LightMap
	current  map[grid.Position]struct{}
	previous map[grid.Position]struct{}
	subs     []subscriber
	nextSub  int
}

type subscriber struct {
	id int
	fn func(Recalculation)
}

// New creates a Calculator reading from view. The light map is allocated
// immediately at the view's current dimensions and starts fully dark.
func New(view TransparencyView) *Calculator {
	w, h := view.Size()
	return &Calculator{
		view:     view,
		light:    NewLightMap(w, h),
		current:  make(map[grid.Position]struct{}),
		previous: make(map[grid.Position]struct{}),
	}
}

// Calculate computes unrestricted 360° visibility from (x, y) with
// unlimited radius and the circle metric.
func (c *Calculator) Calculate(x, y int) error {
	return c.CalculateRadius(x, y, Unlimited, ShapeCircle)
}

// CalculateRadius computes unrestricted 360° visibility from (x, y) out to
// the given metric radius. A radius ≤ 0 is clamped to 1.
func (c *Calculator) CalculateRadius(x, y int, radius float64, shape Shape) error {
	return c.calculate(Recalculation{
		Origin: grid.Position{X: x, Y: y},
		Radius: radius,
		Shape:  shape,
	})
}

// CalculateCone computes cone-restricted visibility: only cells whose
// direction from the origin lies within span/2 degrees of angle are lit.
// Angle 0 points along +x, increasing toward +y. Obstacles outside the
// cone still cast shadows. A span of 360 is identical to CalculateRadius.
func (c *Calculator) CalculateCone(x, y int, radius float64, shape Shape, angle, span float64) error {
	return c.calculate(Recalculation{
		Origin: grid.Position{X: x, Y: y},
		Radius: radius,
		Shape:  shape,
		Cone:   true,
		Angle:  angle,
		Span:   span,
	})
}

// calculate is the single compute path behind the public Calculate variants.
func (c *Calculator) calculate(p Recalculation) error {
	width, height := c.view.Size()
	if p.Origin.X < 0 || p.Origin.X >= width || p.Origin.Y < 0 || p.Origin.Y >= height {
		return fmt.Errorf("%w: (%d,%d) on %dx%d map", ErrOriginOutOfBounds, p.Origin.X, p.Origin.Y, width, height)
	}
	if p.Radius <= 0 {
		p.Radius = 1
	}

	c.light.resize(width, height)
	c.light.clear()
	c.previous = c.current
	c.current = make(map[grid.Position]struct{}, len(c.previous)+1)

	maxRows := width + height
	if p.Radius < float64(maxRows) {
		maxRows = int(p.Radius)
	}
	s := &session{
		view:    c.view,
		light:   c.light,
		seen:    c.current,
		ox:      p.Origin.X,
		oy:      p.Origin.Y,
		radius:  p.Radius,
		decay:   1 / (p.Radius + 1),
		shape:   p.Shape,
		maxRows: maxRows,
		cone:    p.Cone,
		angle:   p.Angle,
		span:    p.Span,
	}

	// The origin is always its own brightest cell, even when the map marks
	// it opaque.
	c.light.set(p.Origin.X, p.Origin.Y, 1.0)
	c.current[p.Origin] = struct{}{}

	s.run()

	for _, sub := range c.subs {
		sub.fn(p)
	}
	return nil
}

// Subscribe registers fn to be called synchronously at the end of every
// completed calculation. The returned func removes the subscription.
func (c *Calculator) Subscribe(fn func(Recalculation)) (cancel func()) {
	id := c.nextSub
	c.nextSub++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range c.subs {
			if sub.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Light returns the calculator's light map. Callers read it only; its
// contents are stable until the next Calculate call.
func (c *Calculator) Light() *LightMap {
	return c.light
}

// LightAt returns the brightness at (x, y), or 0 when out of bounds.
func (c *Calculator) LightAt(x, y int) float64 {
	return c.light.At(x, y)
}

// LightAtIndex returns the brightness at flattened index i (y*width + x).
func (c *Calculator) LightAtIndex(i int) float64 {
	return c.light.AtIndex(i)
}

// IsVisible reports whether (x, y) was lit by the most recent calculation.
func (c *Calculator) IsVisible(x, y int) bool {
	return c.light.At(x, y) > 0
}

// Visible returns the currently visible positions in (y, x) order.
func (c *Calculator) Visible() []grid.Position {
	return sortedPositions(c.current)
}

// NewlySeen returns positions visible now that were not visible after the
// previous calculation, in (y, x) order.
func (c *Calculator) NewlySeen() []grid.Position {
	return sortedDiff(c.current, c.previous)
}

// NewlyUnseen returns positions visible after the previous calculation
// that are no longer visible, in (y, x) order.
func (c *Calculator) NewlyUnseen() []grid.Position {
	return sortedDiff(c.previous, c.current)
}

// DumpVisible renders the binary visible/not-visible glyph map.
func (c *Calculator) DumpVisible() string {
	return c.light.DumpVisible()
}

// DumpLight renders raw brightness rounded to decimals places.
func (c *Calculator) DumpLight(decimals int) string {
	return c.light.Dump(decimals)
}

// sortedDiff returns the members of a that are absent from b, sorted.
func sortedDiff(a, b map[grid.Position]struct{}) []grid.Position {
	out := make([]grid.Position, 0)
	for p := range a {
		if _, ok := b[p]; !ok {
			out = append(out, p)
		}
	}
	sortPositions(out)
	return out
}

func sortedPositions(set map[grid.Position]struct{}) []grid.Position {
	out := make([]grid.Position, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sortPositions(out)
	return out
}

func sortPositions(ps []grid.Position) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
}
