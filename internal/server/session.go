package server

import (
	"fmt"
	"math/rand"

	"gridlight/internal/config"
	"gridlight/internal/fov"
	"gridlight/internal/generate"
	"gridlight/internal/grid"
)

// session holds the per-connection state of one inspector client: its own
// map and calculator, never shared across connections.
type session struct {
	g    *grid.Grid
	calc *fov.Calculator
}

// newSession generates a map per the config and wraps it in a calculator.
func newSession(cfg config.Server) *session {
	seed := cfg.Map.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	g, _ := generate.Generate(generate.DefaultConfig(cfg.Map.Width, cfg.Map.Height, rand.New(rand.NewSource(seed))))
	return &session{g: g, calc: fov.New(g)}
}

// apply executes one request against the session state and builds the
// response. It never panics on bad input; errors come back in the
// Response so the connection survives malformed operations.
func (s *session) apply(req Request) Response {
	switch req.Op {
	case "calculate":
		shape, err := parseShape(req.Shape)
		if err != nil {
			return errResponse(err)
		}
		if err := s.calc.CalculateRadius(req.X, req.Y, radiusOrDefault(req.Radius), shape); err != nil {
			return errResponse(err)
		}
		return s.calcResponse()

	case "cone":
		shape, err := parseShape(req.Shape)
		if err != nil {
			return errResponse(err)
		}
		if err := s.calc.CalculateCone(req.X, req.Y, radiusOrDefault(req.Radius), shape, req.Angle, req.Span); err != nil {
			return errResponse(err)
		}
		return s.calcResponse()

	case "set":
		cell, err := parseCell(req.Cell)
		if err != nil {
			return errResponse(err)
		}
		if !s.g.InBounds(req.X, req.Y) {
			return errResponse(fmt.Errorf("cell (%d,%d) out of bounds", req.X, req.Y))
		}
		s.g.Set(req.X, req.Y, cell)
		return Response{OK: true, Map: s.g.String()}

	case "dump":
		return Response{
			OK:    true,
			Map:   s.g.String(),
			Glyph: s.calc.DumpVisible(),
			Dump:  s.calc.DumpLight(2),
		}
	}
	return errResponse(fmt.Errorf("unknown op %q", req.Op))
}

// calcResponse packages the calculator's state after a calculation.
func (s *session) calcResponse() Response {
	light := s.calc.Light()
	w, h := light.Size()
	cells := make([]float64, light.Len())
	for i := range cells {
		cells[i] = light.AtIndex(i)
	}
	return Response{
		OK:          true,
		Width:       w,
		Height:      h,
		Light:       cells,
		Visible:     s.calc.Visible(),
		NewlySeen:   s.calc.NewlySeen(),
		NewlyUnseen: s.calc.NewlyUnseen(),
	}
}

func errResponse(err error) Response {
	return Response{Error: err.Error()}
}

// radiusOrDefault maps an omitted radius to the unlimited sentinel.
func radiusOrDefault(r float64) float64 {
	if r == 0 {
		return fov.Unlimited
	}
	return r
}

// parseShape maps an optional shape name to a metric, defaulting to circle.
func parseShape(name string) (fov.Shape, error) {
	if name == "" {
		return fov.ShapeCircle, nil
	}
	return fov.ParseShape(name)
}

// parseCell maps a cell kind name to a cell value.
func parseCell(name string) (grid.Cell, error) {
	switch name {
	case "wall":
		return grid.MakeWall(), nil
	case "floor":
		return grid.MakeFloor(), nil
	case "door":
		return grid.MakeDoor(), nil
	case "glass":
		return grid.MakeGlass(), nil
	}
	return grid.Cell{}, fmt.Errorf("unknown cell kind %q", name)
}
