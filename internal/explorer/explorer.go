// Package explorer is an interactive terminal front end for the FOV
// engine: move an observer around a generated map and watch the light
// field, the cone, and the explored overlay react.
package explorer

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"gridlight/internal/fov"
	"gridlight/internal/generate"
	"gridlight/internal/grid"
)

// Options sets the explorer's starting parameters. Zero values fall back
// to sensible defaults.
type Options struct {
	MapWidth  int
	MapHeight int
	Radius    float64
	Shape     fov.Shape
	Seed      int64
}

// Explorer drives one interactive session: a map, an observer, and a
// Calculator whose output it renders every frame.
type Explorer struct {
	screen tcell.Screen
	rng    *rand.Rand

	grid  *grid.Grid
	calc  *fov.Calculator
	obs   grid.Position
	mapW  int
	mapH  int

	radius float64
	shape  fov.Shape
	cone   bool
	angle  float64
	span   float64

	// explored accumulates newly-seen cells across recalculations, fed by
	// the calculator's subscription.
	explored map[grid.Position]bool

	cam camera

	lastSeen   int
	lastUnseen int
	quit       bool
}

// New creates an Explorer with its own tcell screen.
func New(opts Options) (*Explorer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(screen, opts), nil
}

// NewWithScreen creates an Explorer on an existing initialized screen
// (used by the SSH server, which brings its own session-backed screens).
func NewWithScreen(screen tcell.Screen, opts Options) *Explorer {
	if opts.MapWidth <= 0 {
		opts.MapWidth = 72
	}
	if opts.MapHeight <= 0 {
		opts.MapHeight = 40
	}
	if opts.Radius == 0 {
		opts.Radius = 12
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen.EnableMouse()
	e := &Explorer{
		screen: screen,
		rng:    rand.New(rand.NewSource(seed)),
		mapW:   opts.MapWidth,
		mapH:   opts.MapHeight,
		radius: opts.Radius,
		shape:  opts.Shape,
		span:   120,
	}
	e.regenerate()
	return e
}

// regenerate builds a fresh map and resets the calculator and overlay.
func (e *Explorer) regenerate() {
	g, start := generate.Generate(generate.DefaultConfig(e.mapW, e.mapH, e.rng))
	e.grid = g
	e.obs = start
	e.calc = fov.New(g)
	e.explored = make(map[grid.Position]bool)
	e.calc.Subscribe(func(fov.Recalculation) {
		seen := e.calc.NewlySeen()
		for _, p := range seen {
			e.explored[p] = true
		}
		e.lastSeen = len(seen)
		e.lastUnseen = len(e.calc.NewlyUnseen())
	})
	e.recalculate()
}

// recalculate reruns the FOV from the current observer and parameters.
func (e *Explorer) recalculate() {
	var err error
	if e.cone {
		err = e.calc.CalculateCone(e.obs.X, e.obs.Y, e.radius, e.shape, e.angle, e.span)
	} else {
		err = e.calc.CalculateRadius(e.obs.X, e.obs.Y, e.radius, e.shape)
	}
	if err != nil {
		// The observer only ever moves to in-bounds cells, so this is a
		// programming error worth surfacing loudly.
		panic(err)
	}
}

// Run processes events until the user quits. It restores the terminal
// before returning.
func (e *Explorer) Run() {
	defer e.screen.Fini()
	for !e.quit {
		e.draw()
		switch ev := e.screen.PollEvent().(type) {
		case *tcell.EventKey:
			e.handleAction(keyToAction(ev))
		case *tcell.EventMouse:
			e.handleMouse(ev)
		case *tcell.EventResize:
			e.screen.Sync()
		}
	}
}

func (e *Explorer) handleAction(a Action) {
	switch a {
	case ActionNone:
		return
	case ActionQuit:
		e.quit = true
		return
	case ActionRadiusUp:
		if e.radius < fov.Unlimited {
			e.radius++
		}
		if e.radius > float64(e.mapW+e.mapH) {
			e.radius = fov.Unlimited
		}
	case ActionRadiusDown:
		if e.radius == fov.Unlimited {
			e.radius = float64(e.mapW + e.mapH)
		} else if e.radius > 1 {
			e.radius--
		}
	case ActionUnlimitedRadius:
		if e.radius == fov.Unlimited {
			e.radius = 12
		} else {
			e.radius = fov.Unlimited
		}
	case ActionCycleShape:
		e.shape = (e.shape + 1) % 3
	case ActionToggleCone:
		e.cone = !e.cone
	case ActionConeLeft:
		e.angle -= 15
		if e.angle < 0 {
			e.angle += 360
		}
	case ActionConeRight:
		e.angle += 15
		if e.angle >= 360 {
			e.angle -= 360
		}
	case ActionConeNarrow:
		if e.span > 15 {
			e.span -= 15
		}
	case ActionConeWiden:
		if e.span < 360 {
			e.span += 15
		}
	case ActionRegenerate:
		e.regenerate()
		return
	default:
		dx, dy := actionToDelta(a)
		nx, ny := e.obs.X+dx, e.obs.Y+dy
		if !e.grid.IsWalkable(nx, ny) {
			return
		}
		e.obs = grid.Position{X: nx, Y: ny}
	}
	e.recalculate()
}

// handleMouse toggles the clicked cell between wall and floor, showing how
// the light field reacts to map edits.
func (e *Explorer) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	sx, sy := ev.Position()
	wx, wy := e.screenToWorld(sx, sy)
	if !e.grid.InBounds(wx, wy) || (wx == e.obs.X && wy == e.obs.Y) {
		return
	}
	if e.grid.At(wx, wy).Kind == grid.CellWall {
		e.grid.Set(wx, wy, grid.MakeFloor())
	} else {
		e.grid.Set(wx, wy, grid.MakeWall())
	}
	e.recalculate()
}
