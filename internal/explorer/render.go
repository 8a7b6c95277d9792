package explorer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"gridlight/internal/fov"
	"gridlight/internal/grid"
)

// hudRows is the number of screen rows reserved at the bottom for status.
const hudRows = 2

// camera holds the view offsets computed by the most recent draw;
// screenToWorld maps mouse clicks through them.
type camera struct {
	offX, offY int
}

// draw renders the map with brightness shading, the explored overlay, the
// observer, and the HUD.
func (e *Explorer) draw() {
	e.screen.Clear()
	screenW, screenH := e.screen.Size()
	viewH := screenH - hudRows

	// Center the view on the observer, clamped to the map.
	e.cam.offX = clamp(e.obs.X-screenW/2, 0, max(0, e.grid.W-screenW))
	e.cam.offY = clamp(e.obs.Y-viewH/2, 0, max(0, e.grid.H-viewH))

	light := e.calc.Light()
	for sy := 0; sy < viewH; sy++ {
		for sx := 0; sx < screenW; sx++ {
			wx, wy := sx+e.cam.offX, sy+e.cam.offY
			if !e.grid.InBounds(wx, wy) {
				continue
			}
			bright := light.At(wx, wy)
			explored := e.explored[grid.Position{X: wx, Y: wy}]
			if bright == 0 && !explored {
				continue
			}
			e.screen.SetContent(sx, sy, cellRune(e.grid.At(wx, wy).Kind), nil, cellStyle(bright))
		}
	}

	// Observer on top.
	osx, osy := e.obs.X-e.cam.offX, e.obs.Y-e.cam.offY
	if osx >= 0 && osx < screenW && osy >= 0 && osy < viewH {
		e.screen.SetContent(osx, osy, '@', nil,
			tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	}

	e.drawHUD(screenW, screenH)
	e.screen.Show()
}

// screenToWorld converts a screen position to map coordinates using the
// camera from the last drawn frame.
func (e *Explorer) screenToWorld(sx, sy int) (int, int) {
	return sx + e.cam.offX, sy + e.cam.offY
}

// cellRune picks the glyph for a cell kind.
func cellRune(k grid.CellKind) rune {
	switch k {
	case grid.CellWall:
		return '#'
	case grid.CellDoor:
		return '+'
	case grid.CellGlass:
		return '='
	default:
		return '.'
	}
}

// cellStyle shades a cell by brightness. Dark-but-explored cells render in
// a dim memory color.
func cellStyle(bright float64) tcell.Style {
	if bright == 0 {
		return tcell.StyleDefault.Foreground(tcell.NewRGBColor(70, 70, 110))
	}
	// Ramp from dim gray to full white with brightness.
	v := int32(80 + bright*175)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(v, v, v))
}

// drawHUD renders the two status rows at the bottom of the screen.
func (e *Explorer) drawHUD(screenW, screenH int) {
	radiusText := fmt.Sprintf("%.0f", e.radius)
	if e.radius == fov.Unlimited {
		radiusText = "∞"
	}
	status := fmt.Sprintf("@(%d,%d)  radius:%s  shape:%s  visible:%d  +%d/-%d",
		e.obs.X, e.obs.Y, radiusText, e.shape, len(e.calc.Visible()), e.lastSeen, e.lastUnseen)
	if e.cone {
		status += fmt.Sprintf("  cone:%.0f°±%.0f°", e.angle, e.span/2)
	}
	e.drawText(0, screenH-2, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	help := "move:hjkl/yubn  radius:+/-/0  m:shape  c:cone  [ ]:aim  { }:span  r:new map  click:toggle wall  q:quit"
	e.drawText(0, screenH-1, help, tcell.StyleDefault.Foreground(tcell.ColorGray))
}

// drawText writes a string advancing by display width per rune.
func (e *Explorer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		e.screen.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
