package fov

import (
	"errors"
	"strings"
	"testing"

	"gridlight/internal/grid"
)

func TestVisibleMatchesLitCells(t *testing.T) {
	g := openGrid(12, 12)
	g.Set(6, 6, grid.MakeWall())
	c := New(g)

	if err := c.CalculateRadius(4, 6, 5, ShapeCircle); err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	inSet := make(map[grid.Position]bool)
	for _, p := range c.Visible() {
		inSet[p] = true
	}
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			lit := c.LightAt(x, y) > 0
			if lit != inSet[grid.Position{X: x, Y: y}] {
				t.Errorf("cell (%d,%d): lit=%v but set membership=%v", x, y, lit, inSet[grid.Position{X: x, Y: y}])
			}
		}
	}
}

func TestDiffCorrectness(t *testing.T) {
	g := openGrid(30, 30)
	c := New(g)

	if err := c.CalculateRadius(5, 5, 4, ShapeCircle); err != nil {
		t.Fatalf("first Calculate: %v", err)
	}
	first := c.Visible()

	if err := c.CalculateRadius(12, 12, 6, ShapeCircle); err != nil {
		t.Fatalf("second Calculate: %v", err)
	}
	second := c.Visible()
	seen := c.NewlySeen()
	unseen := c.NewlyUnseen()

	seenSet := make(map[grid.Position]bool)
	for _, p := range seen {
		seenSet[p] = true
	}
	for _, p := range unseen {
		if seenSet[p] {
			t.Errorf("position %v appears in both NewlySeen and NewlyUnseen", p)
		}
	}

	// current = previous ∪ NewlySeen − NewlyUnseen
	reconstructed := make(map[grid.Position]bool)
	for _, p := range first {
		reconstructed[p] = true
	}
	for _, p := range seen {
		reconstructed[p] = true
	}
	for _, p := range unseen {
		delete(reconstructed, p)
	}
	if len(reconstructed) != len(second) {
		t.Fatalf("reconstructed set has %d positions, current has %d", len(reconstructed), len(second))
	}
	for _, p := range second {
		if !reconstructed[p] {
			t.Errorf("position %v in current but not in previous ∪ NewlySeen − NewlyUnseen", p)
		}
	}
}

func TestIdempotentRecalculation(t *testing.T) {
	g := openGrid(15, 15)
	g.Set(8, 7, grid.MakeWall())
	c := New(g)

	if err := c.CalculateRadius(7, 7, 6, ShapeCircle); err != nil {
		t.Fatalf("first Calculate: %v", err)
	}
	before := c.DumpLight(6)

	if err := c.CalculateRadius(7, 7, 6, ShapeCircle); err != nil {
		t.Fatalf("second Calculate: %v", err)
	}
	if after := c.DumpLight(6); after != before {
		t.Error("identical recalculation changed the light map")
	}
	if n := len(c.NewlySeen()); n != 0 {
		t.Errorf("NewlySeen after identical recalculation has %d positions, want 0", n)
	}
	if n := len(c.NewlyUnseen()); n != 0 {
		t.Errorf("NewlyUnseen after identical recalculation has %d positions, want 0", n)
	}
}

func TestOriginOutOfBoundsFailsFast(t *testing.T) {
	g := openGrid(10, 10)
	c := New(g)

	if err := c.CalculateRadius(4, 4, 3, ShapeCircle); err != nil {
		t.Fatalf("setup Calculate: %v", err)
	}
	before := c.DumpLight(6)
	visibleBefore := len(c.Visible())

	err := c.CalculateRadius(10, 4, 3, ShapeCircle)
	if err == nil {
		t.Fatal("origin at x=width should be rejected")
	}
	if !errors.Is(err, ErrOriginOutOfBounds) {
		t.Errorf("error %v should wrap ErrOriginOutOfBounds", err)
	}

	// A rejected call must not touch any buffer.
	if c.DumpLight(6) != before {
		t.Error("rejected Calculate mutated the light map")
	}
	if len(c.Visible()) != visibleBefore {
		t.Error("rejected Calculate mutated the visible set")
	}

	// The calculator stays usable afterwards.
	if err := c.CalculateRadius(5, 5, 3, ShapeCircle); err != nil {
		t.Errorf("Calculate after rejected call: %v", err)
	}

	for _, bad := range [][2]int{{-1, 4}, {4, -1}, {4, 10}, {-3, -3}} {
		if err := c.CalculateRadius(bad[0], bad[1], 3, ShapeCircle); err == nil {
			t.Errorf("origin (%d,%d) should be rejected", bad[0], bad[1])
		}
	}
}

func TestNonPositiveRadiusClampsToOne(t *testing.T) {
	g := openGrid(9, 9)
	c := New(g)

	for _, radius := range []float64{0, -5} {
		if err := c.CalculateRadius(4, 4, radius, ShapeCircle); err != nil {
			t.Fatalf("Calculate(radius=%v): %v", radius, err)
		}
		// Cardinal neighbors are at distance 1 and stay lit.
		for _, p := range [][2]int{{4, 3}, {4, 5}, {3, 4}, {5, 4}} {
			if !c.IsVisible(p[0], p[1]) {
				t.Errorf("radius=%v: cardinal neighbor (%d,%d) should be lit after clamp to 1", radius, p[0], p[1])
			}
		}
		// Diagonals are at distance √2 > 1 under the circle metric.
		if c.IsVisible(5, 5) {
			t.Errorf("radius=%v: diagonal neighbor should be dark after clamp to 1", radius)
		}
	}
}

func TestUnlimitedRadiusLightsLineOfSight(t *testing.T) {
	g := openGrid(40, 8)
	c := New(g)

	if err := c.Calculate(0, 4); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	// With the unlimited sentinel there is no falloff: every cell in line
	// of sight holds full brightness.
	if got := c.LightAt(39, 4); got != 1.0 {
		t.Errorf("far cell brightness = %v, want 1.0 with unlimited radius", got)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 40; x++ {
			if !c.IsVisible(x, y) {
				t.Errorf("cell (%d,%d) on an open map should be visible with unlimited radius", x, y)
			}
		}
	}
}

// resizingView wraps a Grid and lets a test swap the underlying grid to a
// different size between calculations.
type resizingView struct {
	g *grid.Grid
}

func (v *resizingView) Size() (int, int)            { return v.g.Size() }
func (v *resizingView) IsTransparent(x, y int) bool { return v.g.IsTransparent(x, y) }

func TestLightMapTracksViewResize(t *testing.T) {
	view := &resizingView{g: openGrid(8, 8)}
	c := New(view)

	if err := c.CalculateRadius(3, 3, 3, ShapeCircle); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if w, h := c.Light().Size(); w != 8 || h != 8 {
		t.Fatalf("light map size = %dx%d, want 8x8", w, h)
	}

	view.g = openGrid(16, 12)
	if err := c.CalculateRadius(3, 3, 3, ShapeCircle); err != nil {
		t.Fatalf("Calculate after resize: %v", err)
	}
	if w, h := c.Light().Size(); w != 16 || h != 12 {
		t.Fatalf("light map size = %dx%d, want 16x12 after view resize", w, h)
	}
	if c.Light().Len() != 16*12 {
		t.Errorf("light map length = %d, want %d", c.Light().Len(), 16*12)
	}
}

func TestSubscribeAndCancel(t *testing.T) {
	g := openGrid(10, 10)
	c := New(g)

	var got []Recalculation
	cancel := c.Subscribe(func(r Recalculation) {
		got = append(got, r)
	})

	if err := c.CalculateRadius(2, 3, 5, ShapeSquare); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("subscriber called %d times, want 1", len(got))
	}
	r := got[0]
	if r.Origin != (grid.Position{X: 2, Y: 3}) || r.Radius != 5 || r.Shape != ShapeSquare || r.Cone {
		t.Errorf("notification %+v does not match calculation parameters", r)
	}

	if err := c.CalculateCone(4, 4, 6, ShapeCircle, 90, 120); err != nil {
		t.Fatalf("CalculateCone: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("subscriber called %d times, want 2", len(got))
	}
	if r := got[1]; !r.Cone || r.Angle != 90 || r.Span != 120 {
		t.Errorf("cone notification %+v missing angle/span", r)
	}

	cancel()
	if err := c.Calculate(5, 5); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("cancelled subscriber still called (%d notifications)", len(got))
	}
}

func TestNoNotificationOnRejectedCalculate(t *testing.T) {
	g := openGrid(10, 10)
	c := New(g)

	calls := 0
	c.Subscribe(func(Recalculation) { calls++ })

	if err := c.Calculate(-1, 0); err == nil {
		t.Fatal("out-of-bounds origin should be rejected")
	}
	if calls != 0 {
		t.Errorf("subscriber called %d times for a rejected calculation", calls)
	}
}

func TestClampedRadiusReportedInNotification(t *testing.T) {
	g := openGrid(10, 10)
	c := New(g)

	var r Recalculation
	c.Subscribe(func(got Recalculation) { r = got })

	if err := c.CalculateRadius(4, 4, -2, ShapeCircle); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if r.Radius != 1 {
		t.Errorf("notification radius = %v, want the clamped value 1", r.Radius)
	}
}

func TestDumpVisibleGlyphMap(t *testing.T) {
	g := openGrid(5, 5)
	c := New(g)

	if err := c.CalculateRadius(2, 2, 1, ShapeSquare); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	want := strings.Join([]string{
		"-----",
		"-***-",
		"-***-",
		"-***-",
		"-----",
	}, "\n") + "\n"
	if got := c.DumpVisible(); got != want {
		t.Errorf("DumpVisible:\n%swant:\n%s", got, want)
	}
}

func TestDumpLightDecimals(t *testing.T) {
	g := openGrid(3, 1)
	c := New(g)

	if err := c.CalculateRadius(0, 0, 1, ShapeCircle); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	// Origin 1.0, neighbor at distance 1 → 1 - 1/2 = 0.5, beyond radius → 0.
	if got, want := c.DumpLight(2), "1.00 0.50 0.00\n"; got != want {
		t.Errorf("DumpLight(2) = %q, want %q", got, want)
	}
}

func TestLightAtIndexMatchesCoordinates(t *testing.T) {
	g := openGrid(7, 4)
	c := New(g)

	if err := c.CalculateRadius(3, 2, 3, ShapeCircle); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 7; x++ {
			if c.LightAt(x, y) != c.LightAtIndex(y*7+x) {
				t.Errorf("LightAt(%d,%d) != LightAtIndex(%d)", x, y, y*7+x)
			}
		}
	}
}
