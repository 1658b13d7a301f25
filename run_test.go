package sparktrail

import "testing"

func newTestGame(targets ...*Region) (*game, *[]PointerEvent) {
	g := &game{
		loop: NewLoop(false),
		cfg:  RunConfig{Width: 800, Height: 600, Targets: targets},
	}
	return g, recordAll(g.loop)
}

func TestPointerAt_FirstPollOnlyRecords(t *testing.T) {
	g, got := newTestGame()
	g.pointerAt(0, 0)
	g.pointerAt(0, 0)
	if len(*got) != 0 {
		t.Fatalf("dispatched %v before the mouse moved", *got)
	}

	g.pointerAt(120, 80)
	if len(*got) != 1 || (*got)[0].Type != EventPointerMove {
		t.Fatalf("got %v, want one move", *got)
	}
	if (*got)[0].X != 120 || (*got)[0].Y != 80 {
		t.Errorf("move at (%v, %v), want (120, 80)", (*got)[0].X, (*got)[0].Y)
	}
}

func TestPointerAt_IgnoresOutsideWindow(t *testing.T) {
	g, got := newTestGame()
	g.pointerAt(10, 10)
	for _, p := range [][2]float64{{-1, 10}, {10, -5}, {800, 10}, {10, 600}, {5000, 5000}} {
		g.pointerAt(p[0], p[1])
	}
	if len(*got) != 0 {
		t.Errorf("dispatched %v for positions outside the window", *got)
	}
}

func TestPointerAt_OverOnTargetChange(t *testing.T) {
	btn := &Region{X: 100, Y: 100, Width: 50, Height: 20, Clickable: true}
	g, got := newTestGame(btn)
	g.pointerAt(10, 10)

	g.pointerAt(110, 110)
	g.pointerAt(120, 110)
	g.pointerAt(300, 300)

	var overs []Target
	for _, ev := range *got {
		if ev.Type == EventPointerOver {
			overs = append(overs, ev.Target)
		}
	}
	if len(overs) != 2 {
		t.Fatalf("over events = %d, want 2 (enter and leave)", len(overs))
	}
	if overs[0] != Target(btn) || overs[1] != nil {
		t.Errorf("overs = %v, want [btn nil]", overs)
	}
}

func TestPointerAt_NoBurstAtOrigin(t *testing.T) {
	dev := &fakeDevice{}
	opens := 0
	e := New(testConfig(dev, &opens))
	g, _ := newTestGame()
	g.engine = e
	e.Mount(g.loop)

	g.pointerAt(0, 0)
	g.loop.Tick()
	if e.ParticleCount() != 0 {
		t.Errorf("particles = %d before the mouse entered, want 0", e.ParticleCount())
	}
}
