package sparktrail

import (
	"fmt"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window host started by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS draws an FPS/TPS/spark counter in the top-left corner.
	ShowFPS bool
	// ClearColor fills the window every frame.
	ClearColor Color
	// Targets are the hoverable regions drawn under the trail. Later
	// entries are on top.
	Targets []*Region
	// UserAgent is matched with IsTouchUserAgent for the touch gate.
	// android and ios builds are always touch-primary.
	UserAgent string
	// Script, if set, drives the pointer instead of the mouse until done.
	Script *Script
	// ScreenshotDir receives PNGs for "screenshot" script steps.
	ScreenshotDir string
}

// Run opens a window, mounts e on it and blocks until the window closes.
// The engine is torn down before Run returns.
func Run(e *Engine, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	touch := IsTouchUserAgent(cfg.UserAgent) ||
		runtime.GOOS == "android" || runtime.GOOS == "ios"

	g := &game{
		engine:  e,
		loop:    NewLoop(touch),
		cfg:     cfg,
		focused: true,
	}
	if cfg.Script != nil {
		g.script = cfg.Script
		g.script.OnScreenshot = g.Screenshot
	}
	defer e.Teardown()

	if e.Mount(g.loop) {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(e.cfg.TPS)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// game adapts a Loop to ebiten.Game.
type game struct {
	engine *Engine
	loop   *Loop
	cfg    RunConfig
	script *Script

	seen         bool
	lastX, lastY float64
	over         Target
	focused      bool

	particles       []Particle
	screenshotQueue []string
}

func (g *game) Update() error {
	if g.script != nil && !g.script.Done() {
		g.script.Step(g.loop)
	}
	// Real mouse input is ignored while injected events are pending.
	if g.loop.Pending() == 0 {
		g.pollPointer()
	}

	focused := ebiten.IsFocused()
	if g.focused && !focused {
		g.engine.SuspendAudio()
	}
	g.focused = focused

	g.loop.Tick()
	return nil
}

// pollPointer turns ebiten's polled mouse state into discrete events.
func (g *game) pollPointer() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	g.pointerAt(x, y)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.loop.DispatchDown(x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.loop.DispatchUp(x, y)
	}
}

// pointerAt dispatches a move, and an over when the hit target changes,
// for a polled cursor position. ebiten reports (0, 0) until the mouse
// first enters the window, so the first poll only records the position,
// and positions outside the window are ignored.
func (g *game) pointerAt(x, y float64) {
	if x < 0 || y < 0 || x >= float64(g.cfg.Width) || y >= float64(g.cfg.Height) {
		return
	}
	if !g.seen {
		g.lastX, g.lastY = x, y
		g.seen = true
		return
	}
	if x == g.lastX && y == g.lastY {
		return
	}
	g.lastX, g.lastY = x, y

	g.loop.DispatchMove(x, y)
	if target := HitTest(g.cfg.Targets, x, y); target != g.over {
		g.loop.DispatchOver(x, y, target)
		g.over = target
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor.RGBA(1))
	drawRegions(screen, g.cfg.Targets, g.over)

	if g.engine.Mounted() {
		frame := g.engine.Snapshot(g.particles)
		g.particles = frame.Particles
		drawFrame(screen, &frame)
	}

	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nSparks: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.engine.ParticleCount()))
	}

	g.flushScreenshots(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
