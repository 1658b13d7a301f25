// Package sparktrail is a pointer-trail particle engine with a procedural
// click cue, for [Ebitengine] windows, terminals, or any host that can
// deliver pointer events and a frame clock.
//
// Every pointer move spawns a burst of gold and white sparks at the raw
// pointer position; a per-frame integrator lets them fall, drift and fade.
// A spring-smoothed cursor glyph follows the pointer with a slight lag,
// grows over interactive targets and shrinks while pressed. Each press
// synthesizes a short falling chirp; nothing is sampled from disk.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window, hides the
// OS cursor and drives the engine from the mouse:
//
//	cfg := sparktrail.DefaultConfig()
//	engine := sparktrail.New(cfg)
//	err := sparktrail.Run(engine, sparktrail.RunConfig{
//		Title: "Sparks", Width: 800, Height: 600,
//	})
//
// For other hosts, drive a [Loop] yourself and draw from [Engine.Snapshot]:
//
//	loop := sparktrail.NewLoop(false)
//	engine.Mount(loop)
//	defer engine.Teardown()
//
//	loop.DispatchMove(x, y)   // on every pointer move
//	loop.DispatchDown(x, y)   // on press
//	loop.Tick()               // once per display frame
//	frame := engine.Snapshot(buf)
//
// # Hosts
//
// A [Host] supplies pointer callbacks and one recurring frame callback.
// [Engine.Mount] registers all of them at once and [Engine.Teardown]
// removes all of them at once. On touch-primary hosts the engine stays
// disabled and registers nothing.
//
// # Audio
//
// The click cue is built from [beep] streamers ([NewCue]) and played on an
// [AudioDevice] opened lazily on the first press. [OpenOtoDevice] is the
// default device. Audio failures are logged and never reach the caller.
//
// [Ebitengine]: https://ebitengine.org
// [beep]: https://github.com/gopxl/beep
package sparktrail
