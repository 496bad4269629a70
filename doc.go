// Package lantern is the runtime animation core of a visual-novel player,
// built on [Ebitengine].
//
// Lantern provides the per-entity, delta-time-driven state machines a
// script-driven visual novel needs: property animators for fade, scale,
// rotation, and movement, geometric stop conditions, darken/glow tinting,
// camera pan/zoom/shake, and letter-by-letter text reveal with kerning and
// punctuation pauses.
//
// # Quick start
//
// Create a [Stage], add entities, and drive it from your game loop:
//
//	stage := lantern.NewStage(1280, 720)
//	stage.OnComplete = func(script string) { interp.Spawn(script) }
//	stage.Add(lantern.NewEntity("rave", raveImage))
//
//	clock := lantern.NewClock()
//
//	func (g *Game) Update() error {
//		stage.Update(clock.Tick())
//		return nil
//	}
//
// A script interpreter configures animations through the Stage and receives
// a single kind of signal back: "run script X now that this animation has
// finished". The core knows nothing about the scripting language.
//
// # Frame model
//
// Everything is single-threaded and frame-stepped. Each component exposes an
// Update method taking the elapsed seconds since the previous frame; no
// component blocks, spawns goroutines, or reads a clock of its own. Within
// one frame an entity updates scale, rotation, and movement before fade,
// because fade composites onto the already-transformed image.
//
// Completion callbacks are fire-once closures: the internal reference is
// cleared before the callback runs, so a callback that reconfigures the same
// animator cannot double-fire.
//
// [Ebitengine]: https://ebitengine.org
package lantern
