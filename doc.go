// Package canopy is a retained-mode 2D scene-graph core: a tree of spatial
// objects with anchor-relative positioning, self-sizing layouts, and a
// tick-driven physics and collision step.
//
// Drawing, frame ticking and pointer input are supplied by the host through
// the [Renderer], [Ticker] and [World.ProcessPointer] boundaries; the
// ebitenhost package implements all three on top of [Ebitengine].
//
// # World
//
// A [World] is the explicit engine context. Objects live in its arena and
// are addressed by [ID] handles; every operation is a World method:
//
//	w := canopy.NewWorld(renderer, canopy.DefaultConfig())
//	scene := w.NewScene("main")
//	w.SetActiveScene(scene)
//
//	root := w.NewContainer("root")
//	scene.Attach(root)
//
//	box := w.NewRect("box", 40, 40, canopy.Color{R: 0.3, G: 0.7, B: 1, A: 1})
//	w.AddChild(root, box)
//	w.SetPosition(box, canopy.Vec2{X: 100, Y: 200})
//
// Coordinates are y-up with the origin at the bottom-left. An object's local
// position is an [Anchor]: an offset plus a fraction of the parent's size, so
//
//	w.SetAnchor(label, canopy.Anchor{Fraction: canopy.Vec2{X: 0.5, Y: 1}})
//
// pins label to the middle of its parent's top edge however the parent is
// later resized.
//
// # Capabilities
//
// Objects are a single spatial core plus optional components attached by
// World setters: [Body] and [Collider] for physics, layouts
// ([World.NewLayout], [World.NewLayoutExpander]), pointer interaction
// ([World.SetInteractive]), text ([World.NewText], [World.NewButton]) and
// bounded controls ([World.SetStepper]).
//
// # Events
//
// Every object owns an [EventBus]. Tree changes, moves, resizes, visibility
// changes, collisions and pointer input are published on it. Dispatch is
// synchronous; subscriptions changed during dispatch take effect after the
// outermost Publish returns.
//
// # Frames
//
// [World.Tick] runs one frame: queued synthetic input, the physics step, and
// a single batched layout resolution. Layout changes made outside a tick
// re-flow immediately unless wrapped in [World.Batch].
//
// [Ebitengine]: https://ebitengine.org
package canopy
