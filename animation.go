package canopy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 values of one world object simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenSize,
// TweenAlpha) and call Update(dt) each frame. The group writes the values
// through the World setters, so the usual change events and layout
// re-flow follow. If the target object is destroyed, the group stops
// immediately.
//
// There is no global animation manager. Callers Update their groups
// themselves, typically from a World tick listener.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(vals [4]float64)
	world  *World
	target ID
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values. If the
// target object has been destroyed, Done is set and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if !g.world.Alive(g.target) {
		g.Done = true
		return
	}

	var vals [4]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.apply(vals)
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that moves id's bottom-left corner to
// to over duration seconds.
func TweenPosition(w *World, id ID, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := w.Position(id)
	g := &TweenGroup{count: 2, world: w, target: id}
	g.tweens[0] = gween.New(float32(from.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
	g.apply = func(v [4]float64) { w.SetPosition(id, Vec2{v[0], v[1]}) }
	return g
}

// TweenSize creates a TweenGroup that resizes id to to over duration seconds.
func TweenSize(w *World, id ID, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := w.Size(id)
	g := &TweenGroup{count: 2, world: w, target: id}
	g.tweens[0] = gween.New(float32(from.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
	g.apply = func(v [4]float64) { w.SetSize(id, v[0], v[1]) }
	return g
}

// TweenAlpha creates a TweenGroup that fades id to the target alpha.
func TweenAlpha(w *World, id ID, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, world: w, target: id}
	g.tweens[0] = gween.New(float32(w.Alpha(id)), float32(to), duration, fn)
	g.apply = func(v [4]float64) { w.SetAlpha(id, v[0]) }
	return g
}

// TweenRotation creates a TweenGroup that rotates id to the target angle
// in radians.
func TweenRotation(w *World, id ID, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, world: w, target: id}
	g.tweens[0] = gween.New(float32(w.Rotation(id)), float32(to), duration, fn)
	g.apply = func(v [4]float64) { w.SetRotation(id, v[0]) }
	return g
}
