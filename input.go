package canopy

import "math"

// Interactive is the pointer capability of an object.
type Interactive struct {
	Enabled bool
	// Hovered is maintained by ProcessPointer.
	Hovered bool
}

// PointerEvent is the payload of pointer events.
type PointerEvent struct {
	Target ID
	// Position is the pointer in world units; Local is relative to the
	// target's bottom-left corner.
	Position Vec2
	Local    Vec2
	Pressed  bool
}

type pointerState struct {
	down    bool
	pressed ID
	hover   ID
	last    Vec2
}

// forget drops references to a destroyed object.
func (p *pointerState) forget(id ID) {
	if p.pressed == id {
		p.pressed = 0
	}
	if p.hover == id {
		p.hover = 0
	}
}

// SetInteractive enables or disables pointer events for id.
func (w *World) SetInteractive(id ID, enabled bool) {
	o := w.get(id)
	if o.interactive == nil {
		o.interactive = &Interactive{}
	}
	o.interactive.Enabled = enabled
	if !enabled {
		o.interactive.Hovered = false
	}
}

// Interactive reports whether id receives pointer events.
func (w *World) Interactive(id ID) bool {
	i := w.get(id).interactive
	return i != nil && i.Enabled
}

// Hovered reports whether the pointer is currently over id.
func (w *World) Hovered(id ID) bool {
	i := w.get(id).interactive
	return i != nil && i.Hovered
}

// HitTest returns the topmost interactive member of the active scene whose
// total bounds contain pos. Higher ZOrder wins; among equal ZOrder the
// later member wins.
func (w *World) HitTest(pos Vec2) (ID, bool) {
	s := w.active
	if s == nil {
		return 0, false
	}
	var best ID
	bestZ := math.MinInt
	for _, id := range s.members {
		o := w.get(id)
		if o.interactive == nil || !o.interactive.Enabled {
			continue
		}
		if !w.TotalBoundingRect(id, false).Contains(pos) {
			continue
		}
		if o.zOrder >= bestZ {
			best, bestZ = id, o.zOrder
		}
	}
	return best, best != 0
}

// ProcessPointer runs the pointer state machine for one sample. pos must be
// in world units already (y-up); translating from screen space is the
// host's job. Fires pointerEnter/pointerLeave when the hovered object
// changes, pointerDown on press, and on release pointerUp plus click when
// press and release hit the same object. Events go to the target's bus and
// to the World bus.
func (w *World) ProcessPointer(pos Vec2, pressed bool) {
	ps := &w.pointer
	target, _ := w.HitTest(pos)

	if target != ps.hover {
		if ps.hover != 0 && w.Alive(ps.hover) {
			if i := w.get(ps.hover).interactive; i != nil {
				i.Hovered = false
			}
			w.firePointer(EventPointerLeave, ps.hover, pos, pressed)
		}
		if target != 0 {
			w.get(target).interactive.Hovered = true
			w.firePointer(EventPointerEnter, target, pos, pressed)
		}
		ps.hover = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.pressed = target
		if target != 0 {
			w.firePointer(EventPointerDown, target, pos, pressed)
		}
	case !pressed && ps.down:
		if target != 0 && target == ps.pressed {
			w.firePointer(EventClick, target, pos, pressed)
		}
		if target != 0 && w.Alive(target) {
			w.firePointer(EventPointerUp, target, pos, pressed)
		}
		ps.down = false
		ps.pressed = 0
	}
	ps.last = pos
}

// PointerPosition returns the last processed pointer position.
func (w *World) PointerPosition() Vec2 {
	return w.pointer.last
}

func (w *World) firePointer(name string, target ID, pos Vec2, pressed bool) {
	ev := PointerEvent{
		Target:   target,
		Position: pos,
		Local:    pos.Sub(w.get(target).global),
		Pressed:  pressed,
	}
	w.get(target).bus.Publish(name, target, ev)
	w.bus.Publish(name, target, ev)
}
