package canopy

// syntheticPointerEvent is a queued pointer sample in world units.
type syntheticPointerEvent struct {
	pos     Vec2
	pressed bool
}

// InjectPress queues a pointer press at pos. Queued events are consumed one
// per Tick, before the physics step.
func (w *World) InjectPress(pos Vec2) {
	w.injectQueue = append(w.injectQueue, syntheticPointerEvent{pos: pos, pressed: true})
}

// InjectMove queues a pointer move at pos with the button held down. Use it
// between InjectPress and InjectRelease.
func (w *World) InjectMove(pos Vec2) {
	w.injectQueue = append(w.injectQueue, syntheticPointerEvent{pos: pos, pressed: true})
}

// InjectHover queues a pointer move at pos with no button held.
func (w *World) InjectHover(pos Vec2) {
	w.injectQueue = append(w.injectQueue, syntheticPointerEvent{pos: pos})
}

// InjectRelease queues a pointer release at pos.
func (w *World) InjectRelease(pos Vec2) {
	w.injectQueue = append(w.injectQueue, syntheticPointerEvent{pos: pos})
}

// InjectClick queues a press followed by a release at pos. Consumes two ticks.
func (w *World) InjectClick(pos Vec2) {
	w.InjectPress(pos)
	w.InjectRelease(pos)
}

// PendingInput returns the number of queued synthetic pointer events.
func (w *World) PendingInput() int {
	return len(w.injectQueue)
}

// processInjectedInput pops one event from the queue and feeds it through
// ProcessPointer. Returns true if an event was consumed.
func (w *World) processInjectedInput() bool {
	if len(w.injectQueue) == 0 {
		return false
	}
	evt := w.injectQueue[0]
	copy(w.injectQueue, w.injectQueue[1:])
	w.injectQueue = w.injectQueue[:len(w.injectQueue)-1]
	w.ProcessPointer(evt.pos, evt.pressed)
	return true
}
