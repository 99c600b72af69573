package canopy

// Event names published by the engine. Listeners may also publish and
// subscribe to arbitrary names of their own.
const (
	EventChildAdded        = "childAdded"
	EventChildRemoved      = "childRemoved"
	EventParentChanged     = "parentChanged"
	EventDescendantAdded   = "descendantAdded"
	EventDescendantRemoved = "descendantRemoved"
	EventPositionChanged   = "positionChanged"
	EventSizeChanged       = "sizeChanged"
	EventVisibilityChanged = "visibilityChanged"
	EventDestroyed         = "destroyed"
	EventCollision         = "collision"
	EventPointerDown       = "pointerDown"
	EventPointerUp         = "pointerUp"
	EventClick             = "click"
	EventPointerEnter      = "pointerEnter"
	EventPointerLeave      = "pointerLeave"
	EventToggled           = "toggled"
	EventValueChanged      = "valueChanged"
	EventTick              = "tick"
	EventSceneActivated    = "sceneActivated"
)

// Event is delivered to listeners. Source is the object the event concerns,
// or zero for World and Scene level events.
type Event struct {
	Name   string
	Source ID
	Data   any
}

// Listener wraps a callback so it has an identity. The same *Listener may be
// registered on many buses, but at most once per event name on each.
type Listener struct {
	fn func(Event)
}

// NewListener returns a listener invoking fn.
func NewListener(fn func(Event)) *Listener {
	return &Listener{fn: fn}
}

type subscription struct {
	name     string
	listener *Listener
	source   *EventBus
}

type busOp struct {
	subscribe bool
	name      string
	listener  *Listener
}

// EventBus is a synchronous publish/subscribe hub. Every world object owns
// one; World and Scene own one each.
//
// Subscribe and Unsubscribe calls made while the bus is dispatching are
// queued and applied once the outermost Publish returns, so a listener never
// changes the list that is currently being walked.
type EventBus struct {
	listeners   map[string][]*Listener
	registered  []subscription
	dispatching int
	pending     []busOp
	// epoch advances on Teardown so an in-flight Publish stops delivering.
	epoch uint32
}

// Subscribe registers l for name. When owner is non-nil the subscription is
// also recorded on owner, so owner.Teardown removes it from this bus.
// Panics if l is not invocable or is already registered for name.
func (b *EventBus) Subscribe(name string, l *Listener, owner *EventBus) {
	if l == nil || l.fn == nil {
		panic("canopy: listener is not invocable")
	}
	if b.hasListener(name, l) {
		panic("canopy: listener already registered for " + name)
	}
	if owner != nil {
		owner.registered = append(owner.registered, subscription{name: name, listener: l, source: b})
	}
	if b.dispatching > 0 {
		b.pending = append(b.pending, busOp{subscribe: true, name: name, listener: l})
		return
	}
	b.add(name, l)
}

// Unsubscribe removes l from name. No-op if absent.
func (b *EventBus) Unsubscribe(name string, l *Listener) {
	if b.dispatching > 0 {
		b.pending = append(b.pending, busOp{name: name, listener: l})
		return
	}
	b.remove(name, l)
}

// Publish invokes the listeners registered for name in registration order.
// If a listener tears the bus down, the remaining listeners are skipped.
func (b *EventBus) Publish(name string, source ID, data any) {
	list := b.listeners[name]
	if len(list) == 0 {
		return
	}
	b.dispatching++
	ev := Event{Name: name, Source: source, Data: data}
	epoch := b.epoch
	for _, l := range list {
		l.fn(ev)
		if b.epoch != epoch {
			break
		}
	}
	b.dispatching--
	if b.dispatching == 0 && len(b.pending) > 0 {
		b.flush()
	}
}

// Listening reports whether l is currently registered for name.
func (b *EventBus) Listening(name string, l *Listener) bool {
	for _, x := range b.listeners[name] {
		if x == l {
			return true
		}
	}
	return false
}

// ListenerCount returns the number of listeners registered for name.
func (b *EventBus) ListenerCount(name string) int {
	return len(b.listeners[name])
}

// Teardown clears every listener on this bus and removes every subscription
// this bus's owner made on other buses.
func (b *EventBus) Teardown() {
	b.epoch++
	b.listeners = nil
	b.pending = nil
	regs := b.registered
	b.registered = nil
	for _, r := range regs {
		r.source.Unsubscribe(r.name, r.listener)
	}
}

// Forget drops the owner bookkeeping for a subscription made on source
// without touching source itself. Used after an explicit Unsubscribe.
func (b *EventBus) Forget(source *EventBus, name string, l *Listener) {
	for i, r := range b.registered {
		if r.source == source && r.name == name && r.listener == l {
			b.registered = append(b.registered[:i], b.registered[i+1:]...)
			return
		}
	}
}

// hasListener reports registration, counting queued ops.
func (b *EventBus) hasListener(name string, l *Listener) bool {
	present := b.Listening(name, l)
	for _, op := range b.pending {
		if op.name == name && op.listener == l {
			present = op.subscribe
		}
	}
	return present
}

func (b *EventBus) add(name string, l *Listener) {
	if b.listeners == nil {
		b.listeners = make(map[string][]*Listener)
	}
	b.listeners[name] = append(b.listeners[name], l)
}

func (b *EventBus) remove(name string, l *Listener) {
	list := b.listeners[name]
	for i, x := range list {
		if x == l {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			b.listeners[name] = list[:len(list)-1]
			return
		}
	}
}

func (b *EventBus) flush() {
	ops := b.pending
	b.pending = nil
	for _, op := range ops {
		if op.subscribe {
			b.add(op.name, op.listener)
		} else {
			b.remove(op.name, op.listener)
		}
	}
}
