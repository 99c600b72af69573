package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/canopy"
)

// PointerEvent is a canopy pointer event tagged with its event name.
type PointerEvent struct {
	Name string
	canopy.PointerEvent
}

// Object links an entity to a canopy object.
type Object struct {
	ID canopy.ID
}

var (
	// CollisionEventType carries every collision resolved by the physics step.
	CollisionEventType = events.NewEventType[canopy.Collision]()
	// PointerEventType carries pointer enter/leave/down/up/click events.
	PointerEventType = events.NewEventType[PointerEvent]()
	// TickEventType carries the frame delta in milliseconds.
	TickEventType = events.NewEventType[float64]()

	// ObjectComponent is attached to entities created by Bridge.Track.
	ObjectComponent = donburi.NewComponentType[Object]()
)

var pointerEvents = []string{
	canopy.EventPointerEnter,
	canopy.EventPointerLeave,
	canopy.EventPointerDown,
	canopy.EventPointerUp,
	canopy.EventClick,
}

// Bridge forwards canopy events into a Donburi world. Events are queued;
// call events.ProcessAllEvents (or ProcessEvents per type) to deliver them.
type Bridge struct {
	ecs   donburi.World
	world *canopy.World

	collision *canopy.Listener
	tick      *canopy.Listener
	pointer   map[string]*canopy.Listener
	tracked   map[canopy.ID]trackedObject
}

type trackedObject struct {
	entity    donburi.Entity
	destroyed *canopy.Listener
}

// NewBridge subscribes to w's world bus and publishes into ecsWorld.
func NewBridge(ecsWorld donburi.World, w *canopy.World) *Bridge {
	b := &Bridge{
		ecs:     ecsWorld,
		world:   w,
		pointer: make(map[string]*canopy.Listener, len(pointerEvents)),
		tracked: make(map[canopy.ID]trackedObject),
	}
	bus := w.Bus()

	b.collision = canopy.NewListener(func(e canopy.Event) {
		CollisionEventType.Publish(b.ecs, e.Data.(canopy.Collision))
	})
	bus.Subscribe(canopy.EventCollision, b.collision, nil)

	b.tick = canopy.NewListener(func(e canopy.Event) {
		TickEventType.Publish(b.ecs, e.Data.(float64))
	})
	bus.Subscribe(canopy.EventTick, b.tick, nil)

	for _, name := range pointerEvents {
		l := canopy.NewListener(func(e canopy.Event) {
			PointerEventType.Publish(b.ecs, PointerEvent{Name: e.Name, PointerEvent: e.Data.(canopy.PointerEvent)})
		})
		b.pointer[name] = l
		bus.Subscribe(name, l, nil)
	}
	return b
}

// Track creates an entity carrying an Object component for id. The entity
// is removed when the object is destroyed. Tracking an object twice returns
// the existing entity.
func (b *Bridge) Track(id canopy.ID) donburi.Entity {
	if t, ok := b.tracked[id]; ok {
		return t.entity
	}
	e := b.ecs.Create(ObjectComponent)
	ObjectComponent.SetValue(b.ecs.Entry(e), Object{ID: id})

	l := canopy.NewListener(func(canopy.Event) {
		t := b.tracked[id]
		delete(b.tracked, id)
		if b.ecs.Valid(t.entity) {
			b.ecs.Remove(t.entity)
		}
	})
	b.world.Events(id).Subscribe(canopy.EventDestroyed, l, nil)
	b.tracked[id] = trackedObject{entity: e, destroyed: l}
	return e
}

// Entity returns the entity tracking id.
func (b *Bridge) Entity(id canopy.ID) (donburi.Entity, bool) {
	t, ok := b.tracked[id]
	return t.entity, ok
}

// Close unsubscribes from the canopy world and removes every tracked entity.
func (b *Bridge) Close() {
	bus := b.world.Bus()
	bus.Unsubscribe(canopy.EventCollision, b.collision)
	bus.Unsubscribe(canopy.EventTick, b.tick)
	for name, l := range b.pointer {
		bus.Unsubscribe(name, l)
	}
	for id, t := range b.tracked {
		if b.world.Alive(id) {
			b.world.Events(id).Unsubscribe(canopy.EventDestroyed, t.destroyed)
		}
		if b.ecs.Valid(t.entity) {
			b.ecs.Remove(t.entity)
		}
	}
	clear(b.tracked)
}
