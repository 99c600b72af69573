// Package ecs bridges a canopy World into a [Donburi] ECS world.
//
// [NewBridge] forwards the world-level collision, pointer and tick events as
// typed Donburi events, and [Bridge.Track] mirrors individual canopy objects
// as entities carrying an [Object] component that is removed when the object
// is destroyed.
//
// Usage:
//
//	ecsWorld := donburi.NewWorld()
//	bridge := ecs.NewBridge(ecsWorld, world)
//	ecs.CollisionEventType.Subscribe(ecsWorld, onCollision)
//	// each frame, after world.Tick:
//	events.ProcessAllEvents(ecsWorld)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
