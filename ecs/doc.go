// Package ecs bridges whiteboard interaction events into a [Donburi] world.
//
// [NewDonburiStore] publishes every gesture, selection commit and mode
// switch as a typed event. Subscribe to [InteractionEventType] in your ECS
// systems to receive them:
//
//	store := ecs.NewDonburiStore(world)
//	engine.SetEntityStore(store)
//
// Events are queued by Donburi and delivered by ProcessEvents, so systems
// see them on their own schedule.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
