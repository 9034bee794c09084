// Package ecs provides ECS adapters for dot's scene lifecycle events.
//
// The primary adapter is [NewDonburiSink], which bridges scene events
// (loaded, unloaded, changed, destroyed) into a [Donburi] world as typed
// events and keeps a [SceneInfo] component up to date on a singleton entity.
// Subscribe to [SceneEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.Scenes.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
