package ecs

import (
	"github.com/phanxgames/dot"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for dot scene lifecycle events.
var SceneEventType = events.NewEventType[dot.SceneEvent]()

// SceneInfo mirrors the scene manager's current scene inside the world.
type SceneInfo struct {
	Name  string
	Loads int
}

// SceneInfoComponent holds the SceneInfo of the sink's singleton entity.
var SceneInfoComponent = donburi.NewComponentType[SceneInfo]()

// DonburiSink is a dot.EventSink backed by a Donburi world.
type DonburiSink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates a sink publishing to SceneEventType. Events are
// queued and delivered when ProcessEvents is called on the world.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{
		world:  world,
		entity: world.Create(SceneInfoComponent),
	}
}

// Entity returns the entity carrying SceneInfoComponent.
func (s *DonburiSink) Entity() donburi.Entity {
	return s.entity
}

// Info returns the current SceneInfo.
func (s *DonburiSink) Info() SceneInfo {
	return *SceneInfoComponent.Get(s.world.Entry(s.entity))
}

func (s *DonburiSink) EmitSceneEvent(event dot.SceneEvent) {
	info := SceneInfoComponent.Get(s.world.Entry(s.entity))
	switch event.Type {
	case dot.SceneLoaded:
		info.Name = event.Scene
		info.Loads++
	case dot.SceneChanged:
		info.Name = event.Scene
	case dot.SceneDestroyed:
		if info.Name == event.Scene {
			info.Name = ""
		}
	}
	SceneEventType.Publish(s.world, event)
}
