package ecs

import (
	"testing"

	"github.com/phanxgames/dot"

	"github.com/yohamta/donburi"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
	if !world.Valid(sink.Entity()) {
		t.Error("sink entity should be valid")
	}
	if got := sink.Info(); got != (SceneInfo{}) {
		t.Errorf("Info = %+v, want zero", got)
	}
}

func TestDonburiSink_EmitSceneEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []dot.SceneEvent
	SceneEventType.Subscribe(world, func(w donburi.World, e dot.SceneEvent) {
		received = append(received, e)
	})

	sink.EmitSceneEvent(dot.SceneEvent{Type: dot.SceneLoaded, Scene: "Default"})
	sink.EmitSceneEvent(dot.SceneEvent{Type: dot.SceneChanged, Scene: "Next", Previous: "Default"})

	// Events are queued until processed.
	SceneEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Type != dot.SceneLoaded || received[0].Scene != "Default" {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Type != dot.SceneChanged || received[1].Previous != "Default" {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiSink_ReceivesManagerEvents(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	m := dot.NewSceneManager(nil)
	m.SetEventSink(sink)
	m.NewScene("Default", nil)
	m.NewScene("Next", nil)

	var types []dot.SceneEventType
	SceneEventType.Subscribe(world, func(w donburi.World, e dot.SceneEvent) {
		types = append(types, e.Type)
	})

	if err := m.ChangeSceneByName("Default"); err != nil {
		t.Fatal(err)
	}
	if err := m.ChangeSceneByName("Next"); err != nil {
		t.Fatal(err)
	}
	SceneEventType.ProcessEvents(world)

	want := []dot.SceneEventType{dot.SceneLoaded, dot.SceneChanged, dot.SceneLoaded, dot.SceneChanged}
	if len(types) != len(want) {
		t.Fatalf("got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}

	info := sink.Info()
	if info.Name != "Next" {
		t.Errorf("Name = %q, want %q", info.Name, "Next")
	}
	if info.Loads != 2 {
		t.Errorf("Loads = %d, want 2", info.Loads)
	}

	m.UnloadAllScenes()
	if got := sink.Info().Name; got != "" {
		t.Errorf("Name after UnloadAllScenes = %q, want empty", got)
	}
}
