package dot

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestInjectKeyDownHoldsUntilUp(t *testing.T) {
	in := NewInput(nil)
	in.BindAction("jump", ebiten.KeySpace)
	in.InjectKeyDown(ebiten.KeySpace)

	in.Update()
	if !in.IsActionPressed("jump") {
		t.Error("expected pressed on the frame the injection is consumed")
	}
	in.Update()
	if !in.IsActionDown("jump") || in.IsActionPressed("jump") {
		t.Error("expected held, not pressed, on the next frame")
	}

	in.InjectKeyUp(ebiten.KeySpace)
	in.Update()
	if !in.IsActionReleased("jump") {
		t.Error("expected released")
	}
}

func TestInjectKeyTapConsumesTwoFrames(t *testing.T) {
	in := NewInput(nil)
	in.BindAction("jump", ebiten.KeySpace)
	in.InjectKeyTap(ebiten.KeySpace)
	if in.PendingInjections() != 2 {
		t.Fatalf("PendingInjections = %d, want 2", in.PendingInjections())
	}

	in.Update()
	if !in.IsActionPressed("jump") {
		t.Error("frame 1: expected pressed")
	}
	in.Update()
	if !in.IsActionReleased("jump") {
		t.Error("frame 2: expected released")
	}
	if in.PendingInjections() != 0 {
		t.Error("queue should be drained")
	}
}

func TestInjectOneEventPerFrame(t *testing.T) {
	in := NewInput(nil)
	in.InjectKeyDown(ebiten.KeyA)
	in.InjectKeyDown(ebiten.KeyB)
	in.Update()
	if !in.IsKeyDown(ebiten.KeyA) || in.IsKeyDown(ebiten.KeyB) {
		t.Error("only the first event should be applied")
	}
	in.Update()
	if !in.IsKeyDown(ebiten.KeyA) || !in.IsKeyDown(ebiten.KeyB) {
		t.Error("both keys should be held after two frames")
	}
}

func TestInjectCombinesWithPhysicalKeys(t *testing.T) {
	keys := fakeKeys{ebiten.KeyA: true}
	in := NewInput(keys)
	in.BindAction("a", ebiten.KeyA)
	in.BindAction("b", ebiten.KeyB)
	in.InjectKeyDown(ebiten.KeyB)
	in.Update()
	if !in.IsActionDown("a") || !in.IsActionDown("b") {
		t.Error("physical and injected keys should both register")
	}
}

func TestInjectAction(t *testing.T) {
	in := NewInput(nil)
	if in.InjectAction("missing") {
		t.Error("InjectAction on unbound action should return false")
	}
	in.BindAction("jump", ebiten.KeySpace)
	if !in.InjectAction("jump") {
		t.Fatal("InjectAction should succeed")
	}
	in.Update()
	if !in.IsActionPressed("jump") {
		t.Error("expected pressed")
	}
}
