package dot

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates the three components of one of a spatial node's vectors.
// Create one via TweenPosition, TweenRotation or TweenScale and either call
// Update(dt) each frame or yield it from a coroutine. If the target node is
// destroyed, the group stops immediately.
type TweenGroup struct {
	tweens [3]*gween.Tween
	field  *mgl32.Vec3
	target *Node
	Done   bool
}

func newTweenGroup(node *Node, field *mgl32.Vec3, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{field: field, target: node}
	for i := range g.tweens {
		g.tweens[i] = gween.New(field[i], to[i], duration, fn)
	}
	return g
}

// Update advances all tweens by dt seconds and writes the values to the
// target. If the target node has been destroyed, Done is set and no writes
// occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}
	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		g.field[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// IsComplete advances the group by dt and reports whether it has finished, so
// a coroutine can yield a tween and resume when it ends.
func (g *TweenGroup) IsComplete(dt float64) bool {
	g.Update(float32(dt))
	return g.Done
}

// TweenPosition animates node.Position to the given target.
func TweenPosition(node *Node, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, &node.Position, to, duration, fn)
}

// TweenRotation animates node.Rotation (radians) to the given target.
func TweenRotation(node *Node, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, &node.Rotation, to, duration, fn)
}

// TweenScale animates node.Scale to the given target.
func TweenScale(node *Node, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, &node.Scale, to, duration, fn)
}
