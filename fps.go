package dot

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// NewFPSWidget creates a node that prints the current FPS and TPS in the top
// left corner. The text is refreshed every ~0.5 seconds.
func NewFPSWidget() *Node {
	node := NewNode("fps_widget")
	text := "FPS: -\nTPS: -"
	elapsed := 0.5

	node.OnUpdate = func(_ *Node, dt float64) {
		elapsed += dt
		if elapsed < 0.5 {
			return
		}
		elapsed = 0
		text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	node.OnPostDraw = func(_ *Node, r Renderer) {
		r.DrawText(text, 4, 4)
	}
	return node
}
