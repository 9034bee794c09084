package dot

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// globalDebug is non-nil while an engine runs in debug mode. Tree operations
// use it for extra checks and warnings.
var globalDebug *log.Logger

// debugStats holds per-frame timing and tree metrics.
// Only populated when the engine is in debug mode.
type debugStats struct {
	inputTime     time.Duration
	coroutineTime time.Duration
	sceneTime     time.Duration
	nodeCount     int
	coroutines    int
}

// debugLog reports stats for the current frame.
func (e *Engine) debugLog(stats debugStats) {
	if !e.debug {
		return
	}
	total := stats.inputTime + stats.coroutineTime + stats.sceneTime
	e.Logger.Debug("frame",
		"n", e.frame,
		"input", stats.inputTime,
		"coroutines", stats.coroutineTime,
		"scene", stats.sceneTime,
		"total", total,
	)
	e.Logger.Debug("counts", "nodes", stats.nodeCount, "coroutines", stats.coroutines)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("dot debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		globalDebug.Warn("tree depth exceeds threshold", "depth", depth, "max", debugMaxTreeDepth, "node", n.Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		globalDebug.Warn("child count exceeds threshold", "node", n.Name, "children", len(n.children), "max", debugMaxChildCount)
	}
}

// --- Overlay ---

var (
	overlayHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	overlaySectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)

const overlayBanner = `========================================
  ____        _
 |  _ \  ___ | |_
 | | | |/ _ \| __|
 | |_| | (_) | |_
 |____/ \___/ \__|
        DOT FRAMEWORK
========================================`

// DebugOverlay prints the scene hierarchy and the available scenes whenever
// the current scene changes.
type DebugOverlay struct {
	w    io.Writer
	last string
}

func defaultOverlayWriter() io.Writer {
	return os.Stdout
}

// NewDebugOverlay creates an overlay writing to w.
func NewDebugOverlay(w io.Writer) *DebugOverlay {
	return &DebugOverlay{w: w}
}

// Refresh prints the overlay if the current scene's name differs from the one
// last printed. It reports whether anything was written.
func (o *DebugOverlay) Refresh(m *SceneManager) bool {
	cur := m.Current()
	if cur == nil {
		return false
	}
	if cur.Name() == o.last {
		return false
	}
	o.last = cur.Name()

	var b strings.Builder
	b.WriteString(overlayHeaderStyle.Render(overlayBanner))
	b.WriteString("\n")
	if root := cur.Root(); root != nil {
		b.WriteString(overlaySectionStyle.Render("Scene Hierarchy:"))
		b.WriteString("\n")
		_ = root.WriteTree(&b)
	}
	b.WriteString("\n")
	b.WriteString(overlaySectionStyle.Render("Available Scenes:"))
	b.WriteString("\n")
	_ = m.WriteAvailableScenes(&b)
	b.WriteString("========================\n")

	_, _ = io.WriteString(o.w, b.String())
	return true
}
