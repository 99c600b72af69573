package canopy

import "fmt"

const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// debugCheckTreeDepth warns if the depth of id exceeds the threshold.
func (w *World) debugCheckTreeDepth(id ID) {
	depth := 0
	for p := id; p != 0; p = w.get(p).parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		w.log.Warn("tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "label", w.get(id).label)
	}
}

// debugCheckChildCount warns if id has more than debugMaxChildCount children.
func (w *World) debugCheckChildCount(id ID) {
	o := w.get(id)
	if len(o.children) > debugMaxChildCount {
		w.log.Warn("child count exceeds threshold",
			"label", o.label, "children", len(o.children), "threshold", debugMaxChildCount)
	}
}

// staleMessage describes a lookup of an ID that no longer resolves.
func (w *World) staleMessage(id ID, op string) string {
	idx, gen := id.split()
	if !w.debug {
		return "canopy: stale or invalid object ID"
	}
	if idx < len(w.objects) {
		return fmt.Sprintf("canopy debug: %s on destroyed object (slot %d, gen %d, live gen %d, last label %q)",
			op, idx, gen, w.objects[idx].gen, w.objects[idx].label)
	}
	return fmt.Sprintf("canopy debug: %s on unknown object ID %d", op, uint64(id))
}

// SetDebugMode enables or disables debug mode at runtime.
func (w *World) SetDebugMode(enabled bool) {
	w.debug = enabled
}
