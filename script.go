package canopy

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// inputScript is the top-level JSON structure for an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected pointer input across ticks for automated
// UI testing. Attach to a World via SetScriptRunner.
//
// Supported actions:
//
//	{"action": "click", "x": 10, "y": 20}      click a world point
//	{"action": "click", "label": "ok"}         click the center of the first presented object labelled "ok"
//	{"action": "hover", "x": 10, "y": 20}      move the pointer without pressing
//	{"action": "drag", "fromX": 0, "fromY": 0, "toX": 50, "toY": 0, "frames": 5}
//	{"action": "wait", "frames": 3}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "hover", "drag", "wait":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches r to the world. The runner advances once per
// Tick, before queued input is consumed. A nil r detaches the current one.
func (w *World) SetScriptRunner(r *ScriptRunner) {
	w.script = r
}

// Done reports whether every step has been executed and its input consumed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Err returns the first step failure, such as a click on a label that no
// presented object carries. The runner stops at the failing step.
func (r *ScriptRunner) Err() error {
	return r.err
}

// step advances the runner by one tick.
func (r *ScriptRunner) step(w *World) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(w.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "click":
		pos := Vec2{st.X, st.Y}
		if st.Label != "" {
			id, ok := w.findPresented(st.Label)
			if !ok {
				r.err = fmt.Errorf("input script step %d: no presented object labelled %q", r.cursor-1, st.Label)
				r.done = true
				return
			}
			pos = w.BoundingRect(id).Center()
		}
		w.InjectClick(pos)
	case "hover":
		w.InjectHover(Vec2{st.X, st.Y})
	case "drag":
		frames := max(st.Frames, 2)
		from, to := Vec2{st.FromX, st.FromY}, Vec2{st.ToX, st.ToY}
		w.InjectPress(from)
		for i := 1; i < frames-1; i++ {
			t := float64(i) / float64(frames-1)
			w.InjectMove(from.Add(to.Sub(from).Scale(t)))
		}
		w.InjectRelease(to)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(w.injectQueue) == 0 {
		r.done = true
	}
}

// findPresented returns the first active-scene member carrying label.
func (w *World) findPresented(label string) (ID, bool) {
	if w.active == nil {
		return 0, false
	}
	for _, id := range w.active.members {
		if w.get(id).label == label {
			return id, true
		}
	}
	return 0, false
}
