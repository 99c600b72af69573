package canopy

import (
	"strings"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{"steps": [
		{"action": "click", "x": 15, "y": 15},
		{"action": "wait", "frames": 2},
		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 50, "toY": 0, "frames": 5}
	]}`)
	r, err := LoadScript(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 3 {
		t.Errorf("steps = %d, want 3", len(r.steps))
	}
	if r.steps[2].Frames != 5 {
		t.Errorf("drag frames = %d, want 5", r.steps[2].Frames)
	}
	if r.Done() {
		t.Error("new runner should not be done")
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"malformed", `{not json`, "parse input script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "screenshot"}]}`, "unknown action"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func runScript(t *testing.T, w *World, script string, maxTicks int) *ScriptRunner {
	t.Helper()
	r, err := LoadScript([]byte(script))
	if err != nil {
		t.Fatal(err)
	}
	w.SetScriptRunner(r)
	for i := 0; i < maxTicks && !r.Done(); i++ {
		w.Tick(16)
	}
	if !r.Done() {
		t.Fatalf("script not done after %d ticks", maxTicks)
	}
	return r
}

func TestScriptRunnerStep_Click(t *testing.T) {
	w, _, btn := pointerWorld(t)
	clicks := recordEvents(w.Events(btn), EventClick)

	r := runScript(t, w, `{"steps": [{"action": "click", "x": 15, "y": 15}]}`, 10)
	if r.Err() != nil {
		t.Fatal(r.Err())
	}
	if len(*clicks) != 1 {
		t.Errorf("clicks = %d, want 1", len(*clicks))
	}
}

func TestScriptRunnerStep_ClickLabel(t *testing.T) {
	w, _, btn := pointerWorld(t)
	clicks := recordEvents(w.Events(btn), EventClick)

	r := runScript(t, w, `{"steps": [{"action": "click", "label": "btn"}]}`, 10)
	if r.Err() != nil {
		t.Fatal(r.Err())
	}
	if len(*clicks) != 1 {
		t.Errorf("clicks = %d, want 1", len(*clicks))
	}
}

func TestScriptRunnerStep_MissingLabel(t *testing.T) {
	w, _, _ := pointerWorld(t)
	r := runScript(t, w, `{"steps": [{"action": "click", "label": "nope"}, {"action": "wait", "frames": 1}]}`, 10)
	if r.Err() == nil || !strings.Contains(r.Err().Error(), `"nope"`) {
		t.Errorf("Err = %v, want missing label error", r.Err())
	}
	if w.PendingInput() != 0 {
		t.Errorf("PendingInput = %d, want 0", w.PendingInput())
	}
}

func TestScriptRunnerStep_Wait(t *testing.T) {
	w, _, btn := pointerWorld(t)
	clicks := recordEvents(w.Events(btn), EventClick)

	r, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 3}, {"action": "click", "label": "btn"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	w.SetScriptRunner(r)

	// Three wait ticks, then press and release on the following two.
	for i := 0; i < 4; i++ {
		w.Tick(16)
	}
	if len(*clicks) != 0 {
		t.Fatalf("clicked after 4 ticks")
	}
	w.Tick(16)
	if len(*clicks) != 1 {
		t.Errorf("clicks after 5 ticks = %d, want 1", len(*clicks))
	}
	w.Tick(16)
	if !r.Done() {
		t.Error("runner not done once input drained")
	}
}

func TestScriptRunnerStep_Drag(t *testing.T) {
	w, _, btn := pointerWorld(t)
	got := recordEvents(w.Events(btn), EventPointerDown, EventClick)

	r, err := LoadScript([]byte(`{"steps": [{"action": "drag", "fromX": 15, "fromY": 15, "toX": 100, "toY": 100, "frames": 4}]}`))
	if err != nil {
		t.Fatal(err)
	}
	w.SetScriptRunner(r)
	w.Tick(16)
	if w.PendingInput() != 3 {
		t.Fatalf("PendingInput after first tick = %d, want 3", w.PendingInput())
	}
	for i := 0; i < 10 && !r.Done(); i++ {
		w.Tick(16)
	}
	if !r.Done() {
		t.Fatal("drag script not done")
	}
	if len(*got) != 1 || (*got)[0].Name != EventPointerDown {
		t.Errorf("events = %v, want a single pointerDown", *got)
	}
}

func TestScriptRunnerDetach(t *testing.T) {
	w, _, btn := pointerWorld(t)
	clicks := recordEvents(w.Events(btn), EventClick)

	r, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 2}, {"action": "click", "label": "btn"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	w.SetScriptRunner(r)
	w.Tick(16)
	w.SetScriptRunner(nil)
	for i := 0; i < 5; i++ {
		w.Tick(16)
	}
	if len(*clicks) != 0 || r.Done() {
		t.Errorf("detached runner kept running: clicks %d, done %v", len(*clicks), r.Done())
	}
}
