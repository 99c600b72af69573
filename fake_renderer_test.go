package canopy

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"
)

// fakeHandle records what the world pushed into it.
type fakeHandle struct {
	desc            ShapeDescriptor
	width, height   float64
	pos, pivot      Vec2
	rotation, alpha float64
	visible         bool
	zOrder          int
	destroyed       bool
}

func (h *fakeHandle) Width() float64         { return h.width }
func (h *fakeHandle) SetWidth(v float64)     { h.width = v }
func (h *fakeHandle) Height() float64        { return h.height }
func (h *fakeHandle) SetHeight(v float64)    { h.height = v }
func (h *fakeHandle) Position() Vec2         { return h.pos }
func (h *fakeHandle) SetPosition(p Vec2)     { h.pos = p }
func (h *fakeHandle) Rotation() float64      { return h.rotation }
func (h *fakeHandle) SetRotation(r float64)  { h.rotation = r }
func (h *fakeHandle) Pivot() Vec2            { return h.pivot }
func (h *fakeHandle) SetPivot(p Vec2)        { h.pivot = p }
func (h *fakeHandle) Alpha() float64         { return h.alpha }
func (h *fakeHandle) SetAlpha(a float64)     { h.alpha = a }
func (h *fakeHandle) Visible() bool          { return h.visible }
func (h *fakeHandle) SetVisible(v bool)      { h.visible = v }
func (h *fakeHandle) ZOrder() int            { return h.zOrder }
func (h *fakeHandle) SetZOrder(z int)        { h.zOrder = z }
func (h *fakeHandle) SetText(s string)       { h.desc.Text = s }
func (h *fakeHandle) Destroy()               { h.destroyed = true }

// fakeRenderer tracks which handles are attached.
type fakeRenderer struct {
	created  []*fakeHandle
	attached map[*fakeHandle]bool
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{attached: make(map[*fakeHandle]bool)}
}

func (r *fakeRenderer) CreateHandle(d ShapeDescriptor) Handle {
	h := &fakeHandle{desc: d}
	r.created = append(r.created, h)
	return h
}

func (r *fakeRenderer) Attach(h Handle) { r.attached[h.(*fakeHandle)] = true }
func (r *fakeRenderer) Detach(h Handle) { delete(r.attached, h.(*fakeHandle)) }

// --- shared helpers ---

// newTestWorld returns a headless world with no gravity or drag whose
// warnings go to the returned buffer.
func newTestWorld(r Renderer) (*World, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Gravity = 0
	cfg.Drag = 0
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	return NewWorld(r, cfg), &buf
}

// newActiveWorld returns a test world with an active scene.
func newActiveWorld(r Renderer) (*World, *Scene) {
	w, _ := newTestWorld(r)
	s := w.NewScene("main")
	w.SetActiveScene(s)
	return w, s
}

func expectPanic(t *testing.T, contains string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q, got none", contains)
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, contains) {
			t.Errorf("panic = %v, want message containing %q", r, contains)
		}
	}()
	fn()
}

const testEps = 1e-9

func nearVec(a, b Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

// recordEvents subscribes a recorder for each name on bus.
func recordEvents(bus *EventBus, names ...string) *[]Event {
	var got []Event
	l := NewListener(func(e Event) { got = append(got, e) })
	for _, n := range names {
		bus.Subscribe(n, l, nil)
	}
	return &got
}
