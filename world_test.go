package canopy

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("viewport = %vx%v, want 800x600", cfg.Width, cfg.Height)
	}
	if cfg.Gravity != 98 || cfg.Drag != 0.1 || cfg.RestDamping != 0.97 {
		t.Errorf("physics = %v/%v/%v, want 98/0.1/0.97", cfg.Gravity, cfg.Drag, cfg.RestDamping)
	}
	if cfg.TieBreak != TieBreakPreferX {
		t.Errorf("TieBreak = %v, want TieBreakPreferX", cfg.TieBreak)
	}
}

func TestNewWorldFillsZeroConfig(t *testing.T) {
	w := NewWorld(nil, Config{})
	cfg := w.Config()
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("viewport = %vx%v, want defaults", cfg.Width, cfg.Height)
	}
	if cfg.Gravity != 0 || cfg.Drag != 0 {
		t.Errorf("zero gravity/drag overwritten: %v/%v", cfg.Gravity, cfg.Drag)
	}
	if cfg.RestDamping != defaultRestDamping || cfg.MaxLayoutPasses != defaultMaxLayoutPasses {
		t.Errorf("RestDamping/MaxLayoutPasses = %v/%v", cfg.RestDamping, cfg.MaxLayoutPasses)
	}
	if w.Logger() == nil {
		t.Error("Logger should default to a stderr handler")
	}
}

func TestLoggerCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	w := NewWorld(nil, Config{Logger: slog.New(slog.NewTextHandler(&buf, nil))})
	w.Logger().Warn("probe")
	if !strings.Contains(buf.String(), "component=canopy") {
		t.Errorf("log line missing component attribute: %s", buf.String())
	}
}

func TestTickPublishesDelta(t *testing.T) {
	w, _ := newTestWorld(nil)
	got := recordEvents(w.Bus(), EventTick)
	w.Tick(16)
	if len(*got) != 1 || (*got)[0].Data != 16.0 {
		t.Errorf("tick events = %v, want one with 16", *got)
	}
}

type manualTicker struct {
	subs []func(float64)
}

func (m *manualTicker) Subscribe(fn func(float64)) { m.subs = append(m.subs, fn) }

func (m *manualTicker) fire(dt float64) {
	for _, fn := range m.subs {
		fn(dt)
	}
}

func TestStartSubscribesTick(t *testing.T) {
	w, _ := newTestWorld(nil)
	var tk manualTicker
	w.Start(&tk)
	got := recordEvents(w.Bus(), EventTick)
	tk.fire(10)
	tk.fire(10)
	if len(*got) != 2 {
		t.Errorf("ticks = %d, want 2", len(*got))
	}
}

func TestTickResolvesLayoutOnce(t *testing.T) {
	w, s := newActiveWorld(nil)
	l := w.NewLayout("l", LayoutConfig{Orientation: UpFromBottom})
	a := w.NewRect("a", 10, 10, ColorWhite)
	b := w.NewRect("b", 10, 10, ColorWhite)
	w.AddChild(l, a)
	w.AddChild(l, b)
	s.Attach(l)

	w.SetInteractive(a, true)
	w.Events(a).Subscribe(EventClick, NewListener(func(Event) {
		w.SetHeight(a, 20)
		w.SetHeight(b, 20)
	}), nil)
	resizes := recordEvents(w.Events(l), EventSizeChanged)

	w.InjectClick(Vec2{5, 5})
	w.Tick(16)
	w.Tick(16)

	if len(*resizes) != 1 {
		t.Errorf("layout re-fit %d times in one tick, want 1", len(*resizes))
	}
	if got := w.Size(l); got != (Vec2{10, 40}) {
		t.Errorf("layout size = %v, want (10, 40)", got)
	}
	if got := w.Position(b); got != (Vec2{0, 20}) {
		t.Errorf("b = %v, want (0, 20)", got)
	}
}

func TestUserData(t *testing.T) {
	w, _ := newTestWorld(nil)
	id := w.NewContainer("u")
	w.SetUserData(id, "payload")
	if w.UserData(id) != "payload" {
		t.Errorf("UserData = %v", w.UserData(id))
	}
}

func TestVec2AndRect(t *testing.T) {
	v := Vec2{3, 4}
	if v.Len() != 5 {
		t.Errorf("Len = %v, want 5", v.Len())
	}
	if v.Dot(Vec2{1, 2}) != 11 {
		t.Errorf("Dot = %v, want 11", v.Dot(Vec2{1, 2}))
	}
	r := Rect{0, 0, 10, 10}.Union(Rect{5, -5, 10, 10})
	if r != (Rect{0, -5, 15, 15}) {
		t.Errorf("Union = %v", r)
	}
	if r.Center() != (Vec2{7.5, 2.5}) {
		t.Errorf("Center = %v", r.Center())
	}
}
