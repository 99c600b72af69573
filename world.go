package canopy

import "log/slog"

// ID addresses an object in a World's arena. The low 32 bits hold the slot
// index plus one and the high 32 bits the slot generation, so an ID of a
// destroyed object never resolves to the slot's next occupant. The zero ID
// means "none".
type ID uint64

func makeID(idx int, gen uint32) ID {
	return ID(uint64(gen)<<32 | uint64(uint32(idx+1)))
}

func (id ID) split() (int, uint32) {
	return int(uint32(id)) - 1, uint32(id >> 32)
}

// object is one arena slot. Capabilities are optional components; nil means
// the object does not have that capability.
type object struct {
	gen   uint32
	alive bool

	// Hierarchy
	label    string
	parent   ID
	children []ID
	hidden   bool

	bus EventBus

	// Spatial
	local             Anchor
	bottomLeft        Anchor
	pivot             Vec2
	width, height     float64
	rotation          float64
	alpha             float64
	mode              PositionMode
	global            Vec2
	visible           bool
	inheritVisibility bool
	zOrder            int

	// Presentation
	shape  ShapeDescriptor
	handle Handle
	scene  *Scene

	// Capabilities
	body        *Body
	collider    *Collider
	layout      *layoutState
	expander    *expanderState
	interactive *Interactive
	text        *TextBlock
	stepper     *Stepper

	userData any
}

// World is the explicit engine context. It owns the object arena, the
// scenes, the renderer binding and the physics configuration. A World is
// not safe for concurrent use; all calls must come from the goroutine that
// drives Tick.
type World struct {
	objects []*object
	free    []int

	cfg   Config
	log   *slog.Logger
	debug bool

	renderer Renderer
	bus      EventBus
	active   *Scene

	warnedNoScene bool

	// Layout resolution
	layoutDefer  int
	dirtyLayouts []ID
	dirtySet     map[ID]struct{}

	// Input
	pointer     pointerState
	injectQueue []syntheticPointerEvent
	script      *ScriptRunner

	// Physics scratch
	prevPos []Vec2
}

// NewWorld creates a World drawing through r. A nil renderer runs headless:
// objects get no handles and scenes only track membership.
func NewWorld(r Renderer, cfg Config) *World {
	cfg = cfg.withDefaults()
	return &World{
		cfg:      cfg,
		log:      cfg.Logger,
		debug:    cfg.Debug,
		renderer: r,
		dirtySet: make(map[ID]struct{}),
	}
}

// Config returns the world's effective configuration.
func (w *World) Config() Config {
	return w.cfg
}

// SetGravity changes the gravity used by subsequent physics steps.
func (w *World) SetGravity(g float64) {
	w.cfg.Gravity = g
}

// SetDrag changes the drag coefficient used by subsequent physics steps.
func (w *World) SetDrag(d float64) {
	w.cfg.Drag = d
}

// Logger returns the world's logger.
func (w *World) Logger() *slog.Logger {
	return w.log
}

// Bus returns the world-level event bus (tick, collision, sceneActivated).
func (w *World) Bus() *EventBus {
	return &w.bus
}

// Events returns the event bus owned by id.
func (w *World) Events(id ID) *EventBus {
	return &w.get(id).bus
}

// Alive reports whether id refers to a live object.
func (w *World) Alive(id ID) bool {
	idx, gen := id.split()
	if idx < 0 || idx >= len(w.objects) {
		return false
	}
	o := w.objects[idx]
	return o.alive && o.gen == gen
}

// Len returns the number of live objects.
func (w *World) Len() int {
	return len(w.objects) - len(w.free)
}

func (w *World) get(id ID) *object {
	idx, gen := id.split()
	if idx < 0 || idx >= len(w.objects) {
		panic(w.staleMessage(id, "lookup"))
	}
	o := w.objects[idx]
	if !o.alive || o.gen != gen {
		panic(w.staleMessage(id, "lookup"))
	}
	return o
}

// alloc reserves a slot and returns its ID with spatial defaults applied.
func (w *World) alloc(label string, shape ShapeDescriptor, width, height float64) ID {
	var idx int
	var o *object
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
		// A fresh record, so a bus still dispatching for the previous
		// occupant is never shared with the new one.
		o = &object{gen: w.objects[idx].gen}
		w.objects[idx] = o
	} else {
		idx = len(w.objects)
		o = &object{}
		w.objects = append(w.objects, o)
	}
	o.alive = true
	o.label = label
	o.shape = shape
	o.width = width
	o.height = height
	o.alpha = 1
	o.visible = true
	o.inheritVisibility = true
	id := makeID(idx, o.gen)
	if w.renderer != nil {
		o.handle = w.renderer.CreateHandle(shape)
	}
	w.recomputeGlobal(id)
	return id
}

// NewObject creates a detached object of the given shape and size.
func (w *World) NewObject(label string, shape ShapeDescriptor, width, height float64) ID {
	return w.alloc(label, shape, width, height)
}

// NewContainer creates a detached group object with no visual output.
func (w *World) NewContainer(label string) ID {
	return w.alloc(label, ShapeDescriptor{Kind: ShapeNone}, 0, 0)
}

// NewRect creates a detached filled rectangle.
func (w *World) NewRect(label string, width, height float64, c Color) ID {
	return w.alloc(label, ShapeDescriptor{Kind: ShapeRect, Color: c}, width, height)
}

// NewCircle creates a detached filled circle. The object's size is the
// circle's bounding square and its bottom-left offset is set to the center,
// so the renderer handle is positioned at the circle's center.
func (w *World) NewCircle(label string, radius float64, c Color) ID {
	id := w.alloc(label, ShapeDescriptor{Kind: ShapeCircle, Color: c}, 2*radius, 2*radius)
	w.SetBottomLeftOffset(id, Anchor{Fraction: Vec2{0.5, 0.5}})
	return id
}

// SetUserData attaches arbitrary host data to id.
func (w *World) SetUserData(id ID, v any) {
	w.get(id).userData = v
}

// UserData returns the host data attached to id.
func (w *World) UserData(id ID) any {
	return w.get(id).userData
}

// Start subscribes the world's Tick to t.
func (w *World) Start(t Ticker) {
	t.Subscribe(w.Tick)
}

// Tick advances the world by deltaMS milliseconds: the attached script
// runner steps, one queued synthetic pointer event is consumed, the physics
// step runs, and the layout changes all of it caused are resolved in one
// batch before the tick event is published.
func (w *World) Tick(deltaMS float64) {
	w.Batch(func() {
		if w.script != nil {
			w.script.step(w)
		}
		w.processInjectedInput()
		w.stepPhysics(deltaMS / 1000)
	})
	w.bus.Publish(EventTick, 0, deltaMS)
}

// Batch runs fn with layout arrangement deferred, then resolves every
// layout that was invalidated inside fn. Batches nest.
func (w *World) Batch(fn func()) {
	w.layoutDefer++
	defer func() {
		w.layoutDefer--
		if w.layoutDefer == 0 {
			w.ResolveLayout()
		}
	}()
	fn()
}
