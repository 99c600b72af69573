package canopy

// Renderer is the drawing backend. The engine creates one Handle per object
// and attaches it while the object is a member of the active Scene.
type Renderer interface {
	CreateHandle(desc ShapeDescriptor) Handle
	Attach(h Handle)
	Detach(h Handle)
}

// Handle is the renderer-side object mirroring one world object. Position
// is the object's origin in world units (bottom-left plus its bottom-left
// offset), y-up.
type Handle interface {
	Width() float64
	SetWidth(v float64)
	Height() float64
	SetHeight(v float64)
	Position() Vec2
	SetPosition(p Vec2)
	Rotation() float64
	SetRotation(r float64)
	Pivot() Vec2
	SetPivot(p Vec2)
	Alpha() float64
	SetAlpha(a float64)
	Visible() bool
	SetVisible(v bool)
	ZOrder() int
	SetZOrder(z int)
	SetText(s string)
	Destroy()
}

// Ticker drives the world once per frame.
type Ticker interface {
	Subscribe(fn func(deltaMS float64))
}

// syncHandle pushes the object's current spatial state to its handle.
func (w *World) syncHandle(o *object) {
	h := o.handle
	if h == nil {
		return
	}
	size := Vec2{o.width, o.height}
	h.SetPosition(o.global.Add(o.bottomLeft.resolve(size)))
	h.SetWidth(o.width)
	h.SetHeight(o.height)
	h.SetRotation(o.rotation)
	h.SetPivot(o.pivot.Mul(size))
	h.SetAlpha(o.alpha)
	h.SetVisible(o.visible)
	h.SetZOrder(o.zOrder)
}
