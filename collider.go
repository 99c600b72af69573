package canopy

// ColliderKind selects a collision shape.
type ColliderKind uint8

const (
	ColliderAABB   ColliderKind = iota // axis-aligned box
	ColliderCircle                     // circle
)

// Collider is the collision capability of an object.
type Collider struct {
	Kind    ColliderKind
	Mass    float64
	Enabled bool

	// Width and Height are the AABB extents; Radius the circle's.
	Width, Height float64
	Radius        float64

	// Offset runs from the owner's bottom-left corner to the box's
	// bottom-left corner, or to the circle's center.
	Offset Vec2

	// Mirror derives the extents from the owner's size instead: the box
	// covers the owner, the circle is inscribed in it.
	Mirror bool
}

// Body is the physics capability of an object. Objects without a Body never
// move during the physics step and collide as static.
type Body struct {
	Velocity  Vec2
	Static    bool
	NoGravity bool
	NoDrag    bool
}

// Collision is the payload of collision events.
type Collision struct {
	A, B   ID
	Normal Vec2
}

// SetCollider attaches (or replaces) id's collider.
// Panics if the mass is not positive.
func (w *World) SetCollider(id ID, c Collider) {
	if c.Mass <= 0 {
		panic("canopy: collider mass must be positive")
	}
	w.get(id).collider = &c
}

// Collider returns id's collider for inspection or mutation, or nil.
// Change the mass through SetColliderMass, which validates it.
func (w *World) Collider(id ID) *Collider {
	return w.get(id).collider
}

// SetColliderMass changes the mass of id's collider.
// Panics if id has no collider or m is not positive.
func (w *World) SetColliderMass(id ID, m float64) {
	c := w.get(id).collider
	if c == nil {
		panic("canopy: object has no collider")
	}
	if m <= 0 {
		panic("canopy: collider mass must be positive")
	}
	c.Mass = m
}

// RemoveCollider detaches id's collider.
func (w *World) RemoveCollider(id ID) {
	w.get(id).collider = nil
}

// SetBody attaches (or replaces) id's physics body.
func (w *World) SetBody(id ID, b Body) {
	w.get(id).body = &b
}

// Body returns id's physics body for inspection or mutation, or nil.
func (w *World) Body(id ID) *Body {
	return w.get(id).body
}

// Velocity returns id's body velocity, or zero without a body.
func (w *World) Velocity(id ID) Vec2 {
	if b := w.get(id).body; b != nil {
		return b.Velocity
	}
	return Vec2{}
}

// SetVelocity sets id's body velocity. Panics if id has no body.
func (w *World) SetVelocity(id ID, v Vec2) {
	b := w.get(id).body
	if b == nil {
		panic("canopy: object has no physics body")
	}
	b.Velocity = v
}

// shape is a collider resolved into world space.
type shape struct {
	kind     ColliderKind
	min, max Vec2
	center   Vec2
	radius   float64
}

func (s shape) halfExtents() Vec2 {
	return s.max.Sub(s.min).Scale(0.5)
}

func (w *World) colliderShape(o *object) shape {
	c := o.collider
	if c.Kind == ColliderAABB {
		size := Vec2{c.Width, c.Height}
		if c.Mirror {
			size = Vec2{o.width, o.height}
		}
		lo := o.global.Add(c.Offset)
		hi := lo.Add(size)
		return shape{kind: ColliderAABB, min: lo, max: hi, center: lo.Add(size.Scale(0.5))}
	}
	r := c.Radius
	center := o.global.Add(c.Offset)
	if c.Mirror {
		r = min(o.width, o.height) / 2
		center = o.global.Add(Vec2{o.width / 2, o.height / 2})
	}
	return shape{
		kind:   ColliderCircle,
		min:    Vec2{center.X - r, center.Y - r},
		max:    Vec2{center.X + r, center.Y + r},
		center: center,
		radius: r,
	}
}

// overlaps reports strict overlap; touching shapes do not collide.
func overlaps(a, b shape) bool {
	switch {
	case a.kind == ColliderAABB && b.kind == ColliderAABB:
		return a.min.X < b.max.X && b.min.X < a.max.X &&
			a.min.Y < b.max.Y && b.min.Y < a.max.Y
	case a.kind == ColliderAABB:
		return boxCircle(a, b)
	case b.kind == ColliderAABB:
		return boxCircle(b, a)
	default:
		d := b.center.Sub(a.center)
		r := a.radius + b.radius
		return d.Dot(d) < r*r
	}
}

// boxCircle clamps the circle center into the box and compares squared
// distances.
func boxCircle(box, c shape) bool {
	nearest := Vec2{
		X: clamp(c.center.X, box.min.X, box.max.X),
		Y: clamp(c.center.Y, box.min.Y, box.max.Y),
	}
	d := c.center.Sub(nearest)
	return d.Dot(d) < c.radius*c.radius
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Overlapping reports whether the enabled colliders of a and b overlap at
// their current positions.
func (w *World) Overlapping(a, b ID) bool {
	oa, ob := w.get(a), w.get(b)
	if !collidable(oa) || !collidable(ob) {
		return false
	}
	return overlaps(w.colliderShape(oa), w.colliderShape(ob))
}

func collidable(o *object) bool {
	return o.collider != nil && o.collider.Enabled
}

func dynamic(o *object) bool {
	return o.body != nil && !o.body.Static
}
