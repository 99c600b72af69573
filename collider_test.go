package canopy

import "testing"

func TestOverlapsShapes(t *testing.T) {
	box := func(x, y, w, h float64) shape {
		lo := Vec2{x, y}
		hi := Vec2{x + w, y + h}
		return shape{kind: ColliderAABB, min: lo, max: hi, center: lo.Add(hi).Scale(0.5)}
	}
	circle := func(x, y, r float64) shape {
		return shape{kind: ColliderCircle, min: Vec2{x - r, y - r}, max: Vec2{x + r, y + r}, center: Vec2{x, y}, radius: r}
	}

	tests := []struct {
		name string
		a, b shape
		want bool
	}{
		{"boxes overlapping", box(0, 0, 10, 10), box(5, 5, 10, 10), true},
		{"boxes touching", box(0, 0, 10, 10), box(10, 0, 10, 10), false},
		{"boxes apart", box(0, 0, 10, 10), box(20, 0, 10, 10), false},
		{"circles overlapping", circle(0, 0, 5), circle(8, 0, 5), true},
		{"circles touching", circle(0, 0, 5), circle(10, 0, 5), false},
		{"box circle overlapping", box(0, 0, 10, 10), circle(12, 5, 3), true},
		{"box circle corner miss", box(0, 0, 10, 10), circle(13, 13, 4), false},
		{"circle inside box", box(0, 0, 10, 10), circle(5, 5, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("overlaps = %v, want %v", got, tt.want)
			}
			if got := overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("overlaps reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColliderShapeMirror(t *testing.T) {
	w, _ := newTestWorld(nil)
	id := w.NewRect("r", 20, 10, ColorWhite)
	w.SetPosition(id, Vec2{5, 5})

	w.SetCollider(id, Collider{Kind: ColliderAABB, Mass: 1, Mirror: true})
	s := w.colliderShape(w.get(id))
	if s.min != (Vec2{5, 5}) || s.max != (Vec2{25, 15}) {
		t.Errorf("mirrored box = %v..%v, want (5,5)..(25,15)", s.min, s.max)
	}

	w.SetCollider(id, Collider{Kind: ColliderCircle, Mass: 1, Mirror: true})
	s = w.colliderShape(w.get(id))
	if s.center != (Vec2{15, 10}) || s.radius != 5 {
		t.Errorf("mirrored circle center %v radius %v, want (15,10) 5", s.center, s.radius)
	}
}

func TestColliderShapeExplicit(t *testing.T) {
	w, _ := newTestWorld(nil)
	id := w.NewRect("r", 20, 10, ColorWhite)
	w.SetPosition(id, Vec2{5, 5})
	w.SetCollider(id, Collider{Kind: ColliderAABB, Mass: 1, Width: 4, Height: 2, Offset: Vec2{1, 1}})
	s := w.colliderShape(w.get(id))
	if s.min != (Vec2{6, 6}) || s.max != (Vec2{10, 8}) {
		t.Errorf("box = %v..%v, want (6,6)..(10,8)", s.min, s.max)
	}
}

func TestColliderFollowsParentMove(t *testing.T) {
	w, _ := newTestWorld(nil)
	p := w.NewContainer("p")
	a := w.NewRect("a", 10, 10, ColorWhite)
	b := w.NewRect("b", 10, 10, ColorWhite)
	w.AddChild(p, a)
	w.SetPosition(b, Vec2{50, 0})
	w.SetCollider(a, Collider{Kind: ColliderAABB, Mass: 1, Enabled: true, Mirror: true})
	w.SetCollider(b, Collider{Kind: ColliderAABB, Mass: 1, Enabled: true, Mirror: true})

	if w.Overlapping(a, b) {
		t.Fatal("overlapping before move")
	}
	w.SetPosition(p, Vec2{45, 0})
	if !w.Overlapping(a, b) {
		t.Error("collider did not follow its owner's parent")
	}
	w.Collider(a).Enabled = false
	if w.Overlapping(a, b) {
		t.Error("disabled collider overlapping")
	}
}

func TestSetColliderZeroMassPanics(t *testing.T) {
	w, _ := newTestWorld(nil)
	id := w.NewRect("r", 1, 1, ColorWhite)
	expectPanic(t, "mass must be positive", func() { w.SetCollider(id, Collider{}) })
}

func TestSetVelocityWithoutBodyPanics(t *testing.T) {
	w, _ := newTestWorld(nil)
	id := w.NewRect("r", 1, 1, ColorWhite)
	if w.Velocity(id) != (Vec2{}) {
		t.Error("Velocity without body should be zero")
	}
	expectPanic(t, "no physics body", func() { w.SetVelocity(id, Vec2{1, 0}) })
}

func TestRemoveCollider(t *testing.T) {
	w, _ := newTestWorld(nil)
	id := w.NewRect("r", 1, 1, ColorWhite)
	w.SetCollider(id, Collider{Kind: ColliderCircle, Mass: 1, Radius: 1})
	w.RemoveCollider(id)
	if w.Collider(id) != nil {
		t.Error("collider not removed")
	}
}
