package canopy

import (
	"math"
	"slices"
)

// stepPhysics integrates every dynamic body of the active scene with
// semi-implicit Euler and then resolves every overlapping collider pair.
func (w *World) stepPhysics(dt float64) {
	s := w.active
	if s == nil {
		if !w.warnedNoScene {
			w.log.Warn("physics step skipped: no active scene")
			w.warnedNoScene = true
		}
		return
	}

	bodies := slices.Clone(s.members)
	if cap(w.prevPos) < len(bodies) {
		w.prevPos = make([]Vec2, len(bodies))
	}
	prev := w.prevPos[:len(bodies)]

	gravity, drag := w.cfg.Gravity, w.cfg.Drag
	for i, id := range bodies {
		if !w.Alive(id) {
			continue
		}
		prev[i] = w.Position(id)
		o := w.get(id)
		if !dynamic(o) {
			continue
		}
		b := o.body
		var acc Vec2
		if !b.NoDrag {
			acc = b.Velocity.Scale(-drag)
		}
		if !b.NoGravity {
			acc.Y -= gravity
		}
		b.Velocity = b.Velocity.Add(acc.Scale(dt))
		w.Translate(id, b.Velocity.Scale(dt))
	}

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if !w.Alive(a) || !w.Alive(b) {
				continue
			}
			oa, ob := w.get(a), w.get(b)
			if !collidable(oa) || !collidable(ob) {
				continue
			}
			sa, sb := w.colliderShape(oa), w.colliderShape(ob)
			if !overlaps(sa, sb) {
				continue
			}
			w.resolve(a, b, prev[i], prev[j], sa, sb)
		}
	}
}

// resolve handles one overlapping pair: a positional revert to the
// pre-integration position, then a velocity response.
func (w *World) resolve(a, b ID, prevA, prevB Vec2, sa, sb shape) {
	oa, ob := w.get(a), w.get(b)
	da, db := dynamic(oa), dynamic(ob)
	if !da && !db {
		return
	}

	var normal Vec2
	if da && db {
		w.SetPosition(a, prevA)
		m1, m2 := oa.collider.Mass, ob.collider.Mass
		if m1 > 0 && m2 > 0 {
			v1, v2 := oa.body.Velocity, ob.body.Velocity
			sum := m1 + m2
			oa.body.Velocity = v1.Scale((m1 - m2) / sum).Add(v2.Scale(2 * m2 / sum))
			ob.body.Velocity = v2.Scale((m2 - m1) / sum).Add(v1.Scale(2 * m1 / sum))
		} else {
			w.log.Warn("collider mass is not positive, velocities left unchanged",
				"a", oa.label, "b", ob.label)
		}
		if d := sb.center.Sub(sa.center); d.Len() > 0 {
			normal = d.Scale(1 / d.Len())
		}
	} else {
		dyn, dynShape, statShape, dynPrev := a, sa, sb, prevA
		if !da {
			dyn, dynShape, statShape, dynPrev = b, sb, sa, prevB
		}
		n, ok := w.staticNormal(dynShape, statShape)
		w.SetPosition(dyn, dynPrev)
		if !ok {
			w.log.Warn("collision normal is ambiguous, skipping pair this tick",
				"a", oa.label, "b", ob.label)
			return
		}
		body := w.get(dyn).body
		v := body.Velocity
		v = v.Sub(n.Scale(2 * v.Dot(n)))
		v.Y *= w.cfg.RestDamping
		body.Velocity = v
		normal = n
	}

	c := Collision{A: a, B: b, Normal: normal}
	if w.Alive(a) {
		oa.bus.Publish(EventCollision, a, c)
	}
	if w.Alive(b) {
		ob.bus.Publish(EventCollision, b, c)
	}
	w.bus.Publish(EventCollision, 0, c)
}

// staticNormal picks the axis of least penetration between a dynamic and a
// static shape, pointing from the static shape toward the dynamic one. Equal
// overlaps fall back to Config.TieBreak.
func (w *World) staticNormal(dyn, stat shape) (Vec2, bool) {
	d := dyn.center.Sub(stat.center)
	hd, hs := dyn.halfExtents(), stat.halfExtents()
	ox := hd.X + hs.X - math.Abs(d.X)
	oy := hd.Y + hs.Y - math.Abs(d.Y)
	switch {
	case ox < oy:
		return Vec2{sign(d.X), 0}, true
	case oy < ox:
		return Vec2{0, sign(d.Y)}, true
	}
	if w.cfg.TieBreak == TieBreakSkip {
		return Vec2{}, false
	}
	return Vec2{sign(d.X), 0}, true
}

// sign returns -1 for negative values and 1 otherwise.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
