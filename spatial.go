package canopy

// Anchor is an offset plus a fraction of some extent. Local positions anchor
// against the parent's size (or the viewport), bottom-left offsets and
// pivots against the object's own size.
type Anchor struct {
	Offset   Vec2
	Fraction Vec2
}

func (a Anchor) resolve(extent Vec2) Vec2 {
	return a.Offset.Add(a.Fraction.Mul(extent))
}

// parentExtent returns the extent o's local anchor resolves against.
func (w *World) parentExtent(o *object) Vec2 {
	if o.parent == 0 || o.mode == PositionAbsolute {
		return Vec2{w.cfg.Width, w.cfg.Height}
	}
	p := w.get(o.parent)
	return Vec2{p.width, p.height}
}

// recomputeGlobal refreshes the cached global position of id and every
// descendant, parents strictly before children, and re-syncs their handles.
func (w *World) recomputeGlobal(id ID) {
	w.IterateDescendants(id, func(cur ID) IterResult {
		o := w.get(cur)
		local := o.local.resolve(w.parentExtent(o))
		if o.parent == 0 || o.mode == PositionAbsolute {
			o.global = local
		} else {
			o.global = w.get(o.parent).global.Add(local)
		}
		w.syncHandle(o)
		return IterContinue
	}, true, true)
}

// --- Position ---

// Position returns id's resolved bottom-left corner in its parent's space.
func (w *World) Position(id ID) Vec2 {
	o := w.get(id)
	return o.local.resolve(w.parentExtent(o))
}

// SetPosition moves id so its bottom-left corner resolves to p. The anchor
// fraction is kept and the offset back-solved, so id keeps tracking its
// anchor when the parent is resized later.
func (w *World) SetPosition(id ID, p Vec2) {
	o := w.get(id)
	off := p.Sub(o.local.Fraction.Mul(w.parentExtent(o)))
	if off == o.local.Offset {
		return
	}
	o.local.Offset = off
	w.positionChanged(id)
}

// Translate moves id by d.
func (w *World) Translate(id ID, d Vec2) {
	w.SetPosition(id, w.Position(id).Add(d))
}

// LocalAnchor returns id's unresolved offset/fraction pair.
func (w *World) LocalAnchor(id ID) Anchor {
	return w.get(id).local
}

// SetAnchor replaces id's offset/fraction pair.
func (w *World) SetAnchor(id ID, a Anchor) {
	o := w.get(id)
	if o.local == a {
		return
	}
	o.local = a
	w.positionChanged(id)
}

// GlobalPosition returns id's cached bottom-left corner in world space.
func (w *World) GlobalPosition(id ID) Vec2 {
	return w.get(id).global
}

// PositionMode returns id's position mode.
func (w *World) PositionMode(id ID) PositionMode {
	return w.get(id).mode
}

// SetPositionMode switches between Relative and Absolute positioning.
func (w *World) SetPositionMode(id ID, m PositionMode) {
	o := w.get(id)
	if o.mode == m {
		return
	}
	o.mode = m
	w.positionChanged(id)
}

// SetBottomLeftOffset sets the anchor, against id's own size, from its
// bottom-left corner to the point its renderer handle is positioned at.
func (w *World) SetBottomLeftOffset(id ID, a Anchor) {
	o := w.get(id)
	o.bottomLeft = a
	w.syncHandle(o)
}

// Origin returns the world-space point id's renderer handle is placed at.
func (w *World) Origin(id ID) Vec2 {
	o := w.get(id)
	return o.global.Add(o.bottomLeft.resolve(Vec2{o.width, o.height}))
}

func (w *World) positionChanged(id ID) {
	w.recomputeGlobal(id)
	w.get(id).bus.Publish(EventPositionChanged, id, nil)
	w.relayoutAncestor(id)
}

// --- Size ---

// Width returns id's width.
func (w *World) Width(id ID) float64 {
	return w.get(id).width
}

// Height returns id's height.
func (w *World) Height(id ID) float64 {
	return w.get(id).height
}

// Size returns id's width and height.
func (w *World) Size(id ID) Vec2 {
	o := w.get(id)
	return Vec2{o.width, o.height}
}

// SetWidth resizes id horizontally; see SetSize.
func (w *World) SetWidth(id ID, v float64) {
	w.SetSize(id, v, w.get(id).height)
}

// SetHeight resizes id vertically; see SetSize.
func (w *World) SetHeight(id ID, v float64) {
	w.SetSize(id, w.get(id).width, v)
}

// SetSize resizes id while keeping its bottom-left corner in place.
// Descendants anchored to id's extent are re-resolved.
func (w *World) SetSize(id ID, width, height float64) {
	o := w.get(id)
	if o.width == width && o.height == height {
		return
	}
	corner := w.Position(id)
	o.width, o.height = width, height
	o.local.Offset = corner.Sub(o.local.Fraction.Mul(w.parentExtent(o)))
	w.recomputeGlobal(id)
	o.bus.Publish(EventSizeChanged, id, Vec2{width, height})
	w.relayoutAncestor(id)
}

// --- Presentation attributes ---

// Pivot returns id's pivot as a fraction of its own size.
func (w *World) Pivot(id ID) Vec2 {
	return w.get(id).pivot
}

// SetPivot sets the rotation and scale origin as a fraction of id's size.
func (w *World) SetPivot(id ID, fraction Vec2) {
	o := w.get(id)
	o.pivot = fraction
	w.syncHandle(o)
}

// Rotation returns id's rotation in radians.
func (w *World) Rotation(id ID) float64 {
	return w.get(id).rotation
}

// SetRotation sets id's rotation in radians. Rotation is visual only;
// collision shapes stay axis-aligned.
func (w *World) SetRotation(id ID, r float64) {
	o := w.get(id)
	o.rotation = r
	w.syncHandle(o)
}

// Alpha returns id's opacity.
func (w *World) Alpha(id ID) float64 {
	return w.get(id).alpha
}

// SetAlpha sets id's opacity.
func (w *World) SetAlpha(id ID, a float64) {
	o := w.get(id)
	o.alpha = a
	w.syncHandle(o)
}

// ZOrder returns id's draw order; higher draws on top.
func (w *World) ZOrder(id ID) int {
	return w.get(id).zOrder
}

// SetZOrder sets id's draw order.
func (w *World) SetZOrder(id ID, z int) {
	o := w.get(id)
	o.zOrder = z
	w.syncHandle(o)
}

// Shape returns the descriptor id's handle was created from.
func (w *World) Shape(id ID) ShapeDescriptor {
	return w.get(id).shape
}

// Handle returns id's renderer handle, or nil when running headless.
func (w *World) Handle(id ID) Handle {
	return w.get(id).handle
}

// --- Visibility ---

// Visible returns id's own visibility flag.
func (w *World) Visible(id ID) bool {
	return w.get(id).visible
}

// EffectivelyVisible reports whether id and all of its ancestors are visible.
func (w *World) EffectivelyVisible(id ID) bool {
	for p := id; p != 0; p = w.get(p).parent {
		if !w.get(p).visible {
			return false
		}
	}
	return true
}

// SetVisible shows or hides id. Children that inherit visibility mirror the
// new value, except a LayoutExpander's content, which becomes visible only
// while the expander is expanded.
func (w *World) SetVisible(id ID, v bool) {
	o := w.get(id)
	if o.visible == v {
		return
	}
	w.applyVisible(id, v)
	if o.scene != nil {
		o.scene.resync(id)
	}
}

// SetInheritVisibility controls whether id mirrors its parent's SetVisible.
func (w *World) SetInheritVisibility(id ID, inherit bool) {
	w.get(id).inheritVisibility = inherit
}

func (w *World) applyVisible(id ID, v bool) {
	o := w.get(id)
	o.visible = v
	w.syncHandle(o)
	o.bus.Publish(EventVisibilityChanged, id, v)
	w.relayoutAncestor(id)
	for _, c := range o.children {
		co := w.get(c)
		if !co.inheritVisibility {
			continue
		}
		cv := v
		if o.expander != nil && c == o.expander.content {
			cv = v && o.expander.expanded
		}
		if co.visible != cv {
			w.applyVisible(c, cv)
		}
	}
}

// --- Bounds ---

// BoundingRect returns id's own box in world space.
func (w *World) BoundingRect(id ID) Rect {
	o := w.get(id)
	return Rect{X: o.global.X, Y: o.global.Y, Width: o.width, Height: o.height}
}

// TotalBoundingRect unions id's box with the boxes of its visible
// descendants, or of all descendants when includeInvisible is set.
// Zero-sized descendants contribute only through their own descendants.
func (w *World) TotalBoundingRect(id ID, includeInvisible bool) Rect {
	r := w.BoundingRect(id)
	w.IterateDescendants(id, func(cur ID) IterResult {
		o := w.get(cur)
		if !includeInvisible && !o.visible {
			return IterSkipChildren
		}
		if o.width != 0 || o.height != 0 {
			r = r.Union(Rect{X: o.global.X, Y: o.global.Y, Width: o.width, Height: o.height})
		}
		return IterContinue
	}, false, includeInvisible)
	return r
}

// SetViewport changes the extents top-level and Absolute objects anchor
// against, and re-resolves the active scene.
func (w *World) SetViewport(width, height float64) {
	if w.cfg.Width == width && w.cfg.Height == height {
		return
	}
	w.cfg.Width, w.cfg.Height = width, height
	if w.active != nil {
		w.active.reresolve()
	}
}

// Viewport returns the current viewport extents.
func (w *World) Viewport() Vec2 {
	return Vec2{w.cfg.Width, w.cfg.Height}
}
