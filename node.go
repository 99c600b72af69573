package canopy

import "strconv"

// --- Tree manipulation ---

// AddChild appends child to parent's children.
// Panics if child already has a parent or is an ancestor of parent.
func (w *World) AddChild(parent, child ID) {
	w.insertChild(parent, child, -1)
}

// AddChildAt inserts child at the given index among parent's children.
// Same checks as AddChild; also panics if index is out of range.
func (w *World) AddChildAt(parent, child ID, index int) {
	if index < 0 || index > len(w.get(parent).children) {
		panic("canopy: child index out of range")
	}
	w.insertChild(parent, child, index)
}

func (w *World) insertChild(parent, child ID, index int) {
	p := w.get(parent)
	c := w.get(child)
	if c.parent != 0 {
		panic("canopy: child already has a parent")
	}
	if c.scene != nil {
		panic("canopy: child is attached to a scene as a root")
	}
	if w.isAncestor(child, parent) {
		panic("canopy: adding child would create a cycle")
	}

	c.label = uniqueLabel(w, p, c.label)
	c.parent = parent
	if index < 0 {
		p.children = append(p.children, child)
	} else {
		p.children = append(p.children, 0)
		copy(p.children[index+1:], p.children[index:])
		p.children[index] = child
	}
	w.recomputeGlobal(child)
	if p.scene != nil {
		p.scene.attachSubtree(child)
	}
	if w.debug {
		w.debugCheckTreeDepth(child)
		w.debugCheckChildCount(parent)
	}

	p.bus.Publish(EventChildAdded, parent, child)
	c.bus.Publish(EventParentChanged, child, parent)
	for a := parent; a != 0; a = w.get(a).parent {
		w.get(a).bus.Publish(EventDescendantAdded, a, child)
	}
}

// RemoveChild detaches child from parent. The parent link is cleared before
// the removal events fire, so listeners observe the post-removal tree. mode
// selects whether the child and its descendants are destroyed afterwards.
// Panics if child's parent is not parent.
func (w *World) RemoveChild(parent, child ID, mode RemoveMode) {
	p := w.get(parent)
	c := w.get(child)
	if c.parent != parent {
		panic("canopy: child's parent is not this object")
	}
	p.children = removeID(p.children, child)
	c.parent = 0
	if c.scene != nil {
		c.scene.detachSubtree(child)
	}
	w.recomputeGlobal(child)

	p.bus.Publish(EventChildRemoved, parent, child)
	c.bus.Publish(EventParentChanged, child, ID(0))
	for a := parent; a != 0; a = w.get(a).parent {
		w.get(a).bus.Publish(EventDescendantRemoved, a, child)
	}

	switch mode {
	case RemoveDestroy:
		w.destroy(child, true)
	case RemoveDestroySelf:
		w.destroy(child, false)
	}
}

// RemoveFromParent detaches id from its parent without destroying it.
// No-op if id has no parent.
func (w *World) RemoveFromParent(id ID) {
	if p := w.get(id).parent; p != 0 {
		w.RemoveChild(p, id, RemoveDetach)
	}
}

// --- Lookups ---

// Parent returns id's parent, or zero for a root.
func (w *World) Parent(id ID) ID {
	return w.get(id).parent
}

// Children returns id's children. The returned slice MUST NOT be mutated.
func (w *World) Children(id ID) []ID {
	return w.get(id).children
}

// NumChildren returns the number of children of id.
func (w *World) NumChildren(id ID) int {
	return len(w.get(id).children)
}

// ChildByLabel returns the direct child of parent carrying label.
func (w *World) ChildByLabel(parent ID, label string) (ID, bool) {
	for _, c := range w.get(parent).children {
		if w.get(c).label == label {
			return c, true
		}
	}
	return 0, false
}

// ContainsChild reports whether child is a direct child of parent.
func (w *World) ContainsChild(parent, child ID) bool {
	for _, c := range w.get(parent).children {
		if c == child {
			return true
		}
	}
	return false
}

// Label returns id's label.
func (w *World) Label(id ID) string {
	return w.get(id).label
}

// SetLabel renames id, suffixing it if a sibling already uses label.
func (w *World) SetLabel(id ID, label string) {
	o := w.get(id)
	if o.label == label {
		return
	}
	if o.parent == 0 {
		o.label = label
		return
	}
	o.label = ""
	o.label = uniqueLabel(w, w.get(o.parent), label)
}

// Hidden reports whether id is excluded from default traversal.
func (w *World) Hidden(id ID) bool {
	return w.get(id).hidden
}

// SetHidden excludes id and its subtree from default traversal, which also
// removes them from scene membership.
func (w *World) SetHidden(id ID, hidden bool) {
	o := w.get(id)
	if o.hidden == hidden {
		return
	}
	o.hidden = hidden
	if o.scene != nil {
		o.scene.resync(id)
	}
}

// --- Traversal ---

type iterFrame struct {
	siblings []ID
	index    int
}

// IterateDescendants walks id's subtree in pre-order without recursion.
// Hidden objects and their subtrees are skipped unless includeHidden. fn may
// return IterSkipChildren to prune or IterStop to end the walk. The tree must
// not be restructured from inside fn.
func (w *World) IterateDescendants(id ID, fn func(ID) IterResult, includeSelf, includeHidden bool) {
	root := w.get(id)
	if includeSelf {
		if root.hidden && !includeHidden {
			return
		}
		if fn(id) != IterContinue {
			return
		}
	}
	if len(root.children) == 0 {
		return
	}
	stack := make([]iterFrame, 1, 8)
	stack[0] = iterFrame{siblings: root.children}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.index >= len(top.siblings) {
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				stack[len(stack)-1].index++
			}
			continue
		}
		cur := top.siblings[top.index]
		o := w.get(cur)
		descend := false
		if !o.hidden || includeHidden {
			switch fn(cur) {
			case IterStop:
				return
			case IterContinue:
				descend = len(o.children) > 0
			}
		}
		if descend {
			stack = append(stack, iterFrame{siblings: o.children})
		} else {
			top.index++
		}
	}
}

// --- Destruction ---

// Destroy detaches id from its parent or scene and destroys it together with
// all descendants: listeners on its bus and the subscriptions it made on
// other buses are released and its renderer handle is destroyed.
func (w *World) Destroy(id ID) {
	o := w.get(id)
	if o.parent != 0 {
		w.RemoveChild(o.parent, id, RemoveDestroy)
		return
	}
	if o.scene != nil {
		o.scene.Detach(id)
	}
	w.destroy(id, true)
}

func (w *World) destroy(id ID, descendants bool) {
	o := w.get(id)
	children := o.children
	o.children = nil
	for _, c := range children {
		w.get(c).parent = 0
		if descendants {
			w.destroy(c, true)
		} else {
			w.recomputeGlobal(c)
		}
	}

	o.bus.Publish(EventDestroyed, id, nil)
	o.bus.Teardown()
	if o.handle != nil {
		o.handle.Destroy()
		o.handle = nil
	}
	delete(w.dirtySet, id)
	w.pointer.forget(id)

	idx, _ := id.split()
	o.alive = false
	o.gen++
	o.body = nil
	o.collider = nil
	o.layout = nil
	o.expander = nil
	o.interactive = nil
	o.text = nil
	o.stepper = nil
	o.userData = nil
	w.free = append(w.free, idx)
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func (w *World) isAncestor(candidate, node ID) bool {
	for p := node; p != 0; p = w.get(p).parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// uniqueLabel returns label, or label with ".N" appended for the smallest N
// that no child of p uses.
func uniqueLabel(w *World, p *object, label string) string {
	taken := func(s string) bool {
		for _, c := range p.children {
			if w.get(c).label == s {
				return true
			}
		}
		return false
	}
	if !taken(label) {
		return label
	}
	for n := 1; ; n++ {
		candidate := label + "." + strconv.Itoa(n)
		if !taken(candidate) {
			return candidate
		}
	}
}

func removeID(s []ID, id ID) []ID {
	for i, x := range s {
		if x == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = 0
			return s[:len(s)-1]
		}
	}
	return s
}
