package canopy

// Scene owns the presentation handles of the subtrees attached to it.
// Its membership always equals the visible, non-hidden objects reachable
// from its roots, in traversal order of attachment. Exactly one Scene per
// World is active; only the active Scene's handles are attached to the
// renderer and only its members take part in physics and hit testing.
type Scene struct {
	w       *World
	name    string
	roots   []ID
	members []ID
	index   map[ID]int
	bus     EventBus
}

// NewScene creates an inactive, empty scene.
func (w *World) NewScene(name string) *Scene {
	return &Scene{w: w, name: name, index: make(map[ID]int)}
}

// Name returns the scene's name.
func (s *Scene) Name() string {
	return s.name
}

// Bus returns the scene's event bus.
func (s *Scene) Bus() *EventBus {
	return &s.bus
}

// Roots returns the attached root objects. The returned slice MUST NOT be mutated.
func (s *Scene) Roots() []ID {
	return s.roots
}

// Members returns the objects whose handles the scene currently presents.
// The returned slice MUST NOT be mutated.
func (s *Scene) Members() []ID {
	return s.members
}

// Contains reports whether id is a presented member of the scene.
func (s *Scene) Contains(id ID) bool {
	_, ok := s.index[id]
	return ok
}

// Active reports whether s is its world's active scene.
func (s *Scene) Active() bool {
	return s.w.active == s
}

// Attach binds the root object id and its subtree to the scene.
// Panics if id has a parent or is already attached to a scene.
func (s *Scene) Attach(id ID) {
	o := s.w.get(id)
	if o.parent != 0 {
		panic("canopy: only root objects can be attached to a scene")
	}
	if o.scene != nil {
		panic("canopy: object is already attached to a scene")
	}
	s.roots = append(s.roots, id)
	s.attachSubtree(id)
	if s.Active() {
		s.w.recomputeGlobal(id)
	}
}

// Detach unbinds the root object id and its subtree from the scene.
// Panics if id is not one of the scene's roots.
func (s *Scene) Detach(id ID) {
	o := s.w.get(id)
	if o.scene != s || o.parent != 0 {
		panic("canopy: object is not a root of this scene")
	}
	s.detachSubtree(id)
	s.roots = removeID(s.roots, id)
}

func (s *Scene) attachSubtree(id ID) {
	s.w.IterateDescendants(id, func(cur ID) IterResult {
		s.w.get(cur).scene = s
		return IterContinue
	}, true, true)
	s.resync(id)
}

func (s *Scene) detachSubtree(id ID) {
	s.w.IterateDescendants(id, func(cur ID) IterResult {
		s.unregister(cur)
		s.w.get(cur).scene = nil
		return IterContinue
	}, true, true)
}

// resync brings the membership of id's subtree in line with the current
// visible and hidden flags.
func (s *Scene) resync(id ID) {
	w := s.w
	parentOK := true
	if p := w.get(id).parent; p != 0 {
		parentOK = s.eligible(p)
	}
	ok := make(map[ID]bool)
	added := false
	w.IterateDescendants(id, func(cur ID) IterResult {
		o := w.get(cur)
		in := o.visible && !o.hidden
		if cur == id {
			in = in && parentOK
		} else {
			in = in && ok[o.parent]
		}
		ok[cur] = in
		if in {
			added = s.register(cur) || added
		} else {
			s.unregister(cur)
		}
		return IterContinue
	}, true, true)
	if added {
		s.reorder()
	}
}

// reorder puts members back in pre-order across the roots, in attachment
// order, after registrations appended out of place.
func (s *Scene) reorder() {
	members := s.members[:0]
	for _, r := range s.roots {
		s.w.IterateDescendants(r, func(cur ID) IterResult {
			if _, ok := s.index[cur]; ok {
				members = append(members, cur)
			}
			return IterContinue
		}, true, true)
	}
	s.members = members
	for i, id := range members {
		s.index[id] = i
	}
}

// eligible reports whether id and every ancestor are visible and not hidden.
func (s *Scene) eligible(id ID) bool {
	for p := id; p != 0; p = s.w.get(p).parent {
		o := s.w.get(p)
		if o.hidden || !o.visible {
			return false
		}
	}
	return true
}

func (s *Scene) register(id ID) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.members)
	s.members = append(s.members, id)
	if s.Active() && s.w.renderer != nil {
		if h := s.w.get(id).handle; h != nil {
			s.w.renderer.Attach(h)
		}
	}
	return true
}

func (s *Scene) unregister(id ID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	copy(s.members[i:], s.members[i+1:])
	s.members[len(s.members)-1] = 0
	s.members = s.members[:len(s.members)-1]
	delete(s.index, id)
	for j := i; j < len(s.members); j++ {
		s.index[s.members[j]] = j
	}
	if s.Active() && s.w.renderer != nil {
		if h := s.w.get(id).handle; h != nil {
			s.w.renderer.Detach(h)
		}
	}
}

// reresolve recomputes global positions for every attached subtree.
func (s *Scene) reresolve() {
	for _, r := range s.roots {
		s.w.recomputeGlobal(r)
	}
}

// ActiveScene returns the active scene, or nil.
func (w *World) ActiveScene() *Scene {
	return w.active
}

// SetActiveScene makes s the active scene. The previous scene's handles are
// detached from the renderer, s's handles attached, and every position in s
// re-resolved, since viewport extents may have changed while it was
// inactive. A nil s leaves the world without an active scene.
func (w *World) SetActiveScene(s *Scene) {
	if w.active == s {
		return
	}
	if prev := w.active; prev != nil && w.renderer != nil {
		for _, id := range prev.members {
			if h := w.get(id).handle; h != nil {
				w.renderer.Detach(h)
			}
		}
	}
	w.active = s
	w.warnedNoScene = false
	w.pointer = pointerState{}
	if s == nil {
		return
	}
	if w.renderer != nil {
		for _, id := range s.members {
			if h := w.get(id).handle; h != nil {
				w.renderer.Attach(h)
			}
		}
	}
	s.reresolve()
	w.bus.Publish(EventSceneActivated, 0, s)
	s.bus.Publish(EventSceneActivated, 0, s)
}
