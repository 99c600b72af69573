package canopy

import (
	"cmp"
	"math"
	"slices"
)

// LayoutConfig configures a Layout.
type LayoutConfig struct {
	Orientation Orientation
	// Margin separates the children from the layout's edges on every side.
	Margin float64
	// Spacing separates consecutive children along the stacking axis.
	Spacing float64
}

type layoutState struct {
	cfg LayoutConfig

	// skipFit is set just before the parent layout moves this layout and
	// consumed by the next run of this layout's own re-fit pipeline.
	skipFit   bool
	arranging bool

	self *Listener // own position changes
	tree *Listener // descendant additions and removals
}

type expanderState struct {
	header   ID
	content  ID
	expanded bool
}

// positionEpsilon absorbs float noise when comparing placements.
const positionEpsilon = 1e-9

// NewLayout creates a detached layout. Children added to it are stacked
// along cfg.Orientation and the layout sizes itself to fit them.
func (w *World) NewLayout(label string, cfg LayoutConfig) ID {
	id := w.alloc(label, ShapeDescriptor{Kind: ShapeNone}, 0, 0)
	w.initLayout(id, cfg)
	return id
}

func (w *World) initLayout(id ID, cfg LayoutConfig) {
	o := w.get(id)
	ls := &layoutState{cfg: cfg}
	o.layout = ls

	ls.self = NewListener(func(Event) {
		st := w.get(id).layout
		if st.skipFit {
			st.skipFit = false
			return
		}
		w.requestArrange(id)
	})
	ls.tree = NewListener(func(Event) { w.requestArrange(id) })

	o.bus.Subscribe(EventPositionChanged, ls.self, nil)
	o.bus.Subscribe(EventDescendantAdded, ls.tree, nil)
	o.bus.Subscribe(EventDescendantRemoved, ls.tree, nil)

	w.FitToChildren(id)
}

// IsLayout reports whether id has the layout capability.
func (w *World) IsLayout(id ID) bool {
	return w.get(id).layout != nil
}

// LayoutConfig returns id's layout configuration.
func (w *World) LayoutConfig(id ID) LayoutConfig {
	return w.mustLayout(id).cfg
}

// SetLayoutConfig replaces id's layout configuration and re-arranges it.
func (w *World) SetLayoutConfig(id ID, cfg LayoutConfig) {
	w.mustLayout(id).cfg = cfg
	w.requestArrange(id)
}

func (w *World) mustLayout(id ID) *layoutState {
	ls := w.get(id).layout
	if ls == nil {
		panic("canopy: object is not a layout")
	}
	return ls
}

// relayoutAncestor asks the nearest layout above id to re-flow after id
// moved, resized or changed visibility. Layouts further up follow through
// that layout's own resize.
func (w *World) relayoutAncestor(id ID) {
	if !w.Alive(id) {
		return
	}
	for p := w.get(id).parent; p != 0; p = w.get(p).parent {
		if w.get(p).layout != nil {
			w.requestArrange(p)
			return
		}
	}
}

// requestArrange arranges id now, or queues it when layout is deferred.
func (w *World) requestArrange(id ID) {
	if !w.Alive(id) {
		return
	}
	ls := w.get(id).layout
	if ls == nil || ls.arranging {
		return
	}
	if w.layoutDefer > 0 {
		if _, ok := w.dirtySet[id]; !ok {
			w.dirtySet[id] = struct{}{}
			w.dirtyLayouts = append(w.dirtyLayouts, id)
		}
		return
	}
	w.Arrange(id)
}

// ResolveLayout arranges every queued layout, deepest first, repeating until
// no arrangement queues another. Gives up with a warning after
// Config.MaxLayoutPasses sweeps.
func (w *World) ResolveLayout() {
	w.layoutDefer++
	defer func() { w.layoutDefer-- }()

	for pass := 0; len(w.dirtyLayouts) > 0; pass++ {
		if pass >= w.cfg.MaxLayoutPasses {
			w.log.Warn("layout did not settle", "passes", pass, "pending", len(w.dirtyLayouts))
			w.dirtyLayouts = nil
			clear(w.dirtySet)
			return
		}
		batch := w.dirtyLayouts
		w.dirtyLayouts = nil
		clear(w.dirtySet)

		batch = slices.DeleteFunc(batch, func(id ID) bool { return !w.Alive(id) })
		depth := make(map[ID]int, len(batch))
		for _, id := range batch {
			depth[id] = w.depth(id)
		}
		slices.SortStableFunc(batch, func(a, b ID) int { return cmp.Compare(depth[b], depth[a]) })
		for _, id := range batch {
			if w.Alive(id) {
				w.Arrange(id)
			}
		}
	}
}

func (w *World) depth(id ID) int {
	d := 0
	for p := w.get(id).parent; p != 0; p = w.get(p).parent {
		d++
	}
	return d
}

type layoutItem struct {
	id     ID
	bounds Rect
	extent float64
}

// Arrange stacks id's visible children along its orientation and then fits
// id to them. Each child is placed by the leading edge of its total bounds,
// so nested layouts and containers are measured with their whole subtree.
// Invisible children are taken out of the flow.
func (w *World) Arrange(id ID) {
	o := w.get(id)
	ls := w.mustLayout(id)
	ls.arranging = true
	defer func() { ls.arranging = false }()

	cfg := ls.cfg
	var items []layoutItem
	content := 0.0
	for _, c := range o.children {
		co := w.get(c)
		if !co.visible || co.hidden {
			continue
		}
		r := w.TotalBoundingRect(c, false)
		ext := r.Width
		if cfg.Orientation.vertical() {
			ext = r.Height
		}
		items = append(items, layoutItem{id: c, bounds: r, extent: ext})
		content += ext
	}
	if len(items) > 1 {
		content += cfg.Spacing * float64(len(items)-1)
	}

	cursor := 0.0
	for _, it := range items {
		var lead Vec2
		switch cfg.Orientation {
		case UpFromBottom:
			lead = Vec2{cfg.Margin, cfg.Margin + cursor}
		case DownFromTop:
			lead = Vec2{cfg.Margin, cfg.Margin + content - cursor - it.extent}
		case RightFromLeft:
			lead = Vec2{cfg.Margin + cursor, cfg.Margin}
		case LeftFromRight:
			lead = Vec2{cfg.Margin + content - cursor - it.extent, cfg.Margin}
		}
		g := w.get(it.id).global
		inset := Vec2{it.bounds.X - g.X, it.bounds.Y - g.Y}
		target := lead.Sub(inset)
		if !nearlyEqual(w.Position(it.id), target) {
			if cl := w.get(it.id).layout; cl != nil {
				cl.skipFit = true
			}
			w.SetPosition(it.id, target)
		}
		cursor += it.extent + cfg.Spacing
	}

	w.FitToChildren(id)
}

// FitToChildren sizes id to the union of its visible children's total
// bounds plus the margin. With no visible children the layout is just its
// margins.
func (w *World) FitToChildren(id ID) {
	o := w.get(id)
	ls := w.mustLayout(id)
	margin := ls.cfg.Margin

	var union Rect
	have := false
	for _, c := range o.children {
		co := w.get(c)
		if !co.visible || co.hidden {
			continue
		}
		r := w.TotalBoundingRect(c, false)
		if have {
			union = union.Union(r)
		} else {
			union, have = r, true
		}
	}
	if !have {
		w.SetSize(id, 2*margin, 2*margin)
		return
	}
	w.SetSize(id, union.MaxX()-o.global.X+margin, union.MaxY()-o.global.Y+margin)
}

func nearlyEqual(a, b Vec2) bool {
	return math.Abs(a.X-b.X) <= positionEpsilon && math.Abs(a.Y-b.Y) <= positionEpsilon
}

// --- LayoutExpander ---

// NewLayoutExpander creates a layout holding header and content, in that
// order, where content is shown only while the expander is expanded. The
// expander starts collapsed. Clicking an interactive header toggles it.
func (w *World) NewLayoutExpander(label string, cfg LayoutConfig, header, content ID) ID {
	id := w.NewLayout(label, cfg)
	o := w.get(id)
	o.expander = &expanderState{header: header, content: content}
	w.Batch(func() {
		w.AddChild(id, header)
		w.AddChild(id, content)
		w.SetVisible(content, false)
	})
	h := w.get(header)
	h.bus.Subscribe(EventClick, NewListener(func(Event) { w.Toggle(id) }), &o.bus)
	return id
}

// Expanded reports whether the expander id shows its content.
func (w *World) Expanded(id ID) bool {
	return w.mustExpander(id).expanded
}

// SetExpanded shows or hides the expander's content. The content is
// visible only when the expander itself is visible and expanded.
func (w *World) SetExpanded(id ID, expanded bool) {
	e := w.mustExpander(id)
	if e.expanded == expanded {
		return
	}
	e.expanded = expanded
	if w.Alive(e.content) && w.Parent(e.content) == id {
		w.SetVisible(e.content, w.get(id).visible && expanded)
	}
	w.get(id).bus.Publish(EventToggled, id, expanded)
}

// Toggle flips the expander's expanded state.
func (w *World) Toggle(id ID) {
	w.SetExpanded(id, !w.Expanded(id))
}

// ExpanderContent returns the content layout toggled by the expander id.
func (w *World) ExpanderContent(id ID) ID {
	return w.mustExpander(id).content
}

func (w *World) mustExpander(id ID) *expanderState {
	e := w.get(id).expander
	if e == nil {
		panic("canopy: object is not a layout expander")
	}
	return e
}
