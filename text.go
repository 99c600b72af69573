package canopy

// glyphAspect approximates glyph advance as a fraction of the font size
// for the fixed-width debug font hosts draw with.
const glyphAspect = 0.6

// TextBlock is the text capability of an object.
type TextBlock struct {
	Content string
	Size    float64
	Color   Color
}

// measure returns the box a single line of content occupies.
func (t *TextBlock) measure() Vec2 {
	return Vec2{float64(len([]rune(t.Content))) * t.Size * glyphAspect, t.Size}
}

// NewText creates a detached text object sized to its content.
func (w *World) NewText(label, content string, size float64, c Color) ID {
	tb := &TextBlock{Content: content, Size: size, Color: c}
	m := tb.measure()
	id := w.alloc(label, ShapeDescriptor{Kind: ShapeText, Color: c, Text: content}, m.X, m.Y)
	w.get(id).text = tb
	return id
}

// Text returns id's text content. Panics if id has no text capability.
func (w *World) Text(id ID) string {
	return w.mustText(id).Content
}

// SetText replaces id's content and resizes it to fit, which re-flows any
// layout holding it.
func (w *World) SetText(id ID, content string) {
	tb := w.mustText(id)
	if tb.Content == content {
		return
	}
	tb.Content = content
	o := w.get(id)
	o.shape.Text = content
	if o.handle != nil {
		o.handle.SetText(content)
	}
	m := tb.measure()
	w.SetSize(id, m.X, m.Y)
}

func (w *World) mustText(id ID) *TextBlock {
	tb := w.get(id).text
	if tb == nil {
		panic("canopy: object has no text")
	}
	return tb
}

// ButtonConfig configures NewButton.
type ButtonConfig struct {
	Text       string
	TextSize   float64
	TextColor  Color
	Background Color
	Padding    float64
	// OnClick runs when the button is clicked. May be nil.
	OnClick func()
}

// NewButton creates an interactive rectangle with a centered text label as
// its child (labelled "text"). The button is sized to the label plus padding.
func (w *World) NewButton(label string, cfg ButtonConfig) ID {
	txt := w.NewText("text", cfg.Text, cfg.TextSize, cfg.TextColor)
	m := w.Size(txt)
	id := w.NewRect(label, m.X+2*cfg.Padding, m.Y+2*cfg.Padding, cfg.Background)
	w.SetAnchor(txt, Anchor{Offset: m.Scale(-0.5), Fraction: Vec2{0.5, 0.5}})
	w.AddChild(id, txt)
	w.SetInteractive(id, true)

	pad := cfg.Padding
	resize := NewListener(func(Event) {
		s := w.Size(txt)
		w.SetAnchor(txt, Anchor{Offset: s.Scale(-0.5), Fraction: Vec2{0.5, 0.5}})
		w.SetSize(id, s.X+2*pad, s.Y+2*pad)
	})
	w.Events(txt).Subscribe(EventSizeChanged, resize, w.Events(id))

	if cfg.OnClick != nil {
		fn := cfg.OnClick
		w.Events(id).Subscribe(EventClick, NewListener(func(Event) { fn() }), nil)
	}
	return id
}

// SetButtonText replaces a button's label; the button resizes to fit.
func (w *World) SetButtonText(id ID, content string) {
	txt, ok := w.ChildByLabel(id, "text")
	if !ok {
		panic("canopy: object is not a button")
	}
	w.SetText(txt, content)
}
