// Package ebitenhost runs a canopy World on Ebitengine: it provides the
// Renderer that draws object handles, a Game that ticks the world once per
// ebiten Update, and mouse input translated into world units.
package ebitenhost

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/canopy"
)

// Handle is the ebiten-side state of one canopy object.
type Handle struct {
	desc      canopy.ShapeDescriptor
	width     float64
	height    float64
	pos       canopy.Vec2
	rotation  float64
	pivot     canopy.Vec2
	alpha     float64
	visible   bool
	zOrder    int
	destroyed bool
	attached  bool
}

func (h *Handle) Width() float64            { return h.width }
func (h *Handle) SetWidth(v float64)        { h.width = v }
func (h *Handle) Height() float64           { return h.height }
func (h *Handle) SetHeight(v float64)       { h.height = v }
func (h *Handle) Position() canopy.Vec2     { return h.pos }
func (h *Handle) SetPosition(p canopy.Vec2) { h.pos = p }
func (h *Handle) Rotation() float64         { return h.rotation }
func (h *Handle) SetRotation(r float64)     { h.rotation = r }
func (h *Handle) Pivot() canopy.Vec2        { return h.pivot }
func (h *Handle) SetPivot(p canopy.Vec2)    { h.pivot = p }
func (h *Handle) Alpha() float64            { return h.alpha }
func (h *Handle) SetAlpha(a float64)        { h.alpha = a }
func (h *Handle) Visible() bool             { return h.visible }
func (h *Handle) SetVisible(v bool)         { h.visible = v }
func (h *Handle) ZOrder() int               { return h.zOrder }
func (h *Handle) SetZOrder(z int)           { h.zOrder = z }
func (h *Handle) SetText(s string)          { h.desc.Text = s }

// Text returns the handle's current text content.
func (h *Handle) Text() string { return h.desc.Text }

// Destroy marks the handle dead; the renderer drops it on the next Draw.
func (h *Handle) Destroy() { h.destroyed = true }

// Renderer draws attached handles onto an ebiten image, lowest ZOrder first.
// Handles with equal ZOrder draw in attach order.
type Renderer struct {
	handles []*Handle
	drawBuf []*Handle
	white   *ebiten.Image
	verts   []ebiten.Vertex
}

// NewRenderer creates an empty renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// CreateHandle implements canopy.Renderer.
func (r *Renderer) CreateHandle(desc canopy.ShapeDescriptor) canopy.Handle {
	return &Handle{desc: desc, alpha: 1, visible: true}
}

// Attach implements canopy.Renderer.
func (r *Renderer) Attach(ch canopy.Handle) {
	h := ch.(*Handle)
	if h.attached {
		return
	}
	h.attached = true
	r.handles = append(r.handles, h)
}

// Detach implements canopy.Renderer.
func (r *Renderer) Detach(ch canopy.Handle) {
	h := ch.(*Handle)
	if !h.attached {
		return
	}
	h.attached = false
	if i := slices.Index(r.handles, h); i >= 0 {
		r.handles = slices.Delete(r.handles, i, i+1)
	}
}

// Attached returns the handles that will be drawn. The returned slice MUST
// NOT be mutated.
func (r *Renderer) Attached() []*Handle {
	return r.handles
}

// drawOrder returns the live visible handles sorted by ZOrder.
func (r *Renderer) drawOrder() []*Handle {
	r.handles = slices.DeleteFunc(r.handles, func(h *Handle) bool {
		if h.destroyed {
			h.attached = false
		}
		return h.destroyed
	})
	r.drawBuf = r.drawBuf[:0]
	for _, h := range r.handles {
		if h.visible && h.alpha > 0 {
			r.drawBuf = append(r.drawBuf, h)
		}
	}
	slices.SortStableFunc(r.drawBuf, func(a, b *Handle) int { return a.zOrder - b.zOrder })
	return r.drawBuf
}

// Draw renders every visible attached handle onto screen. World y-up
// coordinates are flipped against the screen height.
func (r *Renderer) Draw(screen *ebiten.Image) {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	height := float64(screen.Bounds().Dy())
	for _, h := range r.drawOrder() {
		switch h.desc.Kind {
		case canopy.ShapeRect:
			r.drawRect(screen, h, height)
		case canopy.ShapeCircle:
			cx, cy := ToScreen(h.pos, height)
			radius := float32(math.Min(h.width, h.height) / 2)
			vector.DrawFilledCircle(screen, cx, cy, radius, toRGBA(h.desc.Color, h.alpha), true)
		case canopy.ShapeText:
			x, y := ToScreen(canopy.Vec2{X: h.pos.X, Y: h.pos.Y + h.height}, height)
			ebitenutil.DebugPrintAt(screen, h.desc.Text, int(x), int(y))
		}
	}
}

// drawRect draws a rectangle rotated about its pivot.
func (r *Renderer) drawRect(screen *ebiten.Image, h *Handle, height float64) {
	corners := RectCorners(h.pos, h.width, h.height, h.pivot, h.rotation)
	c := h.desc.Color
	r.verts = r.verts[:0]
	for _, p := range corners {
		x, y := ToScreen(p, height)
		r.verts = append(r.verts, ebiten.Vertex{
			DstX: x, DstY: y,
			SrcX: 1, SrcY: 1,
			ColorR: float32(c.R), ColorG: float32(c.G), ColorB: float32(c.B),
			ColorA: float32(c.A * h.alpha),
		})
	}
	screen.DrawTriangles(r.verts, rectIndices, r.white, nil)
}

var rectIndices = []uint16{0, 1, 2, 0, 2, 3}

// RectCorners returns the world-space corners of a width x height box whose
// bottom-left corner is at pos, rotated by rotation radians about pos+pivot.
// Corners are in counter-clockwise order starting at the bottom-left.
func RectCorners(pos canopy.Vec2, width, height float64, pivot canopy.Vec2, rotation float64) [4]canopy.Vec2 {
	sin, cos := math.Sincos(rotation)
	local := [4]canopy.Vec2{{X: 0, Y: 0}, {X: width, Y: 0}, {X: width, Y: height}, {X: 0, Y: height}}
	var out [4]canopy.Vec2
	for i, p := range local {
		d := p.Sub(pivot)
		out[i] = canopy.Vec2{
			X: pos.X + pivot.X + d.X*cos - d.Y*sin,
			Y: pos.Y + pivot.Y + d.X*sin + d.Y*cos,
		}
	}
	return out
}

// ToScreen converts a y-up world point into y-down screen coordinates.
func ToScreen(p canopy.Vec2, screenHeight float64) (float32, float32) {
	return float32(p.X), float32(screenHeight - p.Y)
}

// FromScreen converts a y-down screen pixel into a y-up world point.
func FromScreen(x, y int, screenHeight float64) canopy.Vec2 {
	return canopy.Vec2{X: float64(x), Y: screenHeight - float64(y)}
}

func toRGBA(c canopy.Color, alpha float64) color.RGBA {
	a := c.A * alpha
	return color.RGBA{
		R: uint8(clamp01(c.R*a) * 255),
		G: uint8(clamp01(c.G*a) * 255),
		B: uint8(clamp01(c.B*a) * 255),
		A: uint8(clamp01(a) * 255),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
