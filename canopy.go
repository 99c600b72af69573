package canopy

import "math"

// Vec2 is a 2D vector used for positions, offsets, sizes, velocities and
// anchor fractions throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default shape color.
var ColorWhite = Color{1, 1, 1, 1}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the bottom-left, with Y increasing upward; (X, Y) is the bottom-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the top edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 { return Vec2{r.X + r.Width/2, r.Y + r.Height/2} }

// IsEmpty reports whether r has no area and sits at the origin, the value
// used for "no bounds yet" during unions.
func (r Rect) IsEmpty() bool { return r == Rect{} }

// Contains reports whether the point p lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.MaxX(), o.MaxX())
	maxY := math.Max(r.MaxY(), o.MaxY())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// PositionMode selects how an object's global position is derived.
type PositionMode uint8

const (
	PositionRelative PositionMode = iota // offset from the parent's global position
	PositionAbsolute                     // anchored to the viewport, ignores ancestors
)

// Orientation is the axis and direction a Layout stacks its children along.
type Orientation uint8

const (
	DownFromTop   Orientation = iota // first child at the top, stacking downward
	UpFromBottom                     // first child at the bottom, stacking upward
	LeftFromRight                    // first child at the right, stacking leftward
	RightFromLeft                    // first child at the left, stacking rightward
)

// vertical reports whether the orientation stacks along the Y axis.
func (o Orientation) vertical() bool {
	return o == DownFromTop || o == UpFromBottom
}

// ShapeKind distinguishes what a renderer handle draws.
type ShapeKind uint8

const (
	ShapeNone   ShapeKind = iota // group with no visual output
	ShapeRect                    // filled rectangle covering width x height
	ShapeCircle                  // filled circle inscribed in width x height
	ShapeText                    // text content from the object's TextBlock
)

// ShapeDescriptor is what the renderer receives when creating a handle.
type ShapeDescriptor struct {
	Kind  ShapeKind
	Color Color
	Text  string
}

// IterResult controls IterateDescendants after each visited node.
type IterResult uint8

const (
	IterContinue     IterResult = iota // keep walking
	IterSkipChildren                   // do not descend into this node's children
	IterStop                           // end the traversal
)

// RemoveMode selects what RemoveChild does with the detached subtree.
type RemoveMode uint8

const (
	RemoveDestroy     RemoveMode = iota // destroy the child and all descendants
	RemoveDestroySelf                   // destroy the child, keep descendants alive as roots
	RemoveDetach                        // keep the child and its subtree alive
)
