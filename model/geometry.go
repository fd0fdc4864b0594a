package model

import "math"

// BBox represents a rectangle in page coordinate units. The coordinate
// system is top-down: Top is the distance from the top edge of the page,
// so Top <= Bottom and Left <= Right for a valid box.
type BBox struct {
	Left   float64 `json:"l"`
	Top    float64 `json:"t"`
	Right  float64 `json:"r"`
	Bottom float64 `json:"b"`
}

// NewBBox creates a bounding box from coordinates.
func NewBBox(left, top, right, bottom float64) BBox {
	return BBox{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Bottom - b.Top
}

// VerticalMidpoint returns the Y coordinate halfway between Top and Bottom.
func (b BBox) VerticalMidpoint() float64 {
	return (b.Top + b.Bottom) / 2
}

// Union returns the smallest box containing both b and other.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		Left:   math.Min(b.Left, other.Left),
		Top:    math.Min(b.Top, other.Top),
		Right:  math.Max(b.Right, other.Right),
		Bottom: math.Max(b.Bottom, other.Bottom),
	}
}

// Intersects checks if two boxes overlap.
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right < other.Left ||
		b.Left > other.Right ||
		b.Bottom < other.Top ||
		b.Top > other.Bottom)
}

// OverlapsHorizontally checks if the horizontal extents of two boxes overlap.
func (b BBox) OverlapsHorizontally(other BBox) bool {
	return b.Right > other.Left && b.Left < other.Right
}

// ContainsY reports whether the Y coordinate lies within the vertical
// extent of the box.
func (b BBox) ContainsY(y float64) bool {
	return y >= b.Top && y <= b.Bottom
}

// Expand grows the box by a margin on all sides.
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		Left:   b.Left - margin,
		Top:    b.Top - margin,
		Right:  b.Right + margin,
		Bottom: b.Bottom + margin,
	}
}

// IsValid returns true if the box satisfies Left <= Right and Top <= Bottom.
func (b BBox) IsValid() bool {
	return b.Left <= b.Right && b.Top <= b.Bottom
}

// UnionBoxes returns the union of a set of boxes. The zero box is returned
// for an empty input.
func UnionBoxes(boxes []BBox) BBox {
	if len(boxes) == 0 {
		return BBox{}
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		out = out.Union(b)
	}
	return out
}
