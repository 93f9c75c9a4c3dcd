package geometry

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// EmptyAABB returns a degenerate box suitable as a union identity.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: Point{inf, inf, inf},
		Max: Point{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box encloses no point.
func (b AABB) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Center returns the box center.
func (b AABB) Center() Point {
	return Point{
		(b.Min.X + b.Max.X) / 2,
		(b.Min.Y + b.Max.Y) / 2,
		(b.Min.Z + b.Max.Z) / 2,
	}
}

// HalfExtent returns the box half sizes.
func (b AABB) HalfExtent() Vec3D {
	return Vec3D{
		(b.Max.X - b.Min.X) / 2,
		(b.Max.Y - b.Min.Y) / 2,
		(b.Max.Z - b.Min.Z) / 2,
	}
}

// Union returns the smallest box enclosing b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: Point{
			math.Min(b.Min.X, o.Min.X),
			math.Min(b.Min.Y, o.Min.Y),
			math.Min(b.Min.Z, o.Min.Z),
		},
		Max: Point{
			math.Max(b.Max.X, o.Max.X),
			math.Max(b.Max.Y, o.Max.Y),
			math.Max(b.Max.Z, o.Max.Z),
		},
	}
}

// Extend returns the smallest box enclosing b and p.
func (b AABB) Extend(p Point) AABB {
	return b.Union(AABB{Min: p, Max: p})
}

// Corners returns the eight box vertices.
func (b AABB) Corners() [8]Point {
	var out [8]Point
	for i := 0; i < 8; i++ {
		p := b.Min
		if i&1 != 0 {
			p.X = b.Max.X
		}
		if i&2 != 0 {
			p.Y = b.Max.Y
		}
		if i&4 != 0 {
			p.Z = b.Max.Z
		}
		out[i] = p
	}
	return out
}

// TransformedBy returns the axis-aligned box enclosing b after the given
// rigid placement.
func (b AABB) TransformedBy(t Transform) AABB {
	out := EmptyAABB()
	for _, corner := range b.Corners() {
		out = out.Extend(t.ToParent(corner))
	}
	return out
}
