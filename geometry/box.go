package geometry

import (
	"math"

	"github.com/yaptide/geomc/random"
)

// Box is a rectangular cuboid. Center is non-zero only for envelope boxes
// fitted around asymmetrically padded daughters.
type Box struct {
	HalfExtent Vec3D
	Center     Point
}

// NewBox returns a box with the given half sizes, centered on the origin.
func NewBox(halfExtent Vec3D) *Box {
	return &Box{HalfExtent: halfExtent}
}

// Type implements Shape.
func (b *Box) Type() string { return "box" }

// Origin implements Shape.
func (b *Box) Origin() Point { return b.Center }

// AABB implements Shape.
func (b *Box) AABB() AABB {
	return AABB{
		Min: b.Center.Add(b.HalfExtent.Scale(-1)),
		Max: b.Center.Add(b.HalfExtent),
	}
}

// SurfaceArea implements Shape.
func (b *Box) SurfaceArea() float64 {
	e := b.HalfExtent
	return 8 * (e.X*e.Y + e.X*e.Z + e.Y*e.Z)
}

// CubicVolume implements Shape.
func (b *Box) CubicVolume() float64 {
	e := b.HalfExtent
	return 8 * e.X * e.Y * e.Z
}

// Side implements Shape.
func (b *Box) Side(p Point) int {
	v := p.Sub(b.Center)
	d := math.Abs(v.X) - b.HalfExtent.X
	d = math.Max(d, math.Abs(v.Y)-b.HalfExtent.Y)
	d = math.Max(d, math.Abs(v.Z)-b.HalfExtent.Z)
	return sideFromDistance(d)
}

// SampleSurface implements Shape. A face is drawn proportionally to its
// area, then a point uniformly within the face.
func (b *Box) SampleSurface(rng *random.Engine) (Point, Vec3D) {
	e := b.HalfExtent
	faces := [3]float64{4 * e.Y * e.Z, 4 * e.X * e.Z, 4 * e.X * e.Y}
	total := 2 * (faces[0] + faces[1] + faces[2])

	target := rng.Uniform01() * total
	axis, sign := 0, 1.0
	for i, area := range faces {
		if target < area {
			axis, sign = i, 1.0
			break
		}
		target -= area
		if target < area {
			axis, sign = i, -1.0
			break
		}
		target -= area
	}

	u := 2*rng.Uniform01() - 1
	v := 2*rng.Uniform01() - 1
	var local Vec3D
	var normal Vec3D
	switch axis {
	case 0:
		local = Vec3D{sign * e.X, u * e.Y, v * e.Z}
		normal = Vec3D{sign, 0, 0}
	case 1:
		local = Vec3D{u * e.X, sign * e.Y, v * e.Z}
		normal = Vec3D{0, sign, 0}
	default:
		local = Vec3D{u * e.X, v * e.Y, sign * e.Z}
		normal = Vec3D{0, 0, sign}
	}
	return b.Center.Add(local), normal
}
