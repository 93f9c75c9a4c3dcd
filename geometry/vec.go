// Package geometry implements the Monte Carlo geometry model: analytic
// shapes, the volume tree and its declarative definition, containment
// checks and surface sampling parametrizations.
package geometry

import "math"

// Point represent a position in 3D space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec3D represent a 3D vector.
type Vec3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the translation of p by v.
func (p Point) Add(v Vec3D) Point {
	return Point{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vec3D {
	return Vec3D{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Vec returns p as a vector from the origin.
func (p Point) Vec() Vec3D {
	return Vec3D(p)
}

// Scale returns v scaled by s.
func (v Vec3D) Scale(s float64) Vec3D {
	return Vec3D{v.X * s, v.Y * s, v.Z * s}
}

// Add returns the sum of v and w.
func (v Vec3D) Add(w Vec3D) Vec3D {
	return Vec3D{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Dot returns the scalar product of v and w.
func (v Vec3D) Dot(w Vec3D) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the vector product of v and w.
func (v Vec3D) Cross(w Vec3D) Vec3D {
	return Vec3D{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Norm returns the Euclidean length of v.
func (v Vec3D) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns v normalized to unit length. The zero vector is returned
// unchanged.
func (v Vec3D) Unit() Vec3D {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Rotation is a 3x3 rotation matrix acting on column vectors.
type Rotation [3][3]float64

// EulerRotation builds a rotation from intrinsic x, y, z angles in degrees,
// applied in that order.
func EulerRotation(angles [3]float64) Rotation {
	toRad := math.Pi / 180
	cx, sx := math.Cos(angles[0]*toRad), math.Sin(angles[0]*toRad)
	cy, sy := math.Cos(angles[1]*toRad), math.Sin(angles[1]*toRad)
	cz, sz := math.Cos(angles[2]*toRad), math.Sin(angles[2]*toRad)

	rx := Rotation{{1, 0, 0}, {0, cx, -sx}, {0, sx, cx}}
	ry := Rotation{{cy, 0, sy}, {0, 1, 0}, {-sy, 0, cy}}
	rz := Rotation{{cz, -sz, 0}, {sz, cz, 0}, {0, 0, 1}}
	return rz.Mul(ry).Mul(rx)
}

// Mul returns the matrix product r * s.
func (r Rotation) Mul(s Rotation) Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += r[i][k] * s[k][j]
			}
		}
	}
	return out
}

// Apply rotates v.
func (r Rotation) Apply(v Vec3D) Vec3D {
	return Vec3D{
		r[0][0]*v.X + r[0][1]*v.Y + r[0][2]*v.Z,
		r[1][0]*v.X + r[1][1]*v.Y + r[1][2]*v.Z,
		r[2][0]*v.X + r[2][1]*v.Y + r[2][2]*v.Z,
	}
}

// ApplyInverse rotates v by the transposed matrix.
func (r Rotation) ApplyInverse(v Vec3D) Vec3D {
	return Vec3D{
		r[0][0]*v.X + r[1][0]*v.Y + r[2][0]*v.Z,
		r[0][1]*v.X + r[1][1]*v.Y + r[2][1]*v.Z,
		r[0][2]*v.X + r[1][2]*v.Y + r[2][2]*v.Z,
	}
}

// Transform is a rigid placement: a rotation followed by a translation.
type Transform struct {
	Translation Vec3D
	Rotation    *Rotation
}

// ToParent maps a point from the local frame to the parent frame.
func (t Transform) ToParent(p Point) Point {
	v := p.Vec()
	if t.Rotation != nil {
		v = t.Rotation.Apply(v)
	}
	return Point(v.Add(t.Translation))
}

// ToLocal maps a point from the parent frame to the local frame.
func (t Transform) ToLocal(p Point) Point {
	v := p.Vec().Add(t.Translation.Scale(-1))
	if t.Rotation != nil {
		v = t.Rotation.ApplyInverse(v)
	}
	return Point(v)
}

// RotateToParent maps a direction from the local frame to the parent frame.
func (t Transform) RotateToParent(v Vec3D) Vec3D {
	if t.Rotation == nil {
		return v
	}
	return t.Rotation.Apply(v)
}

// Compose chains a child placement onto t, yielding the child to
// grand-parent transform.
func (t Transform) Compose(child Transform) Transform {
	out := Transform{
		Translation: t.RotateToParent(child.Translation).Add(t.Translation),
	}
	switch {
	case t.Rotation == nil:
		out.Rotation = child.Rotation
	case child.Rotation == nil:
		out.Rotation = t.Rotation
	default:
		r := t.Rotation.Mul(*child.Rotation)
		out.Rotation = &r
	}
	return out
}
