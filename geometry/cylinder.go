package geometry

import (
	"math"

	"github.com/yaptide/geomc/random"
)

// Cylinder is a z-aligned cylinder, optionally with a coaxial bore.
type Cylinder struct {
	Radius      float64
	HalfLength  float64
	InnerRadius float64
	Center      Point
}

// NewCylinder returns a full cylinder of the given outer radius and half
// length, centered on the origin.
func NewCylinder(radius, halfLength float64) *Cylinder {
	return &Cylinder{Radius: radius, HalfLength: halfLength}
}

// Type implements Shape.
func (c *Cylinder) Type() string { return "cylinder" }

// Origin implements Shape.
func (c *Cylinder) Origin() Point { return c.Center }

// AABB implements Shape.
func (c *Cylinder) AABB() AABB {
	e := Vec3D{c.Radius, c.Radius, c.HalfLength}
	return AABB{
		Min: c.Center.Add(e.Scale(-1)),
		Max: c.Center.Add(e),
	}
}

// SurfaceArea implements Shape. For a hollow cylinder the inner wall and
// the annular caps contribute.
func (c *Cylinder) SurfaceArea() float64 {
	outer := 4 * math.Pi * c.Radius * c.HalfLength
	caps := 2 * math.Pi * (c.Radius*c.Radius - c.InnerRadius*c.InnerRadius)
	inner := 4 * math.Pi * c.InnerRadius * c.HalfLength
	return outer + caps + inner
}

// CubicVolume implements Shape.
func (c *Cylinder) CubicVolume() float64 {
	return 2 * c.HalfLength * math.Pi * (c.Radius*c.Radius - c.InnerRadius*c.InnerRadius)
}

// Side implements Shape.
func (c *Cylinder) Side(p Point) int {
	v := p.Sub(c.Center)
	r := math.Hypot(v.X, v.Y)
	d := r - c.Radius
	if c.InnerRadius > 0 {
		d = math.Max(d, c.InnerRadius-r)
	}
	d = math.Max(d, math.Abs(v.Z)-c.HalfLength)
	return sideFromDistance(d)
}

// SampleSurface implements Shape.
func (c *Cylinder) SampleSurface(rng *random.Engine) (Point, Vec3D) {
	outer := 4 * math.Pi * c.Radius * c.HalfLength
	capArea := math.Pi * (c.Radius*c.Radius - c.InnerRadius*c.InnerRadius)
	inner := 4 * math.Pi * c.InnerRadius * c.HalfLength

	target := rng.Uniform01() * (outer + 2*capArea + inner)
	phi := 2 * math.Pi * rng.Uniform01()
	u := rng.Uniform01()

	var local Vec3D
	var normal Vec3D
	switch {
	case target < outer:
		local = Vec3D{
			c.Radius * math.Cos(phi),
			c.Radius * math.Sin(phi),
			(2*u - 1) * c.HalfLength,
		}
		normal = Vec3D{math.Cos(phi), math.Sin(phi), 0}
	case target < outer+2*capArea:
		sign := 1.0
		if target >= outer+capArea {
			sign = -1.0
		}
		// Uniform over the annulus.
		r := math.Sqrt(c.InnerRadius*c.InnerRadius + u*(c.Radius*c.Radius-c.InnerRadius*c.InnerRadius))
		local = Vec3D{r * math.Cos(phi), r * math.Sin(phi), sign * c.HalfLength}
		normal = Vec3D{0, 0, sign}
	default:
		local = Vec3D{
			c.InnerRadius * math.Cos(phi),
			c.InnerRadius * math.Sin(phi),
			(2*u - 1) * c.HalfLength,
		}
		// Outward from the solid is toward the axis on the bore wall.
		normal = Vec3D{-math.Cos(phi), -math.Sin(phi), 0}
	}
	return c.Center.Add(local), normal
}
