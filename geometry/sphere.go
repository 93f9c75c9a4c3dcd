package geometry

import (
	"math"

	"github.com/yaptide/geomc/random"
)

// Sphere is a ball, or a spherical shell when InnerRadius is non-zero.
type Sphere struct {
	Radius      float64
	InnerRadius float64
	Center      Point
}

// NewSphere returns a full sphere of the given radius, centered on the
// origin.
func NewSphere(radius float64) *Sphere {
	return &Sphere{Radius: radius}
}

// Type implements Shape.
func (s *Sphere) Type() string { return "sphere" }

// Origin implements Shape.
func (s *Sphere) Origin() Point { return s.Center }

// AABB implements Shape.
func (s *Sphere) AABB() AABB {
	e := Vec3D{s.Radius, s.Radius, s.Radius}
	return AABB{
		Min: s.Center.Add(e.Scale(-1)),
		Max: s.Center.Add(e),
	}
}

// SurfaceArea implements Shape. A shell exposes both the outer and the
// inner sphere.
func (s *Sphere) SurfaceArea() float64 {
	return 4 * math.Pi * (s.Radius*s.Radius + s.InnerRadius*s.InnerRadius)
}

// CubicVolume implements Shape.
func (s *Sphere) CubicVolume() float64 {
	return 4. / 3. * math.Pi * (math.Pow(s.Radius, 3) - math.Pow(s.InnerRadius, 3))
}

// Side implements Shape.
func (s *Sphere) Side(p Point) int {
	rho := p.Sub(s.Center).Norm()
	d := rho - s.Radius
	if s.InnerRadius > 0 {
		d = math.Max(d, s.InnerRadius-rho)
	}
	return sideFromDistance(d)
}

// SampleSurface implements Shape.
func (s *Sphere) SampleSurface(rng *random.Engine) (Point, Vec3D) {
	outer := s.Radius * s.Radius
	inner := s.InnerRadius * s.InnerRadius

	onOuter := true
	if inner > 0 {
		onOuter = rng.Uniform01()*(outer+inner) < outer
	}

	cosTheta := 2*rng.Uniform01() - 1
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
	phi := 2 * math.Pi * rng.Uniform01()
	dir := Vec3D{sinTheta * math.Cos(phi), sinTheta * math.Sin(phi), cosTheta}

	if onOuter {
		return s.Center.Add(dir.Scale(s.Radius)), dir
	}
	return s.Center.Add(dir.Scale(s.InnerRadius)), dir.Scale(-1)
}
