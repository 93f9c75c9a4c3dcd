package geometry

import (
	"github.com/yaptide/geomc/mesh"
	"github.com/yaptide/geomc/random"
)

// MeshShape is a tessellated solid backed by a registry payload.
type MeshShape struct {
	Mesh       *mesh.Mesh
	SourcePath string
	UnitScale  float64
}

// Type implements Shape.
func (m *MeshShape) Type() string { return "mesh" }

// Origin implements Shape. Mesh coordinates are used as-is, so the origin
// is the bounding box center.
func (m *MeshShape) Origin() Point { return m.AABB().Center() }

// AABB implements Shape.
func (m *MeshShape) AABB() AABB {
	min, max := m.Mesh.Bounds()
	return AABB{
		Min: Point{min[0], min[1], min[2]},
		Max: Point{max[0], max[1], max[2]},
	}
}

// SurfaceArea implements Shape.
func (m *MeshShape) SurfaceArea() float64 { return m.Mesh.Area() }

// CubicVolume implements Shape. The estimate is exact for watertight
// meshes (divergence theorem over the facets).
func (m *MeshShape) CubicVolume() float64 { return m.Mesh.Volume() }

// Side implements Shape.
func (m *MeshShape) Side(p Point) int {
	return m.Mesh.Side([3]float64{p.X, p.Y, p.Z}, BoundaryEps)
}

// SampleSurface implements Shape. A facet is drawn proportionally to its
// area, then a point uniformly within the facet.
func (m *MeshShape) SampleSurface(rng *random.Engine) (Point, Vec3D) {
	i := m.Mesh.SampleIndex(rng.Uniform01())
	p, n := m.Mesh.SamplePoint(i, rng.Uniform01(), rng.Uniform01())
	return Point{p[0], p[1], p[2]}, Vec3D{n[0], n[1], n[2]}
}
