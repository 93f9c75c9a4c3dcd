package geometry

import (
	"github.com/yaptide/geomc/random"
)

// Side classification returned by Shape.Side.
const (
	SideInside  = 1
	SideSurface = 0
	SideOutside = -1
)

// BoundaryEps is the absolute boundary tolerance, in cm. Points closer than
// this to a shape boundary classify as SideSurface.
const BoundaryEps = 1e-7

// Shape is the closed set of solids a volume can take. Coordinates are
// local to the owning volume.
type Shape interface {
	// Type returns the shape keyword used in geometry definitions.
	Type() string
	// AABB returns the shape bounding box in the local frame.
	AABB() AABB
	// Origin returns the shape center in the local frame.
	Origin() Point
	// SurfaceArea returns the total boundary area, inner walls included.
	SurfaceArea() float64
	// CubicVolume returns the enclosed volume, bore excluded.
	CubicVolume() float64
	// Side classifies p as SideInside, SideSurface or SideOutside.
	Side(p Point) int
	// SampleSurface draws a point uniformly weighted by local area on the
	// shape boundary, with the outward unit normal at that point.
	SampleSurface(rng *random.Engine) (Point, Vec3D)
}

// sideFromDistance folds a signed boundary distance into a side
// classification. Negative distances are interior.
func sideFromDistance(d float64) int {
	switch {
	case d > BoundaryEps:
		return SideOutside
	case d < -BoundaryEps:
		return SideInside
	default:
		return SideSurface
	}
}
