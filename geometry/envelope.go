package geometry

import (
	"encoding/json"
	"fmt"
	"math"
)

// DefaultPadding is the envelope safety margin, in cm, applied when the
// definition does not give one.
const DefaultPadding = 0.01

// Padding is the envelope expansion, per face: -x, +x, -y, +y, -z, +z.
type Padding [6]float64

// UniformPadding returns the same margin on all six faces.
func UniformPadding(p float64) Padding {
	return Padding{p, p, p, p, p, p}
}

// UnmarshalJSON accepts a scalar, a per-axis 3-vector or a per-face
// 6-vector.
func (p *Padding) UnmarshalJSON(b []byte) error {
	var scalar float64
	if err := json.Unmarshal(b, &scalar); err == nil {
		*p = UniformPadding(scalar)
		return nil
	}
	var values []float64
	if err := json.Unmarshal(b, &values); err != nil {
		return fmt.Errorf("expected a scalar or a sequence of floats")
	}
	switch len(values) {
	case 3:
		*p = Padding{values[0], values[0], values[1], values[1], values[2], values[2]}
	case 6:
		copy(p[:], values)
	default:
		return fmt.Errorf("expected 3 or 6 values, found %d", len(values))
	}
	return nil
}

// pad expands an AABB by the per-face margins.
func (p Padding) pad(b AABB) AABB {
	return AABB{
		Min: Point{b.Min.X - p[0], b.Min.Y - p[2], b.Min.Z - p[4]},
		Max: Point{b.Max.X + p[1], b.Max.Y + p[3], b.Max.Z + p[5]},
	}
}

// envelopeSpec is a deferred shape: the actual solid is fitted around the
// daughters once they are known.
type envelopeSpec struct {
	kind    string // box, cylinder or sphere
	padding Padding
}

// fit computes the minimal solid of the requested kind wrapping all
// daughter bounding boxes, expanded by the padding.
func (e envelopeSpec) fit(daughters []*Volume) (Shape, error) {
	bounds := EmptyAABB()
	for _, d := range daughters {
		bounds = bounds.Union(d.shape.AABB().TransformedBy(d.transform))
	}
	if bounds.IsEmpty() {
		// An empty envelope still is a valid solid, padding sized.
		bounds = AABB{}
	}
	bounds = e.padding.pad(bounds)
	center := bounds.Center()

	switch e.kind {
	case "box":
		return &Box{HalfExtent: bounds.HalfExtent(), Center: center}, nil
	case "cylinder":
		var radius float64
		for _, corner := range bounds.Corners() {
			radius = math.Max(radius, math.Hypot(corner.X-center.X, corner.Y-center.Y))
		}
		return &Cylinder{
			Radius:     radius,
			HalfLength: bounds.HalfExtent().Z,
			Center:     center,
		}, nil
	case "sphere":
		var radius float64
		for _, corner := range bounds.Corners() {
			radius = math.Max(radius, corner.Sub(center).Norm())
		}
		return &Sphere{Radius: radius, Center: center}, nil
	default:
		return nil, fmt.Errorf("unknown envelope shape '%s'", e.kind)
	}
}
