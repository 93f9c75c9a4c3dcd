// Package mesh handles externally sourced triangle meshes: the binary STL
// codec, point classification against watertight meshes and the shared,
// reference-counted registry of loaded assets.
package mesh

import "math"

type vec3 = [3]float64

func sub(a, b vec3) vec3 { return vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func cross(a, b vec3) vec3 {
	return vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func norm(a vec3) float64 { return math.Sqrt(dot(a, a)) }

// Triangle is a single oriented facet. The normal follows the right-hand
// winding of V0, V1, V2.
type Triangle struct {
	V0, V1, V2 vec3
	Normal     vec3
	Area       float64
}

func newTriangle(v0, v1, v2 vec3) Triangle {
	n := cross(sub(v1, v0), sub(v2, v0))
	l := norm(n)
	t := Triangle{V0: v0, V1: v1, V2: v2, Area: l / 2}
	if l > 0 {
		t.Normal = vec3{n[0] / l, n[1] / l, n[2] / l}
	}
	return t
}

// closest returns the point of the triangle closest to p.
// Ref: https://stackoverflow.com/a/74395029
func (t *Triangle) closest(p vec3) vec3 {
	a, b, c := t.V0, t.V1, t.V2
	ab := sub(b, a)
	ac := sub(c, a)
	ap := sub(p, a)

	d1 := dot(ab, ap)
	d2 := dot(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := sub(p, b)
	d3 := dot(ab, bp)
	d4 := dot(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	cp := sub(p, c)
	d5 := dot(ab, cp)
	d6 := dot(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return vec3{a[0] + v*ab[0], a[1] + v*ab[1], a[2] + v*ab[2]}
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		v := d2 / (d2 - d6)
		return vec3{a[0] + v*ac[0], a[1] + v*ac[1], a[2] + v*ac[2]}
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		v := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		bc := sub(c, b)
		return vec3{b[0] + v*bc[0], b[1] + v*bc[1], b[2] + v*bc[2]}
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return vec3{
		a[0] + v*ab[0] + w*ac[0],
		a[1] + v*ab[1] + w*ac[1],
		a[2] + v*ab[2] + w*ac[2],
	}
}

// Mesh is an immutable triangle soup assumed watertight with outward
// winding.
type Mesh struct {
	triangles []Triangle
	min, max  vec3
	area      float64
	cumArea   []float64
}

// FromTriangles builds a mesh from raw facets.
func FromTriangles(facets [][3]vec3) *Mesh {
	m := &Mesh{
		min: vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		max: vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
	m.triangles = make([]Triangle, 0, len(facets))
	m.cumArea = make([]float64, 0, len(facets))
	for _, f := range facets {
		t := newTriangle(f[0], f[1], f[2])
		m.triangles = append(m.triangles, t)
		m.area += t.Area
		m.cumArea = append(m.cumArea, m.area)
		for _, v := range f {
			for i := 0; i < 3; i++ {
				m.min[i] = math.Min(m.min[i], v[i])
				m.max[i] = math.Max(m.max[i], v[i])
			}
		}
	}
	return m
}

// Scaled returns a copy of m with all vertices multiplied by factor.
// Scaling by 1 returns m itself.
func (m *Mesh) Scaled(factor float64) *Mesh {
	if factor == 1 {
		return m
	}
	facets := make([][3]vec3, len(m.triangles))
	for i, t := range m.triangles {
		for j, v := range [3]vec3{t.V0, t.V1, t.V2} {
			facets[i][j] = vec3{v[0] * factor, v[1] * factor, v[2] * factor}
		}
	}
	return FromTriangles(facets)
}

// Triangles returns the mesh facets.
func (m *Mesh) Triangles() []Triangle { return m.triangles }

// Bounds returns the vertex extrema.
func (m *Mesh) Bounds() (min, max [3]float64) { return m.min, m.max }

// Area returns the summed facet area.
func (m *Mesh) Area() float64 { return m.area }

// Volume returns the enclosed volume by the divergence theorem. The result
// is only meaningful for watertight meshes.
func (m *Mesh) Volume() float64 {
	var v float64
	for _, t := range m.triangles {
		v += dot(t.V0, cross(t.V1, t.V2)) / 6
	}
	return math.Abs(v)
}

// Side classifies p against the mesh boundary: +1 inside, -1 outside, 0
// within eps of the surface. The sign comes from the nearest facet normal.
func (m *Mesh) Side(p [3]float64, eps float64) int {
	best := math.Inf(1)
	var bestDot float64
	for i := range m.triangles {
		t := &m.triangles[i]
		c := t.closest(p)
		d := norm(sub(p, c))
		if d < best {
			best = d
			bestDot = dot(sub(p, c), t.Normal)
		}
	}
	switch {
	case best <= eps:
		return 0
	case bestDot > 0:
		return -1
	default:
		return 1
	}
}

// SampleIndex maps a uniform deviate to a facet index, area weighted.
func (m *Mesh) SampleIndex(u float64) int {
	target := u * m.area
	lo, hi := 0, len(m.cumArea)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if m.cumArea[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// SamplePoint maps two uniform deviates to a point uniformly distributed
// over facet i, returning the point and the facet normal.
func (m *Mesh) SamplePoint(i int, u, v float64) (point, normal [3]float64) {
	t := &m.triangles[i]
	su := math.Sqrt(u)
	b0 := 1 - su
	b1 := su * (1 - v)
	b2 := su * v
	for k := 0; k < 3; k++ {
		point[k] = b0*t.V0[k] + b1*t.V1[k] + b2*t.V2[k]
	}
	return point, t.Normal
}
