package mesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cubeFacets triangulates the surface of an axis-aligned cube of half-size
// h, with outward windings.
func cubeFacets(h float64) [][3]vec3 {
	quads := [][4]vec3{
		{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}},     // +z
		{{-h, -h, -h}, {-h, h, -h}, {h, h, -h}, {h, -h, -h}}, // -z
		{{h, -h, -h}, {h, h, -h}, {h, h, h}, {h, -h, h}},     // +x
		{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}, // -x
		{{-h, h, -h}, {-h, h, h}, {h, h, h}, {h, h, -h}},     // +y
		{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}, // -y
	}
	facets := make([][3]vec3, 0, 12)
	for _, q := range quads {
		facets = append(facets, [3]vec3{q[0], q[1], q[2]}, [3]vec3{q[0], q[2], q[3]})
	}
	return facets
}

func TestCubeMeshProperties(t *testing.T) {
	m := FromTriangles(cubeFacets(1))

	assert.Len(t, m.Triangles(), 12)
	assert.InDelta(t, 24, m.Area(), 1e-12)
	assert.InDelta(t, 8, m.Volume(), 1e-12)

	min, max := m.Bounds()
	assert.Equal(t, [3]float64{-1, -1, -1}, min)
	assert.Equal(t, [3]float64{1, 1, 1}, max)
}

func TestCubeMeshSide(t *testing.T) {
	m := FromTriangles(cubeFacets(1))
	const eps = 1e-7

	assert.Equal(t, 1, m.Side(vec3{0, 0, 0}, eps))
	assert.Equal(t, 1, m.Side(vec3{0.9, -0.9, 0.9}, eps))
	assert.Equal(t, -1, m.Side(vec3{2, 0, 0}, eps))
	assert.Equal(t, -1, m.Side(vec3{1.5, 1.5, 1.5}, eps))
	assert.Equal(t, 0, m.Side(vec3{1, 0, 0}, eps))
	assert.Equal(t, 0, m.Side(vec3{1, 1, 1}, eps))
}

func TestTriangleClosest(t *testing.T) {
	tri := newTriangle(vec3{0, 0, 0}, vec3{1, 0, 0}, vec3{0, 1, 0})

	for _, tc := range []struct {
		name  string
		point vec3
		want  vec3
	}{
		{"interior projection", vec3{0.25, 0.25, 5}, vec3{0.25, 0.25, 0}},
		{"vertex a", vec3{-1, -1, 0}, vec3{0, 0, 0}},
		{"vertex b", vec3{2, -1, 0}, vec3{1, 0, 0}},
		{"vertex c", vec3{-1, 2, 0}, vec3{0, 1, 0}},
		{"edge ab", vec3{0.5, -1, 0}, vec3{0.5, 0, 0}},
		{"edge ac", vec3{-1, 0.5, 0}, vec3{0, 0.5, 0}},
		{"edge bc", vec3{1, 1, 0}, vec3{0.5, 0.5, 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := tri.closest(tc.point)
			for k := 0; k < 3; k++ {
				assert.InDelta(t, tc.want[k], got[k], 1e-12)
			}
		})
	}
}

func TestSampleIndexAreaWeighted(t *testing.T) {
	m := FromTriangles([][3]vec3{
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, // area 0.5
		{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}}, // area 2
	})
	require.InDelta(t, 2.5, m.Area(), 1e-12)

	assert.Equal(t, 0, m.SampleIndex(0))
	assert.Equal(t, 0, m.SampleIndex(0.1))
	assert.Equal(t, 1, m.SampleIndex(0.5))
	assert.Equal(t, 1, m.SampleIndex(0.999))
}

func TestSamplePointStaysOnFacet(t *testing.T) {
	m := FromTriangles([][3]vec3{
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
	})
	for _, uv := range [][2]float64{{0, 0}, {1, 0}, {0, 1}, {0.3, 0.7}, {0.9, 0.1}} {
		p, n := m.SamplePoint(0, uv[0], uv[1])
		assert.Equal(t, [3]float64{0, 0, 1}, n)
		assert.Equal(t, 0.0, p[2])
		assert.GreaterOrEqual(t, p[0], 0.0)
		assert.GreaterOrEqual(t, p[1], 0.0)
		assert.LessOrEqual(t, p[0]+p[1], 1.0+1e-12)
	}
}

func TestScaled(t *testing.T) {
	m := FromTriangles(cubeFacets(1))

	assert.Same(t, m, m.Scaled(1))

	doubled := m.Scaled(2)
	assert.InDelta(t, 4*24, doubled.Area(), 1e-12)
	assert.InDelta(t, 8*8, doubled.Volume(), 1e-12)
	min, max := doubled.Bounds()
	assert.Equal(t, [3]float64{-2, -2, -2}, min)
	assert.Equal(t, [3]float64{2, 2, 2}, max)
}

func TestRegistryParsesOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.stl")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteSTL(f, FromTriangles(cubeFacets(1))))
	require.NoError(t, f.Close())

	r := NewRegistry()
	first, err := r.Load(path, 1)
	require.NoError(t, err)
	second, err := r.Load(path, 1)
	require.NoError(t, err)
	assert.Same(t, first, second, "payload is parsed once and shared")

	scaled, err := r.Load(path, 0.1)
	require.NoError(t, err)
	assert.NotSame(t, first, scaled)
	assert.InDelta(t, 0.008, scaled.Volume(), 1e-12)

	stats := r.Stats()
	require.Len(t, stats, 1)
	resolved, err := filepath.Abs(path)
	require.NoError(t, err)
	assert.Equal(t, EntryStat{Path: resolved, Refs: 3}, stats[0])
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	m := FromTriangles(cubeFacets(1))

	stored, err := r.Register("memory/cube", m)
	require.NoError(t, err)
	assert.Same(t, m, stored)

	loaded, err := r.Register("memory/cube", FromTriangles(cubeFacets(2)))
	require.NoError(t, err)
	assert.Same(t, m, loaded, "first registration wins")

	stats := r.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].Refs)
}
