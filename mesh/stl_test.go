package mesh

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSTLRoundTrip(t *testing.T) {
	original := FromTriangles(cubeFacets(1))

	var buf bytes.Buffer
	require.NoError(t, WriteSTL(&buf, original))
	assert.Equal(t, stlHeaderSize+4+12*50, buf.Len())

	decoded, err := ReadSTL(&buf)
	require.NoError(t, err)

	require.Len(t, decoded.Triangles(), 12)
	for i, got := range decoded.Triangles() {
		want := original.Triangles()[i]
		assert.Equal(t, want.V0, got.V0)
		assert.Equal(t, want.V1, got.V1)
		assert.Equal(t, want.V2, got.V2)
		assert.Equal(t, want.Normal, got.Normal)
	}
	assert.InDelta(t, original.Area(), decoded.Area(), 1e-12)
	assert.InDelta(t, original.Volume(), decoded.Volume(), 1e-12)
}

func TestWriteSTLGolden(t *testing.T) {
	m := FromTriangles([][3]vec3{
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
	})
	var buf bytes.Buffer
	require.NoError(t, WriteSTL(&buf, m))

	g := goldie.New(t)
	g.Assert(t, "single_facet", buf.Bytes())
}

func TestReadSTLErrors(t *testing.T) {
	_, err := ReadSTL(bytes.NewReader(nil))
	assert.ErrorContains(t, err, "truncated header")

	_, err = ReadSTL(bytes.NewReader(make([]byte, stlHeaderSize)))
	assert.ErrorContains(t, err, "truncated facet count")

	// A facet count with no facet payload.
	data := make([]byte, stlHeaderSize+4)
	data[stlHeaderSize] = 1
	_, err = ReadSTL(bytes.NewReader(data))
	assert.ErrorContains(t, err, "truncated facet 0")
}

func TestLoadSTLErrors(t *testing.T) {
	_, err := LoadSTL(filepath.Join(t.TempDir(), "missing.stl"))
	assert.Error(t, err)

	// A syntactically valid file with zero facets decodes to an empty
	// mesh, which is rejected.
	empty := filepath.Join(t.TempDir(), "empty.stl")
	require.NoError(t, os.WriteFile(empty, make([]byte, stlHeaderSize+4), 0644))
	_, err = LoadSTL(empty)
	assert.ErrorContains(t, err, "empty mesh")
}
