package mesh

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// Binary STL layout: an 80 byte header, a little-endian uint32 facet
// count, then per facet a float32 normal, three float32 vertices and a two
// byte attribute word (zero).

const stlHeaderSize = 80

// ReadSTL decodes a binary STL stream.
func ReadSTL(r io.Reader) (*Mesh, error) {
	var header [stlHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("stl: truncated header: %w", err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("stl: truncated facet count: %w", err)
	}

	facets := make([][3]vec3, 0, count)
	var record [12]float32
	var attribute uint16
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &record); err != nil {
			return nil, fmt.Errorf("stl: truncated facet %d: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &attribute); err != nil {
			return nil, fmt.Errorf("stl: truncated facet %d: %w", i, err)
		}
		// record[0:3] is the file normal; it is recomputed from the
		// winding on load.
		var facet [3]vec3
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				facet[j][k] = float64(record[3+3*j+k])
			}
		}
		facets = append(facets, facet)
	}
	return FromTriangles(facets), nil
}

// WriteSTL encodes m as binary STL.
func WriteSTL(w io.Writer, m *Mesh) error {
	var header [stlHeaderSize]byte
	copy(header[:], "geomc binary STL")
	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	triangles := m.Triangles()
	if err := binary.Write(w, binary.LittleEndian, uint32(len(triangles))); err != nil {
		return err
	}

	var record [12]float32
	for i := range triangles {
		t := &triangles[i]
		for k := 0; k < 3; k++ {
			record[k] = float32(t.Normal[k])
			record[3+k] = float32(t.V0[k])
			record[6+k] = float32(t.V1[k])
			record[9+k] = float32(t.V2[k])
		}
		if err := binary.Write(w, binary.LittleEndian, &record); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return err
		}
	}
	return nil
}

// LoadSTL reads a binary STL file and validates the decoded extent.
func LoadSTL(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stl: %w", err)
	}
	defer f.Close()

	m, err := ReadSTL(f)
	if err != nil {
		return nil, fmt.Errorf("stl: %s: %w", path, err)
	}
	min, max := m.Bounds()
	for i := 0; i < 3; i++ {
		if math.IsInf(min[i], 0) || math.IsInf(max[i], 0) {
			return nil, fmt.Errorf("stl: %s: empty mesh", path)
		}
	}
	return m, nil
}
