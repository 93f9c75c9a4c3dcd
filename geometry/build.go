package geometry

import (
	"encoding/json"
	"fmt"
	"sort"
	"unicode"

	"github.com/yaptide/geomc/mesh"
)

// Definitions are nested JSON mappings. Capitalized keys name daughter
// volumes; lowercase keys are properties or the shape descriptor. A
// top-level "meshes" table declares named, reusable mesh assets.

type buildContext struct {
	registry *mesh.Registry
	meshes   map[string]meshRef
}

type meshRef struct {
	Path  string `json:"path"`
	Units string `json:"units"`
}

var shapeKeys = map[string]bool{
	"box":      true,
	"cylinder": true,
	"sphere":   true,
	"mesh":     true,
	"envelope": true,
}

var propertyKeys = map[string]bool{
	"material": true,
	"position": true,
	"rotation": true,
	"role":     true,
}

// New builds a Geometry from a definition document, using a private mesh
// registry.
func New(definition []byte) (*Geometry, error) {
	return NewWithRegistry(definition, mesh.NewRegistry())
}

// NewWithRegistry builds a Geometry reusing a shared mesh registry.
func NewWithRegistry(definition []byte, registry *mesh.Registry) (*Geometry, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(definition, &doc); err != nil {
		return nil, fmt.Errorf("bad geometry definition: %w", err)
	}

	ctx := &buildContext{registry: registry, meshes: make(map[string]meshRef)}
	if raw, ok := doc["meshes"]; ok {
		if err := parseMeshTable(raw, ctx); err != nil {
			return nil, err
		}
		delete(doc, "meshes")
	}

	if len(doc) != 1 {
		return nil, fmt.Errorf(
			"bad geometry definition: expected a single root volume, found %d entries", len(doc),
		)
	}

	g := &Geometry{volumes: make(map[string]*Volume), meshes: registry}
	for name, raw := range doc {
		root, err := buildVolume(name, name, raw, nil, ctx)
		if err != nil {
			return nil, err
		}
		g.root = root
	}
	g.index(g.root)
	log.Debugf("built geometry with %d volumes", len(g.volumes))
	return g, nil
}

func parseMeshTable(raw json.RawMessage, ctx *buildContext) error {
	var table map[string]json.RawMessage
	if err := json.Unmarshal(raw, &table); err != nil {
		return fmt.Errorf("meshes: expected a mapping: %w", err)
	}
	for name, entry := range table {
		ref, err := parseMeshRef(entry)
		if err != nil {
			return fmt.Errorf("meshes.%s: %w", name, err)
		}
		ctx.meshes[name] = ref
	}
	return nil
}

func parseMeshRef(raw json.RawMessage) (meshRef, error) {
	var path string
	if err := json.Unmarshal(raw, &path); err == nil {
		return meshRef{Path: path}, nil
	}
	var ref meshRef
	if err := json.Unmarshal(raw, &ref); err != nil {
		return ref, fmt.Errorf("expected a path or a {path, units} mapping")
	}
	if ref.Path == "" {
		return ref, fmt.Errorf("missing path")
	}
	return ref, nil
}

func buildVolume(
	name, path string, raw json.RawMessage, parent *Volume, ctx *buildContext,
) (*Volume, error) {
	if err := checkName(name); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%s: expected a mapping: %w", path, err)
	}

	v := &Volume{name: name, parent: parent}
	if parent != nil {
		v.material = parent.material
	} else {
		v.material = DefaultMaterial
	}

	var shapeKey string
	var shapeRaw json.RawMessage
	var children []string
	for key, value := range fields {
		first := []rune(key)
		switch {
		case len(first) > 0 && unicode.IsUpper(first[0]):
			children = append(children, key)
		case shapeKeys[key]:
			if shapeKey != "" {
				return nil, fmt.Errorf(
					"%s: multiple shape definitions (%s, %s)", path, shapeKey, key,
				)
			}
			shapeKey = key
			shapeRaw = value
		case propertyKeys[key]:
			if err := applyProperty(v, path, key, value); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%s: unknown property or shape '%s'", path, key)
		}
	}

	sort.Strings(children)
	for _, child := range children {
		d, err := buildVolume(child, path+"."+child, fields[child], v, ctx)
		if err != nil {
			return nil, err
		}
		v.daughters = append(v.daughters, d)
	}

	shape, err := resolveShape(v, path, shapeKey, shapeRaw, ctx)
	if err != nil {
		return nil, err
	}
	v.shape = shape
	return v, nil
}

func applyProperty(v *Volume, path, key string, raw json.RawMessage) error {
	switch key {
	case "material":
		if err := json.Unmarshal(raw, &v.material); err != nil {
			return fmt.Errorf("%s: bad material: %w", path, err)
		}
		if v.material == "" {
			return fmt.Errorf("%s: missing material", path)
		}
	case "position":
		p, err := parseVec(raw)
		if err != nil {
			return fmt.Errorf("%s: bad position: %w", path, err)
		}
		v.transform.Translation = p
	case "rotation":
		var angles [3]float64
		if err := json.Unmarshal(raw, &angles); err != nil {
			return fmt.Errorf("%s: bad rotation (expected Euler angles in deg): %w", path, err)
		}
		r := EulerRotation(angles)
		v.transform.Rotation = &r
	case "role":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("%s: bad role: %w", path, err)
		}
		role, err := ParseRole(s)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		v.role = role
	}
	return nil
}

// parseVec accepts a [x, y, z] sequence or a {x, y, z} mapping.
func parseVec(raw json.RawMessage) (Vec3D, error) {
	var seq [3]float64
	if err := json.Unmarshal(raw, &seq); err == nil {
		return Vec3D{seq[0], seq[1], seq[2]}, nil
	}
	var v Vec3D
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("expected a 3-vector")
	}
	return v, nil
}

func resolveShape(
	v *Volume, path, shapeKey string, raw json.RawMessage, ctx *buildContext,
) (Shape, error) {
	if shapeKey == "" {
		// Volumes with daughters and no explicit shape get a default
		// envelope.
		if len(v.daughters) == 0 {
			return nil, fmt.Errorf("%s: missing shape", path)
		}
		spec := envelopeSpec{kind: "box", padding: UniformPadding(DefaultPadding)}
		return spec.fit(v.daughters)
	}

	switch shapeKey {
	case "box":
		return parseBox(path, raw)
	case "cylinder":
		return parseCylinder(path, raw)
	case "sphere":
		return parseSphere(path, raw)
	case "mesh":
		return parseMeshShape(path, raw, ctx)
	case "envelope":
		spec, err := parseEnvelope(path, raw)
		if err != nil {
			return nil, err
		}
		shape, err := spec.fit(v.daughters)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return shape, nil
	}
	return nil, fmt.Errorf("%s: unknown shape '%s'", path, shapeKey)
}

func parseBox(path string, raw json.RawMessage) (*Box, error) {
	size, err := parseSize(raw)
	if err != nil {
		var alt struct {
			Size json.RawMessage `json:"size"`
		}
		if jsonErr := json.Unmarshal(raw, &alt); jsonErr != nil || alt.Size == nil {
			return nil, fmt.Errorf("%s: bad box (expected a size): %w", path, err)
		}
		size, err = parseSize(alt.Size)
		if err != nil {
			return nil, fmt.Errorf("%s: bad box size: %w", path, err)
		}
	}
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("%s: bad box size (expected positive values)", path)
	}
	return NewBox(size.Scale(0.5)), nil
}

func parseCylinder(path string, raw json.RawMessage) (*Cylinder, error) {
	var spec struct {
		Length    float64 `json:"length"`
		Radius    float64 `json:"radius"`
		Thickness float64 `json:"thickness"`
	}
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("%s: bad cylinder: %w", path, err)
	}
	if spec.Length <= 0 || spec.Radius <= 0 {
		return nil, fmt.Errorf("%s: bad cylinder (expected positive length and radius)", path)
	}
	if spec.Thickness < 0 || spec.Thickness > spec.Radius {
		return nil, fmt.Errorf("%s: bad cylinder thickness", path)
	}
	c := NewCylinder(spec.Radius, spec.Length/2)
	if spec.Thickness > 0 {
		c.InnerRadius = spec.Radius - spec.Thickness
	}
	return c, nil
}

func parseSphere(path string, raw json.RawMessage) (*Sphere, error) {
	var radius float64
	if err := json.Unmarshal(raw, &radius); err == nil {
		if radius <= 0 {
			return nil, fmt.Errorf("%s: bad sphere (expected a positive radius)", path)
		}
		return NewSphere(radius), nil
	}
	var spec struct {
		Radius    float64 `json:"radius"`
		Thickness float64 `json:"thickness"`
	}
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("%s: bad sphere: %w", path, err)
	}
	if spec.Radius <= 0 {
		return nil, fmt.Errorf("%s: bad sphere (expected a positive radius)", path)
	}
	if spec.Thickness < 0 || spec.Thickness > spec.Radius {
		return nil, fmt.Errorf("%s: bad sphere thickness", path)
	}
	s := NewSphere(spec.Radius)
	if spec.Thickness > 0 {
		s.InnerRadius = spec.Radius - spec.Thickness
	}
	return s, nil
}

func parseMeshShape(path string, raw json.RawMessage, ctx *buildContext) (*MeshShape, error) {
	ref, err := parseMeshRef(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: bad mesh: %w", path, err)
	}
	// A bare string resolves against the shared mesh table first.
	if named, ok := ctx.meshes[ref.Path]; ok && ref.Units == "" {
		ref = named
	}

	scale := 1.0
	if ref.Units != "" {
		scale, err = UnitScale(ref.Units)
		if err != nil {
			return nil, fmt.Errorf("%s: bad mesh units: %w", path, err)
		}
	}
	payload, err := ctx.registry.Load(ref.Path, scale)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &MeshShape{Mesh: payload, SourcePath: ref.Path, UnitScale: scale}, nil
}

func parseEnvelope(path string, raw json.RawMessage) (envelopeSpec, error) {
	spec := envelopeSpec{kind: "box", padding: UniformPadding(DefaultPadding)}
	var kind string
	if err := json.Unmarshal(raw, &kind); err == nil {
		spec.kind = kind
		return spec, nil
	}
	var alt struct {
		Shape   string           `json:"shape"`
		Padding *json.RawMessage `json:"padding"`
	}
	if err := json.Unmarshal(raw, &alt); err != nil {
		return spec, fmt.Errorf("%s: bad envelope: %w", path, err)
	}
	if alt.Shape != "" {
		spec.kind = alt.Shape
	}
	if alt.Padding != nil {
		if err := spec.padding.UnmarshalJSON(*alt.Padding); err != nil {
			return spec, fmt.Errorf("%s: bad envelope padding: %w", path, err)
		}
	}
	return spec, nil
}

// parseSize accepts a scalar (cube) or a 3-sequence of full sizes.
func parseSize(raw json.RawMessage) (Vec3D, error) {
	var scalar float64
	if err := json.Unmarshal(raw, &scalar); err == nil {
		return Vec3D{scalar, scalar, scalar}, nil
	}
	var seq [3]float64
	if err := json.Unmarshal(raw, &seq); err != nil {
		return Vec3D{}, fmt.Errorf("expected a scalar or a 3-sequence")
	}
	return Vec3D{seq[0], seq[1], seq[2]}, nil
}
