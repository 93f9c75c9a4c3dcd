package geometry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yaptide/geomc/config"
	"github.com/yaptide/geomc/mesh"
)

var log = config.NamedLogger("geometry")

// DefaultMaterial is assigned to a root volume that does not name one.
// Daughters inherit their mother material unless they override it.
const DefaultMaterial = "vacuum"

// ErrNotFound reports an unknown volume path or stem.
var ErrNotFound = errors.New("volume not found")

// ErrContainment reports a daughter extending outside of its mother shape.
var ErrContainment = errors.New("containment violation")

// Geometry owns the volume tree and the mesh registry, and resolves dotted
// paths. It is immutable after construction, except for role reassignment.
type Geometry struct {
	root    *Volume
	volumes map[string]*Volume
	meshes  *mesh.Registry
}

func (g *Geometry) index(v *Volume) {
	g.volumes[v.Path()] = v
	for _, d := range v.daughters {
		g.index(d)
	}
}

// Root returns the root volume.
func (g *Geometry) Root() *Volume { return g.root }

// Meshes returns the mesh registry backing this geometry.
func (g *Geometry) Meshes() *mesh.Registry { return g.meshes }

// Paths returns all volume paths, sorted.
func (g *Geometry) Paths() []string {
	out := make([]string, 0, len(g.volumes))
	for path := range g.volumes {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Find resolves a volume by full dotted path, or by trailing name stem
// when the stem is unambiguous.
func (g *Geometry) Find(pathOrStem string) (*Volume, error) {
	if v, ok := g.volumes[pathOrStem]; ok {
		return v, nil
	}

	var matches []*Volume
	for path, v := range g.volumes {
		if strings.HasSuffix(path, "."+pathOrStem) {
			matches = append(matches, v)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: '%s'", ErrNotFound, pathOrStem)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: ambiguous stem '%s' (%d matches)",
			ErrNotFound, pathOrStem, len(matches))
	}
}

// SetRole reassigns the role of the volume at the given path.
func (g *Geometry) SetRole(path string, role string) error {
	v, err := g.Find(path)
	if err != nil {
		return err
	}
	r, err := ParseRole(role)
	if err != nil {
		return err
	}
	v.SetRole(r)
	return nil
}

// Check validates the containment invariant: every daughter bounding box,
// mapped to the mother frame, must lie within the mother shape. The first
// offending path is reported.
func (g *Geometry) Check() error {
	return g.checkVolume(g.root)
}

func (g *Geometry) checkVolume(v *Volume) error {
	for _, d := range v.daughters {
		box := d.shape.AABB()
		probes := box.Corners()
		for _, p := range append(probes[:], box.Center()) {
			if v.shape.Side(d.transform.ToParent(p)) == SideOutside {
				return fmt.Errorf("%w: volume '%s' extends outside of '%s'",
					ErrContainment, d.Path(), v.Path())
			}
		}
		if err := g.checkVolume(d); err != nil {
			return err
		}
	}
	return nil
}

// CubicVolume returns the volume, in cm3, of the solid at the given path.
// Unless includeDaughters is set, the space occupied by daughters is
// subtracted.
func (g *Geometry) CubicVolume(path string, includeDaughters bool) (float64, error) {
	v, err := g.Find(path)
	if err != nil {
		return 0, err
	}
	total := v.shape.CubicVolume()
	if !includeDaughters {
		for _, d := range v.daughters {
			total -= d.shape.CubicVolume()
		}
	}
	return total, nil
}
