// Package generator implements the composable primary particle sampling
// pipeline. A Generator is an immutable builder: every combinator returns
// a new value with one more constraint fixed, and Generate draws the
// required deviates from the shared random engine.
package generator

import (
	"errors"
	"fmt"
	"math"

	"github.com/yaptide/geomc/config"
	"github.com/yaptide/geomc/geometry"
	"github.com/yaptide/geomc/random"
	"github.com/yaptide/geomc/result"
)

var log = config.NamedLogger("generator")

// ErrDegenerateSampling reports a constraint whose acceptance ratio is
// statistically indistinguishable from zero.
var ErrDegenerateSampling = errors.New("degenerate sampling constraint")

// maxRejectionTrials bounds the per-particle rejection loop.
const maxRejectionTrials = 100000

// DaughterMode controls how Inside treats daughter volumes.
type DaughterMode int

// Daughter handling for Inside sampling.
const (
	// DefaultDaughters accepts any point interior to the target shape.
	DefaultDaughters DaughterMode = iota
	// IncludeDaughters accepts points interior to daughters as-is.
	IncludeDaughters
	// ExcludeDaughters rejects points interior to any descendant.
	ExcludeDaughters
)

// SpectrumLine is one discrete energy with its relative intensity.
type SpectrumLine struct {
	Energy    float64 `json:"energy"`
	Intensity float64 `json:"intensity"`
}

type energyKind int

const (
	fixedEnergy energyKind = iota
	spectrumEnergy
	powerLawEnergy
)

type positionKind int

const (
	fixedPosition positionKind = iota
	insidePosition
	surfacePosition
)

// Generator is the builder state. The zero value is not usable; start
// from New. Unconstrained fields keep their neutral defaults: pid 22
// (gamma), energy 1, position at the origin, direction along +z.
type Generator struct {
	rng *random.Engine
	geo *geometry.Geometry

	pid int32

	energy        energyKind
	energyValue   float64
	spectrum      []SpectrumLine
	spectrumTotal float64
	plLow, plHigh float64
	plExponent    float64

	position     positionKind
	fixedPoint   geometry.Point
	target       *geometry.Volume
	daughterMode DaughterMode
	ingoing      bool

	hemisphere bool
	direction  geometry.Vec3D

	weighted   bool
	firstEvent int64
}

// New returns a generator drawing from rng and resolving volume
// constraints against geo. A nil geo is valid for generators using only
// fixed constraints.
func New(rng *random.Engine, geo *geometry.Geometry) Generator {
	return Generator{
		rng:         rng,
		geo:         geo,
		pid:         22,
		energyValue: 1,
		direction:   geometry.Vec3D{X: 0, Y: 0, Z: 1},
	}
}

// Pid fixes the particle type from a symbolic name.
func (g Generator) Pid(name string) (Generator, error) {
	code, err := ParticleCode(name)
	if err != nil {
		return g, err
	}
	g.pid = code
	return g, nil
}

// PidCode fixes the particle type from a raw PDG code.
func (g Generator) PidCode(code int32) Generator {
	g.pid = code
	return g
}

// Energy makes the source monoenergetic.
func (g Generator) Energy(value float64) Generator {
	g.energy = fixedEnergy
	g.energyValue = value
	return g
}

// Spectrum samples energies from discrete lines, each drawn with
// probability proportional to its intensity. Lines with non-positive
// intensity are dropped.
func (g Generator) Spectrum(lines []SpectrumLine) (Generator, error) {
	kept := make([]SpectrumLine, 0, len(lines))
	total := 0.0
	for _, line := range lines {
		if line.Intensity > 0 {
			kept = append(kept, line)
			total += line.Intensity
		}
	}
	if total <= 0 {
		return g, fmt.Errorf("bad spectrum: no positive intensity")
	}
	g.energy = spectrumEnergy
	g.spectrum = kept
	g.spectrumTotal = total
	return g, nil
}

// PowerLaw samples energies with density proportional to E^exponent over
// [low, high], by inversion.
func (g Generator) PowerLaw(low, high, exponent float64) (Generator, error) {
	if low <= 0 || high <= low {
		return g, fmt.Errorf("bad power law support [%g, %g]", low, high)
	}
	g.energy = powerLawEnergy
	g.plLow = low
	g.plHigh = high
	g.plExponent = exponent
	return g, nil
}

// Position fixes the emission point.
func (g Generator) Position(p geometry.Point) Generator {
	g.position = fixedPosition
	g.fixedPoint = p
	return g
}

// Direction fixes the emission direction. The vector is normalized.
func (g Generator) Direction(d geometry.Vec3D) (Generator, error) {
	if d.Norm() == 0 {
		return g, fmt.Errorf("bad direction: null vector")
	}
	g.hemisphere = false
	g.direction = d.Unit()
	return g, nil
}

// Inside constrains positions to the interior of the named volume, by
// rejection sampling over its bounding box.
func (g Generator) Inside(path string, mode DaughterMode) (Generator, error) {
	if g.geo == nil {
		return g, fmt.Errorf("inside '%s': no geometry bound", path)
	}
	v, err := g.geo.Find(path)
	if err != nil {
		return g, err
	}
	return g.InsideVolume(v, mode), nil
}

// InsideVolume is Inside for an already resolved volume.
func (g Generator) InsideVolume(v *geometry.Volume, mode DaughterMode) Generator {
	g.position = insidePosition
	g.target = v
	g.daughterMode = mode
	return g
}

// On constrains positions to the boundary of the named volume, uniformly
// weighted by local surface area, with directions drawn from the
// hemisphere on the requested side ("ingoing" or "outgoing") of the
// outward normal.
func (g Generator) On(path string, direction string) (Generator, error) {
	if g.geo == nil {
		return g, fmt.Errorf("on '%s': no geometry bound", path)
	}
	v, err := g.geo.Find(path)
	if err != nil {
		return g, err
	}
	return g.OnVolume(v, direction)
}

// OnVolume is On for an already resolved volume.
func (g Generator) OnVolume(v *geometry.Volume, direction string) (Generator, error) {
	switch direction {
	case "ingoing":
		g.ingoing = true
	case "outgoing":
		g.ingoing = false
	default:
		return g, fmt.Errorf("bad crossing direction '%s' (expected ingoing or outgoing)",
			direction)
	}
	g.position = surfacePosition
	g.hemisphere = true
	g.target = v
	return g, nil
}

// Weight allocates a per-particle weight, for biased sampling schemes.
func (g Generator) Weight(enabled bool) Generator {
	g.weighted = enabled
	return g
}

// FirstEvent offsets the sequential event numbering, for partitioned
// runs.
func (g Generator) FirstEvent(event int64) Generator {
	g.firstEvent = event
	return g
}

// Generate draws n particles. Per particle the draw order is energy first,
// then position and direction. The returned weights are nil unless Weight
// was requested.
func (g Generator) Generate(n int) ([]result.ParticleRecord, []float64, error) {
	records := make([]result.ParticleRecord, 0, n)
	var weights []float64
	if g.weighted {
		weights = make([]float64, 0, n)
	}

	for i := 0; i < n; i++ {
		index := g.rng.Index()

		energy := g.sampleEnergy()
		position, direction, err := g.samplePlacement()
		if err != nil {
			return nil, nil, fmt.Errorf("event %d: %w", g.firstEvent+int64(i), err)
		}

		rec := result.ParticleRecord{
			Pid:         g.pid,
			Energy:      energy,
			Position:    position,
			Direction:   direction,
			Event:       g.firstEvent + int64(i),
			RandomIndex: index,
		}
		if g.weighted {
			rec.Weight = 1
			weights = append(weights, 1)
		}
		records = append(records, rec)
	}
	return records, weights, nil
}

func (g Generator) sampleEnergy() float64 {
	switch g.energy {
	case spectrumEnergy:
		target := g.rng.Uniform01() * g.spectrumTotal
		acc := 0.0
		for _, line := range g.spectrum {
			acc += line.Intensity
			if acc >= target {
				return line.Energy
			}
		}
		return g.spectrum[len(g.spectrum)-1].Energy
	case powerLawEnergy:
		u := g.rng.Uniform01()
		a := g.plExponent
		if a == -1 {
			return g.plLow * math.Pow(g.plHigh/g.plLow, u)
		}
		lo := math.Pow(g.plLow, a+1)
		hi := math.Pow(g.plHigh, a+1)
		return math.Pow(lo+u*(hi-lo), 1/(a+1))
	default:
		return g.energyValue
	}
}

func (g Generator) samplePlacement() (geometry.Point, geometry.Vec3D, error) {
	switch g.position {
	case insidePosition:
		p, err := g.sampleInside()
		return p, g.direction, err
	case surfacePosition:
		return g.sampleSurface()
	default:
		return g.fixedPoint, g.direction, nil
	}
}

func (g Generator) sampleInside() (geometry.Point, error) {
	box := g.target.GlobalAABB()
	size := box.Max.Sub(box.Min)

	var descendants []*geometry.Volume
	if g.daughterMode == ExcludeDaughters {
		descendants = g.target.Descendants()
	}

	for trial := 0; trial < maxRejectionTrials; trial++ {
		p := box.Min.Add(geometry.Vec3D{
			X: size.X * g.rng.Uniform01(),
			Y: size.Y * g.rng.Uniform01(),
			Z: size.Z * g.rng.Uniform01(),
		})
		if g.target.GlobalSide(p) != geometry.SideInside {
			continue
		}
		rejected := false
		for _, d := range descendants {
			if d.GlobalSide(p) == geometry.SideInside {
				rejected = true
				break
			}
		}
		if rejected {
			continue
		}
		return p, nil
	}
	log.Warnf("no point accepted inside '%s' after %d trials",
		g.target.Path(), maxRejectionTrials)
	return geometry.Point{}, fmt.Errorf("%w: inside '%s'",
		ErrDegenerateSampling, g.target.Path())
}

func (g Generator) sampleSurface() (geometry.Point, geometry.Vec3D, error) {
	local, normal := g.target.Shape().SampleSurface(g.rng)
	transform := g.target.GlobalTransform()
	point := transform.ToParent(local)
	outward := transform.RotateToParent(normal)

	if !g.hemisphere {
		return point, g.direction, nil
	}

	axis := outward
	if g.ingoing {
		axis = outward.Scale(-1)
	}
	return point, g.sampleHemisphere(axis), nil
}

// sampleHemisphere draws a direction uniformly over the hemisphere around
// axis.
func (g Generator) sampleHemisphere(axis geometry.Vec3D) geometry.Vec3D {
	cosTheta := g.rng.Uniform01()
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
	phi := 2 * math.Pi * g.rng.Uniform01()

	// Orthonormal frame around the axis.
	helper := geometry.Vec3D{X: 1}
	if math.Abs(axis.X) > 0.9 {
		helper = geometry.Vec3D{Y: 1}
	}
	t1 := axis.Cross(helper).Unit()
	t2 := axis.Cross(t1)

	return axis.Scale(cosTheta).
		Add(t1.Scale(sinTheta * math.Cos(phi))).
		Add(t2.Scale(sinTheta * math.Sin(phi)))
}
