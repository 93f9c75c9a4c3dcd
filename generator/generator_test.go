package generator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaptide/geomc/geometry"
	"github.com/yaptide/geomc/random"
)

func mustGeometry(t *testing.T, definition string) *geometry.Geometry {
	t.Helper()
	geo, err := geometry.New([]byte(definition))
	require.NoError(t, err)
	return geo
}

func TestDefaults(t *testing.T) {
	g := New(random.NewSeeded(1), nil)
	records, weights, err := g.Generate(3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Nil(t, weights)

	for i, rec := range records {
		assert.Equal(t, int32(22), rec.Pid)
		assert.Equal(t, 1.0, rec.Energy)
		assert.Equal(t, geometry.Point{}, rec.Position)
		assert.Equal(t, geometry.Vec3D{X: 0, Y: 0, Z: 1}, rec.Direction)
		assert.Equal(t, int64(i), rec.Event)
		assert.Equal(t, 0.0, rec.Weight)
	}
}

func TestPid(t *testing.T) {
	g := New(random.NewSeeded(1), nil)

	g, err := g.Pid("proton")
	require.NoError(t, err)
	records, _, err := g.Generate(1)
	require.NoError(t, err)
	assert.Equal(t, int32(2212), records[0].Pid)

	records, _, err = g.PidCode(-11).Generate(1)
	require.NoError(t, err)
	assert.Equal(t, int32(-11), records[0].Pid)

	_, err = g.Pid("graviton")
	assert.ErrorContains(t, err, "unknown particle type")
}

func TestSpectrumFractions(t *testing.T) {
	g := New(random.NewSeeded(202), nil)
	g, err := g.Spectrum([]SpectrumLine{
		{Energy: 0.5, Intensity: 0.2},
		{Energy: 1.5, Intensity: 0.8},
		{Energy: 9.9, Intensity: 0}, // dropped
	})
	require.NoError(t, err)

	const n = 100000
	records, _, err := g.Generate(n)
	require.NoError(t, err)

	var low int
	for _, rec := range records {
		switch rec.Energy {
		case 0.5:
			low++
		case 1.5:
		default:
			t.Fatalf("unexpected energy %g", rec.Energy)
		}
	}
	// Binomial with p = 0.2: sigma of the fraction is ~0.0013.
	assert.InDelta(t, 0.2, float64(low)/n, 0.005)
}

func TestSpectrumRejectsEmpty(t *testing.T) {
	g := New(random.NewSeeded(1), nil)
	_, err := g.Spectrum([]SpectrumLine{{Energy: 1, Intensity: 0}})
	assert.ErrorContains(t, err, "no positive intensity")
}

func TestPowerLaw(t *testing.T) {
	g := New(random.NewSeeded(303), nil)
	g, err := g.PowerLaw(1, 10, -2)
	require.NoError(t, err)

	records, _, err := g.Generate(10000)
	require.NoError(t, err)

	// Inversion for a = -2 gives E = 1 / (1 - 0.9 u).
	ref := random.NewSeeded(303)
	for _, rec := range records {
		u := ref.Uniform01()
		assert.InDelta(t, 1/(1-0.9*u), rec.Energy, 1e-12)
		require.GreaterOrEqual(t, rec.Energy, 1.0)
		require.LessOrEqual(t, rec.Energy, 10.0)
	}
}

func TestPowerLawLogCase(t *testing.T) {
	g := New(random.NewSeeded(304), nil)
	g, err := g.PowerLaw(1, math.E, -1)
	require.NoError(t, err)

	records, _, err := g.Generate(1000)
	require.NoError(t, err)

	ref := random.NewSeeded(304)
	for _, rec := range records {
		assert.InDelta(t, math.Exp(ref.Uniform01()), rec.Energy, 1e-12)
	}
}

func TestPowerLawRejectsBadSupport(t *testing.T) {
	g := New(random.NewSeeded(1), nil)
	_, err := g.PowerLaw(0, 10, -2)
	assert.ErrorContains(t, err, "bad power law support")
	_, err = g.PowerLaw(5, 5, -2)
	assert.ErrorContains(t, err, "bad power law support")
}

func TestFixedPositionAndDirection(t *testing.T) {
	g := New(random.NewSeeded(1), nil)
	g = g.Position(geometry.Point{X: 1, Y: 2, Z: 3})
	g, err := g.Direction(geometry.Vec3D{X: 0, Y: 0, Z: -2})
	require.NoError(t, err)

	records, _, err := g.Generate(1)
	require.NoError(t, err)
	assert.Equal(t, geometry.Point{X: 1, Y: 2, Z: 3}, records[0].Position)
	assert.Equal(t, geometry.Vec3D{X: 0, Y: 0, Z: -1}, records[0].Direction)

	_, err = g.Direction(geometry.Vec3D{})
	assert.ErrorContains(t, err, "null vector")
}

func TestInsideExcludesDaughters(t *testing.T) {
	geo := mustGeometry(t, `{
		"World": {
			"box": 4,
			"Inner": {"box": 2}
		}
	}`)
	g := New(random.NewSeeded(404), geo)
	g, err := g.Inside("World", ExcludeDaughters)
	require.NoError(t, err)

	records, _, err := g.Generate(5000)
	require.NoError(t, err)
	for _, rec := range records {
		p := rec.Position
		outer := math.Max(math.Abs(p.X), math.Max(math.Abs(p.Y), math.Abs(p.Z)))
		require.Less(t, outer, 2.0)
		require.Greater(t, outer, 1.0, "point interior to excluded daughter at %+v", p)
	}
}

func TestInsideDefaultDaughters(t *testing.T) {
	geo := mustGeometry(t, `{
		"World": {
			"box": 4,
			"Inner": {"box": 2}
		}
	}`)
	g := New(random.NewSeeded(405), geo)
	g, err := g.Inside("World", DefaultDaughters)
	require.NoError(t, err)

	records, _, err := g.Generate(5000)
	require.NoError(t, err)
	var interior int
	for _, rec := range records {
		p := rec.Position
		outer := math.Max(math.Abs(p.X), math.Max(math.Abs(p.Y), math.Abs(p.Z)))
		require.Less(t, outer, 2.0)
		if outer < 1 {
			interior++
		}
	}
	// The daughter holds 1/8 of the mother volume.
	assert.InDelta(t, 0.125, float64(interior)/float64(len(records)), 0.02)
}

func TestInsideDegenerate(t *testing.T) {
	geo := mustGeometry(t, `{
		"World": {
			"box": 2,
			"Inner": {"box": 2}
		}
	}`)
	g := New(random.NewSeeded(406), geo)
	g, err := g.Inside("World", ExcludeDaughters)
	require.NoError(t, err)

	_, _, err = g.Generate(1)
	assert.ErrorIs(t, err, ErrDegenerateSampling)
}

func TestInsideErrors(t *testing.T) {
	g := New(random.NewSeeded(1), nil)
	_, err := g.Inside("World", DefaultDaughters)
	assert.ErrorContains(t, err, "no geometry bound")

	geo := mustGeometry(t, `{"World": {"box": 2}}`)
	g = New(random.NewSeeded(1), geo)
	_, err = g.Inside("Nope", DefaultDaughters)
	assert.ErrorIs(t, err, geometry.ErrNotFound)
}

func TestOnSphere(t *testing.T) {
	geo := mustGeometry(t, `{"A": {"sphere": 2}}`)

	for _, tc := range []struct {
		crossing string
		sign     float64
	}{
		{"outgoing", 1},
		{"ingoing", -1},
	} {
		t.Run(tc.crossing, func(t *testing.T) {
			g := New(random.NewSeeded(505), geo)
			g, err := g.On("A", tc.crossing)
			require.NoError(t, err)

			records, _, err := g.Generate(1000)
			require.NoError(t, err)
			for _, rec := range records {
				radial := rec.Position.Sub(geometry.Point{})
				require.InDelta(t, 2, radial.Norm(), 1e-9)
				require.InDelta(t, 1, rec.Direction.Norm(), 1e-9)
				require.Greater(t, tc.sign*radial.Unit().Dot(rec.Direction), 0.0)
			}
		})
	}
}

func TestOnTranslatedVolume(t *testing.T) {
	geo := mustGeometry(t, `{
		"World": {
			"box": 20,
			"Probe": {"sphere": 1, "position": [0, 0, 5]}
		}
	}`)
	g := New(random.NewSeeded(506), geo)
	g, err := g.On("Probe", "outgoing")
	require.NoError(t, err)

	records, _, err := g.Generate(1000)
	require.NoError(t, err)
	for _, rec := range records {
		radial := rec.Position.Sub(geometry.Point{Z: 5})
		require.InDelta(t, 1, radial.Norm(), 1e-9)
	}
}

func TestOnRejectsBadCrossing(t *testing.T) {
	geo := mustGeometry(t, `{"A": {"sphere": 2}}`)
	g := New(random.NewSeeded(1), geo)
	_, err := g.On("A", "sideways")
	assert.ErrorContains(t, err, "bad crossing direction")
}

func TestWeight(t *testing.T) {
	g := New(random.NewSeeded(1), nil).Weight(true)
	records, weights, err := g.Generate(4)
	require.NoError(t, err)
	require.Len(t, weights, 4)
	for i, w := range weights {
		assert.Equal(t, 1.0, w)
		assert.Equal(t, 1.0, records[i].Weight)
	}
}

func TestFirstEvent(t *testing.T) {
	g := New(random.NewSeeded(1), nil).FirstEvent(1000)
	records, _, err := g.Generate(3)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), records[0].Event)
	assert.Equal(t, int64(1002), records[2].Event)
}

func TestReplayFromRecordedIndex(t *testing.T) {
	geo := mustGeometry(t, `{"A": {"sphere": 2}}`)

	build := func(rng *random.Engine) Generator {
		g := New(rng, geo)
		g, err := g.Spectrum([]SpectrumLine{
			{Energy: 0.5, Intensity: 1},
			{Energy: 1.5, Intensity: 3},
		})
		require.NoError(t, err)
		g, err = g.On("A", "outgoing")
		require.NoError(t, err)
		return g
	}

	rng := random.NewSeeded(777)
	records, _, err := build(rng).Generate(10)
	require.NoError(t, err)

	// Seeking to a recorded index reproduces that event bit-identically.
	const k = 7
	replay := random.NewSeeded(777)
	replay.Seek(records[k].RandomIndex)
	replayed, _, err := build(replay).FirstEvent(records[k].Event).Generate(1)
	require.NoError(t, err)
	assert.Equal(t, records[k], replayed[0])
}
