package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicSequence(t *testing.T) {
	a := NewSeeded(123)
	b := NewSeeded(123)

	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.Uniform01(), b.Uniform01())
	}
	assert.Equal(t, uint64(1000), a.Index())
}

func TestSeedsDiverge(t *testing.T) {
	a := NewSeeded(1)
	b := NewSeeded(2)
	assert.NotEqual(t, a.Uniform01(), b.Uniform01())
}

func TestSeekReplaysBitIdentically(t *testing.T) {
	e := NewSeeded(42)
	sequence := e.Uniform01N(100)

	e.Seek(37)
	assert.Equal(t, sequence[37], e.Uniform01())
	assert.Equal(t, uint64(38), e.Index())

	e.Seek(0)
	assert.Equal(t, sequence, e.Uniform01N(100))
}

func TestReset(t *testing.T) {
	e := NewSeeded(7)
	first := e.Uniform01()

	e.Reset(7)
	assert.Equal(t, uint64(0), e.Index())
	assert.Equal(t, first, e.Uniform01())

	e.Reset(8)
	assert.Equal(t, uint64(8), e.Seed())
	assert.NotEqual(t, first, e.Uniform01())
}

func TestOpenUnitInterval(t *testing.T) {
	e := NewSeeded(99)
	var sum float64
	const n = 100000
	for i := 0; i < n; i++ {
		v := e.Uniform01()
		require.Greater(t, v, 0.0)
		require.Less(t, v, 1.0)
		sum += v
	}
	// The mean of n uniform deviates is 0.5 with sigma 1/sqrt(12 n).
	assert.InDelta(t, 0.5, sum/n, 0.005)
}

func TestUniform01NAdvances(t *testing.T) {
	e := NewSeeded(5)
	out := e.Uniform01N(10)
	assert.Len(t, out, 10)
	assert.Equal(t, uint64(10), e.Index())

	e.Seek(3)
	assert.Equal(t, out[3], e.Uniform01())
}
