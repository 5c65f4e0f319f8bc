package sampling

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoldenSamplerDeterministic(t *testing.T) {
	s1 := NewGoldenSampler()
	s2 := NewGoldenSampler()

	for _, n := range []uint64{0, 1, 2, 100, 1 << 20} {
		require.Equal(t, s1.At(n), s2.At(n))
	}
}

func TestGoldenSamplerRange(t *testing.T) {
	s := NewGoldenSampler()
	for n := uint64(0); n < 10000; n++ {
		u := s.At(n)
		require.GreaterOrEqual(t, u, 0.0)
		require.Less(t, u, 1.0)
	}
}

func TestGoldenSamplerZero(t *testing.T) {
	s := NewGoldenSampler()
	require.Equal(t, 0.0, s.At(0))
}

func TestGoldenSamplerLowDiscrepancy(t *testing.T) {
	// Samples should not cluster: with the golden-ratio recurrence the
	// smallest gap among the first N samples stays on the order of 1/N
	// (about 0.0012 for N=500), so no two land within 1e-6 of each other.
	s := NewGoldenSampler()
	const n = 500
	seen := make([]float64, n)
	for i := 0; i < n; i++ {
		seen[i] = s.At(uint64(i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := seen[i] - seen[j]
			if d < 0 {
				d = -d
			}
			require.Greater(t, d, 1e-6)
		}
	}
}

func TestKRange(t *testing.T) {
	require.InDelta(t, 0.25, KRange(0, 0.25, 0.45), 1e-12)
	require.InDelta(t, 0.45, KRange(1, 0.25, 0.45), 1e-12)
	require.InDelta(t, 0.35, KRange(0.5, 0.25, 0.45), 1e-12)
}
