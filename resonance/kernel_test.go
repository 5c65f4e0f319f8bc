package resonance

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zfifteen/geofac/bignum"
)

// P2: amplitude is in [0,1], maximal at theta = 0 mod 2*pi, and even.
func TestAmplitudeBounds(t *testing.T) {
	thetas := []float64{0, 0.001, 0.5, 1.0, math.Pi / 2, math.Pi, 2.5, -0.5, -1.0, -math.Pi}
	for _, theta := range thetas {
		a := Amplitude(theta, 6, 80)
		require.GreaterOrEqual(t, a, 0.0)
		require.LessOrEqual(t, a, 1.0)
	}
}

func TestAmplitudeEven(t *testing.T) {
	for _, theta := range []float64{0.3, 1.1, 2.2, 3.0} {
		a := Amplitude(theta, 6, 80)
		b := Amplitude(-theta, 6, 80)
		require.InDelta(t, a, b, 1e-9)
	}
}

// P3: amplitude -> 1 as theta -> 0, within the epsilon-scale cutoff.
func TestAmplitudePeakAtZero(t *testing.T) {
	a := Amplitude(0, 6, 80)
	require.Equal(t, 1.0, a)
}

// P3, white-box: the singularity recurs at exact multiples of 2*pi,
// constructed at full working precision (a float64 theta cannot
// exercise this: float64 cannot represent 2*pi exactly, so the
// reduced phase would differ from 0 by ~1e-16, far outside the
// epsilon-scale cutoff of 1e-50 at P=80).
func TestAmplitudeSingularityAtExactPeriods(t *testing.T) {
	c := newConstants(80)
	for _, k := range []int64{1, 2, -3} {
		theta := new(big.Float).SetPrec(c.precBits).Mul(c.twoPi, big.NewFloat(float64(k)))
		phi := bignum.PrincipalAngle(theta, c.twoPi)
		a := c.amplitude(phi, 6)
		require.Equal(t, 1.0, a)
	}
}

// S5: theta=0 => 1; theta=pi, J=6 => 1/13.
func TestAmplitudeScenarioS5(t *testing.T) {
	for _, P := range []int{60, 100, 200} {
		a := Amplitude(0, 6, P)
		require.Equal(t, 1.0, a)
	}

	// theta is supplied as a float64, so it carries only float64
	// precision (~1e-16) even though the kernel evaluates it at P=200
	// decimal digits internally.
	a := Amplitude(math.Pi, 6, 200)
	require.InDelta(t, 1.0/13.0, a, 1e-12)
}

func TestEpsilonScaleCap(t *testing.T) {
	require.Equal(t, 50, EpsilonScale(50))
	require.Equal(t, 50, EpsilonScale(1000))
	require.Equal(t, 30, EpsilonScale(30))
}
