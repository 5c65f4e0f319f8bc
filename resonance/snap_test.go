package resonance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// P1: for a known factor p of N, there exists a (k, m) such that
// snap(lnN, 2*pi*m/k) lands within {p-1, p, p+1}. Construct k, m from
// the inverse relation rather than searching for them.
func TestSnapIdentityRecoversFactor(t *testing.T) {
	const P = 120

	cases := []struct {
		name    string
		p, n    int64
		m       float64
	}{
		{"tiny", 32749, 1073217479, 1},
		{"midRange", 10000019, 100000980001501, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lnN := math.Log(float64(c.n))
			// invert: p = exp((lnN - theta)/2)  =>  theta = lnN - 2*ln(p)
			theta := lnN - 2*math.Log(float64(c.p))
			// invert theta = 2*pi*m/k  =>  k = 2*pi*m/theta
			k := 2 * math.Pi * c.m / theta
			thetaFromM := 2 * math.Pi * c.m / k

			got, ok := Snap(lnN, thetaFromM, c.n, P)
			require.True(t, ok)
			diff := got - c.p
			require.LessOrEqual(t, diff, int64(1))
			require.GreaterOrEqual(t, diff, int64(-1))
		})
	}
}

func TestSnapInvalidZero(t *testing.T) {
	// theta >> lnN drives exp((lnN-theta)/2) toward 0, landing <= 1.
	_, ok := Snap(10, 1000, 100000, 80)
	require.False(t, ok)
}

func TestSnapInvalidOverflow(t *testing.T) {
	// theta << lnN drives exp((lnN-theta)/2) above n.
	_, ok := Snap(10, -1000, 100000, 80)
	require.False(t, ok)
}

func TestSnapNoPhaseCorrection(t *testing.T) {
	// Regression guard for the historical "+1 when fractional part
	// exceeds 0.5" bug: snap must be pure half-away-from-zero
	// rounding with no extra shift.
	lnN := math.Log(1000000.0)
	theta := 0.0
	// p_hat = exp(lnN/2) = 1000 exactly in the real numbers; verify no
	// off-by-one drift from a phantom correction term.
	got, ok := Snap(lnN, theta, 1000000, 100)
	require.True(t, ok)
	require.Equal(t, int64(1000), got)
}

// P4: DerivePrecision's floor and determinism.
func TestDerivePrecision(t *testing.T) {
	require.Equal(t, 404, DerivePrecision(240, 127))
	require.Equal(t, 240, DerivePrecision(240, 30))
	require.Equal(t, 150, DerivePrecision(0, 0))

	for bits := 1; bits < 4096; bits += 37 {
		got := DerivePrecision(240, bits)
		require.GreaterOrEqual(t, got, 240)
		require.GreaterOrEqual(t, got, 2*bits+150)
		require.Equal(t, got, DerivePrecision(240, bits), "deterministic")
	}
}
