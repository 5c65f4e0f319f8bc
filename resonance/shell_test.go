package resonance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdmitAllAdmitsEverything(t *testing.T) {
	a := AdmitAll{}
	for _, k := range []float64{0, 0.1, 0.25, 0.45, 0.999, 1.0} {
		require.True(t, a.Admit(k, 0.25, 0.45))
	}
}

func TestUniformShellDeterministicAndIdempotent(t *testing.T) {
	u := UniformShell{Bins: 100}
	for _, k := range []float64{0.25, 0.3, 0.33, 0.4, 0.449} {
		first := u.Admit(k, 0.25, 0.45)
		second := u.Admit(k, 0.25, 0.45)
		require.Equal(t, first, second, "Admit must be idempotent for k=%v", k)
	}
}

// P: the shell exclusion predicate must admit a nonzero fraction of
// [kLo, kHi] comfortably above the documented 25% floor, so the search
// is never starved.
func TestUniformShellAdmitsAboveFloor(t *testing.T) {
	u := UniformShell{Bins: 100}
	kLo, kHi := 0.25, 0.45
	const n = 100000
	admitted := 0
	for i := 0; i < n; i++ {
		k := kLo + (kHi-kLo)*float64(i)/float64(n)
		if u.Admit(k, kLo, kHi) {
			admitted++
		}
	}
	frac := float64(admitted) / float64(n)
	require.GreaterOrEqual(t, frac, 0.25)
	require.InDelta(t, 0.75, frac, 0.02)
}

func TestUniformShellDefaultsBinsWhenUnset(t *testing.T) {
	u := UniformShell{}
	// Must not panic and must behave like Bins=100.
	require.Equal(t, UniformShell{Bins: 100}.Admit(0.3, 0.25, 0.45), u.Admit(0.3, 0.25, 0.45))
}

func TestUniformShellDegenerateRange(t *testing.T) {
	u := UniformShell{Bins: 100}
	require.True(t, u.Admit(0.3, 0.5, 0.5))
}

func TestUniformShellTotalAcrossFullRange(t *testing.T) {
	u := UniformShell{Bins: 8}
	// Admit must return a boolean (never panic) across the full closed
	// interval, including the exact endpoints.
	require.NotPanics(t, func() {
		u.Admit(0.25, 0.25, 0.45)
		u.Admit(0.45, 0.25, 0.45)
	})
}
