package resonance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func baseLiteral() Literal {
	l := NewLiteral()
	l.BaselineBits = 30
	return l
}

// S6: precision floor at the documented bit widths.
func TestNewEffectivePrecisionFloor(t *testing.T) {
	lit := baseLiteral()
	lit.EnableScaleAdaptive = false
	lit.Precision = 240

	eff, err := NewEffective(lit, 30)
	require.NoError(t, err)
	require.Equal(t, 240, eff.Precision())

	eff127, err := NewEffective(lit, 127)
	require.NoError(t, err)
	require.Equal(t, 404, eff127.Precision())
}

// P5: as the bit-length ratio r = bits/baselineBits increases, samples
// and mSpan strictly increase, threshold is non-increasing and stays
// within [0.5, 1], the k-range half-width strictly shrinks, and the
// timeout strictly increases.
func TestScaleAdaptiveMonotonicity(t *testing.T) {
	lit := baseLiteral()
	lit.EnableScaleAdaptive = true

	bitsSeq := []int{30, 60, 90, 127, 256, 512}
	var prev Effective
	for i, bits := range bitsSeq {
		eff, err := NewEffective(lit, bits)
		require.NoError(t, err)

		require.GreaterOrEqual(t, eff.Threshold(), 0.5)
		require.LessOrEqual(t, eff.Threshold(), 1.0)

		halfWidth := (eff.KHi() - eff.KLo()) / 2
		require.Greater(t, eff.KLo(), 0.0)
		require.Less(t, eff.KHi(), 1.0)

		if i > 0 {
			require.Greater(t, eff.Samples(), prev.Samples(), "samples must strictly increase at bits=%d", bits)
			require.Greater(t, eff.MSpan(), prev.MSpan(), "mSpan must strictly increase at bits=%d", bits)
			require.LessOrEqual(t, eff.Threshold(), prev.Threshold(), "threshold must not increase at bits=%d", bits)
			prevHalfWidth := (prev.KHi() - prev.KLo()) / 2
			require.Less(t, halfWidth, prevHalfWidth, "k-range half-width must shrink at bits=%d", bits)
			require.Greater(t, eff.Timeout(), prev.Timeout(), "timeout must strictly increase at bits=%d", bits)
		}
		prev = eff
	}
}

func TestNewEffectiveScaleAdaptiveDisabledPassesThrough(t *testing.T) {
	lit := baseLiteral()
	lit.EnableScaleAdaptive = false
	lit.Samples0 = 1234
	lit.MSpan0 = 99
	lit.Threshold0 = 0.8
	lit.KLo0, lit.KHi0 = 0.2, 0.4

	eff, err := NewEffective(lit, 512)
	require.NoError(t, err)
	require.Equal(t, 1234, eff.Samples())
	require.Equal(t, 99, eff.MSpan())
	require.Equal(t, 0.8, eff.Threshold())
	require.Equal(t, 0.2, eff.KLo())
	require.Equal(t, 0.4, eff.KHi())
}

func TestNewEffectiveRejectsInvalidLiteral(t *testing.T) {
	lit := baseLiteral()
	lit.KLo0, lit.KHi0 = 0.6, 0.5
	_, err := NewEffective(lit, 64)
	require.ErrorIs(t, err, ErrInvalidKRange)
}

func TestLiteralDefaults(t *testing.T) {
	lit := NewLiteral()
	require.Equal(t, 3000, lit.Samples0)
	require.Equal(t, 180, lit.MSpan0)
	require.Equal(t, 6, lit.J)
	require.Equal(t, 0.92, lit.Threshold0)
	require.Equal(t, 0.25, lit.KLo0)
	require.Equal(t, 0.45, lit.KHi0)
	require.True(t, lit.EnableScaleAdaptive)
	require.Greater(t, lit.Workers, 0)
}
