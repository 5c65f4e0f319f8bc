package bignum

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func testFunc1(t *testing.T, name string, x float64, want func(float64) float64, got func(*big.Float) *big.Float, delta float64) {
	t.Run(name, func(t *testing.T) {
		y, _ := got(NewFloat(x, 200)).Float64()
		require.InDelta(t, want(x), y, delta)
	})
}

func TestFloat(t *testing.T) {
	testFunc1(t, "Log", 1.4142135623730951, math.Log, Log, 1e-12)
	testFunc1(t, "Exp", 1.4142135623730951, math.Exp, Exp, 1e-12)
	testFunc1(t, "Sqrt", 2, math.Sqrt, Sqrt, 1e-12)
	testFunc1(t, "Sin", 0.7853981633974483, math.Sin, Sin, 1e-12)
	testFunc1(t, "Cos", 0.7853981633974483, math.Cos, Cos, 1e-12)
	testFunc1(t, "SinNegative", -1.0471975511965976, math.Sin, Sin, 1e-12)
	testFunc1(t, "CosNegative", -1.0471975511965976, math.Cos, Cos, 1e-12)
}

func TestPi(t *testing.T) {
	pi := Pi(200)
	f, _ := pi.Float64()
	require.InDelta(t, math.Pi, f, 1e-15)
}

func TestPrincipalAngle(t *testing.T) {
	const prec = 200
	pi := Pi(prec)
	twoPi := new(big.Float).SetPrec(prec).Mul(pi, NewFloat(2, prec))

	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"exactlyPi", math.Pi, math.Pi},
		{"justOverPi", math.Pi + 0.1, math.Pi + 0.1 - 2*math.Pi},
		{"negative", -math.Pi - 0.1, -math.Pi - 0.1 + 2*math.Pi},
		{"multipleWraps", 10 * math.Pi, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			theta := NewFloat(c.in, prec)
			r := PrincipalAngle(theta, twoPi)
			got, _ := r.Float64()
			require.InDelta(t, c.want, got, 1e-9)
			require.True(t, r.Cmp(new(big.Float).SetPrec(prec).Neg(pi)) > 0)
			require.True(t, r.Cmp(pi) <= 0)
		})
	}
}

func TestRoundToInt(t *testing.T) {
	n := big.NewInt(1000)

	p, ok := RoundToInt(NewFloat(42.4, 64), n)
	require.True(t, ok)
	require.Equal(t, int64(42), p.Int64())

	p, ok = RoundToInt(NewFloat(42.5, 64), n)
	require.True(t, ok)
	require.Equal(t, int64(43), p.Int64())

	p, ok = RoundToInt(NewFloat(-42.5, 64), n)
	require.False(t, ok)
	require.Nil(t, p)

	_, ok = RoundToInt(NewFloat(1, 64), n)
	require.False(t, ok, "exactly 1 is invalid")

	_, ok = RoundToInt(NewFloat(1000, 64), n)
	require.False(t, ok, "exactly n is invalid")

	_, ok = RoundToInt(NewFloat(0, 64), n)
	require.False(t, ok)
}
