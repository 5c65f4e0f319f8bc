package bignum

import "math/big"

// Sin and Cos are iterative arbitrary-precision evaluations grounded
// on the double-angle contraction used by lattigo's bettersine
// package: repeatedly halving the argument collapses the Taylor
// error geometrically, so a handful of halvings beyond the target
// precision is enough to converge. Each halving contributes roughly
// 0.602 decimal digits of accuracy (Johansson, "An elementary
// algorithm to evaluate trigonometric functions to high precision",
// 2018), so the halving count is sized from the caller's precision
// rather than hardcoded.

// Cos returns cos(x) at x's precision. x should already be reduced to
// a principal angle by the caller; Cos does not reduce its argument.
func Cos(x *big.Float) *big.Float {
	prec := x.Prec()
	k := halvings(prec)

	half := NewFloat(0.5, prec)
	t := new(big.Float).SetPrec(prec).Set(half)
	for i := 1; i < k-1; i++ {
		t.Mul(t, half)
	}

	s := new(big.Float).SetPrec(prec).Mul(x, t)
	s.Mul(s, x)
	s.Mul(s, t)

	four := NewFloat(4, prec)
	tmp := new(big.Float).SetPrec(prec)
	for i := 1; i < k; i++ {
		tmp.Sub(four, s)
		s.Mul(s, tmp)
	}

	cos := new(big.Float).SetPrec(prec).Quo(s, NewFloat(2, prec))
	cos.Sub(NewFloat(1, prec), cos)
	return cos
}

// Sin returns sin(x) at x's precision via sin(x) = sqrt(1-cos(x)^2),
// sign-corrected to match x's own sign in (-pi, pi].
func Sin(x *big.Float) *big.Float {
	prec := x.Prec()
	c := Cos(x)

	sq := new(big.Float).SetPrec(prec).Mul(c, c)
	one := NewFloat(1, prec)
	sinSq := new(big.Float).SetPrec(prec).Sub(one, sq)
	if sinSq.Sign() < 0 {
		// Rounding noise only; the true value is clamped at 0.
		sinSq.SetFloat64(0)
	}
	sin := new(big.Float).SetPrec(prec).Sqrt(sinSq)
	if x.Sign() < 0 {
		sin.Neg(sin)
	}
	return sin
}

// halvings returns the number of double-angle halvings needed so the
// contraction's geometric error decays below the given bit precision.
func halvings(prec uint) int {
	decimalDigits := float64(prec) * 0.30103
	k := int(decimalDigits/0.60206) + 16
	if k < 16 {
		k = 16
	}
	return k
}
