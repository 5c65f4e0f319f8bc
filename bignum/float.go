// Package bignum is the high-precision real-arithmetic facade the
// resonance search engine is built on. Every operation it exposes
// operates on *big.Float at a caller-chosen precision; the package
// never retains state across calls, so a single facade is safely
// shared by concurrent invocations.
package bignum

import (
	"math/big"

	"github.com/ALTree/bigfloat"
)

// NewFloat returns x rounded to prec bits of precision.
func NewFloat(x float64, prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetFloat64(x)
}

// FromInt converts n to a *big.Float at prec bits of precision.
func FromInt(n *big.Int, prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetInt(n)
}

// Log returns the natural logarithm of x, x > 0, at x's precision.
func Log(x *big.Float) *big.Float {
	return bigfloat.Log(x)
}

// Exp returns e**x at x's precision.
func Exp(x *big.Float) *big.Float {
	return bigfloat.Exp(x)
}

// Sqrt returns the square root of x, x >= 0, at x's precision.
func Sqrt(x *big.Float) *big.Float {
	return new(big.Float).SetPrec(x.Prec()).Sqrt(x)
}

// Pi returns pi rounded to prec bits of precision, computed by the
// Gauss-Legendre iteration (quadratic convergence: each round roughly
// doubles the number of correct bits), so a handful of rounds suffice
// at any working precision this engine derives.
func Pi(prec uint) *big.Float {
	workPrec := prec + 64 // guard digits against rounding drift across rounds

	one := new(big.Float).SetPrec(workPrec).SetInt64(1)
	two := new(big.Float).SetPrec(workPrec).SetInt64(2)
	four := new(big.Float).SetPrec(workPrec).SetInt64(4)

	a := new(big.Float).SetPrec(workPrec).Set(one)
	b := new(big.Float).SetPrec(workPrec).Quo(one, new(big.Float).SetPrec(workPrec).Sqrt(two))
	t := new(big.Float).SetPrec(workPrec).Quo(one, four)
	p := new(big.Float).SetPrec(workPrec).Set(one)

	rounds := gaussLegendreRounds(workPrec)
	for i := 0; i < rounds; i++ {
		aNext := new(big.Float).SetPrec(workPrec).Add(a, b)
		aNext.Quo(aNext, two)

		ab := new(big.Float).SetPrec(workPrec).Mul(a, b)
		bNext := new(big.Float).SetPrec(workPrec).Sqrt(ab)

		diff := new(big.Float).SetPrec(workPrec).Sub(a, aNext)
		diff.Mul(diff, diff)
		diff.Mul(diff, p)
		tNext := new(big.Float).SetPrec(workPrec).Sub(t, diff)

		pNext := new(big.Float).SetPrec(workPrec).Mul(p, two)

		a, b, t, p = aNext, bNext, tNext, pNext
	}

	sum := new(big.Float).SetPrec(workPrec).Add(a, b)
	sum.Mul(sum, sum)
	denom := new(big.Float).SetPrec(workPrec).Mul(four, t)
	pi := new(big.Float).SetPrec(prec).Quo(sum, denom)
	return pi
}

// gaussLegendreRounds returns the number of Gauss-Legendre rounds
// needed to converge a precision of prec bits: each round roughly
// doubles the correct bits, plus a small safety margin.
func gaussLegendreRounds(prec uint) int {
	n := 1
	for bits := uint(4); bits < prec; bits *= 2 {
		n++
	}
	return n + 4
}

// PrincipalAngle reduces theta to its principal value in (-pi, pi] by
// subtracting an integer multiple of twoPi. twoPi must be 2*Pi(prec)
// at the same precision as theta, so that the reduction consumes no
// extra precision beyond what the caller already paid for pi.
func PrincipalAngle(theta, twoPi *big.Float) *big.Float {
	prec := theta.Prec()
	r := new(big.Float).SetPrec(prec).Copy(theta)

	// k = round(r / twoPi), then r -= k*twoPi, using the same high
	// precision twoPi constant the kernel evaluates against.
	q := new(big.Float).SetPrec(prec).Quo(r, twoPi)
	k := roundNearestBigFloat(q)
	shift := new(big.Float).SetPrec(prec).Mul(k, twoPi)
	r.Sub(r, shift)

	half := new(big.Float).SetPrec(prec).Quo(twoPi, NewFloat(2, prec))
	negHalf := new(big.Float).SetPrec(prec).Neg(half)

	// r is now in (-twoPi, twoPi); nudge into (-pi, pi] exactly.
	if r.Cmp(negHalf) <= 0 {
		r.Add(r, twoPi)
	} else if r.Cmp(half) > 0 {
		r.Sub(r, twoPi)
	}
	return r
}

// roundNearestBigFloat rounds x to the nearest integer, half away
// from zero, returning the result as a *big.Float at x's precision.
func roundNearestBigFloat(x *big.Float) *big.Float {
	prec := x.Prec()
	half := NewFloat(0.5, prec)
	if x.Sign() >= 0 {
		t := new(big.Float).SetPrec(prec).Add(x, half)
		i, _ := t.Int(nil)
		return new(big.Float).SetPrec(prec).SetInt(i)
	}
	t := new(big.Float).SetPrec(prec).Sub(x, half)
	i, _ := t.Int(nil)
	return new(big.Float).SetPrec(prec).SetInt(i)
}

// Round rounds x to the nearest integer, half away from zero.
func Round(x *big.Float) *big.Int {
	i, _ := roundNearestBigFloat(x).Int(nil)
	return i
}

// RoundToInt rounds x to the nearest integer, half away from zero. It
// reports ok=false (a snap-projector failure, never a panic) when the
// rounded value is <= 1 or >= n, per the snap projector's validity
// rule.
func RoundToInt(x *big.Float, n *big.Int) (p *big.Int, ok bool) {
	if x.Sign() <= 0 {
		return nil, false
	}
	i := Round(x)

	one := big.NewInt(1)
	if i.Cmp(one) <= 0 {
		return nil, false
	}
	if i.Cmp(n) >= 0 {
		return nil, false
	}
	return i, true
}
