package resonance

import (
	"math/big"

	"github.com/zfifteen/geofac/bignum"
)

// constants bundles the working-precision values the kernel and snap
// projector both need, computed once per invocation and shared
// read-only across the engine's goroutines (safe: big.Float values
// are never mutated in place by this package after construction).
type constants struct {
	precBits uint
	pi       *big.Float
	twoPi    *big.Float
	epsScale int
}

func newConstants(P int) constants {
	bits := precisionBits(P)
	pi := bignum.Pi(bits)
	twoPi := new(big.Float).SetPrec(bits).Mul(pi, bignum.NewFloat(2, bits))
	return constants{
		precBits: bits,
		pi:       pi,
		twoPi:    twoPi,
		epsScale: EpsilonScale(P),
	}
}

// phase computes theta = twoPi*m/k at the constants' working
// precision and reduces it to its principal value.
func (c constants) phase(m int, k float64) *big.Float {
	mf := bignum.NewFloat(float64(m), c.precBits)
	kf := bignum.NewFloat(k, c.precBits)
	theta := new(big.Float).SetPrec(c.precBits).Mul(c.twoPi, mf)
	theta.Quo(theta, kf)
	return bignum.PrincipalAngle(theta, c.twoPi)
}

// amplitude evaluates the normalized Dirichlet kernel A_J(phi) for an
// already-principal-valued phase phi, returning a value in [0, 1].
// |sin(phi/2)| below 10^(-epsScale) is treated as the resonance
// singularity at phi = 0 mod 2*pi and returns 1 deliberately: these
// are exactly the peaks the search wants to gate through.
func (c constants) amplitude(phi *big.Float, J int) float64 {
	prec := c.precBits
	half := new(big.Float).SetPrec(prec).Quo(phi, bignum.NewFloat(2, prec))
	sinHalf := bignum.Sin(half)
	absSinHalf := new(big.Float).SetPrec(prec).Abs(sinHalf)

	cutoff := epsilonCutoff(c.epsScale, prec)
	if absSinHalf.Cmp(cutoff) < 0 {
		return 1
	}

	order := 2*J + 1
	orderF := bignum.NewFloat(float64(order), prec)
	num := new(big.Float).SetPrec(prec).Mul(orderF, half)
	numSin := bignum.Sin(num)
	absNumSin := new(big.Float).SetPrec(prec).Abs(numSin)

	denom := new(big.Float).SetPrec(prec).Mul(orderF, absSinHalf)
	a := new(big.Float).SetPrec(prec).Quo(absNumSin, denom)

	v, _ := a.Float64()
	if v > 1 {
		v = 1 // clamp rounding overshoot; the kernel's true range is [0,1]
	}
	if v < 0 {
		v = 0
	}
	return v
}

// epsilonCutoff returns 10^(-epsScale) at the given precision.
func epsilonCutoff(epsScale int, prec uint) *big.Float {
	ten := bignum.NewFloat(10, prec)
	cutoff := bignum.NewFloat(1, prec)
	for i := 0; i < epsScale; i++ {
		cutoff.Quo(cutoff, ten)
	}
	return cutoff
}

// Amplitude is the exported, self-contained form of the Dirichlet
// kernel for callers that want to evaluate it outside a search
// invocation (introspection, property tests): amplitude(theta, J) at
// a caller-chosen decimal precision P.
func Amplitude(theta float64, J, P int) float64 {
	c := newConstants(P)
	bits := c.precBits
	thetaF := bignum.NewFloat(theta, bits)
	phi := bignum.PrincipalAngle(thetaF, c.twoPi)
	return c.amplitude(phi, J)
}
