package resonance

import (
	"math/big"

	"github.com/zfifteen/geofac/bignum"
)

// snap projects (lnN, theta) to an integer factor candidate via
// p_hat = exp((lnN - theta)/2), rounded half away from zero. It
// reports ok=false when the rounded candidate is <= 1 (class is
// classZero) or >= n (class is classOverflow) — the caller must
// reject those, never reinterpret them.
//
// There is deliberately no "phase correction" shift here: an earlier
// version of this identity added 1 to the candidate when the
// fractional part exceeded 0.5, which produced systematically invalid
// candidates and was removed. Do not reintroduce it.
func snap(lnN, theta *big.Float, n *big.Int) (p *big.Int, ok bool, class string) {
	prec := lnN.Prec()
	expo := new(big.Float).SetPrec(prec).Sub(lnN, theta)
	expo.Quo(expo, bignum.NewFloat(2, prec))
	pHat := bignum.Exp(expo)

	p, ok = bignum.RoundToInt(pHat, n)
	if ok {
		return p, true, ""
	}
	// Classify off the same half-away-from-zero rounded value
	// RoundToInt rejected, not pHat's truncation: a pHat whose rounded
	// value lands at n (OVERFLOW) can still truncate to something far
	// from n, which would misclassify it as ZERO.
	rounded := bignum.Round(pHat)
	if rounded.Cmp(big.NewInt(1)) <= 0 {
		return nil, false, classZero
	}
	return nil, false, classOverflow
}

// Snap is the exported, self-contained form of the snap projector for
// introspection and property tests: it derives its own working
// precision from P (decimal digits) rather than sharing an
// invocation's cached constants.
func Snap(lnN, theta float64, n int64, P int) (p int64, ok bool) {
	bits := precisionBits(P)
	lnNf := bignum.NewFloat(lnN, bits)
	thetaF := bignum.NewFloat(theta, bits)
	nBig := big.NewInt(n)
	result, valid, _ := snap(lnNf, thetaF, nBig)
	if !valid {
		return 0, false
	}
	return result.Int64(), true
}
