// Package sampling provides the deterministic low-discrepancy
// sequences the resonance search engine draws its k-coordinates from,
// plus a keyed byte-stream PRNG in the teacher's utils/sampling idiom
// for callers who want a second, independent stream.
package sampling

import "math/big"

// invPhi is (sqrt(5)-1)/2, the reciprocal of the golden ratio, at
// 256 bits of precision — comfortably more than any float64 sample
// coordinate needs, computed rather than hand-copied so its
// correctness follows from Sqrt rather than a typed-in literal.
var invPhi = computeInvPhi()

func computeInvPhi() *big.Float {
	const prec = 256
	five := new(big.Float).SetPrec(prec).SetInt64(5)
	sqrt5 := new(big.Float).SetPrec(prec).Sqrt(five)
	num := new(big.Float).SetPrec(prec).Sub(sqrt5, new(big.Float).SetPrec(prec).SetInt64(1))
	return num.Quo(num, new(big.Float).SetPrec(prec).SetInt64(2))
}

// GoldenSampler produces the sequence u_n = frac(n*invPhi), n >= 0,
// the additive-recurrence low-discrepancy sequence named in the
// search engine's contract as an acceptable Sobol fallback. It is a
// pure function of its index, so At is safe to call concurrently from
// any number of goroutines with no shared state.
type GoldenSampler struct{}

// NewGoldenSampler returns a GoldenSampler. It carries no state; all
// instances are interchangeable and the zero value is usable.
func NewGoldenSampler() GoldenSampler { return GoldenSampler{} }

// At returns u_n in [0, 1) for sample index n >= 0, in O(1).
func (GoldenSampler) At(n uint64) float64 {
	prec := uint(128)
	nf := new(big.Float).SetPrec(prec).SetUint64(n)
	prod := new(big.Float).SetPrec(prec).Mul(nf, invPhi)
	frac := fractionalPart(prod)
	u, _ := frac.Float64()
	return u
}

// fractionalPart returns x - floor(x) for x >= 0.
func fractionalPart(x *big.Float) *big.Float {
	prec := x.Prec()
	i, _ := x.Int(nil)
	ifloat := new(big.Float).SetPrec(prec).SetInt(i)
	return new(big.Float).SetPrec(prec).Sub(x, ifloat)
}

// KRange maps a sample u in [0,1) onto [kLo, kHi).
func KRange(u, kLo, kHi float64) float64 {
	return kLo + u*(kHi-kLo)
}
