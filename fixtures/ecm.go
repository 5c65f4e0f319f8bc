package fixtures

import (
	"crypto/rand"
	"math"
	"math/big"
)

// Point is an elliptic-curve point over Z/NZ, or the point at
// infinity when X == Y == nil.
type Point struct {
	X, Y *big.Int
}

var infinity = Point{}

func (p Point) isInfinity() bool { return p.X == nil && p.Y == nil }

// Weierstrass is the curve y^2 = x^3 + a*x + b (mod N), adapted from
// the teacher's ring/ecm.go: the same point-addition structure, but
// over math/big rather than the teacher's fixed-width NTT-tuned
// Barrett reduction, since fixture semiprimes are not bound to an
// NTT-friendly modulus.
type Weierstrass struct {
	a, n *big.Int
}

// Add adds P and Q on the curve modulo N. If the denominator of the
// slope is not invertible mod N, the gcd of that denominator and N is
// a factor of N (nontrivial, or N itself when the denominator is 0
// mod N); Add returns it as a non-nil *big.Int
// instead of a valid point, exactly as checkThenAdd does in the
// teacher's version.
func (w Weierstrass) Add(p, q Point) (sum Point, factor *big.Int) {
	if p.isInfinity() {
		return q, nil
	}
	if q.isInfinity() {
		return p, nil
	}

	n := w.n
	var num, den *big.Int
	if p.X.Cmp(q.X) == 0 {
		sumY := new(big.Int).Mod(new(big.Int).Add(p.Y, q.Y), n)
		if sumY.Sign() == 0 {
			return infinity, nil
		}
		// slope = (3x^2 + a) / (2y)
		num = new(big.Int).Mul(p.X, p.X)
		num.Mul(num, big.NewInt(3))
		num.Add(num, w.a)
		den = new(big.Int).Mul(p.Y, big.NewInt(2))
	} else {
		num = new(big.Int).Sub(q.Y, p.Y)
		den = new(big.Int).Sub(q.X, p.X)
	}
	num.Mod(num, n)
	den.Mod(den, n)

	g := new(big.Int).GCD(nil, nil, den, n)
	if g.Cmp(big.NewInt(1)) != 0 {
		return Point{}, g
	}

	inv := new(big.Int).ModInverse(den, n)
	s := new(big.Int).Mul(num, inv)
	s.Mod(s, n)

	xR := new(big.Int).Mul(s, s)
	xR.Sub(xR, p.X)
	xR.Sub(xR, q.X)
	xR.Mod(xR, n)

	yR := new(big.Int).Sub(p.X, xR)
	yR.Mul(yR, s)
	yR.Sub(yR, p.Y)
	yR.Mod(yR, n)

	return Point{X: xR, Y: yR}, nil
}

// scalarMul computes k*P via double-and-add, short-circuiting with
// the first nontrivial gcd any Add step surfaces.
func (w Weierstrass) scalarMul(k int64, p Point) (result Point, factor *big.Int) {
	result = infinity
	base := p
	for k > 0 {
		if k&1 == 1 {
			var f *big.Int
			result, f = w.Add(result, base)
			if f != nil {
				return Point{}, f
			}
		}
		var f *big.Int
		base, f = w.Add(base, base)
		if f != nil {
			return Point{}, f
		}
		k >>= 1
	}
	return result, nil
}

// newRandomCurve picks a random a, x, y mod N and derives b from the
// curve equation, retrying on the degenerate discriminant case, just
// as the teacher's NewRandomWeierstrassCurve does.
func newRandomCurve(n *big.Int) (Weierstrass, Point, error) {
	for {
		a, err := rand.Int(rand.Reader, n)
		if err != nil {
			return Weierstrass{}, Point{}, err
		}
		x, err := rand.Int(rand.Reader, n)
		if err != nil {
			return Weierstrass{}, Point{}, err
		}
		y, err := rand.Int(rand.Reader, n)
		if err != nil {
			return Weierstrass{}, Point{}, err
		}

		// discriminant check: 4a^3 + 27b^2 != 0 mod N, where
		// b = y^2 - x^3 - a*x is implied; in practice this only
		// requires a != 0 and gcd(a, N) == 1.
		if a.Sign() == 0 {
			continue
		}
		g := new(big.Int).GCD(nil, nil, a, n)
		if g.Cmp(big.NewInt(1)) != 0 {
			continue
		}
		return Weierstrass{a: a, n: n}, Point{X: x, Y: y}, nil
	}
}

// FactorizeECM attempts to find a nontrivial factor of N using
// Lenstra's elliptic-curve method. It exists only to cross-check
// fixtures.NewSemiprime's output in tests and is never reachable from
// the resonance package.
func FactorizeECM(n *big.Int, maxCurves int) *big.Int {
	bound := smoothnessBound(n)
	for c := 0; c < maxCurves; c++ {
		curve, g, err := newRandomCurve(n)
		if err != nil {
			continue
		}
		p := g
		found := (*big.Int)(nil)
		for k := int64(2); k <= bound; k++ {
			var factor *big.Int
			p, factor = curve.scalarMul(k, p)
			if factor != nil {
				found = factor
				break
			}
		}
		if found != nil && found.Cmp(n) != 0 && found.Cmp(big.NewInt(1)) != 0 {
			return found
		}
	}
	return nil
}

// smoothnessBound mirrors the teacher's B = exp(sqrt(2*ln(N)*ln(ln(N))))
// sub-exponential bound, capped to keep fixture tests fast.
func smoothnessBound(n *big.Int) int64 {
	nf := new(big.Float).SetInt(n)
	f, _ := nf.Float64()
	lnN := math.Log(f)
	b := math.Exp(math.Sqrt(2 * lnN * math.Log(lnN)))
	if b > 20000 {
		b = 20000
	}
	if b < 100 {
		b = 100
	}
	return int64(b)
}
