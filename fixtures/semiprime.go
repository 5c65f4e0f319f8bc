// Package fixtures builds deterministic test semiprimes and verifies
// their factors, adapting the teacher's factorization helpers
// (ring/ecm.go, utils/factorization) into test-support code. It is
// never imported by the resonance package: the search core's non-goal
// is "no fallback factoring method", and ECM here exists solely to
// construct and cross-check fixtures, not to factor
// anything the search engine is responsible for.
package fixtures

import (
	"fmt"
	"math/big"
	mrand "math/rand"
)

// IsPrime reports whether n is prime with a false-positive
// probability of at most 4^-30, via math/big's Miller-Rabin/Baillie-PSW
// test — the teacher's own utils/factorization.IsPrime wraps the same
// primitive.
func IsPrime(n *big.Int) bool {
	return n.ProbablyPrime(30)
}

// NewSemiprime deterministically generates two distinct primes p <= q,
// each approximately bitsEach bits, seeded by seed, and returns
// (p, q, p*q). The same seed and bitsEach always produce the same
// triple.
func NewSemiprime(bitsEach int, seed int64) (p, q, n *big.Int, err error) {
	src := mrand.New(mrand.NewSource(seed))
	// crypto/rand.Prime does not reproduce its output from a seeded
	// reader, so candidates are drawn from src and tested directly.
	prime := func() (*big.Int, error) {
		if bitsEach < 2 {
			return nil, fmt.Errorf("prime size must be at least 2 bits")
		}
		limit := new(big.Int).Lsh(big.NewInt(1), uint(bitsEach))
		for {
			c := new(big.Int).Rand(src, limit)
			c.SetBit(c, bitsEach-1, 1)
			if IsPrime(c) {
				return c, nil
			}
		}
	}

	p, err = prime()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fixtures: generating p: %w", err)
	}
	for {
		q, err = prime()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("fixtures: generating q: %w", err)
		}
		if q.Cmp(p) != 0 {
			break
		}
	}
	if p.Cmp(q) > 0 {
		p, q = q, p
	}
	n = new(big.Int).Mul(p, q)
	return p, q, n, nil
}
