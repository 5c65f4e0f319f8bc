package resonance

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/zfifteen/geofac/bignum"
	"github.com/zfifteen/geofac/sampling"
)

// Factor is the search engine's single entry point. It drives the QMC
// sampler over k in [kLo, kHi), sweeps m in [-mSpan, +mSpan] for each
// admitted k, evaluates the Dirichlet kernel, projects high-amplitude
// (k, m) pairs to integer candidates, and certifies them by division.
// It returns on the first certified candidate or when the derived
// budget (timeout or sample count) is exhausted, or when ctx is
// cancelled.
//
// ctx carries cancellation (spec.md's "optional cancellation signal");
// a nil sink is replaced with NopSink.
func Factor(ctx context.Context, N *big.Int, lit Literal, sink EventSink) (Result, error) {
	if sink == nil {
		sink = NopSink{}
	}
	if N == nil || N.Cmp(big.NewInt(1)) <= 0 {
		return Result{}, fmt.Errorf("resonance: invalid configuration: %w", ErrInvalidN)
	}

	bits := N.BitLen()
	eff, err := NewEffective(lit, bits)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	diag := newDiagnosticsAccumulator(eff.DiagnosticsOn())
	c := newConstants(eff.Precision())
	lnN := bignum.Log(bignum.FromInt(N, c.precBits))
	sampler := sampling.NewGoldenSampler()
	deadline := start.Add(eff.Timeout())

	for n := 0; n < eff.Samples(); n++ {
		select {
		case <-ctx.Done():
			return failure(ReasonCancelled, start, eff, diag, N, bits), nil
		default:
		}
		if time.Now().After(deadline) {
			return failure(ReasonTimeout, start, eff, diag, N, bits), nil
		}

		u := sampler.At(uint64(n))
		k := sampling.KRange(u, eff.KLo(), eff.KHi())

		if eff.ShellExclusionOn() && !eff.Shell().Admit(k, eff.KLo(), eff.KHi()) {
			continue
		}

		sink.SampleProgress(n, eff.Samples())

		if p, q, found := sweepM(c, lnN, N, k, eff, diag, sink, n); found {
			return success(p, q, start, eff, diag, N, bits), nil
		}

		diag.incSamplesProcessed()
	}

	return failure(ReasonSamplesExhausted, start, eff, diag, N, bits), nil
}

// mHit is a certified candidate found at a given m offset within one
// sample's m-sweep.
type mHit struct {
	m    int
	p, q *big.Int
}

// sweepM evaluates every integer m in [-mSpan, +mSpan] for the given
// k, splitting the range across eff.Workers() goroutines in
// contiguous chunks (grounded on the teacher's ring/ring_automorphism.go
// task-splitting idiom). All workers run to completion for this
// sample before a winner is chosen, so the §4.8 tie-break (smallest
// |m|, ties toward positive m) is applied deterministically over the
// full set of hits rather than over a racy first-arrival.
func sweepM(c constants, lnN *big.Float, N *big.Int, k float64, eff Effective, diag *diagnosticsAccumulator, sink EventSink, sampleIdx int) (p, q *big.Int, found bool) {
	span := eff.MSpan()
	total := 2*span + 1
	workers := eff.Workers()
	if workers > total {
		workers = total
	}
	if workers < 1 {
		workers = 1
	}

	var hits []mHit
	var mu sync.Mutex
	var wg sync.WaitGroup

	tasks := total
	var cursor int
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		chunk := (tasks + workers - w - 1) / (workers - w)
		startIdx, endIdx := cursor, cursor+chunk
		cursor = endIdx
		tasks -= chunk

		go func(startIdx, endIdx int) {
			defer wg.Done()
			for idx := startIdx; idx < endIdx; idx++ {
				m := idx - span
				evalM(c, lnN, N, k, m, eff, diag, sink, sampleIdx, &hits, &mu)
			}
		}(startIdx, endIdx)
	}
	wg.Wait()

	if len(hits) == 0 {
		return nil, nil, false
	}
	best := hits[0]
	for _, h := range hits[1:] {
		if absInt(h.m) < absInt(best.m) {
			best = h
		} else if absInt(h.m) == absInt(best.m) && h.m > best.m {
			best = h
		}
	}
	return best.p, best.q, true
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// evalM evaluates the kernel at (k, m), and on a high-amplitude hit,
// projects and certifies a candidate, appending any certified result
// to hits under mu.
func evalM(c constants, lnN *big.Float, N *big.Int, k float64, m int, eff Effective, diag *diagnosticsAccumulator, sink EventSink, sampleIdx int, hits *[]mHit, mu *sync.Mutex) {
	phi := c.phase(m, k)
	diag.incKernelEvaluations()
	a := c.amplitude(phi, eff.J())
	diag.recordAmplitude(a)

	if a < eff.Threshold() {
		return
	}

	sink.CandidateHit(sampleIdx, m, a)
	diag.incCandidatesTested()

	pHat, ok, class := snap(lnN, phi, N)
	if !ok {
		diag.recordFailureClass(class)
		sink.FailureClass(class)
		return
	}

	for _, delta := range []int64{0, -1, 1} {
		p := new(big.Int).Add(pHat, big.NewInt(delta))
		if p.Cmp(big.NewInt(1)) <= 0 || p.Cmp(N) >= 0 {
			continue
		}
		mod := new(big.Int).Mod(N, p)
		if mod.Sign() != 0 {
			continue
		}
		q := new(big.Int).Div(N, p)
		if p.Cmp(q) > 0 {
			p, q = q, p
		}
		mu.Lock()
		*hits = append(*hits, mHit{m: m, p: p, q: q})
		mu.Unlock()
		return
	}

	diag.recordFailureClass(classNotDivisible)
	sink.FailureClass(classNotDivisible)
}

func success(p, q *big.Int, start time.Time, eff Effective, diag *diagnosticsAccumulator, N *big.Int, bits int) Result {
	return Result{
		Status:      StatusSuccess,
		P:           p,
		Q:           q,
		Elapsed:     time.Since(start),
		Config:      eff,
		Diagnostics: diag.snapshot(N, bits, eff),
	}
}

func failure(reason FailureReason, start time.Time, eff Effective, diag *diagnosticsAccumulator, N *big.Int, bits int) Result {
	return Result{
		Status:      StatusFailure,
		Reason:      reason,
		Elapsed:     time.Since(start),
		Config:      eff,
		Diagnostics: diag.snapshot(N, bits, eff),
	}
}
