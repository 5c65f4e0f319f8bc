package resonance

import (
	"encoding/binary"
	"math/big"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/montanaflynn/stats"
	"github.com/zeebo/blake3"
)

const histogramBins = 64

// diagnosticsAccumulator collects bounded-size counters during a
// search invocation. Every field it mutates during the run is either
// atomic or protected by its own mutex so the m-sweep's worker
// goroutines can record into it without a shared lock on the hot
// path (spec.md §5: diagnostic counters must use atomic increments
// when the m-sweep is parallelized).
type diagnosticsAccumulator struct {
	enabled bool

	samplesProcessed  atomic.Int64
	candidatesTested  atomic.Int64
	kernelEvaluations atomic.Int64

	histMu  sync.Mutex
	hist    [histogramBins]int64
	classMu sync.Mutex
	classes map[string]int64
}

func newDiagnosticsAccumulator(enabled bool) *diagnosticsAccumulator {
	return &diagnosticsAccumulator{
		enabled: enabled,
		classes: make(map[string]int64, 4),
	}
}

func (d *diagnosticsAccumulator) recordAmplitude(a float64) {
	if !d.enabled {
		return
	}
	bin := int(a * float64(histogramBins))
	if bin >= histogramBins {
		bin = histogramBins - 1
	}
	if bin < 0 {
		bin = 0
	}
	d.histMu.Lock()
	d.hist[bin]++
	d.histMu.Unlock()
}

func (d *diagnosticsAccumulator) recordFailureClass(class string) {
	if !d.enabled {
		return
	}
	d.classMu.Lock()
	d.classes[class]++
	d.classMu.Unlock()
}

func (d *diagnosticsAccumulator) incKernelEvaluations() {
	if d.enabled {
		d.kernelEvaluations.Add(1)
	}
}

func (d *diagnosticsAccumulator) incCandidatesTested() {
	if d.enabled {
		d.candidatesTested.Add(1)
	}
}

func (d *diagnosticsAccumulator) incSamplesProcessed() {
	if d.enabled {
		d.samplesProcessed.Add(1)
	}
}

// AmplitudeSummary holds aggregate statistics over the bounded
// amplitude histogram, computed with montanaflynn/stats over the 64
// bin occupancy counts (never over raw per-sample amplitudes, which
// this engine never retains).
type AmplitudeSummary struct {
	MeanOccupancy   float64
	StdDevOccupancy float64
	Histogram       [histogramBins]int64
}

// Diagnostics is the immutable, bounded-size snapshot a completed
// search invocation returns when diagnostics are enabled.
type Diagnostics struct {
	SamplesProcessed  int64
	CandidatesTested  int64
	KernelEvaluations int64
	FailureClasses    map[string]int64
	Amplitude         AmplitudeSummary
	Fingerprint       [32]byte
}

func (d *diagnosticsAccumulator) snapshot(n *big.Int, bits int, eff Effective) *Diagnostics {
	if !d.enabled {
		return nil
	}

	classes := make(map[string]int64, len(d.classes))
	d.classMu.Lock()
	for k, v := range d.classes {
		classes[k] = v
	}
	d.classMu.Unlock()

	d.histMu.Lock()
	hist := d.hist
	d.histMu.Unlock()

	occupancy := make([]float64, histogramBins)
	for i, c := range hist {
		occupancy[i] = float64(c)
	}
	mean, _ := stats.Mean(occupancy)
	stddev, _ := stats.StandardDeviation(occupancy)

	snap := &Diagnostics{
		SamplesProcessed:  d.samplesProcessed.Load(),
		CandidatesTested:  d.candidatesTested.Load(),
		KernelEvaluations: d.kernelEvaluations.Load(),
		FailureClasses:    classes,
		Amplitude: AmplitudeSummary{
			MeanOccupancy:   mean,
			StdDevOccupancy: stddev,
			Histogram:       hist,
		},
	}
	snap.Fingerprint = fingerprint(n, bits, eff, snap)
	return snap
}

// fingerprint is a deterministic blake3 hash over the invocation's
// defining inputs and outcome counters, giving P9 (idempotence) a
// cheap single-value equality check in place of a full deep-equal.
func fingerprint(n *big.Int, bits int, eff Effective, d *Diagnostics) [32]byte {
	h := blake3.New()

	var buf [8]byte
	writeInt := func(v int64) {
		binary.BigEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}

	_, _ = h.Write(n.Bytes())
	writeInt(int64(bits))
	writeInt(int64(eff.Samples()))
	writeInt(int64(eff.MSpan()))
	writeInt(int64(eff.J()))
	writeInt(d.SamplesProcessed)
	writeInt(d.CandidatesTested)
	writeInt(d.KernelEvaluations)

	for _, c := range d.Amplitude.Histogram {
		writeInt(c)
	}

	classes := make([]string, 0, len(d.FailureClasses))
	for class := range d.FailureClasses {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	for _, class := range classes {
		_, _ = h.Write([]byte(class))
		writeInt(d.FailureClasses[class])
	}

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
