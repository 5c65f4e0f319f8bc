// Package eventlog adapts resonance.EventSink onto a structured
// logger, in the style of the example corpus's zerolog-based CLI
// logging wrapper. The resonance package itself never imports this
// package or zerolog: a caller who wants observability constructs a
// Sink and passes it into resonance.Factor explicitly, preserving
// spec.md §9's "no implicit global logger" rule.
package eventlog

import (
	"github.com/rs/zerolog"

	"github.com/zfifteen/geofac/resonance"
)

// Sink logs resonance search events through a zerolog.Logger.
type Sink struct {
	logger zerolog.Logger
}

// New returns a Sink that writes events through logger.
func New(logger zerolog.Logger) *Sink {
	return &Sink{logger: logger}
}

// SampleProgress logs a debug event every progressEvery samples to
// avoid flooding the log at high sample counts; resonance.Factor
// calls SampleProgress once per admitted sample, so Sink itself
// throttles.
func (s *Sink) SampleProgress(n, total int) {
	const progressEvery = 250
	if n%progressEvery != 0 {
		return
	}
	s.logger.Debug().
		Int("sample", n).
		Int("total", total).
		Msg("sample_progress")
}

// CandidateHit logs an info event for every (k, m) pair that cleared
// the amplitude threshold.
func (s *Sink) CandidateHit(n, m int, amplitude float64) {
	s.logger.Info().
		Int("sample", n).
		Int("m", m).
		Float64("amplitude", amplitude).
		Msg("candidate_hit")
}

// FailureClass logs a debug event for a recovered internal failure
// (ZERO, OVERFLOW, NOT_DIVISIBLE); these are never surfaced as a
// Result, only as diagnostics and, here, log lines.
func (s *Sink) FailureClass(class string) {
	s.logger.Debug().
		Str("class", class).
		Msg("failure_class")
}

var _ resonance.EventSink = (*Sink)(nil)
