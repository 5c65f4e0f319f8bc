package resonance

import "errors"

// Sentinel errors for precondition violations on N and on Literal.
// Factor and NewEffective wrap these with
// fmt.Errorf("resonance: invalid configuration: %w", ...) so callers
// can errors.Is against the sentinel while still getting a
// descriptive message.
var (
	ErrInvalidN        = errors.New("resonance: N must be greater than 1")
	ErrInvalidKRange   = errors.New("resonance: kLo must be in (0,1) and less than kHi < 1")
	ErrInvalidSamples  = errors.New("resonance: samples must be positive")
	ErrInvalidMSpan    = errors.New("resonance: mSpan must be non-negative")
	ErrInvalidJ        = errors.New("resonance: J must be >= 1")
	ErrInvalidThresh   = errors.New("resonance: threshold must be in (0,1]")
	ErrInvalidTimeout  = errors.New("resonance: timeout must be positive")
	ErrInvalidWorkers  = errors.New("resonance: workers must be positive")
	ErrInvalidAttenuat = errors.New("resonance: attenuation must be > 0")
)
