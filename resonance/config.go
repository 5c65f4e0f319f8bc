package resonance

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/zfifteen/geofac/resonance/internal/numeric"
)

// Literal is the unchecked, user-facing baseline configuration. Its
// public fields are meant to be set literally in Go code or decoded
// from whatever configuration format a caller owns; Literal itself
// performs no validation. This mirrors the teacher's
// rlwe.ParametersLiteral / rlwe.Parameters split: Literal is the raw
// input, Effective is the checked, defaulted, derived result.
//
// Every numeric field other than Precision substitutes its documented
// default when left at its zero value (so an explicit MSpan0 of 0 also
// becomes 180); a zero Precision means the floor 2*bits+150 alone.
// EnableScaleAdaptive is the exception: a zero-value Literal has it
// false, and only NewLiteral sets its default of true.
type Literal struct {
	Precision            int           // configuredP; 0 uses the floor 2*bits+150 only.
	Samples0             int           // default 3000
	MSpan0               int           // default 180
	J                    int           // default 6
	Threshold0           float64       // default 0.92
	KLo0, KHi0           float64       // defaults 0.25, 0.45
	Timeout0             time.Duration // default 600s
	Attenuation          float64       // default 0.05
	BaselineBits         int           // default 30
	Workers              int           // default runtime.NumCPU()
	EnableScaleAdaptive  bool
	EnableShellExclusion bool
	EnableDiagnostics    bool
	Shell                ShellFilter // nil uses AdmitAll
}

// defaulted returns a copy of l with every zero-valued optional field
// replaced by its documented default.
func (l Literal) defaulted() Literal {
	if l.Samples0 == 0 {
		l.Samples0 = 3000
	}
	if l.MSpan0 == 0 {
		l.MSpan0 = 180
	}
	if l.J == 0 {
		l.J = 6
	}
	if l.Threshold0 == 0 {
		l.Threshold0 = 0.92
	}
	if l.KLo0 == 0 {
		l.KLo0 = 0.25
	}
	if l.KHi0 == 0 {
		l.KHi0 = 0.45
	}
	if l.Timeout0 == 0 {
		l.Timeout0 = 600 * time.Second
	}
	if l.Attenuation == 0 {
		l.Attenuation = 0.05
	}
	if l.BaselineBits == 0 {
		l.BaselineBits = 30
	}
	if l.Workers == 0 {
		l.Workers = runtime.NumCPU()
	}
	// EnableScaleAdaptive defaults to true; since Go's bool zero value
	// is false and Literal has no way to distinguish "unset" from
	// "explicitly false" without a pointer, the convention here is
	// that constructing Literal through NewLiteral (not an empty
	// struct literal) is required to get the documented default.
	return l
}

// NewLiteral returns a Literal pre-populated with every documented
// default, including EnableScaleAdaptive=true, which the zero value
// of Literal cannot represent.
func NewLiteral() Literal {
	l := Literal{EnableScaleAdaptive: true}
	return l.defaulted()
}

func (l Literal) validate() error {
	if l.KLo0 <= 0 || l.KHi0 >= 1 || l.KLo0 >= l.KHi0 {
		return ErrInvalidKRange
	}
	if l.Samples0 <= 0 {
		return ErrInvalidSamples
	}
	if l.MSpan0 < 0 {
		return ErrInvalidMSpan
	}
	if l.J < 1 {
		return ErrInvalidJ
	}
	if l.Threshold0 <= 0 || l.Threshold0 > 1 {
		return ErrInvalidThresh
	}
	if l.Timeout0 <= 0 {
		return ErrInvalidTimeout
	}
	if l.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if l.Attenuation <= 0 {
		return ErrInvalidAttenuat
	}
	return nil
}

// Effective is the checked, defaulted, scale-adaptively-derived
// configuration a search invocation actually runs with. Its fields
// are private and immutable; construct one via NewEffective.
type Effective struct {
	precision            int
	bits                 int
	samples              int
	mSpan                int
	j                    int
	threshold            float64
	kLo, kHi             float64
	timeout              time.Duration
	workers              int
	enableShellExclusion bool
	enableDiagnostics    bool
	shell                ShellFilter
	baselineBits         int
}

// NewEffective validates lit, substitutes documented defaults, and
// derives the effective configuration for N's bit length per the
// scale-adaptive rules (or passes cfg0 through unchanged when
// EnableScaleAdaptive is false).
func NewEffective(lit Literal, bits int) (Effective, error) {
	lit = lit.defaulted()
	if err := lit.validate(); err != nil {
		return Effective{}, fmt.Errorf("resonance: invalid configuration: %w", err)
	}

	shell := lit.Shell
	if shell == nil {
		shell = AdmitAll{}
	}

	eff := Effective{
		precision:            DerivePrecision(lit.Precision, bits),
		bits:                 bits,
		j:                    lit.J,
		workers:              lit.Workers,
		enableShellExclusion: lit.EnableShellExclusion,
		enableDiagnostics:    lit.EnableDiagnostics,
		shell:                shell,
		baselineBits:         lit.BaselineBits,
	}

	if !lit.EnableScaleAdaptive {
		eff.samples = lit.Samples0
		eff.mSpan = lit.MSpan0
		eff.threshold = lit.Threshold0
		eff.kLo, eff.kHi = lit.KLo0, lit.KHi0
		eff.timeout = lit.Timeout0
		return eff, nil
	}

	r := float64(bits) / float64(lit.BaselineBits)
	if r <= 0 {
		r = 1
	}

	eff.samples = int(math.Round(float64(lit.Samples0) * math.Pow(r, 1.5)))
	eff.mSpan = int(math.Round(float64(lit.MSpan0) * r))

	threshold := lit.Threshold0 - math.Log2(r)*lit.Attenuation
	eff.threshold = numeric.Clamp(threshold, 0.5, 1.0)

	const epsGuard = 1e-6
	c := (lit.KLo0 + lit.KHi0) / 2
	w := ((lit.KHi0 - lit.KLo0) / 2) / math.Sqrt(r)
	eff.kLo = math.Max(epsGuard, c-w)
	eff.kHi = math.Min(1-epsGuard, c+w)

	eff.timeout = time.Duration(float64(lit.Timeout0) * r * r)

	if eff.samples < 1 {
		eff.samples = 1
	}
	if eff.mSpan < 0 {
		eff.mSpan = 0
	}

	return eff, nil
}

func (e Effective) Precision() int         { return e.precision }
func (e Effective) Bits() int              { return e.bits }
func (e Effective) Samples() int           { return e.samples }
func (e Effective) MSpan() int             { return e.mSpan }
func (e Effective) J() int                 { return e.j }
func (e Effective) Threshold() float64     { return e.threshold }
func (e Effective) KLo() float64           { return e.kLo }
func (e Effective) KHi() float64           { return e.kHi }
func (e Effective) Timeout() time.Duration { return e.timeout }
func (e Effective) Workers() int           { return e.workers }
func (e Effective) ShellExclusionOn() bool { return e.enableShellExclusion }
func (e Effective) DiagnosticsOn() bool    { return e.enableDiagnostics }
func (e Effective) Shell() ShellFilter     { return e.shell }
func (e Effective) BaselineBits() int      { return e.baselineBits }
