package resonance

// ShellFilter is a pure, deterministic, total predicate over
// [kLo, kHi] used to prune k-values whose numeric shell historically
// correlates with zero candidate yield. Implementations must be
// idempotent (calling Admit twice with the same k returns the same
// answer) and must admit a documented nonzero fraction of [kLo, kHi]
// so the search is never starved.
type ShellFilter interface {
	Admit(k, kLo, kHi float64) bool
}

// AdmitAll is the default shell filter: it excludes nothing.
type AdmitAll struct{}

// Admit always returns true.
func (AdmitAll) Admit(k, kLo, kHi float64) bool { return true }

// UniformShell partitions [kLo, kHi] into Bins uniform bins and
// admits a k-value unless its bin index falls in the excluded
// residue class modulo 4 (bins %4 == 0 are excluded), admitting 75%
// of the range — comfortably above the documented 25% minimum
// admission floor.
type UniformShell struct {
	Bins int // number of uniform bins; default 100 if <= 0.
}

// Admit reports whether k's uniform bin is not excluded.
func (u UniformShell) Admit(k, kLo, kHi float64) bool {
	bins := u.Bins
	if bins <= 0 {
		bins = 100
	}
	if kHi <= kLo {
		return true
	}
	frac := (k - kLo) / (kHi - kLo)
	if frac < 0 {
		frac = 0
	}
	if frac >= 1 {
		frac = 1 - 1e-12
	}
	idx := int(frac * float64(bins))
	return idx%4 != 0
}
