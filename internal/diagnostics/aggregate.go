package diagnostics

import "go.uber.org/multierr"

// Aggregate combines the diagnostics of kinds that should fail loudly when
// propagated as a single Go error (resolution/parse/type-mismatch) using
// go.uber.org/multierr, leaving infeasible-atom/timeout diagnostics (which
// are expected, routine outcomes of synthesis, not failures) out of the
// combined error.
func Aggregate(diags []Diagnostic) error {
	var err error
	for _, d := range diags {
		switch d.Kind {
		case KindResolution, KindParse, KindTypeMismatch:
			err = multierr.Append(err, d)
		}
	}
	return err
}
