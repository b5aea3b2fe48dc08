package diag

// Sink collects diagnostics for one compilation unit. It is passed
// explicitly into every pass (check.New(registry, sink),
// (*ownership.Analyzer).AnalyzeFunction(fn, sink), ...) rather than held
// as a package-level global — the
// mutable-global-state anti-pattern the data model's Design Notes call
// out directly.
type Sink struct {
	diagnostics []Diagnostic
	halted      bool
}

// NewSink creates an empty Sink for a fresh compilation unit.
func NewSink() *Sink {
	return &Sink{}
}

// Emit records d. It does not affect the halt flag unless d's severity
// is Fatal.
func (s *Sink) Emit(d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
	if d.Severity == Fatal {
		s.halted = true
	}
}

// EmitFatal is Emit with the severity forced to Fatal, setting the halt
// flag Halted reports.
func (s *Sink) EmitFatal(d Diagnostic) {
	d.Severity = Fatal
	s.Emit(d)
}

// Halted reports whether a Fatal diagnostic has been recorded.
func (s *Sink) Halted() bool {
	return s.halted
}

// Diagnostics returns every diagnostic recorded so far, in emission
// order.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diagnostics
}

// WorstSeverity returns the highest severity recorded, or Info if
// nothing has been emitted — the driver's process exit code is derived
// from this (spec.md §7 propagation policy).
func (s *Sink) WorstSeverity() Severity {
	worst := Info
	for _, d := range s.diagnostics {
		if d.Severity > worst {
			worst = d.Severity
		}
	}
	return worst
}

// HasErrors reports whether any Error- or Fatal-severity diagnostic was
// recorded.
func (s *Sink) HasErrors() bool {
	return s.WorstSeverity() >= Error
}

// ExitCode maps WorstSeverity to the CLI surface's documented exit codes:
// 0 on success, 1 on any ERROR, 2 on any FATAL.
func (s *Sink) ExitCode() int {
	switch s.WorstSeverity() {
	case Fatal:
		return 2
	case Error:
		return 1
	default:
		return 0
	}
}

// CountBySeverity returns how many diagnostics of each severity were
// recorded, for summary reporting.
func (s *Sink) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, d := range s.diagnostics {
		counts[d.Severity]++
	}
	return counts
}
