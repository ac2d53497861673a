package resolution

// Resolver derives the canonical status of one employee-day from the holiday
// calendar, the leave request, the weekly-off policy and the raw log. It is a
// pure function of its input: no I/O, no retained state, safe for concurrent
// use.
type Resolver interface {
	// Resolve classifies a single day. It fails only on a missing or
	// unparseable date; data-quality problems resolve to a safe default and
	// surface through the diagnostic hook instead.
	Resolve(input Input) (ResolvedStatus, error)
}

// Diagnostic is a recoverable data-quality finding emitted while resolving.
// The engine substitutes a safe default and keeps going; operators decide
// whether to chase the upstream inconsistency.
type Diagnostic struct {
	Date    string
	Code    string
	Message string
}

// Diagnostic codes
const (
	DiagUnknownPolicy   = "UNKNOWN_SATURDAY_POLICY"
	DiagNoHalfDayReason = "HALF_DAY_REASON_SYNTHESIZED"
	DiagInconsistentLog = "INCONSISTENT_ATTENDANCE_LOG"
)

// DiagnosticFunc receives diagnostics. Implementations must be safe for
// concurrent use; a nil hook discards them.
type DiagnosticFunc func(Diagnostic)
