package resolution

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/resolution"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/civildate"
)

// engine implements resolution.Resolver as an ordered list of rules. Each
// rule inspects one precedence level and either claims the day or passes;
// the first claim wins. Keeping the levels as named rules keeps the
// precedence auditable and testable one rule at a time.
type engine struct {
	diag resolution.DiagnosticFunc
}

// NewResolver builds the status resolver. diag may be nil to discard
// diagnostics.
func NewResolver(diag resolution.DiagnosticFunc) resolution.Resolver {
	return &engine{diag: diag}
}

func (e *engine) emit(date, code, message string) {
	if e.diag != nil {
		e.diag(resolution.Diagnostic{Date: date, Code: code, Message: message})
	}
}

// ruleInput is the normalized view of one day shared by all rules.
type ruleInput struct {
	date     string
	policy   resolution.WeeklyOffPolicy
	log      *resolution.AttendanceLog
	holidays []resolution.Holiday
	leave    *resolution.LeaveRequest
}

type rule func(e *engine, in ruleInput) *resolution.ResolvedStatus

// Precedence order. Holiday beats leave beats weekly-off beats anything the
// log says; absent and the trust-the-log fallback are terminal.
var rules = []rule{
	holidayRule,
	leaveRule,
	weeklyOffRule,
	attendanceLogRule,
	absentRule,
	trustLogRule,
}

// Resolve implements resolution.Resolver.
func (e *engine) Resolve(input resolution.Input) (resolution.ResolvedStatus, error) {
	if input.Date == "" {
		return resolution.ResolvedStatus{}, resolution.ErrMissingDate
	}

	date, err := civildate.Normalize(input.Date)
	if err != nil {
		if errors.Is(err, civildate.ErrInvalidDate) {
			return resolution.ResolvedStatus{}, fmt.Errorf("%w: %q", resolution.ErrInvalidDate, input.Date)
		}
		return resolution.ResolvedStatus{}, err
	}

	policy, known := resolution.SanitizePolicy(input.SaturdayPolicy)
	if !known {
		e.emit(date, resolution.DiagUnknownPolicy,
			fmt.Sprintf("unknown saturday policy %q, treating Saturdays as working days", input.SaturdayPolicy))
	}

	in := ruleInput{
		date:     date,
		policy:   policy,
		log:      input.Log,
		holidays: input.Holidays,
		leave:    input.LeaveRequest,
	}

	for _, r := range rules {
		if result := r(e, in); result != nil {
			return *result, nil
		}
	}

	// Unreachable: trustLogRule and absentRule are jointly total.
	return resolution.ResolvedStatus{}, fmt.Errorf("no resolution rule matched date %s", date)
}

// absentRule closes the working-day-with-nothing-recorded case. It only
// claims the day when there is no log object at all; a log that exists but
// matched no structured branch belongs to trustLogRule.
func absentRule(e *engine, in ruleInput) *resolution.ResolvedStatus {
	if in.log != nil {
		return nil
	}
	return &resolution.ResolvedStatus{
		Date:         in.date,
		Status:       resolution.StatusAbsent,
		IsAbsent:     true,
		IsWorkingDay: true,
		StatusReason: "No attendance logged",
	}
}

// trustLogRule is the terminal fallback for a log that carried neither
// sessions nor a persisted status. Forcing Absent here would punish the
// employee for upstream data inconsistency, so the persisted status is
// trusted with Present as the default, and a diagnostic flags the record.
func trustLogRule(e *engine, in ruleInput) *resolution.ResolvedStatus {
	status := resolution.StatusPresent
	if in.log.Status != nil && *in.log.Status != "" {
		status = resolution.Status(*in.log.Status)
	}
	e.emit(in.date, resolution.DiagInconsistentLog,
		"attendance log matched no resolution branch, trusting persisted status")

	return &resolution.ResolvedStatus{
		Date:         in.date,
		Status:       status,
		IsAbsent:     status == resolution.StatusAbsent,
		IsWorkingDay: true,
		StatusReason: "Attendance log present without sessions or recorded status",
	}
}
