package resolution

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/resolution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func newTestResolver(diags *[]resolution.Diagnostic) resolution.Resolver {
	return NewResolver(func(d resolution.Diagnostic) {
		if diags != nil {
			*diags = append(*diags, d)
		}
	})
}

func TestResolve_MissingDate(t *testing.T) {
	t.Parallel()
	r := newTestResolver(nil)

	_, err := r.Resolve(resolution.Input{})
	require.ErrorIs(t, err, resolution.ErrMissingDate)
}

func TestResolve_InvalidDate(t *testing.T) {
	t.Parallel()
	r := newTestResolver(nil)

	_, err := r.Resolve(resolution.Input{Date: "not-a-date"})
	require.ErrorIs(t, err, resolution.ErrInvalidDate)
}

func TestResolve_SundayIsWeeklyOff(t *testing.T) {
	t.Parallel()
	r := newTestResolver(nil)

	// 2025-01-26 is a Sunday.
	result, err := r.Resolve(resolution.Input{
		Date:           "2025-01-26",
		SaturdayPolicy: string(resolution.PolicyAllSaturdaysWorking),
	})
	require.NoError(t, err)

	assert.Equal(t, resolution.StatusWeeklyOff, result.Status)
	assert.True(t, result.IsWeeklyOff)
	assert.False(t, result.IsWorkingDay)
	assert.False(t, result.IsAbsent)
}

func TestResolve_SecondSaturdayOff(t *testing.T) {
	t.Parallel()
	r := newTestResolver(nil)

	// 2025-03-08 is the 2nd Saturday of March.
	result, err := r.Resolve(resolution.Input{
		Date:           "2025-03-08",
		SaturdayPolicy: string(resolution.PolicySecondFourthOff),
	})
	require.NoError(t, err)

	assert.Equal(t, resolution.StatusWeeklyOff, result.Status)
	assert.False(t, result.IsWorkingDay)
}

func TestResolve_HolidayOutranksLeave(t *testing.T) {
	t.Parallel()
	r := newTestResolver(nil)

	result, err := r.Resolve(resolution.Input{
		Date: "2025-08-15",
		Holidays: []resolution.Holiday{
			{Date: "2025-08-15", Name: "Independence Day"},
		},
		LeaveRequest: &resolution.LeaveRequest{
			Status:     resolution.LeaveStatusApproved,
			LeaveDates: []string{"2025-08-15"},
			LeaveType:  "Casual Leave",
		},
		SaturdayPolicy: string(resolution.PolicyAllSaturdaysWorking),
	})
	require.NoError(t, err)

	assert.Equal(t, resolution.StatusHoliday, result.Status)
	assert.True(t, result.IsHoliday)
	assert.False(t, result.IsLeave)
	assert.False(t, result.IsAbsent)
	assert.Equal(t, "Holiday: Independence Day", result.StatusReason)
	require.NotNil(t, result.Holiday)
	assert.Equal(t, "Independence Day", result.Holiday.Name)
}

func TestResolve_TentativeHolidayIgnored(t *testing.T) {
	t.Parallel()
	r := newTestResolver(nil)

	result, err := r.Resolve(resolution.Input{
		Date: "2025-08-15",
		Holidays: []resolution.Holiday{
			{Date: "2025-08-15", Name: "Maybe Day", IsTentative: true},
		},
		SaturdayPolicy: string(resolution.PolicyAllSaturdaysWorking),
	})
	require.NoError(t, err)

	assert.Equal(t, resolution.StatusAbsent, result.Status)
}

func TestResolve_HalfDayLeave(t *testing.T) {
	t.Parallel()
	r := newTestResolver(nil)

	result, err := r.Resolve(resolution.Input{
		Date: "2025-04-10",
		LeaveRequest: &resolution.LeaveRequest{
			Status:     resolution.LeaveStatusApproved,
			LeaveDates: []string{"2025-04-10"},
			LeaveType:  "Half Day - First Half",
		},
		SaturdayPolicy: string(resolution.PolicyAllSaturdaysWorking),
	})
	require.NoError(t, err)

	assert.Equal(t, resolution.StatusLeave, result.Status)
	assert.True(t, result.IsLeave)
	assert.True(t, result.IsHalfDay)
	assert.False(t, result.IsAbsent)
	require.NotNil(t, result.HalfDayReason)
	assert.NotEmpty(t, *result.HalfDayReason)
}

func TestResolve_LeaveOutranksWeeklyOff(t *testing.T) {
	t.Parallel()
	r := newTestResolver(nil)

	// 2025-03-08 is a Saturday off under Week 2 & 4, but the approved leave
	// still wins; the working-day flag records the overlap.
	result, err := r.Resolve(resolution.Input{
		Date: "2025-03-08",
		LeaveRequest: &resolution.LeaveRequest{
			Status:     resolution.LeaveStatusApproved,
			LeaveDates: []string{"2025-03-08"},
			LeaveType:  "Sick Leave",
			Reason:     "Fever",
		},
		SaturdayPolicy: string(resolution.PolicySecondFourthOff),
	})
	require.NoError(t, err)

	assert.Equal(t, resolution.StatusLeave, result.Status)
	assert.False(t, result.IsWeeklyOff)
	assert.False(t, result.IsWorkingDay)
	assert.False(t, result.IsAbsent)
}

func TestResolve_PendingLeaveIgnored(t *testing.T) {
	t.Parallel()
	r := newTestResolver(nil)

	result, err := r.Resolve(resolution.Input{
		Date: "2025-04-10",
		LeaveRequest: &resolution.LeaveRequest{
			Status:     resolution.LeaveStatusPending,
			LeaveDates: []string{"2025-04-10"},
			LeaveType:  "Casual Leave",
		},
		SaturdayPolicy: string(resolution.PolicyAllSaturdaysWorking),
	})
	require.NoError(t, err)

	assert.Equal(t, resolution.StatusAbsent, result.Status)
}

func TestResolve_InsufficientHoursHalfDay(t *testing.T) {
	t.Parallel()
	r := newTestResolver(nil)

	start := mustParseTime(t, "2025-04-09T09:00:00+05:30")
	end := mustParseTime(t, "2025-04-09T13:30:00+05:30")

	result, err := r.Resolve(resolution.Input{
		Date: "2025-04-09",
		Log: &resolution.AttendanceLog{
			Sessions:          []resolution.Session{{Start: &start, End: &end}},
			IsHalfDay:         true,
			TotalWorkingHours: 4.5,
		},
		SaturdayPolicy: string(resolution.PolicyAllSaturdaysWorking),
	})
	require.NoError(t, err)

	assert.Equal(t, resolution.StatusHalfDay, result.Status)
	require.NotNil(t, result.HalfDayReason)
	assert.Equal(t, "Insufficient working hours (4.5 hours worked, minimum required: 8 hours)", *result.HalfDayReason)
	require.NotNil(t, result.HalfDayReasonCode)
	assert.Equal(t, resolution.ReasonInsufficientHours, *result.HalfDayReasonCode)
}

func TestResolve_AbsentWhenNoLog(t *testing.T) {
	t.Parallel()
	r := newTestResolver(nil)

	result, err := r.Resolve(resolution.Input{
		Date:           "2025-04-09",
		SaturdayPolicy: string(resolution.PolicyAllSaturdaysWorking),
	})
	require.NoError(t, err)

	assert.Equal(t, resolution.StatusAbsent, result.Status)
	assert.True(t, result.IsAbsent)
	assert.True(t, result.IsWorkingDay)
	assert.Equal(t, "No attendance logged", result.StatusReason)
}

func TestResolve_UnknownPolicyDefaultsToWorking(t *testing.T) {
	t.Parallel()
	var diags []resolution.Diagnostic
	r := newTestResolver(&diags)

	// 2025-03-01 is a Saturday; an unknown policy must not make it a day off.
	result, err := r.Resolve(resolution.Input{
		Date:           "2025-03-01",
		SaturdayPolicy: "Alternate Fridays",
	})
	require.NoError(t, err)

	assert.Equal(t, resolution.StatusAbsent, result.Status)
	require.Len(t, diags, 1)
	assert.Equal(t, resolution.DiagUnknownPolicy, diags[0].Code)
}

func TestResolve_AdminOverrideWithoutSessions(t *testing.T) {
	t.Parallel()
	r := newTestResolver(nil)

	result, err := r.Resolve(resolution.Input{
		Date: "2025-04-09",
		Log: &resolution.AttendanceLog{
			Status:            strPtr(string(resolution.StatusPresent)),
			OverriddenByAdmin: true,
		},
		SaturdayPolicy: string(resolution.PolicyAllSaturdaysWorking),
	})
	require.NoError(t, err)

	assert.Equal(t, resolution.StatusPresent, result.Status)
	assert.False(t, result.IsAbsent)
	assert.Equal(t, "Status set by admin override", result.StatusReason)
}

func TestResolve_TerminalFallbackTrustsLog(t *testing.T) {
	t.Parallel()
	var diags []resolution.Diagnostic
	r := newTestResolver(&diags)

	// A log with no sessions and no persisted status matches no structured
	// branch; the resolver must not force Absent.
	result, err := r.Resolve(resolution.Input{
		Date:           "2025-04-09",
		Log:            &resolution.AttendanceLog{},
		SaturdayPolicy: string(resolution.PolicyAllSaturdaysWorking),
	})
	require.NoError(t, err)

	assert.Equal(t, resolution.StatusPresent, result.Status)
	assert.False(t, result.IsAbsent)
	require.Len(t, diags, 1)
	assert.Equal(t, resolution.DiagInconsistentLog, diags[0].Code)
}

func TestResolve_LateStatusKeepsLateReason(t *testing.T) {
	t.Parallel()
	r := newTestResolver(nil)

	start := mustParseTime(t, "2025-04-09T09:42:00+05:30")
	result, err := r.Resolve(resolution.Input{
		Date: "2025-04-09",
		Log: &resolution.AttendanceLog{
			Sessions:    []resolution.Session{{Start: &start}},
			Status:      strPtr(string(resolution.StatusLate)),
			LateMinutes: 42,
		},
		SaturdayPolicy: string(resolution.PolicyAllSaturdaysWorking),
	})
	require.NoError(t, err)

	assert.Equal(t, resolution.StatusLate, result.Status)
	assert.Equal(t, "Late arrival (42 minutes late)", result.StatusReason)
}

func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()
	r := newTestResolver(nil)

	input := resolution.Input{
		Date: "2025-04-10",
		LeaveRequest: &resolution.LeaveRequest{
			Status:     resolution.LeaveStatusApproved,
			LeaveDates: []string{"2025-04-10"},
			LeaveType:  "Half Day - Second Half",
		},
		SaturdayPolicy: string(resolution.PolicySecondFourthOff),
	}

	first, err := r.Resolve(input)
	require.NoError(t, err)
	second, err := r.Resolve(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolve_DateNormalizedFromTimestamp(t *testing.T) {
	t.Parallel()
	r := newTestResolver(nil)

	// 20:00 UTC on the 25th is already the 26th (a Sunday) in the civil zone.
	result, err := r.Resolve(resolution.Input{
		Date:           "2025-01-25T20:00:00Z",
		SaturdayPolicy: string(resolution.PolicyAllSaturdaysWorking),
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-26", result.Date)
	assert.Equal(t, resolution.StatusWeeklyOff, result.Status)
}

func TestResolve_HalfDayFlagAlwaysHasReason(t *testing.T) {
	t.Parallel()
	var diags []resolution.Diagnostic
	r := newTestResolver(&diags)

	// Persisted half-day status with no reason fields at all.
	result, err := r.Resolve(resolution.Input{
		Date: "2025-04-09",
		Log: &resolution.AttendanceLog{
			Status:            strPtr(string(resolution.StatusHalfDay)),
			OverriddenByAdmin: true,
		},
		SaturdayPolicy: string(resolution.PolicyAllSaturdaysWorking),
	})
	require.NoError(t, err)

	assert.True(t, result.IsHalfDay)
	require.NotNil(t, result.HalfDayReason)
	assert.Equal(t, "Half-day marked (reason not specified)", *result.HalfDayReason)
	require.Len(t, diags, 1)
	assert.Equal(t, resolution.DiagNoHalfDayReason, diags[0].Code)
}
