package resolution

import (
	"testing"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/resolution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func halfDayLog(mutate func(*resolution.AttendanceLog)) *resolution.AttendanceLog {
	log := &resolution.AttendanceLog{
		Sessions:  []resolution.Session{{}},
		IsHalfDay: true,
	}
	if mutate != nil {
		mutate(log)
	}
	return log
}

func TestDeriveHalfDayReason_PersistedTextWins(t *testing.T) {
	t.Parallel()
	e := &engine{}

	log := halfDayLog(func(l *resolution.AttendanceLog) {
		l.HalfDayReason = strPtr("Doctor appointment")
		l.HalfDayReasonCode = strPtr(string(resolution.ReasonManualAdminMarking))
		l.LateMinutes = 30 // would otherwise win
	})

	reason, code := e.deriveHalfDayReason(log)
	require.NotNil(t, reason)
	assert.Equal(t, "Doctor appointment", *reason)
	require.NotNil(t, code)
	assert.Equal(t, resolution.ReasonManualAdminMarking, *code)
}

func TestDeriveHalfDayReason_LateArrival(t *testing.T) {
	t.Parallel()
	e := &engine{}

	reason, code := e.deriveHalfDayReason(halfDayLog(func(l *resolution.AttendanceLog) {
		l.LateMinutes = 95
	}))
	require.NotNil(t, reason)
	assert.Equal(t, "Late arrival (95 minutes late)", *reason)
	require.NotNil(t, code)
	assert.Equal(t, resolution.ReasonLateLogin, *code)
}

func TestDeriveHalfDayReason_EarlyLogout(t *testing.T) {
	t.Parallel()
	e := &engine{}

	reason, code := e.deriveHalfDayReason(halfDayLog(func(l *resolution.AttendanceLog) {
		l.AutoLogoutReason = strPtr("session expired at 14:02")
	}))
	require.NotNil(t, reason)
	assert.Equal(t, "Early checkout: session expired at 14:02", *reason)
	require.NotNil(t, code)
	assert.Equal(t, resolution.ReasonEarlyLogout, *code)
}

func TestDeriveHalfDayReason_InsufficientHours(t *testing.T) {
	t.Parallel()
	e := &engine{}

	reason, code := e.deriveHalfDayReason(halfDayLog(func(l *resolution.AttendanceLog) {
		l.TotalWorkingHours = 6
	}))
	require.NotNil(t, reason)
	assert.Equal(t, "Insufficient working hours (6 hours worked, minimum required: 8 hours)", *reason)
	require.NotNil(t, code)
	assert.Equal(t, resolution.ReasonInsufficientHours, *code)
}

func TestDeriveHalfDayReason_ManualMarking(t *testing.T) {
	t.Parallel()
	e := &engine{}

	reason, code := e.deriveHalfDayReason(halfDayLog(func(l *resolution.AttendanceLog) {
		l.OverriddenByAdmin = true
	}))
	require.NotNil(t, reason)
	assert.Equal(t, "Manual half-day marking", *reason)
	require.NotNil(t, code)
	assert.Equal(t, resolution.ReasonManualAdminMarking, *code)

	reason, _ = e.deriveHalfDayReason(halfDayLog(func(l *resolution.AttendanceLog) {
		l.OverriddenByAdmin = true
		l.OverrideReason = strPtr("Left for family emergency")
	}))
	require.NotNil(t, reason)
	assert.Equal(t, "Left for family emergency", *reason)
}

func TestDeriveHalfDayReason_GenericFallback(t *testing.T) {
	t.Parallel()
	e := &engine{}

	reason, code := e.deriveHalfDayReason(halfDayLog(nil))
	require.NotNil(t, reason)
	assert.Equal(t, "Half-day marked", *reason)
	assert.Nil(t, code)
}

func TestDeriveHalfDayReason_ZeroHoursDoesNotTriggerInsufficient(t *testing.T) {
	t.Parallel()
	e := &engine{}

	// An unset hours field must not masquerade as zero hours worked.
	reason, code := e.deriveHalfDayReason(halfDayLog(nil))
	require.NotNil(t, reason)
	assert.Equal(t, "Half-day marked", *reason)
	assert.Nil(t, code)
}

func TestInterpretLog_PersistedStatusWithSessions(t *testing.T) {
	t.Parallel()
	e := &engine{}

	out := e.interpretLog("2025-04-09", &resolution.AttendanceLog{
		Sessions: []resolution.Session{{}},
		Status:   strPtr(string(resolution.StatusPresent)),
	})
	require.NotNil(t, out)
	assert.Equal(t, resolution.StatusPresent, out.status)
	assert.False(t, out.isHalfDay)
}

func TestInterpretLog_SessionsWithoutStatus(t *testing.T) {
	t.Parallel()
	e := &engine{}

	out := e.interpretLog("2025-04-09", &resolution.AttendanceLog{
		Sessions: []resolution.Session{{}},
	})
	require.NotNil(t, out)
	assert.Equal(t, resolution.StatusPresent, out.status)
	assert.Equal(t, "Attendance logged", out.statusReason)
}

func TestInterpretLog_HalfDayStatusVariantSpelling(t *testing.T) {
	t.Parallel()
	e := &engine{}

	out := e.interpretLog("2025-04-09", &resolution.AttendanceLog{
		Sessions:    []resolution.Session{{}},
		Status:      strPtr("Half Day"),
		LateMinutes: 12,
	})
	require.NotNil(t, out)
	assert.Equal(t, resolution.StatusHalfDay, out.status)
	require.NotNil(t, out.halfDayReason)
	assert.Equal(t, "Late arrival (12 minutes late)", *out.halfDayReason)
}

func TestInterpretLog_EmptyLogYieldsNothing(t *testing.T) {
	t.Parallel()
	e := &engine{}

	assert.Nil(t, e.interpretLog("2025-04-09", &resolution.AttendanceLog{}))
}
