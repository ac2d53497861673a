package cron

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLogRepo struct {
	logs []attendance.AttendanceLog
}

func (r *fakeLogRepo) Create(_ context.Context, log attendance.AttendanceLog) (attendance.AttendanceLog, error) {
	r.logs = append(r.logs, log)
	return log, nil
}

func (r *fakeLogRepo) GetByID(_ context.Context, id, _ string) (attendance.AttendanceLog, error) {
	for _, l := range r.logs {
		if l.ID == id {
			return l, nil
		}
	}
	return attendance.AttendanceLog{}, attendance.ErrLogNotFound
}

func (r *fakeLogRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time, _ string) (*attendance.AttendanceLog, error) {
	return nil, nil
}

func (r *fakeLogRepo) ListByEmployeeRange(_ context.Context, _ string, _, _ time.Time, _ string) ([]attendance.AttendanceLog, error) {
	return nil, nil
}

func (r *fakeLogRepo) ListWithOpenSessionsBefore(_ context.Context, date time.Time) ([]attendance.AttendanceLog, error) {
	var out []attendance.AttendanceLog
	for _, l := range r.logs {
		if l.Date.Before(date) && l.OpenSession() != nil {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLogRepo) Update(_ context.Context, log attendance.AttendanceLog) error {
	for i := range r.logs {
		if r.logs[i].ID == log.ID {
			r.logs[i] = log
			return nil
		}
	}
	return attendance.ErrLogNotFound
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestAutoLogoutClosesStaleSession(t *testing.T) {
	start := mustTime(t, "2025-03-03T09:00:00+05:30")
	repo := &fakeLogRepo{logs: []attendance.AttendanceLog{{
		ID:         "log-1",
		EmployeeID: "employee-1",
		Date:       mustTime(t, "2025-03-03T00:00:00+05:30"),
		Sessions:   attendance.SessionList{{Start: &start}},
	}}}

	jobs := NewAttendanceJobs(repo)
	jobs.now = func() time.Time { return mustTime(t, "2025-03-04T02:00:00+05:30") }

	require.NoError(t, jobs.AutoLogoutOpenSessions(context.Background()))

	log := repo.logs[0]
	require.NotNil(t, log.Sessions[0].End)
	// Closed at the 20:00 civil-time cutoff: 11 hours worked.
	assert.InDelta(t, 11.0, log.TotalWorkingHours, 0.001)
	assert.False(t, log.IsHalfDay)
	require.NotNil(t, log.AutoLogoutReason)
	assert.Equal(t, "No clock-out recorded, session closed automatically", *log.AutoLogoutReason)
}

func TestAutoLogoutShortSessionMarksHalfDay(t *testing.T) {
	start := mustTime(t, "2025-03-03T16:00:00+05:30")
	repo := &fakeLogRepo{logs: []attendance.AttendanceLog{{
		ID:       "log-1",
		Date:     mustTime(t, "2025-03-03T00:00:00+05:30"),
		Sessions: attendance.SessionList{{Start: &start}},
	}}}

	jobs := NewAttendanceJobs(repo)
	jobs.now = func() time.Time { return mustTime(t, "2025-03-04T02:00:00+05:30") }

	require.NoError(t, jobs.AutoLogoutOpenSessions(context.Background()))

	log := repo.logs[0]
	assert.InDelta(t, 4.0, log.TotalWorkingHours, 0.001)
	assert.True(t, log.IsHalfDay)
}

func TestAutoLogoutSkipsToday(t *testing.T) {
	start := mustTime(t, "2025-03-03T09:00:00+05:30")
	repo := &fakeLogRepo{logs: []attendance.AttendanceLog{{
		ID:       "log-1",
		Date:     mustTime(t, "2025-03-03T00:00:00+05:30"),
		Sessions: attendance.SessionList{{Start: &start}},
	}}}

	jobs := NewAttendanceJobs(repo)
	jobs.now = func() time.Time { return mustTime(t, "2025-03-03T15:00:00+05:30") }

	require.NoError(t, jobs.AutoLogoutOpenSessions(context.Background()))

	assert.Nil(t, repo.logs[0].Sessions[0].End)
	assert.Nil(t, repo.logs[0].AutoLogoutReason)
}

func TestSchedulerRunOnce(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	ran := 0
	s.AddJob("count", time.Hour, func(context.Context) error {
		ran++
		return nil
	})
	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	assert.Equal(t, 2, ran)
}
