package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/civildate"
)

// Sessions left open past this civil-time hour on a previous day are closed
// as if the employee had clocked out then.
const autoLogoutHour = 20

const autoLogoutReason = "No clock-out recorded, session closed automatically"

const minFullDayHours = 8.0

type AttendanceJobs struct {
	logRepo attendance.AttendanceLogRepository
	now     func() time.Time
}

func NewAttendanceJobs(logRepo attendance.AttendanceLogRepository) *AttendanceJobs {
	return &AttendanceJobs{logRepo: logRepo, now: time.Now}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_logout_open_sessions", 1*time.Hour, j.AutoLogoutOpenSessions)
}

// AutoLogoutOpenSessions closes sessions that were never clocked out on past
// days. The closing time is the day's auto-logout hour, and the recorded
// reason marks the log for half-day derivation.
func (j *AttendanceJobs) AutoLogoutOpenSessions(ctx context.Context) error {
	today, err := civildate.Parse(civildate.FromTime(j.now()))
	if err != nil {
		return err
	}

	stale, err := j.logRepo.ListWithOpenSessionsBefore(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list open sessions: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	closed := 0
	for _, log := range stale {
		if err := j.closeLog(ctx, log); err != nil {
			slog.Error("Cron: failed to auto-logout attendance log",
				"log_id", log.ID, "employee_id", log.EmployeeID, "error", err)
			continue
		}
		closed++
	}

	slog.Info("Cron: auto-logout finished", "stale", len(stale), "closed", closed)
	return nil
}

func (j *AttendanceJobs) closeLog(ctx context.Context, log attendance.AttendanceLog) error {
	day := log.Date.In(civildate.Location())
	cutoff := time.Date(day.Year(), day.Month(), day.Day(), autoLogoutHour, 0, 0, 0, civildate.Location()).UTC()

	for i := range log.Sessions {
		if log.Sessions[i].End != nil {
			continue
		}
		end := cutoff
		// A session opened after the cutoff still gets a non-negative span.
		if log.Sessions[i].Start != nil && log.Sessions[i].Start.After(cutoff) {
			end = *log.Sessions[i].Start
		}
		log.Sessions[i].End = &end
	}
	for i := range log.Breaks {
		if log.Breaks[i].End == nil {
			log.Breaks[i].End = &cutoff
		}
	}

	log.TotalWorkingHours = workedHours(log)
	if log.TotalWorkingHours < minFullDayHours {
		log.IsHalfDay = true
	}
	reason := autoLogoutReason
	log.AutoLogoutReason = &reason

	return j.logRepo.Update(ctx, log)
}

func workedHours(log attendance.AttendanceLog) float64 {
	var worked time.Duration
	for _, s := range log.Sessions {
		if s.Start != nil && s.End != nil {
			worked += s.End.Sub(*s.Start)
		}
	}
	for _, b := range log.Breaks {
		if b.Start != nil && b.End != nil {
			worked -= b.End.Sub(*b.Start)
		}
	}
	if worked < 0 {
		worked = 0
	}
	return worked.Hours()
}
