package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/resolution"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/civildate"
	"github.com/go-chi/jwtauth/v5"
)

// Workday parameters used when interpreting clock events. Lateness is
// measured against the scheduled start, not the grace limit.
const (
	workdayStartHour = 9
	graceMinutes     = 10
	minFullDayHours  = 8.0
)

// TxFunc runs fn inside a database transaction. The context passed to fn
// carries the transaction for repositories created from the same pool.
type TxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

type AttendanceServiceImpl struct {
	logRepo      attendance.AttendanceLogRepository
	holidayRepo  holiday.HolidayRepository
	leaveRepo    leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
	resolver     resolution.Resolver
	tx           TxFunc
	now          func() time.Time
}

func NewAttendanceService(
	logRepo attendance.AttendanceLogRepository,
	holidayRepo holiday.HolidayRepository,
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	resolver resolution.Resolver,
	tx TxFunc,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		logRepo:      logRepo,
		holidayRepo:  holidayRepo,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		resolver:     resolver,
		tx:           tx,
		now:          time.Now,
	}
}

func claimsFromContext(ctx context.Context) (companyID, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}
	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return companyID, employeeID, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context) (attendance.LogResponse, error) {
	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.LogResponse{}, err
	}

	now := a.now()
	day, err := civildate.Parse(civildate.FromTime(now))
	if err != nil {
		return attendance.LogResponse{}, err
	}

	log, err := a.logRepo.GetByEmployeeAndDate(ctx, employeeID, day, companyID)
	if err != nil {
		return attendance.LogResponse{}, fmt.Errorf("failed to load today's log: %w", err)
	}
	if log != nil && log.OpenSession() != nil {
		return attendance.LogResponse{}, attendance.ErrAlreadyClockedIn
	}

	start := now.UTC()
	if log == nil {
		lateMinutes := lateBy(now)
		status := string(resolution.StatusPresent)
		if lateMinutes > 0 {
			status = string(resolution.StatusLate)
		}
		created, err := a.logRepo.Create(ctx, attendance.AttendanceLog{
			EmployeeID:  employeeID,
			CompanyID:   companyID,
			Date:        day,
			Sessions:    attendance.SessionList{{Start: &start}},
			Status:      &status,
			LateMinutes: lateMinutes,
		})
		if err != nil {
			return attendance.LogResponse{}, err
		}
		return mapLogToResponse(created), nil
	}

	log.Sessions = append(log.Sessions, attendance.Session{Start: &start})
	if err := a.logRepo.Update(ctx, *log); err != nil {
		return attendance.LogResponse{}, err
	}
	return mapLogToResponse(*log), nil
}

// lateBy returns minutes past the scheduled start plus grace, measured from
// the scheduled start itself.
func lateBy(now time.Time) int {
	local := now.In(civildate.Location())
	scheduled := time.Date(local.Year(), local.Month(), local.Day(), workdayStartHour, 0, 0, 0, civildate.Location())
	graceLimit := scheduled.Add(graceMinutes * time.Minute)
	if !local.After(graceLimit) {
		return 0
	}
	return int(local.Sub(scheduled).Minutes())
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context) (attendance.LogResponse, error) {
	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.LogResponse{}, err
	}

	log, err := a.openLog(ctx, employeeID, companyID)
	if err != nil {
		return attendance.LogResponse{}, err
	}

	session := log.OpenSession()
	if session == nil {
		return attendance.LogResponse{}, attendance.ErrNotClockedIn
	}
	if b := log.OpenBreak(); b != nil {
		end := a.now().UTC()
		b.End = &end
	}

	end := a.now().UTC()
	session.End = &end

	log.TotalWorkingHours = workedHours(log)
	if !log.OverriddenByAdmin {
		// Recomputed on every clock-out: a second session can push a short
		// day past the full-day threshold again.
		log.IsHalfDay = log.TotalWorkingHours < minFullDayHours
	}

	if err := a.logRepo.Update(ctx, *log); err != nil {
		return attendance.LogResponse{}, err
	}
	return mapLogToResponse(*log), nil
}

// workedHours sums closed sessions minus closed breaks.
func workedHours(log *attendance.AttendanceLog) float64 {
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

// StartBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) StartBreak(ctx context.Context) (attendance.LogResponse, error) {
	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.LogResponse{}, err
	}

	log, err := a.openLog(ctx, employeeID, companyID)
	if err != nil {
		return attendance.LogResponse{}, err
	}
	if log.OpenSession() == nil {
		return attendance.LogResponse{}, attendance.ErrNotClockedIn
	}
	if log.OpenBreak() != nil {
		return attendance.LogResponse{}, attendance.ErrBreakInProgress
	}

	start := a.now().UTC()
	log.Breaks = append(log.Breaks, attendance.Break{Start: &start})
	if err := a.logRepo.Update(ctx, *log); err != nil {
		return attendance.LogResponse{}, err
	}
	return mapLogToResponse(*log), nil
}

// EndBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EndBreak(ctx context.Context) (attendance.LogResponse, error) {
	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.LogResponse{}, err
	}

	log, err := a.openLog(ctx, employeeID, companyID)
	if err != nil {
		return attendance.LogResponse{}, err
	}
	b := log.OpenBreak()
	if b == nil {
		return attendance.LogResponse{}, attendance.ErrNoBreakToEnd
	}

	end := a.now().UTC()
	b.End = &end
	if err := a.logRepo.Update(ctx, *log); err != nil {
		return attendance.LogResponse{}, err
	}
	return mapLogToResponse(*log), nil
}

func (a *AttendanceServiceImpl) openLog(ctx context.Context, employeeID, companyID string) (*attendance.AttendanceLog, error) {
	day, err := civildate.Parse(civildate.FromTime(a.now()))
	if err != nil {
		return nil, err
	}
	log, err := a.logRepo.GetByEmployeeAndDate(ctx, employeeID, day, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's log: %w", err)
	}
	if log == nil {
		return nil, attendance.ErrNotClockedIn
	}
	return log, nil
}

// GetDailyStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetDailyStatus(ctx context.Context, req attendance.DailyStatusRequest) (resolution.ResolvedStatus, error) {
	if err := req.Validate(); err != nil {
		return resolution.ResolvedStatus{}, err
	}

	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return resolution.ResolvedStatus{}, err
	}

	date, err := civildate.Normalize(req.Date)
	if err != nil {
		return resolution.ResolvedStatus{}, fmt.Errorf("%w: %q", resolution.ErrInvalidDate, req.Date)
	}

	input, err := a.buildInput(ctx, companyID, employeeID, date)
	if err != nil {
		return resolution.ResolvedStatus{}, err
	}
	return a.resolver.Resolve(input)
}

// buildInput gathers the four resolution sources for one employee-day.
func (a *AttendanceServiceImpl) buildInput(ctx context.Context, companyID, employeeID, date string) (resolution.Input, error) {
	day, err := civildate.Parse(date)
	if err != nil {
		return resolution.Input{}, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return resolution.Input{}, fmt.Errorf("failed to get employee: %w", err)
	}

	holidays, err := a.holidayRepo.ListByRange(ctx, companyID, day, day)
	if err != nil {
		return resolution.Input{}, fmt.Errorf("failed to list holidays: %w", err)
	}

	leaveReq, err := a.leaveRepo.GetApprovedForDate(ctx, employeeID, day, companyID)
	if err != nil {
		return resolution.Input{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	logEntity, err := a.logRepo.GetByEmployeeAndDate(ctx, employeeID, day, companyID)
	if err != nil {
		return resolution.Input{}, fmt.Errorf("failed to get attendance log: %w", err)
	}

	return resolution.Input{
		Date:           date,
		Log:            toResolutionLog(logEntity),
		Holidays:       toResolutionHolidays(holidays),
		LeaveRequest:   toResolutionLeave(leaveReq),
		SaturdayPolicy: emp.SaturdayPolicy,
	}, nil
}

// GetRangeSummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetRangeSummary(ctx context.Context, req attendance.RangeSummaryRequest) (attendance.RangeSummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RangeSummaryResponse{}, err
	}

	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.RangeSummaryResponse{}, err
	}

	from, err := civildate.Parse(req.StartDate)
	if err != nil {
		return attendance.RangeSummaryResponse{}, err
	}
	to, err := civildate.Parse(req.EndDate)
	if err != nil {
		return attendance.RangeSummaryResponse{}, err
	}

	emp, err := a.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return attendance.RangeSummaryResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	holidays, err := a.holidayRepo.ListByRange(ctx, companyID, from, to)
	if err != nil {
		return attendance.RangeSummaryResponse{}, fmt.Errorf("failed to list holidays: %w", err)
	}
	resolutionHolidays := toResolutionHolidays(holidays)

	logs, err := a.logRepo.ListByEmployeeRange(ctx, employeeID, from, to, companyID)
	if err != nil {
		return attendance.RangeSummaryResponse{}, fmt.Errorf("failed to list attendance logs: %w", err)
	}
	logsByDate := make(map[string]*attendance.AttendanceLog, len(logs))
	for i := range logs {
		logsByDate[civildate.FromTime(logs[i].Date)] = &logs[i]
	}

	leaves, err := a.leaveRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return attendance.RangeSummaryResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	leaveByDate := make(map[string]*leave.LeaveRequest)
	for i := range leaves {
		if leaves[i].Status != leave.StatusApproved {
			continue
		}
		for _, d := range leaves[i].LeaveDates {
			leaveByDate[civildate.FromTime(d)] = &leaves[i]
		}
	}

	days, err := civildate.Days(req.StartDate, req.EndDate)
	if err != nil {
		return attendance.RangeSummaryResponse{}, err
	}

	summary := attendance.RangeSummaryResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Counts:    make(map[resolution.Status]int),
	}
	for date := range days {
		result, err := a.resolver.Resolve(resolution.Input{
			Date:           date,
			Log:            toResolutionLog(logsByDate[date]),
			Holidays:       resolutionHolidays,
			LeaveRequest:   toResolutionLeave(leaveByDate[date]),
			SaturdayPolicy: emp.SaturdayPolicy,
		})
		if err != nil {
			return attendance.RangeSummaryResponse{}, fmt.Errorf("failed to resolve %s: %w", date, err)
		}
		summary.Days = append(summary.Days, result)
		summary.Counts[result.Status]++
	}
	return summary, nil
}

// OverrideLog implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) OverrideLog(ctx context.Context, req attendance.OverrideLogRequest) (attendance.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LogResponse{}, err
	}

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.LogResponse{}, err
	}

	day, err := civildate.Parse(req.Date)
	if err != nil {
		return attendance.LogResponse{}, err
	}

	// Read and write the log in one transaction so two concurrent overrides
	// of the same day cannot both take the create path.
	var result attendance.AttendanceLog
	err = a.tx(ctx, func(ctx context.Context) error {
		log, err := a.logRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, day, companyID)
		if err != nil {
			return fmt.Errorf("failed to load log: %w", err)
		}
		if log == nil {
			result, err = a.logRepo.Create(ctx, applyOverride(attendance.AttendanceLog{
				EmployeeID: req.EmployeeID,
				CompanyID:  companyID,
				Date:       day,
			}, req))
			return err
		}
		result = applyOverride(*log, req)
		return a.logRepo.Update(ctx, result)
	})
	if err != nil {
		return attendance.LogResponse{}, err
	}
	return mapLogToResponse(result), nil
}

func applyOverride(log attendance.AttendanceLog, req attendance.OverrideLogRequest) attendance.AttendanceLog {
	if req.Status != nil {
		log.Status = req.Status
	}
	if req.IsHalfDay != nil {
		log.IsHalfDay = *req.IsHalfDay
	}
	if req.HalfDayReason != nil {
		log.HalfDayReason = req.HalfDayReason
	}
	if req.HalfDayReasonCode != nil {
		log.HalfDayReasonCode = req.HalfDayReasonCode
	}
	log.OverrideReason = req.OverrideReason
	log.OverriddenByAdmin = true
	return log
}

func mapLogToResponse(log attendance.AttendanceLog) attendance.LogResponse {
	return attendance.LogResponse{
		ID:                log.ID,
		EmployeeID:        log.EmployeeID,
		Date:              civildate.FromTime(log.Date),
		Sessions:          log.Sessions,
		Breaks:            log.Breaks,
		Status:            log.Status,
		IsHalfDay:         log.IsHalfDay,
		HalfDayReason:     log.HalfDayReason,
		LateMinutes:       log.LateMinutes,
		TotalWorkingHours: log.TotalWorkingHours,
		OverriddenByAdmin: log.OverriddenByAdmin,
	}
}
