package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	GetDailyStatus(w http.ResponseWriter, r *http.Request)
	GetRangeSummary(w http.ResponseWriter, r *http.Request)
	OverrideLog(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// ClockIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	log, err := a.attendanceService.ClockIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Clocked in successfully", log)
}

// ClockOut implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	log, err := a.attendanceService.ClockOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Clocked out successfully", log)
}

// StartBreak implements AttendanceHandler.
func (a *AttendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	log, err := a.attendanceService.StartBreak(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Break started", log)
}

// EndBreak implements AttendanceHandler.
func (a *AttendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	log, err := a.attendanceService.EndBreak(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Break ended", log)
}

// GetDailyStatus implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetDailyStatus(w http.ResponseWriter, r *http.Request) {
	req := attendance.DailyStatusRequest{
		Date: r.URL.Query().Get("date"),
	}

	resolved, err := a.attendanceService.GetDailyStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resolved)
}

// GetRangeSummary implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetRangeSummary(w http.ResponseWriter, r *http.Request) {
	req := attendance.RangeSummaryRequest{
		StartDate: r.URL.Query().Get("start"),
		EndDate:   r.URL.Query().Get("end"),
	}

	summary, err := a.attendanceService.GetRangeSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// OverrideLog implements AttendanceHandler.
func (a *AttendanceHandlerImpl) OverrideLog(w http.ResponseWriter, r *http.Request) {
	var req attendance.OverrideLogRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("OverrideLog decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	log, err := a.attendanceService.OverrideLog(r.Context(), req)
	if err != nil {
		slog.Error("OverrideLog service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance log overridden", log)
}
