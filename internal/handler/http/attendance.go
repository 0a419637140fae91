package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler interface {
	Daily(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// Daily implements AttendanceHandler.
func (h *attendanceHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[attendance.DailyRecordRequest](r.Context())

	// Validate already checked the format
	date, _ := time.ParseInLocation("2006-01-02", req.Date, time.Local)

	record, err := h.attendanceService.GetDailyRecord(r.Context(), req.CID, req.UID, date)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, record)
}

// Monthly implements AttendanceHandler.
func (h *attendanceHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[attendance.MonthlyRecordsRequest](r.Context())
	month, _ := time.ParseInLocation("2006-01", req.Month, time.Local)

	resp, err := h.attendanceService.GetMonthlyRecords(r.Context(), req.CID, req.UID, month)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, resp)
}

// Export implements AttendanceHandler. The workbook is buffered so failures
// still produce a JSON error instead of a truncated download.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[attendance.MonthlyRecordsRequest](r.Context())
	month, _ := time.ParseInLocation("2006-01", req.Month, time.Local)

	var buf bytes.Buffer
	if err := h.attendanceService.ExportMonthlyRecords(r.Context(), req.CID, req.UID, month, &buf); err != nil {
		response.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-%s.xlsx"`, req.Month))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
