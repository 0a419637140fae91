package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/salary"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/response"
)

type SalaryHandler interface {
	Periods(w http.ResponseWriter, r *http.Request)
	Slip(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

// Periods implements SalaryHandler.
func (h *salaryHandlerImpl) Periods(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[salary.PeriodsRequest](r.Context())

	resp, err := h.salaryService.Periods(r.Context(), req.CID, req.UID)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, resp)
}

// Slip implements SalaryHandler.
func (h *salaryHandlerImpl) Slip(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[salary.SlipRequest](r.Context())

	slip, err := h.salaryService.MonthlySlip(r.Context(), req.CID, req.UID, req.PayPeriod)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, slip)
}
