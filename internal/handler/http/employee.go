package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/employee"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/response"
)

type EmployeeHandler interface {
	BusinessCard(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// BusinessCard implements EmployeeHandler.
func (h *employeeHandlerImpl) BusinessCard(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[employee.BusinessCardRequest](r.Context())

	card, err := h.employeeService.GetBusinessCard(r.Context(), req.CID, req.UID)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, card)
}
