package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/leave"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/response"
)

type LeaveHandler interface {
	Balances(w http.ResponseWriter, r *http.Request)
	BalanceDetail(w http.ResponseWriter, r *http.Request)
	Types(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

// Balances implements LeaveHandler.
func (h *leaveHandlerImpl) Balances(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[leave.BalancesRequest](r.Context())

	resp, err := h.leaveService.GetBalances(r.Context(), req.CID, req.UID, req.Year)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, resp)
}

// BalanceDetail implements LeaveHandler.
func (h *leaveHandlerImpl) BalanceDetail(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[leave.BalancesRequest](r.Context())

	resp, err := h.leaveService.GetBalanceDetail(r.Context(), req.CID, req.UID, req.Year)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, resp)
}

// Types implements LeaveHandler.
func (h *leaveHandlerImpl) Types(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[leave.LeaveTypesRequest](r.Context())

	types, err := h.leaveService.ListLeaveTypes(r.Context(), req.CID)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, types)
}
