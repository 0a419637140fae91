package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/form"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/response"
)

type ApprovalHandler interface {
	Pending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type approvalHandlerImpl struct {
	approvalService form.ApprovalService
}

func NewApprovalHandler(approvalService form.ApprovalService) ApprovalHandler {
	return &approvalHandlerImpl{approvalService: approvalService}
}

// Pending implements ApprovalHandler.
func (h *approvalHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[form.PendingTasksRequest](r.Context())

	tasks, err := h.approvalService.PendingTasks(r.Context(), req.CID, req.UID)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, tasks)
}

// Approve implements ApprovalHandler.
func (h *approvalHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[form.TaskActionRequest](r.Context())

	if err := h.approvalService.ApproveTask(r.Context(), req.CID, req.UID, *req); err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Task approved", nil)
}

// Reject implements ApprovalHandler.
func (h *approvalHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[form.TaskActionRequest](r.Context())

	if err := h.approvalService.RejectTask(r.Context(), req.CID, req.UID, *req); err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Task rejected", nil)
}
