package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/form"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/response"
)

type FormHandler interface {
	SubmitLeave(w http.ResponseWriter, r *http.Request)
	SubmitOvertime(w http.ResponseWriter, r *http.Request)
	SubmitBusinessTrip(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Detail(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
}

type formHandlerImpl struct {
	formService form.FormService
}

func NewFormHandler(formService form.FormService) FormHandler {
	return &formHandlerImpl{formService: formService}
}

// SubmitLeave implements FormHandler.
func (h *formHandlerImpl) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[form.LeaveFormRequest](r.Context())

	resp, err := h.formService.SubmitLeave(r.Context(), req.CID, req.UID, *req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Created(w, "Leave form submitted", resp)
}

// SubmitOvertime implements FormHandler.
func (h *formHandlerImpl) SubmitOvertime(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[form.OvertimeFormRequest](r.Context())

	resp, err := h.formService.SubmitOvertime(r.Context(), req.CID, req.UID, *req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Created(w, "Overtime form submitted", resp)
}

// SubmitBusinessTrip implements FormHandler.
func (h *formHandlerImpl) SubmitBusinessTrip(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[form.BusinessTripFormRequest](r.Context())

	resp, err := h.formService.SubmitBusinessTrip(r.Context(), req.CID, req.UID, *req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Created(w, "Business trip form submitted", resp)
}

// List implements FormHandler.
func (h *formHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[form.ListFormsRequest](r.Context())

	resp, err := h.formService.ListMyForms(r.Context(), req.CID, req.UID, *req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMeta(w, resp.Forms, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalItems: resp.Total,
		TotalPages: resp.TotalPages,
	})
}

// Detail implements FormHandler.
func (h *formHandlerImpl) Detail(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[form.FormIDRequest](r.Context())

	resp, err := h.formService.FormDetail(r.Context(), req.CID, req.UID, req.FormID)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, resp)
}

// Withdraw implements FormHandler.
func (h *formHandlerImpl) Withdraw(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[form.WithdrawRequest](r.Context())

	if err := h.formService.WithdrawForm(r.Context(), req.CID, req.UID, *req); err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Form withdrawn", nil)
}
