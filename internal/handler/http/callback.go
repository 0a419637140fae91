package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/form"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/bpm"
)

const maxCallbackBody = 1 << 20

type CallbackHandler interface {
	BPMStatus(w http.ResponseWriter, r *http.Request)
}

type callbackHandlerImpl struct {
	formService form.FormService
	verifier    *bpm.CallbackVerifier
}

func NewCallbackHandler(formService form.FormService, verifier *bpm.CallbackVerifier) CallbackHandler {
	return &callbackHandlerImpl{
		formService: formService,
		verifier:    verifier,
	}
}

// BPMStatus receives instance status changes pushed by BPM.
func (h *callbackHandlerImpl) BPMStatus(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxCallbackBody))
	if err != nil {
		response.BadRequest(w, "Failed to read request body", nil)
		return
	}

	authorized := false
	if sig := r.Header.Get(bpm.CallbackSignatureHeader); sig != "" {
		authorized = h.verifier.VerifyHMACSignature(body, sig)
	} else {
		authorized = h.verifier.VerifyToken(r.Header.Get(bpm.CallbackTokenHeader))
	}
	if !authorized {
		slog.Warn("Rejected BPM callback", "remote_addr", r.RemoteAddr)
		response.Unauthorized(w, "Invalid callback credentials")
		return
	}

	var cb form.StatusCallback
	if err := json.Unmarshal(body, &cb); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.formService.ApplyCallback(r.Context(), cb); err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Callback processed", nil)
}
