package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/auth"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/response"
)

type AuthHandler interface {
	SendCode(w http.ResponseWriter, r *http.Request)
	VerifyCode(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &authHandlerImpl{authService: authService}
}

// SendCode implements AuthHandler.
func (h *authHandlerImpl) SendCode(w http.ResponseWriter, r *http.Request) {
	var req auth.SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Debug("SendCode decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, r, err)
		return
	}

	resp, err := h.authService.SendVerificationCode(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Verification code sent", resp)
}

// VerifyCode implements AuthHandler.
func (h *authHandlerImpl) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req auth.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Debug("VerifyCode decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, r, err)
		return
	}

	resp, err := h.authService.VerifyCode(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, resp)
}

// Logout implements AuthHandler.
func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	req, _ := middleware.RequestFrom[auth.LogoutRequest](r.Context())

	if err := h.authService.Logout(r.Context(), req.Credentials); err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Logged out", nil)
}
