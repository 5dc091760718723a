package handler

import (
	"encoding/json"
	"net/http"

	"driveloop_admin/internal/app/service"
	"driveloop_admin/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	sessionService *service.SessionService
}

func NewAuthHandler(sessionService *service.SessionService) *AuthHandler {
	return &AuthHandler{sessionService: sessionService}
}

func (h *AuthHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/login", h.login)
}

func (h *AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/auth/logout", h.logout)
	r.Get("/auth/session", h.session)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.sessionService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionService.Logout(r.Context()); err != nil {
		// The local session is cleared regardless; the remote failure is
		// still reported.
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// session is the SPA shell's navigation guard: the resolved operator or 401.
func (h *AuthHandler) session(w http.ResponseWriter, r *http.Request) {
	operator, err := h.sessionService.Operator()
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, operator)
}
