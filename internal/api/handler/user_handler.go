package handler

import (
	"encoding/json"
	"net/http"

	"driveloop_admin/internal/app/service"
	"driveloop_admin/internal/common"
	"driveloop_admin/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listUsers)                  // GET /api/v1/users
	r.Patch("/{userID}/status", h.setStatus) // PATCH /api/v1/users/{id}/status
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Load(r.Context()); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	users := h.userService.List()

	type UsersResponse struct {
		Users []model.User `json:"users"`
		Total int          `json:"total"`
	}
	common.RespondWithJSON(w, http.StatusOK, UsersResponse{Users: users, Total: len(users)})
}

func (h *UserHandler) setStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req struct {
		Status model.UserStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.userService.SetStatus(r.Context(), userID, req.Status); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"id": userID, "status": string(req.Status)})
}
