package handler

import (
	"encoding/json"
	"net/http"

	"driveloop_admin/internal/app/service"
	"driveloop_admin/internal/common"

	"github.com/go-chi/chi/v5"
)

type BootstrapHandler struct {
	bootstrapService *service.BootstrapService
}

func NewBootstrapHandler(bootstrapService *service.BootstrapService) *BootstrapHandler {
	return &BootstrapHandler{bootstrapService: bootstrapService}
}

// Public route: creating the first admin must work before any admin can log
// in. The service refuses once one exists.
func (h *BootstrapHandler) RegisterRoutes(r chi.Router) {
	r.Post("/bootstrap/admin", h.createFirstAdmin)
}

func (h *BootstrapHandler) createFirstAdmin(w http.ResponseWriter, r *http.Request) {
	var req service.CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	operator, err := h.bootstrapService.CreateFirstAdmin(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, operator)
}
