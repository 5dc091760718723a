package handler

import (
	"net/http"

	"driveloop_admin/internal/app/service"
	"driveloop_admin/internal/common"

	"github.com/go-chi/chi/v5"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.getStats) // GET /api/v1/dashboard/stats
}

func (h *DashboardHandler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.Compute(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}
