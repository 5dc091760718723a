package handler

import (
	"net/http"

	"driveloop_admin/internal/app/service"
	"driveloop_admin/internal/common"
	"driveloop_admin/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type ListingHandler struct {
	listingService *service.ListingService
}

func NewListingHandler(listingService *service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

func (h *ListingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listListings)                // GET /api/v1/listings?q=corolla&status=pending
	r.Get("/{listingSlug}", h.getListing)     // GET /api/v1/listings/toyota-corolla-2019-8f2a
	r.Post("/{listingID}/approve", h.approve) // POST /api/v1/listings/{id}/approve
	r.Post("/{listingID}/reject", h.reject)   // POST /api/v1/listings/{id}/reject
}

func (h *ListingHandler) listListings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	status := r.URL.Query().Get("status")

	if err := h.listingService.Load(r.Context()); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	listings := h.listingService.Filter(query, status)

	type ListingsResponse struct {
		Listings []model.CarListing `json:"listings"`
		Total    int                `json:"total"`
	}
	common.RespondWithJSON(w, http.StatusOK, ListingsResponse{Listings: listings, Total: len(listings)})
}

func (h *ListingHandler) getListing(w http.ResponseWriter, r *http.Request) {
	listingSlug := chi.URLParam(r, "listingSlug")

	listing, err := h.listingService.GetBySlug(listingSlug)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) approve(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")
	if err := h.listingService.Approve(r.Context(), listingID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"id": listingID, "status": string(model.ListingStatusApproved)})
}

func (h *ListingHandler) reject(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")
	if err := h.listingService.Reject(r.Context(), listingID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"id": listingID, "status": string(model.ListingStatusRejected)})
}
