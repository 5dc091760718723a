package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"driveloop_admin/internal/common"
	"driveloop_admin/internal/domain/model"
	"driveloop_admin/internal/domain/repository"
)

// StatusFilterAll matches every listing status.
const StatusFilterAll = "all"

// ListingService moderates car-listing submissions. It keeps the full
// collection in memory for the session; Load replaces the set wholesale and
// Approve/Reject mutate one record's status after the remote write confirms.
type ListingService struct {
	listingRepo repository.ListingRepository

	mu       sync.Mutex
	listings []model.CarListing
}

func NewListingService(listingRepo repository.ListingRepository) *ListingService {
	return &ListingService{listingRepo: listingRepo}
}

// Load fetches all listings, discarding the previous in-memory set. Local
// edits not yet confirmed remotely do not survive a reload.
func (s *ListingService) Load(ctx context.Context) error {
	listings, err := s.listingRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load listings: %w", err)
	}
	s.mu.Lock()
	s.listings = listings
	s.mu.Unlock()
	return nil
}

// Filter matches query as a case-insensitive substring of make, model, city
// or country, and status exactly (StatusFilterAll or empty matches any).
// Operates on the in-memory set only.
func (s *ListingService) Filter(query, status string) []model.CarListing {
	s.mu.Lock()
	defer s.mu.Unlock()

	query = strings.ToLower(query)
	matched := make([]model.CarListing, 0, len(s.listings))
	for _, l := range s.listings {
		matchesQuery := query == "" ||
			strings.Contains(strings.ToLower(l.Make), query) ||
			strings.Contains(strings.ToLower(l.Model), query) ||
			strings.Contains(strings.ToLower(l.Location.City), query) ||
			strings.Contains(strings.ToLower(l.Location.Country), query)

		matchesStatus := status == "" || status == StatusFilterAll || string(l.Status) == status

		if matchesQuery && matchesStatus {
			matched = append(matched, l)
		}
	}
	return matched
}

// GetBySlug resolves a listing by its derived detail slug.
func (s *ListingService) GetBySlug(slug string) (*model.CarListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.listings {
		if s.listings[i].Slug() == slug {
			listing := s.listings[i]
			return &listing, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *ListingService) Approve(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.ListingStatusApproved)
}

func (s *ListingService) Reject(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.ListingStatusRejected)
}

// transition performs the remote status update and, only once it confirms,
// mutates the in-memory copy. The revision compare-and-swap serializes
// concurrent moderators on one listing; a lost race is ErrConflict. There is
// no guard against re-moderating a non-pending record here; that matches the
// exposed control surface.
func (s *ListingService) transition(ctx context.Context, id string, status model.ListingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.listings {
		if s.listings[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		// The in-memory set may be stale relative to the store.
		return common.ErrNotFound
	}

	newRevision, updatedAt, err := s.listingRepo.UpdateStatus(ctx, id, status, s.listings[idx].Revision)
	if err != nil {
		return err
	}

	s.listings[idx].Status = status
	s.listings[idx].Revision = newRevision
	s.listings[idx].UpdatedAt = updatedAt
	return nil
}
