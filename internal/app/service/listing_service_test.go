package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"driveloop_admin/internal/common"
	"driveloop_admin/internal/domain/model"
)

func seedListings() []model.CarListing {
	return []model.CarListing{
		{
			ID: "car-1", Make: "Toyota", Model: "Corolla", Year: 2019,
			Location: model.Location{City: "Casablanca", Country: "Morocco"},
			Status:   model.ListingStatusPending, Revision: 3,
		},
		{
			ID: "car-2", Make: "BMW", Model: "X5", Year: 2021,
			Location: model.Location{City: "Rabat", Country: "Morocco"},
			Status:   model.ListingStatusApproved, Revision: 1,
		},
		{
			ID: "car-3", Make: "Renault", Model: "Clio", Year: 2018,
			Location: model.Location{City: "Paris", Country: "France"},
			Status:   model.ListingStatusPending, Revision: 0,
		},
	}
}

func TestApprovePendingListingLeavesPendingFilter(t *testing.T) {
	ctx := context.Background()
	repo := &fakeListingRepo{listings: seedListings()}
	s := NewListingService(repo)

	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := s.Approve(ctx, "car-1"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	for _, l := range s.Filter("", string(model.ListingStatusPending)) {
		if l.ID == "car-1" {
			t.Fatal("approved listing still matches the pending filter")
		}
	}
	approved := s.Filter("", string(model.ListingStatusApproved))
	found := false
	for _, l := range approved {
		if l.ID == "car-1" {
			found = true
			if l.Revision != 4 {
				t.Fatalf("revision not advanced: %d", l.Revision)
			}
		}
	}
	if !found {
		t.Fatal("approved listing missing from approved filter")
	}
}

func TestRejectNonPendingListingIsAccepted(t *testing.T) {
	// The control surface carries no re-moderation guard; the engine accepts
	// transitions from any current status.
	ctx := context.Background()
	repo := &fakeListingRepo{listings: seedListings()}
	s := NewListingService(repo)

	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := s.Reject(ctx, "car-2"); err != nil {
		t.Fatalf("reject of approved listing should be accepted: %v", err)
	}
	rejected := s.Filter("", string(model.ListingStatusRejected))
	if len(rejected) != 1 || rejected[0].ID != "car-2" {
		t.Fatalf("unexpected rejected set: %+v", rejected)
	}
}

func TestApproveUnknownIDFailsNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewListingService(&fakeListingRepo{listings: seedListings()})
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := s.Approve(ctx, "nope"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoteFailureLeavesMemoryUntouched(t *testing.T) {
	ctx := context.Background()
	repo := &fakeListingRepo{listings: seedListings()}
	s := NewListingService(repo)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	repo.updateErr = common.ErrServiceUnavailable
	if err := s.Approve(ctx, "car-1"); !errors.Is(err, common.ErrServiceUnavailable) {
		t.Fatalf("expected remote error, got %v", err)
	}

	pending := s.Filter("", string(model.ListingStatusPending))
	if len(pending) != 2 {
		t.Fatalf("in-memory state changed on remote failure: %+v", pending)
	}
}

func TestConcurrentModerationLosesWithConflict(t *testing.T) {
	ctx := context.Background()
	repo := &fakeListingRepo{listings: seedListings()}
	s := NewListingService(repo)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	// Another moderator bumps the remote revision between our load and write.
	repo.listings[0].Revision++

	if err := s.Approve(ctx, "car-1"); !errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	pending := s.Filter("", string(model.ListingStatusPending))
	if len(pending) != 2 {
		t.Fatal("lost race must not mutate the in-memory copy")
	}
}

func TestFilterMatchesAcrossFieldsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := NewListingService(&fakeListingRepo{listings: seedListings()})
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	cases := []struct {
		query  string
		status string
		want   []string
	}{
		{"toyota", "", []string{"car-1"}},
		{"x5", StatusFilterAll, []string{"car-2"}},
		{"MOROCCO", "", []string{"car-1", "car-2"}},
		{"paris", "pending", []string{"car-3"}},
		{"", "approved", []string{"car-2"}},
		{"", StatusFilterAll, []string{"car-1", "car-2", "car-3"}},
		{"zebra", "", nil},
	}
	for _, tc := range cases {
		got := s.Filter(tc.query, tc.status)
		if len(got) != len(tc.want) {
			t.Fatalf("filter(%q, %q): got %d listings, want %d", tc.query, tc.status, len(got), len(tc.want))
		}
		for i, id := range tc.want {
			if got[i].ID != id {
				t.Fatalf("filter(%q, %q)[%d] = %s, want %s", tc.query, tc.status, i, got[i].ID, id)
			}
		}
	}
}

func TestLoadReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	repo := &fakeListingRepo{listings: seedListings()}
	s := NewListingService(repo)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := s.Approve(ctx, "car-1"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// Remote now only has one listing; a reload discards everything local.
	repo.listings = repo.listings[:1]
	if err := s.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := s.Filter("", StatusFilterAll); len(got) != 1 {
		t.Fatalf("expected wholesale replace, got %d listings", len(got))
	}
}

func TestGetBySlug(t *testing.T) {
	ctx := context.Background()
	s := NewListingService(&fakeListingRepo{listings: seedListings()})
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	listing, err := s.GetBySlug("toyota-corolla-2019-car")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if listing.ID != "car-1" {
		t.Fatalf("unexpected listing %s", listing.ID)
	}

	if _, err := s.GetBySlug("no-such-car"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApproveUpdatesTimestampFromRemote(t *testing.T) {
	ctx := context.Background()
	repo := &fakeListingRepo{listings: seedListings()}
	s := NewListingService(repo)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	before := time.Now().Add(-time.Second)
	if err := s.Approve(ctx, "car-3"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	listing, err := s.GetBySlug("renault-clio-2018-car")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if !listing.UpdatedAt.After(before) {
		t.Fatalf("updatedAt not refreshed: %v", listing.UpdatedAt)
	}
}
