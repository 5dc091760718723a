package service

import (
	"context"
	"fmt"
	"time"

	"driveloop_admin/internal/domain/model"
	"driveloop_admin/internal/domain/repository"
)

const growthDays = 7

// DashboardService derives the business metrics snapshot from raw user, car
// and trip records. Every call re-scans all three collections; nothing is
// cached or persisted.
type DashboardService struct {
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
	tripRepo    repository.TripRepository

	now func() time.Time
}

func NewDashboardService(
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
	tripRepo repository.TripRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		listingRepo: listingRepo,
		tripRepo:    tripRepo,
		now:         time.Now,
	}
}

func (s *DashboardService) Compute(ctx context.Context) (*model.DashboardStats, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	listings, err := s.listingRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}
	trips, err := s.tripRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trips: %w", err)
	}

	now := s.now().UTC()

	stats := &model.DashboardStats{
		TotalUsers: len(users),
		TotalCars:  len(listings),
	}

	for _, trip := range trips {
		start := trip.StartDate.UTC()
		if start.Month() == now.Month() && start.Year() == now.Year() {
			stats.MonthlyTrips++
			stats.MonthlyRevenue += trip.TotalAmount
		}
	}

	stats.UserGrowth = growthSeries(users, now)
	stats.PopularCarTypes = categoryCounts(listings)

	return stats, nil
}

// growthSeries counts signups per calendar day for the growthDays days ending
// today, oldest first. Each point is an independent daily count, not a
// running total; days without signups are present with count zero.
func growthSeries(users []model.User, now time.Time) []model.GrowthPoint {
	counts := make(map[string]int, growthDays)
	for _, u := range users {
		counts[u.CreatedAt.UTC().Format("2006-01-02")]++
	}

	series := make([]model.GrowthPoint, 0, growthDays)
	for i := growthDays - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		series = append(series, model.GrowthPoint{Date: date, Count: counts[date]})
	}
	return series
}

// categoryCounts tallies listings per label in the fixed category set.
// Listings with categories outside the set are not reported.
func categoryCounts(listings []model.CarListing) []model.CarTypeCount {
	counts := make(map[string]int, len(model.CarCategories))
	for _, l := range listings {
		counts[l.Category]++
	}

	out := make([]model.CarTypeCount, 0, len(model.CarCategories))
	for _, category := range model.CarCategories {
		out = append(out, model.CarTypeCount{Type: category, Count: counts[category]})
	}
	return out
}
