package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"driveloop_admin/internal/common"
	"driveloop_admin/internal/domain/model"
)

type ListingRepository interface {
	ListAll(ctx context.Context) ([]model.CarListing, error)
	// UpdateStatus performs a compare-and-swap on the revision column: the
	// write only lands if the caller saw the latest revision. Returns the new
	// revision and updated_at on success; ErrConflict when another moderator
	// got there first; ErrNotFound when the id does not exist remotely.
	UpdateStatus(ctx context.Context, id string, status model.ListingStatus, revision int64) (int64, time.Time, error)
}

type pgListingRepository struct {
	db *sql.DB
}

func NewPgListingRepository(db *sql.DB) ListingRepository {
	return &pgListingRepository{db: db}
}

func (r *pgListingRepository) ListAll(ctx context.Context) ([]model.CarListing, error) {
	query := `SELECT id, make, model, year, price, category, description, transmission,
	                 fuel_type, seats, city, country, status, is_active, rating,
	                 total_ratings, total_rentals, owner_id, photos, features,
	                 car_insurance, driver_license, control_technique, revision,
	                 created_at, updated_at
	          FROM car_listings ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgListingRepository.ListAll: %w", err)
	}
	defer rows.Close()

	var listings []model.CarListing
	for rows.Next() {
		var l model.CarListing
		var photos, features []byte
		err := rows.Scan(
			&l.ID, &l.Make, &l.Model, &l.Year, &l.Price, &l.Category, &l.Description,
			&l.Transmission, &l.FuelType, &l.Seats, &l.Location.City, &l.Location.Country,
			&l.Status, &l.IsActive, &l.Rating, &l.TotalRatings, &l.TotalRentals,
			&l.OwnerID, &photos, &features, &l.Documents.CarInsurance,
			&l.Documents.DriverLicense, &l.Documents.ControlTechnique, &l.Revision,
			&l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("pgListingRepository.ListAll scan: %w", err)
		}
		if err := json.Unmarshal(photos, &l.Photos); err != nil {
			return nil, fmt.Errorf("pgListingRepository.ListAll photos: %w", err)
		}
		if err := json.Unmarshal(features, &l.Features); err != nil {
			return nil, fmt.Errorf("pgListingRepository.ListAll features: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgListingRepository.ListAll rows: %w", err)
	}
	return listings, nil
}

func (r *pgListingRepository) UpdateStatus(ctx context.Context, id string, status model.ListingStatus, revision int64) (int64, time.Time, error) {
	query := `UPDATE car_listings
	          SET status = $1, updated_at = CURRENT_TIMESTAMP, revision = revision + 1
	          WHERE id = $2 AND revision = $3
	          RETURNING revision, updated_at`
	var newRevision int64
	var updatedAt time.Time
	err := r.db.QueryRowContext(ctx, query, status, id, revision).Scan(&newRevision, &updatedAt)
	if err == nil {
		return newRevision, updatedAt, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, time.Time{}, fmt.Errorf("pgListingRepository.UpdateStatus: %w", err)
	}

	// CAS missed: distinguish a stale revision from a missing row.
	var exists bool
	checkErr := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM car_listings WHERE id = $1)`, id).Scan(&exists)
	if checkErr != nil {
		return 0, time.Time{}, fmt.Errorf("pgListingRepository.UpdateStatus check: %w", checkErr)
	}
	if !exists {
		return 0, time.Time{}, common.ErrNotFound
	}
	return 0, time.Time{}, fmt.Errorf("listing %s was modified concurrently: %w", id, common.ErrConflict)
}
