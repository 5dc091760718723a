package repository

import (
	"context"
	"database/sql"
	"fmt"

	"driveloop_admin/internal/domain/model"
)

type TripRepository interface {
	ListAll(ctx context.Context) ([]model.Trip, error)
}

type pgTripRepository struct {
	db *sql.DB
}

func NewPgTripRepository(db *sql.DB) TripRepository {
	return &pgTripRepository{db: db}
}

func (r *pgTripRepository) ListAll(ctx context.Context) ([]model.Trip, error) {
	query := `SELECT id, car_id, user_id, start_date, end_date, total_amount, created_at
	          FROM trips ORDER BY start_date DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgTripRepository.ListAll: %w", err)
	}
	defer rows.Close()

	var trips []model.Trip
	for rows.Next() {
		var t model.Trip
		err := rows.Scan(&t.ID, &t.CarID, &t.UserID, &t.StartDate, &t.EndDate, &t.TotalAmount, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("pgTripRepository.ListAll scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTripRepository.ListAll rows: %w", err)
	}
	return trips, nil
}
