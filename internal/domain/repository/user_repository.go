package repository

import (
	"context"
	"database/sql"
	"fmt"

	"driveloop_admin/internal/common"
	"driveloop_admin/internal/domain/model"
)

type UserRepository interface {
	ListAll(ctx context.Context) ([]model.User, error)
	UpdateStatus(ctx context.Context, id string, status model.UserStatus) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	query := `SELECT id, full_name, email, mobile, dob, trip_count, status, created_at
	          FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.ListAll: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.Mobile, &u.DOB, &u.TripCount, &u.Status, &u.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("pgUserRepository.ListAll scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.ListAll rows: %w", err)
	}
	return users, nil
}

func (r *pgUserRepository) UpdateStatus(ctx context.Context, id string, status model.UserStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateStatus: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateStatus affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
