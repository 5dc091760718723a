package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"driveloop_admin/internal/common"
	"driveloop_admin/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// AdminRepository holds the authorization records: an identity is an operator
// only if a row exists here.
type AdminRepository interface {
	FindByID(ctx context.Context, id string) (*model.Operator, error)
	Create(ctx context.Context, operator *model.Operator) error
	Count(ctx context.Context) (int, error)
}

type pgAdminRepository struct {
	db *sql.DB
}

func NewPgAdminRepository(db *sql.DB) AdminRepository {
	return &pgAdminRepository{db: db}
}

func (r *pgAdminRepository) FindByID(ctx context.Context, id string) (*model.Operator, error) {
	query := `SELECT id, email, role FROM admins WHERE id = $1`
	operator := &model.Operator{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&operator.ID, &operator.Email, &operator.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAdminRepository.FindByID: %w", err)
	}
	return operator, nil
}

func (r *pgAdminRepository) Create(ctx context.Context, operator *model.Operator) error {
	query := `INSERT INTO admins (id, email, role) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, operator.ID, operator.Email, operator.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("admin record already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgAdminRepository.Create: %w", err)
	}
	return nil
}

func (r *pgAdminRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgAdminRepository.Count: %w", err)
	}
	return count, nil
}
