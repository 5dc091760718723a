package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"driveloop_admin/internal/common"
	"driveloop_admin/internal/common/security"
	"driveloop_admin/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// IdentityProvider is the external auth service, reduced to the operations
// this console consumes. The pg implementation stands in for the managed
// provider; tests substitute fakes.
type IdentityProvider interface {
	// Authenticate exchanges credentials for the identity. Wrong email or
	// password both come back as ErrUnauthorized.
	Authenticate(ctx context.Context, email, password string) (*model.Identity, error)
	// FindIdentity reports whether an identity still exists; this is the
	// one-shot replacement for the provider's auth-state stream.
	FindIdentity(ctx context.Context, id string) (*model.Identity, error)
	CreateIdentity(ctx context.Context, identity *model.Identity, password string) error
	SignOut(ctx context.Context) error
}

type pgIdentityProvider struct {
	db *sql.DB
}

func NewPgIdentityProvider(db *sql.DB) IdentityProvider {
	return &pgIdentityProvider{db: db}
}

func (p *pgIdentityProvider) Authenticate(ctx context.Context, email, password string) (*model.Identity, error) {
	identity, err := p.findByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, err
	}
	if !security.CheckPasswordHash(password, identity.HashedPassword) {
		return nil, common.ErrUnauthorized
	}
	identity.HashedPassword = ""
	return identity, nil
}

func (p *pgIdentityProvider) FindIdentity(ctx context.Context, id string) (*model.Identity, error) {
	query := `SELECT id, email, created_at FROM identities WHERE id = $1`
	identity := &model.Identity{}
	err := p.db.QueryRowContext(ctx, query, id).Scan(&identity.ID, &identity.Email, &identity.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgIdentityProvider.FindIdentity: %w", err)
	}
	return identity, nil
}

func (p *pgIdentityProvider) CreateIdentity(ctx context.Context, identity *model.Identity, password string) error {
	hashed, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	query := `INSERT INTO identities (id, email, hashed_password) VALUES ($1, $2, $3)`
	_, err = p.db.ExecContext(ctx, query, identity.ID, identity.Email, hashed)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("identity with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgIdentityProvider.CreateIdentity: %w", err)
	}
	return nil
}

// SignOut has no server-side state to drop for the pg provider; the session
// service still clears its own cache around this call.
func (p *pgIdentityProvider) SignOut(ctx context.Context) error {
	return nil
}

func (p *pgIdentityProvider) findByEmail(ctx context.Context, email string) (*model.Identity, error) {
	query := `SELECT id, email, hashed_password, created_at FROM identities WHERE email = $1`
	identity := &model.Identity{}
	err := p.db.QueryRowContext(ctx, query, email).Scan(
		&identity.ID, &identity.Email, &identity.HashedPassword, &identity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgIdentityProvider.findByEmail: %w", err)
	}
	return identity, nil
}
