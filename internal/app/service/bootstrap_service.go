package service

import (
	"context"
	"fmt"

	"driveloop_admin/internal/common"
	"driveloop_admin/internal/domain/model"
	"driveloop_admin/internal/domain/repository"

	"github.com/google/uuid"
)

// BootstrapService creates the very first operator: an identity at the
// provider plus the matching authorization record. Refused once any admin
// exists, so the public route is single-shot.
type BootstrapService struct {
	provider  repository.IdentityProvider
	adminRepo repository.AdminRepository
}

func NewBootstrapService(provider repository.IdentityProvider, adminRepo repository.AdminRepository) *BootstrapService {
	return &BootstrapService{provider: provider, adminRepo: adminRepo}
}

type CreateAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *BootstrapService) CreateFirstAdmin(ctx context.Context, req CreateAdminRequest) (*model.Operator, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil, common.Errorf("an admin already exists: %w", common.ErrConflict)
	}

	identity := &model.Identity{
		ID:    uuid.NewString(),
		Email: req.Email,
	}
	if err := s.provider.CreateIdentity(ctx, identity, req.Password); err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	operator := &model.Operator{
		ID:    identity.ID,
		Email: identity.Email,
		Role:  model.RoleAdmin,
	}
	if err := s.adminRepo.Create(ctx, operator); err != nil {
		return nil, fmt.Errorf("failed to create authorization record: %w", err)
	}
	return operator, nil
}
