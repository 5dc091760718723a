package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"driveloop_admin/internal/common"
	"driveloop_admin/internal/common/security"
	"driveloop_admin/internal/domain/model"
	"driveloop_admin/internal/domain/repository"
)

// SessionService owns the operator session lifecycle: one-shot resolution at
// startup, login/logout, and the redis-backed operator cache. The session is
// Unresolved until the first Initialize or Login resolves it; protected reads
// fail with ErrSessionUnresolved before that.
type SessionService struct {
	provider  repository.IdentityProvider
	adminRepo repository.AdminRepository
	cache     repository.OperatorCache

	mu          sync.Mutex
	operator    *model.Operator
	initialized bool
}

func NewSessionService(
	provider repository.IdentityProvider,
	adminRepo repository.AdminRepository,
	cache repository.OperatorCache,
) *SessionService {
	return &SessionService{
		provider:  provider,
		adminRepo: adminRepo,
		cache:     cache,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Operator *model.Operator `json:"operator"`
	Token    string          `json:"token"`
}

// Initialize resolves the session against the provider's current state.
// The cached operator is confirmed (identity still exists, authorization
// record still present) or discarded; either way the cache ends up matching
// the outcome. Idempotent after the first successful resolution; a remote
// failure leaves the session Unresolved so a retry is possible.
func (s *SessionService) Initialize(ctx context.Context) (*model.Operator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return s.operator, nil
	}

	cached, err := s.cache.Get(ctx)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to read session cache: %w", err)
	}

	if cached == nil || cached.ID == "" {
		return s.resolveUnauthenticated(ctx)
	}

	identity, err := s.provider.FindIdentity(ctx, cached.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return s.resolveUnauthenticated(ctx)
		}
		return nil, fmt.Errorf("failed to confirm identity: %w", err)
	}

	record, err := s.adminRepo.FindByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Identity exists but confers no admin rights.
			return s.resolveUnauthenticated(ctx)
		}
		return nil, fmt.Errorf("failed to fetch authorization record: %w", err)
	}

	operator := mergeOperator(identity, record)
	if err := s.cache.Put(ctx, operator); err != nil {
		return nil, fmt.Errorf("failed to cache operator: %w", err)
	}
	s.operator = operator
	s.initialized = true
	return operator, nil
}

func (s *SessionService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	identity, err := s.provider.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	record, err := s.adminRepo.FindByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotAdmin
		}
		return nil, fmt.Errorf("failed to fetch authorization record: %w", err)
	}

	operator := mergeOperator(identity, record)
	if err := s.cache.Put(ctx, operator); err != nil {
		return nil, fmt.Errorf("failed to cache operator: %w", err)
	}

	token, err := security.GenerateToken(operator.ID, operator.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.mu.Lock()
	s.operator = operator
	s.initialized = true
	s.mu.Unlock()

	return &AuthResponse{Operator: operator, Token: token}, nil
}

// Logout clears the cached operator unconditionally: a stale authorized
// session surviving a failed remote sign-out is worse than a local/remote
// mismatch, so the clear runs even when SignOut errors.
func (s *SessionService) Logout(ctx context.Context) error {
	signOutErr := s.provider.SignOut(ctx)

	clearErr := s.cache.Clear(ctx)

	s.mu.Lock()
	s.operator = nil
	s.initialized = true
	s.mu.Unlock()

	if signOutErr != nil {
		return fmt.Errorf("remote sign-out failed: %w", signOutErr)
	}
	return clearErr
}

// RestoreFromCache returns the provisional cached operator before Initialize
// resolves. Whatever Initialize ultimately resolves supersedes this value.
func (s *SessionService) RestoreFromCache(ctx context.Context) (*model.Operator, error) {
	cached, err := s.cache.Get(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session cache: %w", err)
	}
	return cached, nil
}

// Operator returns the resolved operator. ErrSessionUnresolved while the
// first resolution is pending; ErrUnauthorized when resolved with no operator.
func (s *SessionService) Operator() (*model.Operator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return nil, common.ErrSessionUnresolved
	}
	if s.operator == nil {
		return nil, common.ErrUnauthorized
	}
	return s.operator, nil
}

func (s *SessionService) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// resolveUnauthenticated clears the cache regardless of its prior content and
// marks the session resolved with no operator. Caller holds s.mu.
func (s *SessionService) resolveUnauthenticated(ctx context.Context) (*model.Operator, error) {
	if err := s.cache.Clear(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear session cache: %w", err)
	}
	s.operator = nil
	s.initialized = true
	return nil, nil
}

// mergeOperator combines the provider identity (id, email) with the
// authorization record (role).
func mergeOperator(identity *model.Identity, record *model.Operator) *model.Operator {
	return &model.Operator{
		ID:    identity.ID,
		Email: identity.Email,
		Role:  record.Role,
	}
}
