package service

import (
	"context"
	"fmt"
	"sync"

	"driveloop_admin/internal/common"
	"driveloop_admin/internal/domain/model"
	"driveloop_admin/internal/domain/repository"
)

// allowedTransitions is the exposed standing control surface: suspension is
// reversible, banning requires a prior suspension, banned is terminal.
var allowedTransitions = map[model.UserStatus][]model.UserStatus{
	model.UserStatusActive:    {model.UserStatusSuspended},
	model.UserStatusSuspended: {model.UserStatusActive, model.UserStatusBanned},
	model.UserStatusBanned:    {},
}

// UserService manages user account standing, mirroring ListingService's
// wholesale-load / confirm-then-mutate model.
type UserService struct {
	userRepo repository.UserRepository

	mu    sync.Mutex
	users []model.User
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Load(ctx context.Context) error {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return nil
}

func (s *UserService) List() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out
}

// SetStatus moves a user through the standing state machine. The remote
// update runs first; the in-memory copy changes only after it confirms.
func (s *UserService) SetStatus(ctx context.Context, id string, status model.UserStatus) error {
	switch status {
	case model.UserStatusActive, model.UserStatusSuspended, model.UserStatusBanned:
	default:
		return common.Errorf("unknown status %q: %w", status, common.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.users {
		if s.users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return common.ErrNotFound
	}

	current := s.users[idx].Status
	if !transitionAllowed(current, status) {
		return common.Errorf("%s -> %s: %w", current, status, common.ErrInvalidTransition)
	}

	if err := s.userRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.users[idx].Status = status
	return nil
}

func transitionAllowed(from, to model.UserStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
