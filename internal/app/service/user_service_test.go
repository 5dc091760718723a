package service

import (
	"context"
	"errors"
	"testing"

	"driveloop_admin/internal/common"
	"driveloop_admin/internal/domain/model"
)

func seedUsers() []model.User {
	return []model.User{
		{ID: "u-1", FullName: "Amina Berrada", Email: "amina@example.com", Status: model.UserStatusActive},
		{ID: "u-2", FullName: "Karim Haddad", Email: "karim@example.com", Status: model.UserStatusSuspended},
		{ID: "u-3", FullName: "Lea Martin", Email: "lea@example.com", Status: model.UserStatusBanned},
	}
}

func loadedUserService(t *testing.T, repo *fakeUserRepo) *UserService {
	t.Helper()
	s := NewUserService(repo)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func userByID(t *testing.T, s *UserService, id string) model.User {
	t.Helper()
	for _, u := range s.List() {
		if u.ID == id {
			return u
		}
	}
	t.Fatalf("user %s not found", id)
	return model.User{}
}

func TestSuspendActiveUser(t *testing.T) {
	repo := &fakeUserRepo{users: seedUsers()}
	s := loadedUserService(t, repo)

	if err := s.SetStatus(context.Background(), "u-1", model.UserStatusSuspended); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if got := userByID(t, s, "u-1").Status; got != model.UserStatusSuspended {
		t.Fatalf("status = %s", got)
	}
}

func TestReactivateSuspendedUser(t *testing.T) {
	repo := &fakeUserRepo{users: seedUsers()}
	s := loadedUserService(t, repo)

	if err := s.SetStatus(context.Background(), "u-2", model.UserStatusActive); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if got := userByID(t, s, "u-2").Status; got != model.UserStatusActive {
		t.Fatalf("status = %s", got)
	}
}

func TestBanRequiresPriorSuspension(t *testing.T) {
	repo := &fakeUserRepo{users: seedUsers()}
	s := loadedUserService(t, repo)
	ctx := context.Background()

	// Direct active -> banned is not reachable through the public operation.
	err := s.SetStatus(ctx, "u-1", model.UserStatusBanned)
	if !errors.Is(err, common.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if repo.updates != 0 {
		t.Fatal("rejected transition must not reach the store")
	}
	if got := userByID(t, s, "u-1").Status; got != model.UserStatusActive {
		t.Fatalf("status changed to %s", got)
	}

	// The two-step path works.
	if err := s.SetStatus(ctx, "u-1", model.UserStatusSuspended); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if err := s.SetStatus(ctx, "u-1", model.UserStatusBanned); err != nil {
		t.Fatalf("ban after suspension: %v", err)
	}
	if got := userByID(t, s, "u-1").Status; got != model.UserStatusBanned {
		t.Fatalf("status = %s", got)
	}
}

func TestBannedIsTerminal(t *testing.T) {
	repo := &fakeUserRepo{users: seedUsers()}
	s := loadedUserService(t, repo)

	for _, target := range []model.UserStatus{model.UserStatusActive, model.UserStatusSuspended} {
		err := s.SetStatus(context.Background(), "u-3", target)
		if !errors.Is(err, common.ErrInvalidTransition) {
			t.Fatalf("banned -> %s: expected ErrInvalidTransition, got %v", target, err)
		}
	}
}

func TestSetStatusRemoteFailureLeavesMemoryUntouched(t *testing.T) {
	repo := &fakeUserRepo{users: seedUsers()}
	s := loadedUserService(t, repo)

	repo.updateErr = common.ErrServiceUnavailable
	err := s.SetStatus(context.Background(), "u-1", model.UserStatusSuspended)
	if !errors.Is(err, common.ErrServiceUnavailable) {
		t.Fatalf("expected remote error, got %v", err)
	}
	if got := userByID(t, s, "u-1").Status; got != model.UserStatusActive {
		t.Fatalf("in-memory status changed on remote failure: %s", got)
	}
}

func TestSetStatusValidation(t *testing.T) {
	repo := &fakeUserRepo{users: seedUsers()}
	s := loadedUserService(t, repo)
	ctx := context.Background()

	if err := s.SetStatus(ctx, "u-1", "vip"); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := s.SetStatus(ctx, "nope", model.UserStatusSuspended); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
