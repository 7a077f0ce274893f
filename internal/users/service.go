package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-studio/internal/shared/auth"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// UpsertFromAuth persists the identity returned by the auth provider and
// returns the stored record, including its role.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return User{}, fmt.Errorf("%w: user id and email are required", ErrInvalidInput)
	}
	return s.Repo.Upsert(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID)
}

// ListBidders returns every bidder account. Only admins and managers may list them.
func (s *Service) ListBidders(ctx context.Context, p auth.Principal) ([]User, error) {
	if !p.CanManage() {
		return nil, ErrForbidden
	}
	return s.Repo.ListByRole(ctx, auth.RoleBidder)
}

// SetRole changes another account's role. Admin only; admins cannot change their own role.
func (s *Service) SetRole(ctx context.Context, p auth.Principal, userID string, role auth.Role) (User, error) {
	if !p.IsAdmin() {
		return User{}, ErrForbidden
	}
	if _, ok := auth.ParseRole(string(role)); !ok {
		return User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if userID == p.UserID {
		return User{}, fmt.Errorf("%w: cannot change your own role", ErrInvalidInput)
	}
	return s.Repo.SetRole(ctx, userID, role)
}
