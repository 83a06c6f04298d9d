package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/martinsumner/careerpilot/internal/config"
	"github.com/martinsumner/careerpilot/internal/types"
)

// UserService provides business logic for account operations.
type UserService struct {
	store          Store
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store Store, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new account and returns the fresh (mostly empty)
// profile.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.UserProfile, error) {
	exists, err := s.store.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.store.CreateUser(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}
	return profile, nil
}

// Login authenticates a user and returns the full profile. Unknown email
// and wrong password produce the same error.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.UserProfile, error) {
	account, err := s.store.GetAccountByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	if account == nil {
		return nil, &ErrInvalidCredentials{}
	}

	if !s.passwordConfig.VerifyPassword(req.Password, account.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	profile, err := s.store.GetProfile(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, &ErrUserNotFound{UserID: account.ID}
	}
	return profile, nil
}

// UpdatePassword verifies the current password and replaces it.
func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	account, err := s.store.GetAccount(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return &ErrUserNotFound{UserID: userID}
	}

	if !s.passwordConfig.VerifyPassword(currentPassword, account.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	newPasswordHash, err := s.passwordConfig.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.store.UpdatePassword(ctx, userID, newPasswordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
