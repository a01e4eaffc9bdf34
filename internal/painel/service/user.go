package service

import (
	"context"
	"fmt"

	"github.com/painelhq/painel/internal/painel/domain"
	"github.com/painelhq/painel/internal/painel/store"
	"github.com/painelhq/painel/pkg/cryptox"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// ListUsers returns all users, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// UpdateProfile mutates nome, funcao and perfil for a user.
func (s *UserService) UpdateProfile(ctx context.Context, userID, nome, funcao, perfil string) error {
	if len(nome) < 2 || len(funcao) < 2 || len(perfil) < 2 {
		return fmt.Errorf("%w: profile fields", ErrInvalidRegister)
	}
	return s.Store.Users().UpdateUserProfile(ctx, userID, nome, funcao, perfil)
}

// ChangePassword verifies the current password before setting a new one
// and revokes every refresh token the user holds.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := cryptox.VerifyPassword(currentPassword, u.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}
	if v := ValidatePassword(newPassword); !v.Valid {
		return ErrWeakPassword
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
			return err
		}
		return tx.RefreshTokens().RevokeAllUserRefreshTokens(ctx, userID)
	})
}

// DeleteUser removes the account. Refresh tokens and pending resets
// cascade at the schema level.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	return s.Store.Users().DeleteUser(ctx, userID)
}
