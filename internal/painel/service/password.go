package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/painelhq/painel/internal/painel/domain"
	"github.com/painelhq/painel/internal/painel/store"
	"github.com/painelhq/painel/pkg/cryptox"
	"github.com/painelhq/painel/pkg/idx"
	"github.com/painelhq/painel/pkg/slogx"
)

// PasswordValidation reports strength check results for a candidate
// password.
type PasswordValidation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Score    int      `json:"score"`
}

// ValidatePassword applies the strength policy: at least 8 chars with
// upper, lower and digit required; length and symbols raise the score.
func ValidatePassword(password string) PasswordValidation {
	v := PasswordValidation{Errors: []string{}, Warnings: []string{}}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	if len(password) < 8 {
		v.Errors = append(v.Errors, "A senha deve ter pelo menos 8 caracteres")
	}
	if !upper {
		v.Errors = append(v.Errors, "A senha deve conter pelo menos uma letra maiúscula")
	}
	if !lower {
		v.Errors = append(v.Errors, "A senha deve conter pelo menos uma letra minúscula")
	}
	if !digit {
		v.Errors = append(v.Errors, "A senha deve conter pelo menos um número")
	}
	if !symbol {
		v.Warnings = append(v.Warnings, "Adicione um caractere especial para fortalecer a senha")
	}
	if len(password) >= 8 && len(password) < 12 {
		v.Warnings = append(v.Warnings, "Senhas com 12 ou mais caracteres são mais seguras")
	}

	score := 0
	for _, ok := range []bool{upper, lower, digit, symbol} {
		if ok {
			score += 15
		}
	}
	switch {
	case len(password) >= 16:
		score += 40
	case len(password) >= 12:
		score += 30
	case len(password) >= 8:
		score += 20
	}
	v.Score = min(score, 100)
	v.Valid = len(v.Errors) == 0
	return v
}

// RequestPasswordReset mints a single-use reset token for the account.
// When the email does not exist it still reports success so account
// existence cannot be probed. The opaque token is returned for delivery;
// only its fingerprint is stored.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	now := time.Now().UTC()
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("password reset requested for unknown email")
			return "", nil
		}
		return "", err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	reset := domain.PasswordReset{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: now.Add(s.ResetTTL),
		CreatedAt: now,
	}
	if err := s.Store.PasswordResets().CreatePasswordReset(ctx, reset); err != nil {
		return "", err
	}

	l.Info("password reset token issued", "user_id", u.ID)
	return token, nil
}

// ConfirmPasswordReset redeems a reset token and sets the new password.
// All of the user's refresh tokens are revoked in the same transaction.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidResetToken
	}

	if v := ValidatePassword(newPassword); !v.Valid {
		return ErrWeakPassword
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	fp := cryptox.FingerprintToken(token)

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		reset, err := tx.PasswordResets().GetActivePasswordResetByTokenHash(ctx, fp)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidResetToken
			}
			return err
		}
		if err := tx.PasswordResets().MarkPasswordResetUsed(ctx, reset.ID); err != nil {
			return err
		}
		if err := tx.Users().UpdatePasswordHash(ctx, reset.UserID, hash); err != nil {
			return err
		}
		return tx.RefreshTokens().RevokeAllUserRefreshTokens(ctx, reset.UserID)
	})
}
