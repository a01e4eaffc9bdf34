package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/painelhq/painel/internal/painel/domain"
	"github.com/painelhq/painel/internal/painel/store"
	"github.com/painelhq/painel/pkg/cryptox"
	"github.com/painelhq/painel/pkg/idx"
	"github.com/painelhq/painel/pkg/jwtx"
	"github.com/painelhq/painel/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrInvalidMFACode     = errors.New("invalid_mfa_code")
	ErrInvalidChallenge   = errors.New("invalid_mfa_challenge")
	ErrTooManyAttempts    = errors.New("too_many_attempts")
	ErrInvalidResetToken  = errors.New("invalid_reset_token")
	ErrWeakPassword       = errors.New("weak_password")
	ErrDuplicateUser      = errors.New("duplicate_user")
	ErrInvalidRegister    = errors.New("invalid_register")
)

type AuthService struct {
	Signer     jwtx.Signer
	Store      store.Store
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	MFATTL     time.Duration // challenge lifetime between password and code
	ResetTTL   time.Duration // password reset token lifetime
}

// LoginResult carries either an issued token pair or, when the user has
// MFA enabled, a pending challenge the client must answer first.
type LoginResult struct {
	User      domain.User
	Tokens    *domain.TokenPair
	Challenge *domain.MFAChallenge
}

// Login verifies an identifier+password pair. The identifier may be an
// email, a CPF or the usuario login name. With MFA disabled it issues
// tokens directly; with MFA enabled it parks a challenge and issues
// nothing yet.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	now := time.Now().UTC()
	l := slogx.FromContext(ctx)

	u, err := s.lookupUser(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn time comparable to a real verification so a miss is not
			// distinguishable by latency.
			_ = cryptox.VerifyPassword(password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("login password verification failed", slog.String("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}

	if u.MFAEnabled != nil {
		challenge := domain.MFAChallenge{
			ID:        idx.New().String(),
			UserID:    u.ID,
			SessionID: idx.New().String(),
			CreatedAt: now,
			ExpiresAt: now.Add(s.MFATTL),
		}
		if err := s.Store.MFAChallenges().CreateMFAChallenge(ctx, challenge); err != nil {
			return nil, err
		}
		l.Info("login requires MFA", slog.String("user_id", u.ID))
		return &LoginResult{User: u, Challenge: &challenge}, nil
	}

	pair, err := s.issueTokens(ctx, u, idx.New().String(), now)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, Tokens: pair}, nil
}

// lookupUser resolves a login identifier: anything containing "@" is an
// email, a string that passes CPF validation matches on its digits, and
// everything else is treated as the usuario login name.
func (s *AuthService) lookupUser(ctx context.Context, identifier string) (domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	switch {
	case strings.Contains(identifier, "@"):
		return s.Store.Users().GetUserByEmail(ctx, identifier)
	case domain.ValidateCPF(identifier) == nil:
		return s.Store.Users().GetUserByCPF(ctx, domain.NormalizeCPF(identifier))
	default:
		return s.Store.Users().GetUserByUsuario(ctx, identifier)
	}
}

// LoginMFA answers a pending challenge with a TOTP code. Five failed
// attempts destroy the challenge.
func (s *AuthService) LoginMFA(ctx context.Context, challengeID, code string) (*LoginResult, error) {
	now := time.Now().UTC()
	l := slogx.FromContext(ctx)

	challenge, err := s.Store.MFAChallenges().GetMFAChallenge(ctx, challengeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidChallenge
		}
		return nil, err
	}

	if challenge.Attempts >= domain.MFAMaxAttempts {
		_ = s.Store.MFAChallenges().DeleteMFAChallenge(ctx, challengeID)
		l.Warn("MFA challenge exceeded max attempts",
			slog.String("challenge_id", challengeID),
			slog.Int("attempts", challenge.Attempts),
		)
		return nil, ErrTooManyAttempts
	}

	u, err := s.Store.Users().GetUserByID(ctx, challenge.UserID)
	if err != nil {
		return nil, err
	}

	if u.MFASecret == nil || !totp.Validate(code, *u.MFASecret) {
		updated, incErr := s.Store.MFAChallenges().IncrementMFAChallengeAttempts(ctx, challengeID)
		if incErr != nil {
			return nil, ErrInvalidMFACode
		}
		l.Warn("MFA validation failed",
			slog.String("challenge_id", challengeID),
			slog.Int("attempts", updated.Attempts),
		)
		if updated.Attempts >= domain.MFAMaxAttempts {
			_ = s.Store.MFAChallenges().DeleteMFAChallenge(ctx, challengeID)
			return nil, ErrTooManyAttempts
		}
		return nil, ErrInvalidMFACode
	}

	var pair *domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.MFAChallenges().DeleteMFAChallenge(ctx, challengeID); err != nil {
			return err
		}
		pair, err = s.issueTokensTx(ctx, tx, u, challenge.SessionID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, Tokens: pair}, nil
}

// Refresh rotates a refresh token: the old one is revoked and a new pair
// is issued atomically. Reuse of a revoked token fails closed.
func (s *AuthService) Refresh(ctx context.Context, refreshOpaque string) (*LoginResult, error) {
	now := time.Now().UTC()

	fp := cryptox.FingerprintToken(refreshOpaque)
	rt, err := s.Store.RefreshTokens().GetRefreshTokenByHash(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	if rt.Revoked || now.After(rt.ExpiresAt) {
		return nil, ErrInvalidRefresh
	}

	u, err := s.Store.Users().GetUserByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	var pair *domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().RevokeRefreshToken(ctx, fp); err != nil {
			return err
		}
		// Session ID survives rotation.
		pair, err = s.issueTokensTx(ctx, tx, u, rt.SessionID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, Tokens: pair}, nil
}

// Logout revokes the presented refresh token. A missing or already-revoked
// token is not an error: logout always succeeds from the caller's side.
func (s *AuthService) Logout(ctx context.Context, refreshOpaque string) error {
	if refreshOpaque == "" {
		return nil
	}
	fp := cryptox.FingerprintToken(refreshOpaque)
	err := s.Store.RefreshTokens().RevokeRefreshToken(ctx, fp)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

// issueTokens signs an access token and persists a refresh token record.
func (s *AuthService) issueTokens(ctx context.Context, u domain.User, sessionID string, now time.Time) (*domain.TokenPair, error) {
	var pair *domain.TokenPair
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		pair, err = s.issueTokensTx(ctx, tx, u, sessionID, now)
		return err
	})
	return pair, err
}

func (s *AuthService) issueTokensTx(ctx context.Context, tx store.Tx, u domain.User, sessionID string, now time.Time) (*domain.TokenPair, error) {
	claims := jwtx.NewAccessClaims(u.ID, u.Usuario, u.Perfil, sessionID, s.Issuer, s.AccessTTL, now)
	accessToken, err := s.Signer.Sign(claims)
	if err != nil {
		return nil, err
	}

	refreshOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}

	rt := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(refreshOpaque),
		SessionID: sessionID,
		ExpiresAt: now.Add(s.RefreshTTL),
		Revoked:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.RefreshTokens().CreateRefreshToken(ctx, rt); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  now.Add(s.AccessTTL),
		RefreshToken:     refreshOpaque,
		RefreshExpiresAt: rt.ExpiresAt,
		SessionID:        sessionID,
	}, nil
}

// dummyHash is a throwaway argon2 digest used to equalize timing when the
// email does not resolve to a user.
const dummyHash = "$argon2id$v=19$m=19456,t=2,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// trimFields strips surrounding whitespace from login inputs.
func trimFields(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}
