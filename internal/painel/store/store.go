package store

import (
	"context"
	"errors"

	"github.com/painelhq/painel/internal/painel/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	MFAChallenges() MFAChallenges
	PasswordResets() PasswordResets

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., refresh
	// rotation). The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during password login. Email is matched on its
	// normalized (lowercase) form.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByUsuario returns a user by login name.
	GetUserByUsuario(ctx context.Context, usuario string) (domain.User, error)

	// GetUserByCPF returns a user by normalized (digits-only) CPF.
	GetUserByCPF(ctx context.Context, cpf string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when email, usuario or CPF collide.
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns all users ordered by creation date (newest first).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdateUserProfile mutates nome, funcao and perfil, bumping updated_at.
	UpdateUserProfile(ctx context.Context, userID, nome, funcao, perfil string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// DeleteUser cascades to refresh_tokens and password_resets (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)

	// UpdateMFASecret sets the MFA secret for a user.
	UpdateMFASecret(ctx context.Context, userID string, secret string) error

	// EnableMFA marks MFA as enabled for a user (sets mfa_enabled timestamp).
	EnableMFA(ctx context.Context, userID string) error

	// DisableMFA disables MFA for a user (clears mfa_enabled and mfa_secret).
	DisableMFA(ctx context.Context, userID string) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the token by its fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// RevokeRefreshToken flips revoked=1, sets updated_at.
	RevokeRefreshToken(ctx context.Context, hash string) error

	// RevokeAllUserRefreshTokens bulk revocation for a user (logout
	// everywhere, password reset).
	RevokeAllUserRefreshTokens(ctx context.Context, userID string) error

	// DeleteExpiredRefreshTokens is housekeeping.
	DeleteExpiredRefreshTokens(ctx context.Context) error
}

type MFAChallenges interface {
	// CreateMFAChallenge creates a new pending second-factor challenge.
	CreateMFAChallenge(ctx context.Context, c domain.MFAChallenge) error

	// GetMFAChallenge retrieves a challenge by id (only if not expired).
	GetMFAChallenge(ctx context.Context, id string) (domain.MFAChallenge, error)

	// IncrementMFAChallengeAttempts bumps the failed attempt counter and
	// returns the updated challenge.
	IncrementMFAChallengeAttempts(ctx context.Context, id string) (domain.MFAChallenge, error)

	// DeleteMFAChallenge removes a challenge by id.
	DeleteMFAChallenge(ctx context.Context, id string) error

	// DeleteExpiredMFAChallenges is housekeeping.
	DeleteExpiredMFAChallenges(ctx context.Context) error
}

type PasswordResets interface {
	// CreatePasswordReset writes a new reset record (token_hash is the
	// fingerprint of the opaque token).
	CreatePasswordReset(ctx context.Context, r domain.PasswordReset) error

	// GetActivePasswordResetByTokenHash returns a not-used, not-expired
	// reset by hash.
	GetActivePasswordResetByTokenHash(ctx context.Context, hash string) (domain.PasswordReset, error)

	// MarkPasswordResetUsed sets used=1 (transaction-friendly).
	MarkPasswordResetUsed(ctx context.Context, id string) error

	// DeleteExpiredPasswordResets is housekeeping.
	DeleteExpiredPasswordResets(ctx context.Context) error
}
