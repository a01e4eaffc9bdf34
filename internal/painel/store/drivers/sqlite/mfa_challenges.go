package sqlite

import (
	"context"

	"github.com/painelhq/painel/internal/painel/domain"
)

type mfaChallengesRepo struct {
	db dbtx
}

func (r *mfaChallengesRepo) CreateMFAChallenge(ctx context.Context, c domain.MFAChallenge) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mfa_challenges (id, user_id, session_id, attempts, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.SessionID, c.Attempts, c.CreatedAt, c.ExpiresAt,
	)
	return mapConflict(err)
}

func (r *mfaChallengesRepo) GetMFAChallenge(ctx context.Context, id string) (domain.MFAChallenge, error) {
	var c domain.MFAChallenge
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, session_id, attempts, created_at, expires_at
		FROM mfa_challenges WHERE id = ? AND expires_at > CURRENT_TIMESTAMP`,
		id,
	).Scan(&c.ID, &c.UserID, &c.SessionID, &c.Attempts, &c.CreatedAt, &c.ExpiresAt)
	if err != nil {
		return domain.MFAChallenge{}, mapNotFound(err)
	}
	return c, nil
}

func (r *mfaChallengesRepo) IncrementMFAChallengeAttempts(ctx context.Context, id string) (domain.MFAChallenge, error) {
	var c domain.MFAChallenge
	err := r.db.QueryRowContext(ctx, `
		UPDATE mfa_challenges SET attempts = attempts + 1
		WHERE id = ?
		RETURNING id, user_id, session_id, attempts, created_at, expires_at`,
		id,
	).Scan(&c.ID, &c.UserID, &c.SessionID, &c.Attempts, &c.CreatedAt, &c.ExpiresAt)
	if err != nil {
		return domain.MFAChallenge{}, mapNotFound(err)
	}
	return c, nil
}

func (r *mfaChallengesRepo) DeleteMFAChallenge(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM mfa_challenges WHERE id = ?`, id)
	return err
}

func (r *mfaChallengesRepo) DeleteExpiredMFAChallenges(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM mfa_challenges WHERE expires_at < CURRENT_TIMESTAMP`)
	return err
}
