package sqlite

import (
	"context"

	"github.com/painelhq/painel/internal/painel/domain"
)

type passwordResetsRepo struct {
	db dbtx
}

func (r *passwordResetsRepo) CreatePasswordReset(ctx context.Context, p domain.PasswordReset) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO password_resets (id, user_id, token_hash, used, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.TokenHash, p.Used, p.ExpiresAt, p.CreatedAt,
	)
	return mapConflict(err)
}

func (r *passwordResetsRepo) GetActivePasswordResetByTokenHash(ctx context.Context, hash string) (domain.PasswordReset, error) {
	var p domain.PasswordReset
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, token_hash, used, expires_at, created_at
		FROM password_resets
		WHERE token_hash = ? AND used = 0 AND expires_at > CURRENT_TIMESTAMP`,
		hash,
	).Scan(&p.ID, &p.UserID, &p.TokenHash, &p.Used, &p.ExpiresAt, &p.CreatedAt)
	if err != nil {
		return domain.PasswordReset{}, mapNotFound(err)
	}
	return p, nil
}

func (r *passwordResetsRepo) MarkPasswordResetUsed(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE password_resets SET used = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *passwordResetsRepo) DeleteExpiredPasswordResets(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM password_resets WHERE expires_at < CURRENT_TIMESTAMP`)
	return err
}
