package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

var _ repository.PasswordResetTokenRepository = (*ResetTokenRepo)(nil)

// ResetTokenRepo tokens de recuperación de contraseña.
type ResetTokenRepo struct {
	q Querier
}

// NewResetTokenRepository construye el adaptador.
func NewResetTokenRepository(q Querier) *ResetTokenRepo {
	return &ResetTokenRepo{q: q}
}

func (r *ResetTokenRepo) Create(ctx context.Context, t *entity.PasswordResetToken) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO password_reset_tokens (id, user_id, token_hash, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.UserID, t.TokenHash, t.ExpiresAt, t.Used, t.CreatedAt,
	)
	if err != nil {
		return wrapDBErr("insert reset token", err)
	}
	return nil
}

func (r *ResetTokenRepo) GetByTokenHash(ctx context.Context, hash string) (*entity.PasswordResetToken, error) {
	var t entity.PasswordResetToken
	err := r.q.QueryRow(ctx, `
		SELECT id, user_id, token_hash, expires_at, used, used_at, created_at
		FROM password_reset_tokens WHERE token_hash = $1`, hash,
	).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.Used, &t.UsedAt, &t.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("get reset token: %w", domain.ErrNotFound)
		}
		return nil, wrapDBErr("get reset token", err)
	}
	return &t, nil
}

// MarkUsed el "AND NOT used" hace que solo una de dos peticiones concurrentes gane.
func (r *ResetTokenRepo) MarkUsed(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE password_reset_tokens SET used = TRUE, used_at = $2 WHERE id = $1 AND NOT used`, id, at)
	if err != nil {
		return wrapDBErr("mark reset token used", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrResetTokenUsed
	}
	return nil
}
