package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

var _ repository.PasswordResetTokenRepository = (*ResetTokenRepo)(nil)

// ResetTokenRepo tokens de recuperación en memoria.
type ResetTokenRepo struct {
	s  *Store
	tx *txLog
}

// NewResetTokenRepository construye el repositorio.
func NewResetTokenRepository(s *Store) *ResetTokenRepo { return &ResetTokenRepo{s: s} }

func (r *ResetTokenRepo) Create(ctx context.Context, t *entity.PasswordResetToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("password_reset_tokens.create"); err != nil {
		return err
	}
	c := *t
	r.tx.resetToken(r.s, t.ID)
	r.s.resetTokens[t.ID] = &c
	return nil
}

func (r *ResetTokenRepo) GetByTokenHash(ctx context.Context, hash string) (*entity.PasswordResetToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.resetTokens {
		if t.TokenHash == hash {
			c := *t
			return &c, nil
		}
	}
	return nil, fmt.Errorf("get reset token: %w", domain.ErrNotFound)
}

func (r *ResetTokenRepo) MarkUsed(ctx context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.resetTokens[id]
	if !ok {
		return fmt.Errorf("mark reset token %s: %w", id, domain.ErrNotFound)
	}
	if t.Used {
		return domain.ErrResetTokenUsed
	}
	c := *t
	c.Used = true
	used := at
	c.UsedAt = &used
	r.tx.resetToken(r.s, id)
	r.s.resetTokens[id] = &c
	return nil
}
