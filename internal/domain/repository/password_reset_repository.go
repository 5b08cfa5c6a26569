package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
)

// PasswordResetTokenRepository tokens de recuperación de contraseña.
type PasswordResetTokenRepository interface {
	Create(ctx context.Context, t *entity.PasswordResetToken) error
	GetByTokenHash(ctx context.Context, hash string) (*entity.PasswordResetToken, error)
	// MarkUsed marca el token como usado solo si aún no lo estaba. Devuelve domain.ErrResetTokenUsed
	// si otra petición lo consumió primero.
	MarkUsed(ctx context.Context, id string, at time.Time) error
}
