package repository

import (
	"context"
	"time"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas de una fila inexistente devuelven un error que envuelve domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, userID, hash string, at time.Time) error
	TouchLogin(ctx context.Context, userID string, at time.Time) error
	// List lista usuarios con su rol primario. Columnas filtrables: email, is_active, is_verified, role.
	List(ctx context.Context, f *ListFilter) ([]*entity.UserWithRole, error)
}
