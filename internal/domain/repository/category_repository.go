package repository

import (
	"context"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	// GetByName busca sin distinguir mayúsculas. Error con domain.ErrNotFound si no existe.
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}

// CurrencyRepository catálogo de monedas (solo lectura).
type CurrencyRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Currency, error)
	List(ctx context.Context) ([]*entity.Currency, error)
}
