package repository

import (
	"context"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// List columnas filtrables: seller_id, status, category_id, currency_code, is_active, is_verified.
	List(ctx context.Context, f *ListFilter) ([]*entity.Product, error)
	CountByStatus(ctx context.Context, sellerID string) (map[string]int, error)
}
