package repository

import (
	"context"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
)

// RFQRepository define el puerto de persistencia para RFQ.
// Update es last-write-wins: no hay token de concurrencia optimista.
type RFQRepository interface {
	Create(ctx context.Context, r *entity.RFQ) error
	GetByID(ctx context.Context, id string) (*entity.RFQ, error)
	Update(ctx context.Context, r *entity.RFQ) error
	// List columnas filtrables: buyer_id, seller_id, product_id, status.
	List(ctx context.Context, f *ListFilter) ([]*entity.RFQ, error)
	CountByStatus(ctx context.Context, sellerID string) (map[string]int, error)
}
