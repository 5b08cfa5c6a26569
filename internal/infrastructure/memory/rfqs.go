package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

var _ repository.RFQRepository = (*RFQRepo)(nil)

// RFQRepo solicitudes de cotización en memoria.
type RFQRepo struct {
	s *Store
}

// NewRFQRepository construye el repositorio.
func NewRFQRepository(s *Store) *RFQRepo { return &RFQRepo{s: s} }

func (r *RFQRepo) Create(ctx context.Context, q *entity.RFQ) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("rfqs.create"); err != nil {
		return err
	}
	c := *q
	c.ProductName = ""
	r.s.rfqs[q.ID] = &c
	return nil
}

func (r *RFQRepo) GetByID(ctx context.Context, id string) (*entity.RFQ, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q, ok := r.s.rfqs[id]
	if !ok {
		return nil, fmt.Errorf("get rfq %s: %w", id, domain.ErrRFQNotFound)
	}
	return r.s.resolveRFQ(q), nil
}

func (r *RFQRepo) Update(ctx context.Context, q *entity.RFQ) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("rfqs.update"); err != nil {
		return err
	}
	if _, ok := r.s.rfqs[q.ID]; !ok {
		return fmt.Errorf("update rfq %s: %w", q.ID, domain.ErrRFQNotFound)
	}
	c := *q
	c.ProductName = ""
	r.s.rfqs[q.ID] = &c
	return nil
}

func (r *RFQRepo) List(ctx context.Context, f *repository.ListFilter) ([]*entity.RFQ, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*entity.RFQ, 0, len(r.s.rfqs))
	for _, q := range r.s.rfqs {
		all = append(all, r.s.resolveRFQ(q))
	}
	return applyFilter(all, f, func(q *entity.RFQ) row {
		return row{
			"buyer_id":   q.BuyerID,
			"seller_id":  q.SellerID,
			"product_id": q.ProductID,
			"status":     q.Status.String(),
			"created_at": q.CreatedAt,
			"updated_at": q.UpdatedAt,
		}
	})
}

func (r *RFQRepo) CountByStatus(ctx context.Context, sellerID string) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := map[string]int{}
	for _, q := range r.s.rfqs {
		if sellerID == "" || q.SellerID == sellerID {
			out[q.Status.String()]++
		}
	}
	return out, nil
}

// resolveRFQ requiere s.mu tomado.
func (s *Store) resolveRFQ(q *entity.RFQ) *entity.RFQ {
	c := *q
	if p, ok := s.products[q.ProductID]; ok {
		c.ProductName = p.Name
	}
	return &c
}
