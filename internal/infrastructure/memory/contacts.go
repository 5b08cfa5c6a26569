package memory

import (
	"context"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

var _ repository.ContactSubmissionRepository = (*ContactRepo)(nil)

// ContactRepo mensajes de contacto en memoria.
type ContactRepo struct {
	s *Store
}

// NewContactRepository construye el repositorio.
func NewContactRepository(s *Store) *ContactRepo { return &ContactRepo{s: s} }

func (r *ContactRepo) Create(ctx context.Context, c *entity.ContactSubmission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("contact_form_submissions.create"); err != nil {
		return err
	}
	cp := *c
	r.s.contacts[c.ID] = &cp
	return nil
}

func (r *ContactRepo) List(ctx context.Context, f *repository.ListFilter) ([]*entity.ContactSubmission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*entity.ContactSubmission, 0, len(r.s.contacts))
	for _, c := range r.s.contacts {
		cp := *c
		all = append(all, &cp)
	}
	return applyFilter(all, f, func(c *entity.ContactSubmission) row {
		return row{
			"status":     c.Status,
			"email":      c.Email,
			"created_at": c.CreatedAt,
		}
	})
}
