package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

var _ repository.ContactSubmissionRepository = (*ContactRepo)(nil)

// ContactRepo mensajes del formulario de contacto.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador.
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

func (r *ContactRepo) Create(ctx context.Context, c *entity.ContactSubmission) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO contact_form_submissions (id, name, email, company, phone, subject, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Name, c.Email, c.Company, c.Phone, c.Subject, c.Message, c.Status, c.CreatedAt,
	)
	if err != nil {
		return wrapDBErr("insert contact submission", err)
	}
	return nil
}

func (r *ContactRepo) List(ctx context.Context, f *repository.ListFilter) ([]*entity.ContactSubmission, error) {
	where, args, err := buildWhere(repository.CollectionContactSubmission, f)
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", domain.NewValidationError(err.Error()))
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, name, email, company, phone, subject, message, status, created_at
		FROM contact_form_submissions`+where, args...)
	if err != nil {
		return nil, wrapDBErr("list contact submissions", err)
	}
	defer rows.Close()
	var list []*entity.ContactSubmission
	for rows.Next() {
		var c entity.ContactSubmission
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Company, &c.Phone, &c.Subject, &c.Message, &c.Status, &c.CreatedAt); err != nil {
			return nil, wrapDBErr("scan contact submission", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
