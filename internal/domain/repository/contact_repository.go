package repository

import (
	"context"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
)

// ContactSubmissionRepository mensajes del formulario de contacto.
type ContactSubmissionRepository interface {
	Create(ctx context.Context, s *entity.ContactSubmission) error
	// List columnas filtrables: status, email.
	List(ctx context.Context, f *ListFilter) ([]*entity.ContactSubmission, error)
}
