package repository

import (
	"context"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
)

// NotificationRepository notificaciones por usuario.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// List columnas filtrables: user_id, is_read, type.
	List(ctx context.Context, f *ListFilter) ([]*entity.Notification, error)
	// MarkRead marca como leída una notificación del usuario; domain.ErrNotFound si no le pertenece.
	MarkRead(ctx context.Context, id, userID string) error
}
