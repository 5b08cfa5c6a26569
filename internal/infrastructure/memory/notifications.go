package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo notificaciones en memoria.
type NotificationRepo struct {
	s  *Store
	tx *txLog
}

// NewNotificationRepository construye el repositorio.
func NewNotificationRepository(s *Store) *NotificationRepo { return &NotificationRepo{s: s} }

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("notifications.create"); err != nil {
		return err
	}
	c := *n
	r.tx.notification(r.s, n.ID)
	r.s.notifications[n.ID] = &c
	return nil
}

func (r *NotificationRepo) List(ctx context.Context, f *repository.ListFilter) ([]*entity.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*entity.Notification, 0, len(r.s.notifications))
	for _, n := range r.s.notifications {
		c := *n
		all = append(all, &c)
	}
	return applyFilter(all, f, func(n *entity.Notification) row {
		return row{
			"user_id":    n.UserID,
			"is_read":    n.IsRead,
			"type":       n.Type,
			"created_at": n.CreatedAt,
		}
	})
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok || n.UserID != userID {
		return fmt.Errorf("mark notification %s: %w", id, domain.ErrNotFound)
	}
	c := *n
	c.IsRead = true
	r.tx.notification(r.s, id)
	r.s.notifications[id] = &c
	return nil
}
