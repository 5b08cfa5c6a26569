package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo notificaciones sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO notifications (id, user_id, type, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.IsRead, n.CreatedAt,
	)
	if err != nil {
		return wrapDBErr("insert notification", err)
	}
	return nil
}

func (r *NotificationRepo) List(ctx context.Context, f *repository.ListFilter) ([]*entity.Notification, error) {
	where, args, err := buildWhere(repository.CollectionNotifications, f)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", domain.NewValidationError(err.Error()))
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, user_id, type, title, message, is_read, created_at FROM notifications`+where, args...)
	if err != nil {
		return nil, wrapDBErr("list notifications", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, wrapDBErr("scan notification", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return wrapDBErr("mark notification read", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("mark notification %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
