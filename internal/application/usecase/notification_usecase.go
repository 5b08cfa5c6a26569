package usecase

import (
	"context"

	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

// NotificationUseCase lectura de notificaciones propias.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List notificaciones del usuario; unreadOnly filtra las no leídas.
func (uc *NotificationUseCase) List(ctx context.Context, userID string, unreadOnly bool, page dto.PageRequest) ([]dto.NotificationResponse, error) {
	page.DefaultPage()
	f := repository.NewFilter().Where("user_id", userID).Page(page.Limit, page.Offset)
	if unreadOnly {
		f.Where("is_read", false)
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead marca una notificación propia como leída.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id string) error {
	return uc.repo.MarkRead(ctx, id, userID)
}
