package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

// Notifier crea notificaciones en modo best-effort: un fallo se registra y no
// interrumpe la operación que la originó.
type Notifier struct {
	repo repository.NotificationRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewNotifier construye el notificador.
func NewNotifier(repo repository.NotificationRepository, log *logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{repo: repo, log: log.Named("notifier"), now: time.Now}
}

// Notify inserta la notificación; nunca devuelve error.
func (n *Notifier) Notify(ctx context.Context, userID, typ, title, message string) {
	if n == nil || n.repo == nil || userID == "" {
		return
	}
	err := n.repo.Create(ctx, &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: n.now(),
	})
	if err != nil {
		n.log.Warn().Err(err).Str("user_id", userID).Str("type", typ).Msg("no se pudo crear la notificación")
	}
}
