package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// NotificationUseCase avisos de la campana.
type NotificationUseCase struct {
	repo repository.NotificationRepository
	log  zerolog.Logger
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository, log zerolog.Logger) *NotificationUseCase {
	return &NotificationUseCase{repo: repo, log: log}
}

// Notify crea un aviso; si falla solo queda en el log.
func (uc *NotificationUseCase) Notify(ctx context.Context, userID, tenantID, title, message, link string) {
	n := &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		TenantID:  tenantID,
		Title:     title,
		Message:   message,
		Link:      link,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		uc.log.Error().Err(err).Str("user_id", userID).Str("tenant_id", tenantID).Msg("no se pudo crear la notificación")
	}
}

// List avisos del usuario, más recientes primero.
func (uc *NotificationUseCase) List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]dto.NotificationResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	list, err := uc.repo.ListByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Link:      n.Link,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead marca un aviso propio como leído.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id string) error {
	ok, err := uc.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("notificación")
	}
	return nil
}

// MarkAllRead marca todos los avisos del usuario; devuelve cuántos cambiaron.
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return uc.repo.MarkAllRead(ctx, userID)
}
