package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// WebhookRepository webhooks del tenant y su bitácora de entregas.
type WebhookRepository interface {
	Create(ctx context.Context, webhook *entity.Webhook) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Webhook, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Webhook, error)
	// ListActiveForEvent webhooks activos suscritos al evento o a "*".
	ListActiveForEvent(ctx context.Context, tenantID, event string) ([]*entity.Webhook, error)
	Update(ctx context.Context, webhook *entity.Webhook) error
	Delete(ctx context.Context, tenantID, id string) error

	CreateLog(ctx context.Context, log *entity.WebhookLog) error
	ListLogs(ctx context.Context, tenantID, webhookID string, limit int) ([]*entity.WebhookLog, error)
}

// NotificationRepository avisos por usuario.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, userID, id string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}
