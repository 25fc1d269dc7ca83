package postgres

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.WebhookRepository = (*WebhookRepo)(nil)

const webhookColumns = `id, tenant_id, url, events, secret, is_active, created_at, updated_at`

// WebhookRepo destinos de webhooks y bitácora de entregas.
type WebhookRepo struct {
	q Querier
}

// NewWebhookRepository construye el adaptador.
func NewWebhookRepository(q Querier) *WebhookRepo {
	return &WebhookRepo{q: q}
}

func (r *WebhookRepo) Create(ctx context.Context, w *entity.Webhook) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO webhooks (id, tenant_id, url, events, secret, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		w.ID, w.TenantID, w.URL, w.Events, w.Secret, w.IsActive, w.CreatedAt, w.UpdatedAt)
	return wrap("insert webhook", err)
}

func (r *WebhookRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Webhook, error) {
	var w entity.Webhook
	err := pgxscan.Get(ctx, r.q, &w, `SELECT `+webhookColumns+` FROM webhooks WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, wrap("get webhook", err)
	}
	return &w, nil
}

func (r *WebhookRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Webhook, error) {
	var list []*entity.Webhook
	err := pgxscan.Select(ctx, r.q, &list, `SELECT `+webhookColumns+` FROM webhooks WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, wrap("list webhooks", err)
	}
	return list, nil
}

func (r *WebhookRepo) ListActiveForEvent(ctx context.Context, tenantID, event string) ([]*entity.Webhook, error) {
	var list []*entity.Webhook
	err := pgxscan.Select(ctx, r.q, &list, `
		SELECT `+webhookColumns+` FROM webhooks
		WHERE tenant_id = $1 AND is_active AND ($2 = ANY(events) OR '*' = ANY(events))
		ORDER BY created_at`, tenantID, event)
	if err != nil {
		return nil, wrap("list webhooks for event", err)
	}
	return list, nil
}

func (r *WebhookRepo) Update(ctx context.Context, w *entity.Webhook) error {
	_, err := r.q.Exec(ctx, `
		UPDATE webhooks SET url = $3, events = $4, secret = $5, is_active = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2`,
		w.TenantID, w.ID, w.URL, w.Events, w.Secret, w.IsActive, w.UpdatedAt)
	return wrap("update webhook", err)
}

// Delete elimina el webhook; la bitácora cae en cascada.
func (r *WebhookRepo) Delete(ctx context.Context, tenantID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM webhooks WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return wrap("delete webhook", err)
}

func (r *WebhookRepo) CreateLog(ctx context.Context, l *entity.WebhookLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO webhook_logs (id, tenant_id, webhook_id, event, status_code, response_body, error,
			success, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		l.ID, l.TenantID, l.WebhookID, l.Event, l.StatusCode, l.ResponseBody, l.Error,
		l.Success, l.DurationMS, l.CreatedAt)
	return wrap("insert webhook log", err)
}

func (r *WebhookRepo) ListLogs(ctx context.Context, tenantID, webhookID string, limit int) ([]*entity.WebhookLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, tenant_id, webhook_id, event, status_code, response_body, error, success, duration_ms, created_at
		FROM webhook_logs WHERE tenant_id = $1 AND webhook_id = $2
		ORDER BY created_at DESC LIMIT $3`, tenantID, webhookID, limit)
	if err != nil {
		return nil, wrap("list webhook logs", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.WebhookLog, error) {
		var l entity.WebhookLog
		err := row.Scan(&l.ID, &l.TenantID, &l.WebhookID, &l.Event, &l.StatusCode, &l.ResponseBody,
			&l.Error, &l.Success, &l.DurationMS, &l.CreatedAt)
		return &l, err
	})
}

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo avisos por usuario.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO notifications (id, user_id, tenant_id, title, message, link, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.UserID, nullable(n.TenantID), n.Title, n.Message, n.Link, n.IsRead, n.CreatedAt)
	return wrap("insert notification", err)
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*entity.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	var list []*entity.Notification
	err := pgxscan.Select(ctx, r.q, &list, `
		SELECT id, user_id, COALESCE(tenant_id::text, '') AS tenant_id, title, message, link, is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND (NOT $2 OR NOT is_read)
		ORDER BY created_at DESC LIMIT $3`, userID, unreadOnly, limit)
	if err != nil {
		return nil, wrap("list notifications", err)
	}
	return list, nil
}

// MarkRead devuelve false si la notificación no existe o no es del usuario.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE notifications SET is_read = true WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return false, wrap("mark notification read", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `UPDATE notifications SET is_read = true WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, wrap("mark all notifications read", err)
	}
	return tag.RowsAffected(), nil
}
