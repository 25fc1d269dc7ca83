package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// WebhookRepo webhooks y bitácora en memoria. Es seguro para uso concurrente:
// el dispatcher escribe la bitácora desde varias goroutines.
type WebhookRepo struct {
	mu    sync.Mutex
	hooks map[string]entity.Webhook
	logs  []entity.WebhookLog
}

// NewWebhookRepo crea el repositorio vacío.
func NewWebhookRepo() *WebhookRepo {
	return &WebhookRepo{hooks: map[string]entity.Webhook{}}
}

func (r *WebhookRepo) Create(_ context.Context, w *entity.Webhook) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[w.ID] = *w
	return nil
}

func (r *WebhookRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Webhook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.hooks[id]
	if !ok || w.TenantID != tenantID {
		return nil, nil
	}
	return &w, nil
}

func (r *WebhookRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.Webhook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Webhook
	for _, w := range r.hooks {
		if w.TenantID == tenantID {
			w := w
			out = append(out, &w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *WebhookRepo) ListActiveForEvent(_ context.Context, tenantID, event string) ([]*entity.Webhook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Webhook
	for _, w := range r.hooks {
		if w.TenantID == tenantID && w.IsActive && w.Accepts(event) {
			w := w
			out = append(out, &w)
		}
	}
	return out, nil
}

func (r *WebhookRepo) Update(_ context.Context, w *entity.Webhook) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.hooks[w.ID]
	if !ok || cur.TenantID != w.TenantID {
		return domain.ErrNotFound
	}
	r.hooks[w.ID] = *w
	return nil
}

func (r *WebhookRepo) Delete(_ context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.hooks[id]
	if !ok || cur.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.hooks, id)
	return nil
}

func (r *WebhookRepo) CreateLog(_ context.Context, l *entity.WebhookLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *l)
	return nil
}

func (r *WebhookRepo) ListLogs(_ context.Context, tenantID, webhookID string, limit int) ([]*entity.WebhookLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.WebhookLog
	for i := len(r.logs) - 1; i >= 0; i-- {
		l := r.logs[i]
		if l.TenantID == tenantID && l.WebhookID == webhookID {
			out = append(out, &l)
		}
	}
	return paginate(out, limit, 0), nil
}

// Logs copia de toda la bitácora.
func (r *WebhookRepo) Logs() []entity.WebhookLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copySlice(r.logs)
}

// NotificationRepo avisos en memoria.
type NotificationRepo struct {
	mu    sync.Mutex
	items []entity.Notification
}

// NewNotificationRepo crea el repositorio vacío.
func NewNotificationRepo() *NotificationRepo {
	return &NotificationRepo{}
}

func (r *NotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *n)
	return nil
}

func (r *NotificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, limit int) ([]*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Notification
	for i := len(r.items) - 1; i >= 0; i-- {
		n := r.items[i]
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			out = append(out, &n)
		}
	}
	return paginate(out, limit, 0), nil
}

func (r *NotificationRepo) MarkRead(_ context.Context, userID, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id && r.items[i].UserID == userID {
			r.items[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (r *NotificationRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.items {
		if r.items[i].UserID == userID && !r.items[i].IsRead {
			r.items[i].IsRead = true
			n++
		}
	}
	return n, nil
}

var (
	_ repository.WebhookRepository      = (*WebhookRepo)(nil)
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
)
