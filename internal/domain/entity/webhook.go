package entity

import "time"

// Eventos publicados por los flujos.
const (
	WebhookEventAll                = "*"
	WebhookEventOrderCreated       = "order.created"
	WebhookEventOrderStatusChanged = "order.status_changed"
	WebhookEventOrderDelivered     = "order.delivered"
	WebhookEventPaymentRegistered  = "payment.registered"
	WebhookEventSaleCompleted      = "sale.completed"
	WebhookEventSaleStatusChanged  = "sale.status_changed"
)

// KnownWebhookEvents eventos que se pueden suscribir.
var KnownWebhookEvents = []string{
	WebhookEventAll,
	WebhookEventOrderCreated,
	WebhookEventOrderStatusChanged,
	WebhookEventOrderDelivered,
	WebhookEventPaymentRegistered,
	WebhookEventSaleCompleted,
	WebhookEventSaleStatusChanged,
}

// Webhook destino HTTP de un tenant.
type Webhook struct {
	ID        string
	TenantID  string
	URL       string
	Events    []string
	Secret    string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Accepts indica si el webhook está suscrito al evento.
func (w *Webhook) Accepts(event string) bool {
	for _, e := range w.Events {
		if e == event || e == WebhookEventAll {
			return true
		}
	}
	return false
}

// WebhookLog resultado de un intento de entrega (éxito o fallo).
type WebhookLog struct {
	ID           string
	TenantID     string
	WebhookID    string
	Event        string
	StatusCode   int
	ResponseBody string
	Error        string
	Success      bool
	DurationMS   int64
	CreatedAt    time.Time
}
