package dto

import "time"

// CreateWebhookRequest alta de un webhook.
type CreateWebhookRequest struct {
	URL    string   `json:"url" validate:"required,http_url"`
	Events []string `json:"events" validate:"required,min=1,dive,required"`
	Secret string   `json:"secret" validate:"required,min=8,max=200"`
}

// UpdateWebhookRequest cambios parciales (activar/desactivar, eventos, URL).
type UpdateWebhookRequest struct {
	URL      *string  `json:"url" validate:"omitempty,http_url"`
	Events   []string `json:"events" validate:"omitempty,dive,required"`
	IsActive *bool    `json:"is_active"`
}

// WebhookResponse salida de un webhook. El secreto nunca se devuelve completo.
type WebhookResponse struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Events     []string  `json:"events"`
	SecretHint string    `json:"secret_hint"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// WebhookLogResponse un intento de entrega.
type WebhookLogResponse struct {
	ID           string    `json:"id"`
	WebhookID    string    `json:"webhook_id"`
	Event        string    `json:"event"`
	StatusCode   int       `json:"status_code"`
	ResponseBody string    `json:"response_body,omitempty"`
	Error        string    `json:"error,omitempty"`
	Success      bool      `json:"success"`
	DurationMS   int64     `json:"duration_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// NotificationResponse aviso del usuario.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
