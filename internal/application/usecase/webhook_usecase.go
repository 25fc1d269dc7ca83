package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// WebhookUseCase administración de webhooks del tenant (solo admin).
type WebhookUseCase struct {
	repo repository.WebhookRepository
}

// NewWebhookUseCase construye el caso de uso.
func NewWebhookUseCase(repo repository.WebhookRepository) *WebhookUseCase {
	return &WebhookUseCase{repo: repo}
}

// Create registra un webhook activo.
func (uc *WebhookUseCase) Create(ctx context.Context, tenantID string, in dto.CreateWebhookRequest) (*dto.WebhookResponse, error) {
	events, err := normalizeEvents(in.Events)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	w := &entity.Webhook{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		URL:       strings.TrimSpace(in.URL),
		Events:    events,
		Secret:    in.Secret,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return toWebhookResponse(w), nil
}

// List webhooks del tenant.
func (uc *WebhookUseCase) List(ctx context.Context, tenantID string) ([]dto.WebhookResponse, error) {
	list, err := uc.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WebhookResponse, 0, len(list))
	for _, w := range list {
		out = append(out, *toWebhookResponse(w))
	}
	return out, nil
}

// Update activa/desactiva o cambia URL y eventos.
func (uc *WebhookUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateWebhookRequest) (*dto.WebhookResponse, error) {
	w, err := uc.get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if in.URL != nil {
		w.URL = strings.TrimSpace(*in.URL)
	}
	if in.Events != nil {
		events, err := normalizeEvents(in.Events)
		if err != nil {
			return nil, err
		}
		w.Events = events
	}
	if in.IsActive != nil {
		w.IsActive = *in.IsActive
	}
	w.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return toWebhookResponse(w), nil
}

// Delete elimina el webhook y su bitácora.
func (uc *WebhookUseCase) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := uc.get(ctx, tenantID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, tenantID, id)
}

// Logs últimos intentos de entrega del webhook.
func (uc *WebhookUseCase) Logs(ctx context.Context, tenantID, id string, limit int) ([]dto.WebhookLogResponse, error) {
	if _, err := uc.get(ctx, tenantID, id); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	list, err := uc.repo.ListLogs(ctx, tenantID, id, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WebhookLogResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.WebhookLogResponse{
			ID:           l.ID,
			WebhookID:    l.WebhookID,
			Event:        l.Event,
			StatusCode:   l.StatusCode,
			ResponseBody: l.ResponseBody,
			Error:        l.Error,
			Success:      l.Success,
			DurationMS:   l.DurationMS,
			CreatedAt:    l.CreatedAt,
		})
	}
	return out, nil
}

func (uc *WebhookUseCase) get(ctx context.Context, tenantID, id string) (*entity.Webhook, error) {
	w, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.NotFound("webhook")
	}
	return w, nil
}

func normalizeEvents(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, e := range in {
		e = strings.ToLower(strings.TrimSpace(e))
		if !slices.Contains(entity.KnownWebhookEvents, e) {
			return nil, domain.Validation("evento desconocido: " + e)
		}
		if !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, domain.Validation("debe suscribir al menos un evento")
	}
	return out, nil
}

func toWebhookResponse(w *entity.Webhook) *dto.WebhookResponse {
	hint := "****"
	if len(w.Secret) > 4 {
		hint += w.Secret[len(w.Secret)-4:]
	}
	return &dto.WebhookResponse{
		ID:         w.ID,
		URL:        w.URL,
		Events:     w.Events,
		SecretHint: hint,
		IsActive:   w.IsActive,
		CreatedAt:  w.CreatedAt,
	}
}
