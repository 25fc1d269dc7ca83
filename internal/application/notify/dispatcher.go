// Package notify envío de eventos a webhooks y avisos a usuarios. Todo es de mejor esfuerzo:
// los fallos se registran y nunca se devuelven al flujo que originó el evento.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// Cabeceras del contrato de entrega.
const (
	HeaderSecret    = "X-Webhook-Secret"
	HeaderEventType = "X-Event-Type"
)

// Sender hace el POST. Devuelve el código y el cuerpo de la respuesta; err solo para fallos de red.
type Sender interface {
	Send(ctx context.Context, url string, headers map[string]string, body []byte) (status int, respBody string, err error)
}

// Envelope cuerpo JSON enviado a cada destino.
type Envelope struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Data      any    `json:"data"`
}

// Dispatcher entrega un evento a todos los webhooks suscritos, en paralelo y una sola vez.
type Dispatcher struct {
	webhooks   repository.WebhookRepository
	sender     Sender
	timeout    time.Duration
	maxBody    int
	log        zerolog.Logger
	onDelivery func(event string, success bool)

	wg sync.WaitGroup
}

// NewDispatcher construye el dispatcher. timeout aplica a cada entrega; maxBody trunca
// el cuerpo de respuesta guardado en la bitácora.
func NewDispatcher(webhooks repository.WebhookRepository, sender Sender, timeout time.Duration, maxBody int, log zerolog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if maxBody <= 0 {
		maxBody = 1024
	}
	return &Dispatcher{webhooks: webhooks, sender: sender, timeout: timeout, maxBody: maxBody, log: log}
}

// OnDelivery registra un callback por cada intento (métricas).
func (d *Dispatcher) OnDelivery(fn func(event string, success bool)) {
	d.onDelivery = fn
}

// Dispatch envía el evento y espera todos los resultados. La falla de un destino no
// afecta a los demás; cada intento queda en la bitácora.
func (d *Dispatcher) Dispatch(ctx context.Context, tenantID, event string, data any) ([]*entity.WebhookLog, error) {
	hooks, err := d.webhooks.ListActiveForEvent(ctx, tenantID, event)
	if err != nil {
		return nil, fmt.Errorf("listar webhooks: %w", err)
	}
	targets := hooks[:0]
	for _, h := range hooks {
		if h.IsActive && h.Accepts(event) {
			targets = append(targets, h)
		}
	}
	if len(targets) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(Envelope{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Event:     event,
		Data:      data,
	})
	if err != nil {
		return nil, fmt.Errorf("serializar evento: %w", err)
	}

	logs := make([]*entity.WebhookLog, len(targets))
	var g errgroup.Group
	for i, h := range targets {
		g.Go(func() error {
			logs[i] = d.deliver(ctx, h, event, body)
			return nil
		})
	}
	_ = g.Wait()
	return logs, nil
}

func (d *Dispatcher) deliver(ctx context.Context, h *entity.Webhook, event string, body []byte) *entity.WebhookLog {
	dctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	headers := map[string]string{
		"Content-Type":  "application/json",
		HeaderSecret:    h.Secret,
		HeaderEventType: event,
	}
	start := time.Now()
	status, resp, err := d.sender.Send(dctx, h.URL, headers, body)
	entry := &entity.WebhookLog{
		ID:           uuid.New().String(),
		TenantID:     h.TenantID,
		WebhookID:    h.ID,
		Event:        event,
		StatusCode:   status,
		ResponseBody: logBody(resp, d.maxBody),
		DurationMS:   time.Since(start).Milliseconds(),
		CreatedAt:    time.Now(),
	}
	switch {
	case err != nil:
		entry.Error = err.Error()
	case status < 200 || status > 299:
		entry.Error = fmt.Sprintf("respuesta HTTP %d", status)
	default:
		entry.Success = true
	}

	// Con el ctx padre: el de la entrega pudo vencer.
	if lerr := d.webhooks.CreateLog(ctx, entry); lerr != nil {
		d.log.Error().Err(lerr).Str("webhook_id", h.ID).Str("event", event).Msg("no se pudo guardar la bitácora del webhook")
	}
	if !entry.Success {
		d.log.Warn().Str("tenant_id", h.TenantID).Str("webhook_id", h.ID).Str("event", event).
			Int("status", status).Str("error", entry.Error).Msg("entrega de webhook fallida")
	}
	if d.onDelivery != nil {
		d.onDelivery(event, entry.Success)
	}
	return entry
}

// Fire despacha en segundo plano, desligado del contexto de la petición.
func (d *Dispatcher) Fire(tenantID, event string, data any) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout+5*time.Second)
		defer cancel()
		if _, err := d.Dispatch(ctx, tenantID, event, data); err != nil {
			d.log.Error().Err(err).Str("tenant_id", tenantID).Str("event", event).Msg("despacho de webhooks fallido")
		}
	}()
}

// Wait espera los despachos en curso (apagado ordenado y tests).
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// logBody deja el cuerpo apto para una columna TEXT: UTF-8 válido, sin NUL,
// cortado en frontera de carácter a lo sumo en n bytes.
func logBody(s string, n int) string {
	s = strings.ToValidUTF8(strings.ReplaceAll(s, "\x00", ""), "")
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
