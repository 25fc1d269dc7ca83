package serviceorder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// MaxEvidenceBytes tamaño máximo de un archivo de evidencia.
const MaxEvidenceBytes = 20 << 20

// ErrStorageDisabled no hay bucket de evidencias configurado.
var ErrStorageDisabled = errors.New("almacenamiento de evidencias no configurado")

// EvidenceFile archivo recibido para subir como evidencia.
type EvidenceFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AddComment agrega un comentario a la línea de tiempo.
func (uc *UseCase) AddComment(ctx context.Context, tenantID, actorID, orderID, content string) (*dto.TimelineEventResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.Validation("el comentario no puede estar vacío")
	}
	order, err := uc.requireOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	ev := &entity.OrderEvent{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		OrderID:   order.ID,
		ActorID:   actorID,
		Type:      entity.EventTypeComment,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := uc.d.Events.Create(ctx, ev); err != nil {
		return nil, err
	}
	return toEventResponse(ev), nil
}

// UploadEvidence guarda el archivo en el bucket privado y lo registra en la línea de tiempo.
// La respuesta trae una URL firmada; el evento solo guarda la ruta del objeto.
func (uc *UseCase) UploadEvidence(ctx context.Context, tenantID, actorID, orderID string, file EvidenceFile) (*dto.TimelineEventResponse, error) {
	if uc.d.Storage == nil {
		return nil, ErrStorageDisabled
	}
	if file.Size <= 0 {
		return nil, domain.Validation("el archivo está vacío")
	}
	if file.Size > MaxEvidenceBytes {
		return nil, domain.Validation(fmt.Sprintf("el archivo supera el máximo de %d MB", MaxEvidenceBytes>>20))
	}
	if !allowedEvidenceType(file.ContentType) {
		return nil, domain.Validation("tipo de archivo no permitido: " + file.ContentType)
	}
	order, err := uc.requireOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	key := EvidenceKey(tenantID, order.ID, file.Name)
	if err := uc.d.Storage.Upload(ctx, key, file.ContentType, file.Body); err != nil {
		return nil, fmt.Errorf("subir evidencia: %w", err)
	}
	ev := &entity.OrderEvent{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		OrderID:     order.ID,
		ActorID:     actorID,
		Type:        entity.EventTypeEvidence,
		Content:     file.Name,
		StoragePath: key,
		CreatedAt:   time.Now(),
	}
	if err := uc.d.Events.Create(ctx, ev); err != nil {
		return nil, err
	}
	resp := toEventResponse(ev)
	uc.sign(ctx, ev, resp)
	return resp, nil
}

// Timeline eventos de la orden en orden cronológico; las evidencias llevan URL firmada nueva.
func (uc *UseCase) Timeline(ctx context.Context, tenantID, orderID string) ([]dto.TimelineEventResponse, error) {
	if _, err := uc.requireOrder(ctx, tenantID, orderID); err != nil {
		return nil, err
	}
	events, err := uc.d.Events.ListByOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TimelineEventResponse, 0, len(events))
	for _, ev := range events {
		resp := toEventResponse(ev)
		uc.sign(ctx, ev, resp)
		out = append(out, *resp)
	}
	return out, nil
}

// sign completa la URL temporal de una evidencia. Si la firma falla la entrada se devuelve sin URL.
func (uc *UseCase) sign(ctx context.Context, ev *entity.OrderEvent, resp *dto.TimelineEventResponse) {
	if ev.StoragePath == "" || uc.d.Storage == nil {
		return
	}
	url, exp, err := uc.d.Storage.SignedURL(ctx, ev.StoragePath)
	if err != nil {
		uc.d.Log.Warn().Err(err).Str("order_id", ev.OrderID).Str("path", ev.StoragePath).Msg("no se pudo firmar la evidencia")
		return
	}
	resp.URL = url
	resp.ExpiresAt = &exp
}

func (uc *UseCase) requireOrder(ctx context.Context, tenantID, orderID string) (*entity.ServiceOrder, error) {
	order, err := uc.d.Orders.GetByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("orden")
	}
	return order, nil
}

// EvidenceKey ruta del objeto: tenants/<tenant>/orders/<orden>/<uuid>-<nombre saneado>.
func EvidenceKey(tenantID, orderID, filename string) string {
	return fmt.Sprintf("tenants/%s/orders/%s/%s-%s", tenantID, orderID, uuid.New().String(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if len(out) > 100 {
		out = out[len(out)-100:]
	}
	if out == "" {
		return "archivo"
	}
	return out
}

func allowedEvidenceType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "video/") || ct == "application/pdf"
}
