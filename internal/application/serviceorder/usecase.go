package serviceorder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
	"github.com/jhoicas/taller-api/internal/domain/workflow"
)

// FolioPrefix prefijo del consecutivo de órdenes de servicio.
const FolioPrefix = "OS"

// UseCase flujo de órdenes de servicio.
type UseCase struct {
	d Deps
}

// New construye el caso de uso.
func New(d Deps) *UseCase {
	if d.Publisher == nil {
		d.Publisher = noopPublisher{}
	}
	if d.Notifier == nil {
		d.Notifier = noopNotifier{}
	}
	return &UseCase{d: d}
}

// Create crea la orden en recepción con su folio. Los ítems iniciales se insertan
// en la misma transacción: si uno falla no queda ni la orden.
func (uc *UseCase) Create(ctx context.Context, tenantID, actorID string, in dto.CreateServiceOrderRequest) (*dto.ServiceOrderDetailResponse, error) {
	priority, err := workflow.ParsePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, domain.Validation("la descripción es obligatoria")
	}

	var order *entity.ServiceOrder
	err = uc.d.TxRunner.Run(ctx, func(tx repository.TxRepos) error {
		customer, err := tx.Customers.GetByID(ctx, tenantID, in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.NotFound("cliente")
		}
		asset, err := tx.Assets.GetByID(ctx, tenantID, in.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return domain.NotFound("equipo")
		}
		if asset.CustomerID != customer.ID {
			return domain.Validation("el equipo no pertenece al cliente")
		}

		seq, err := tx.Folios.Next(ctx, tenantID, FolioPrefix)
		if err != nil {
			return err
		}
		now := time.Now()
		order = &entity.ServiceOrder{
			ID:          uuid.New().String(),
			TenantID:    tenantID,
			CustomerID:  customer.ID,
			AssetID:     asset.ID,
			Folio:       fmt.Sprintf("%s-%06d", FolioPrefix, seq),
			Status:      entity.StatusReception,
			Priority:    priority,
			Description: description,
			AssignedTo:  in.AssignedTo,
			CreatedBy:   actorID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}
		if err := appendEvent(ctx, tx.Events, order, actorID, entity.EventTypeCreated, "Orden recibida", ""); err != nil {
			return err
		}
		ids := make([]string, 0, len(in.Items))
		for _, item := range in.Items {
			ids = append(ids, item.ProductID)
		}
		if err := inventory.LockProducts(ctx, tx, tenantID, ids); err != nil {
			return err
		}
		for _, item := range in.Items {
			if _, err := uc.addItemTx(ctx, tx, order, actorID, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.d.Publisher.Fire(tenantID, entity.WebhookEventOrderCreated, orderPayload(order))
	return uc.Get(ctx, tenantID, order.ID)
}

// ChangeStatus mueve la orden según la tabla de transiciones.
func (uc *UseCase) ChangeStatus(ctx context.Context, tenantID, actorID, orderID, status string) (*dto.ServiceOrderResponse, error) {
	to, err := workflow.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var order *entity.ServiceOrder
	var from entity.OrderStatus
	err = uc.d.TxRunner.Run(ctx, func(tx repository.TxRepos) error {
		var err error
		order, err = tx.Orders.GetForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NotFound("orden")
		}
		if err := workflow.ValidateTransition(order.Status, to); err != nil {
			return err
		}
		from = order.Status
		now := time.Now()
		order.Status = to
		order.UpdatedAt = now
		if to == entity.StatusDelivered {
			order.DeliveredAt = &now
		}
		if err := tx.Orders.UpdateStatus(ctx, order); err != nil {
			return err
		}
		content := fmt.Sprintf("%s -> %s", from, to)
		return appendEvent(ctx, tx.Events, order, actorID, entity.EventTypeStatusChanged, content, "")
	})
	if err != nil {
		return nil, err
	}

	payload := orderPayload(order)
	payload["previous_status"] = string(from)
	uc.d.Publisher.Fire(tenantID, entity.WebhookEventOrderStatusChanged, payload)
	if to == entity.StatusDelivered {
		uc.d.Publisher.Fire(tenantID, entity.WebhookEventOrderDelivered, orderPayload(order))
	}
	uc.notifyCustomer(ctx, order)
	return toOrderResponse(order), nil
}

// notifyCustomer avisa al usuario del portal ligado al cliente, si existe.
func (uc *UseCase) notifyCustomer(ctx context.Context, order *entity.ServiceOrder) {
	if order.Status != entity.StatusReady && order.Status != entity.StatusDelivered {
		return
	}
	customer, err := uc.d.Customers.GetByID(ctx, order.TenantID, order.CustomerID)
	if err != nil {
		uc.d.Log.Warn().Err(err).Str("order_id", order.ID).Msg("no se pudo leer el cliente para notificar")
		return
	}
	if customer == nil || customer.UserID == "" {
		return
	}
	title := "Tu equipo está listo"
	msg := fmt.Sprintf("La orden %s está lista para entrega.", order.Folio)
	if order.Status == entity.StatusDelivered {
		title = "Orden entregada"
		msg = fmt.Sprintf("La orden %s fue entregada. ¡Gracias por tu confianza!", order.Folio)
	}
	uc.d.Notifier.Notify(ctx, customer.UserID, order.TenantID, title, msg, "/portal/orders/"+order.ID)
}

// Get devuelve la orden con ítems, pagos y totales.
func (uc *UseCase) Get(ctx context.Context, tenantID, orderID string) (*dto.ServiceOrderDetailResponse, error) {
	order, err := uc.d.Orders.GetByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("orden")
	}
	items, err := uc.d.Orders.ListItems(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	payments, err := uc.d.Payments.ListByOrder(ctx, tenantID, entity.OrderKindService, orderID)
	if err != nil {
		return nil, err
	}
	total, paid := totals(items, payments)

	out := &dto.ServiceOrderDetailResponse{
		ServiceOrderResponse: *toOrderResponse(order),
		Items:                make([]dto.OrderItemResponse, 0, len(items)),
		Payments:             make([]dto.PaymentResponse, 0, len(payments)),
		Totals:               dto.OrderTotals{Items: total, Paid: paid, Balance: total.Sub(paid)},
	}
	for _, it := range items {
		out.Items = append(out.Items, *toItemResponse(it))
	}
	for _, p := range payments {
		out.Payments = append(out.Payments, *toPaymentResponse(p))
	}
	return out, nil
}

// List órdenes del tenant con filtros y paginación.
func (uc *UseCase) List(ctx context.Context, tenantID string, q dto.ServiceOrderListQuery) (*dto.ServiceOrderListResponse, error) {
	q.Normalize()
	if q.Status != "" {
		if _, err := workflow.ParseStatus(q.Status); err != nil {
			return nil, err
		}
	}
	if q.Priority != "" {
		if _, err := workflow.ParsePriority(q.Priority); err != nil {
			return nil, err
		}
	}
	list, total, err := uc.d.Orders.List(ctx, tenantID, repository.OrderFilter{
		Status:     strings.ToLower(q.Status),
		CustomerID: q.CustomerID,
		Priority:   strings.ToLower(q.Priority),
		Search:     strings.TrimSpace(q.Search),
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ServiceOrderListResponse{
		Items: make([]dto.ServiceOrderResponse, 0, len(list)),
		Page:  q.Page(total),
	}
	for _, o := range list {
		out.Items = append(out.Items, *toOrderResponse(o))
	}
	return out, nil
}

func totals(items []*entity.ServiceOrderItem, payments []*entity.Payment) (total, paid decimal.Decimal) {
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}
	return total, paid
}

func appendEvent(ctx context.Context, repo repository.OrderEventRepository, order *entity.ServiceOrder, actorID, typ, content, storagePath string) error {
	return repo.Create(ctx, &entity.OrderEvent{
		ID:          uuid.New().String(),
		TenantID:    order.TenantID,
		OrderID:     order.ID,
		ActorID:     actorID,
		Type:        typ,
		Content:     content,
		StoragePath: storagePath,
		CreatedAt:   time.Now(),
	})
}

func orderPayload(o *entity.ServiceOrder) map[string]any {
	return map[string]any{
		"order_id":    o.ID,
		"folio":       o.Folio,
		"status":      string(o.Status),
		"priority":    string(o.Priority),
		"customer_id": o.CustomerID,
		"asset_id":    o.AssetID,
	}
}
