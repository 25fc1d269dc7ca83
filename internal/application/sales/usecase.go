// Package sales cobro en mostrador (POS) y pedidos de la tienda en línea y del portal.
package sales

import (
	"context"
	"fmt"
	"slices"
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

// FolioPrefix prefijo del consecutivo de ventas.
const FolioPrefix = "V"

// StockLedger registra movimientos dentro de la transacción de la venta.
type StockLedger interface {
	RecordInTx(ctx context.Context, tx repository.TxRepos, in inventory.MovementInput) (*entity.InventoryMovement, error)
}

// EventPublisher envía eventos a los webhooks del tenant.
type EventPublisher interface {
	Fire(tenantID, event string, data any)
}

// UseCase ventas POS y en línea.
type UseCase struct {
	txRunner  repository.TxRunner
	sales     repository.SalesOrderRepository
	ledger    StockLedger
	publisher EventPublisher
}

// NewUseCase construye el caso de uso. publisher puede ser nil.
func NewUseCase(txRunner repository.TxRunner, sales repository.SalesOrderRepository, ledger StockLedger, publisher EventPublisher) *UseCase {
	return &UseCase{txRunner: txRunner, sales: sales, ledger: ledger, publisher: publisher}
}

// pricedLine línea con el precio tomado del catálogo.
type pricedLine struct {
	product  *entity.Product
	quantity decimal.Decimal
	price    decimal.Decimal
}

// Checkout cobro de mostrador: la venta nace entregada y pagada.
// Los precios del cliente se ignoran; cada línea toma el precio de venta vigente.
func (uc *UseCase) Checkout(ctx context.Context, tenantID, actorID string, in dto.CheckoutRequest) (*dto.SalesOrderResponse, error) {
	method := strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	if !entity.ValidServicePaymentMethod(method) {
		return nil, domain.Validation("método de pago inválido: " + in.PaymentMethod)
	}

	var order *entity.SalesOrder
	var items []*entity.SalesOrderItem
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		if in.CustomerID != "" {
			if err := requireCustomer(ctx, tx, tenantID, in.CustomerID); err != nil {
				return err
			}
		}
		lines, total, err := priceCart(ctx, tx, tenantID, in.Items, func(p *entity.Product) decimal.Decimal {
			return p.SalePrice
		})
		if err != nil {
			return err
		}

		now := time.Now()
		order, err = newOrder(ctx, tx, tenantID, actorID, entity.ChannelPOS, in.CustomerID, in.Notes, total, now)
		if err != nil {
			return err
		}
		order.Status = entity.SalesDelivered
		order.PaymentStatus = entity.PaymentStatusPaid
		order.PaymentMethod = method
		order.PaidAt = &now
		if err := tx.Sales.Create(ctx, order); err != nil {
			return err
		}
		items, err = uc.insertLines(ctx, tx, order, actorID, lines, entity.MovementOut, "Venta "+order.Folio)
		if err != nil {
			return err
		}
		return tx.Payments.Create(ctx, &entity.Payment{
			ID:        uuid.New().String(),
			TenantID:  tenantID,
			OrderKind: entity.OrderKindSales,
			OrderID:   order.ID,
			Amount:    total,
			Method:    method,
			Notes:     "Cobro POS " + order.Folio,
			CreatedBy: actorID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.fire(tenantID, entity.WebhookEventSaleCompleted, salePayload(order))
	return toSalesResponse(order, items), nil
}

// CreateOnlineOrder pedido de tienda o portal: queda pendiente de pago y reserva stock con salidas.
func (uc *UseCase) CreateOnlineOrder(ctx context.Context, tenantID, actorID string, in dto.OnlineOrderRequest) (*dto.SalesOrderResponse, error) {
	if in.Channel != entity.ChannelWeb && in.Channel != entity.ChannelPortal {
		return nil, domain.Validation("canal inválido: " + in.Channel)
	}
	var order *entity.SalesOrder
	var items []*entity.SalesOrderItem
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		if err := requireCustomer(ctx, tx, tenantID, in.CustomerID); err != nil {
			return err
		}
		lines, total, err := priceCart(ctx, tx, tenantID, in.Items, (*entity.Product).StorefrontPrice)
		if err != nil {
			return err
		}
		order, err = newOrder(ctx, tx, tenantID, actorID, in.Channel, in.CustomerID, in.Notes, total, time.Now())
		if err != nil {
			return err
		}
		if err := tx.Sales.Create(ctx, order); err != nil {
			return err
		}
		items, err = uc.insertLines(ctx, tx, order, actorID, lines, entity.MovementOut, "Reserva pedido "+order.Folio)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toSalesResponse(order, items), nil
}

// ChangeOnlineStatus avanza un pedido en línea. Al pagarse registra el pago (pos_web);
// al cancelarse devuelve el stock reservado.
func (uc *UseCase) ChangeOnlineStatus(ctx context.Context, tenantID, actorID, orderID, status string) (*dto.SalesOrderResponse, error) {
	to, err := workflow.ParseSalesStatus(status)
	if err != nil {
		return nil, err
	}
	var order *entity.SalesOrder
	var from entity.SalesStatus
	err = uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		var err error
		order, err = tx.Sales.GetForUpdate(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NotFound("venta")
		}
		if order.Channel == entity.ChannelPOS {
			return domain.Conflict("las ventas de mostrador no cambian de estado")
		}
		if err := workflow.ValidateSalesTransition(order.Status, to); err != nil {
			return err
		}
		from = order.Status
		now := time.Now()

		switch to {
		case entity.SalesPaid:
			order.PaymentStatus = entity.PaymentStatusPaid
			order.PaymentMethod = entity.PaymentPOSWeb
			order.PaidAt = &now
			err := tx.Payments.Create(ctx, &entity.Payment{
				ID:        uuid.New().String(),
				TenantID:  tenantID,
				OrderKind: entity.OrderKindSales,
				OrderID:   order.ID,
				Amount:    order.TotalAmount,
				Method:    entity.PaymentPOSWeb,
				Notes:     "Pago en línea " + order.Folio,
				CreatedBy: actorID,
				CreatedAt: now,
			})
			if err != nil {
				return err
			}
		case entity.SalesCancelled:
			if order.PaymentStatus == entity.PaymentStatusPaid {
				order.PaymentStatus = entity.PaymentStatusRefunded
			}
			if err := uc.releaseStock(ctx, tx, order, actorID); err != nil {
				return err
			}
		}
		order.Status = to
		order.UpdatedAt = now
		return tx.Sales.UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	payload := salePayload(order)
	payload["previous_status"] = string(from)
	uc.fire(tenantID, entity.WebhookEventSaleStatusChanged, payload)
	if to == entity.SalesPaid {
		uc.fire(tenantID, entity.WebhookEventSaleCompleted, salePayload(order))
	}
	return toSalesResponse(order, nil), nil
}

// Get venta con sus líneas.
func (uc *UseCase) Get(ctx context.Context, tenantID, orderID string) (*dto.SalesOrderResponse, error) {
	order, err := uc.sales.GetByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("venta")
	}
	items, err := uc.sales.ListItems(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	return toSalesResponse(order, items), nil
}

// List ventas del tenant.
func (uc *UseCase) List(ctx context.Context, tenantID string, q dto.SalesListQuery) ([]dto.SalesOrderResponse, error) {
	q.Normalize()
	list, err := uc.sales.List(ctx, tenantID, repository.SalesFilter{
		Channel:    q.Channel,
		Status:     q.Status,
		CustomerID: q.CustomerID,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toSalesResponse(o, nil))
	}
	return out, nil
}

func (uc *UseCase) insertLines(ctx context.Context, tx repository.TxRepos, order *entity.SalesOrder, actorID string, lines []pricedLine, typ entity.MovementType, notes string) ([]*entity.SalesOrderItem, error) {
	items := make([]*entity.SalesOrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, &entity.SalesOrderItem{
			ID:          uuid.New().String(),
			TenantID:    order.TenantID,
			OrderID:     order.ID,
			ProductID:   l.product.ID,
			ProductName: l.product.Name,
			ProductType: l.product.Type,
			Quantity:    l.quantity,
			UnitPrice:   l.price,
			CreatedAt:   order.CreatedAt,
		})
	}
	if err := tx.Sales.AddItems(ctx, items); err != nil {
		return nil, err
	}
	for _, it := range byProduct(items) {
		if !it.TracksStock() {
			continue
		}
		_, err := uc.ledger.RecordInTx(ctx, tx, inventory.MovementInput{
			TenantID:      order.TenantID,
			ActorID:       actorID,
			ProductID:     it.ProductID,
			Type:          typ,
			Quantity:      it.Quantity,
			ReferenceKind: entity.RefSalesOrder,
			ReferenceID:   order.ID,
			Notes:         notes,
		})
		if err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (uc *UseCase) releaseStock(ctx context.Context, tx repository.TxRepos, order *entity.SalesOrder, actorID string) error {
	items, err := tx.Sales.ListItems(ctx, order.TenantID, order.ID)
	if err != nil {
		return err
	}
	for _, it := range byProduct(items) {
		if !it.TracksStock() {
			continue
		}
		_, err := uc.ledger.RecordInTx(ctx, tx, inventory.MovementInput{
			TenantID:      order.TenantID,
			ActorID:       actorID,
			ProductID:     it.ProductID,
			Type:          entity.MovementIn,
			Quantity:      it.Quantity,
			ReferenceKind: entity.RefSalesOrder,
			ReferenceID:   order.ID,
			Notes:         "Cancelación pedido " + order.Folio,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// byProduct copia ordenada por producto: dos ventas concurrentes bloquean las filas
// de products en el mismo orden y no se interbloquean.
func byProduct(items []*entity.SalesOrderItem) []*entity.SalesOrderItem {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b *entity.SalesOrderItem) int {
		return strings.Compare(a.ProductID, b.ProductID)
	})
	return out
}

func (uc *UseCase) fire(tenantID, event string, data any) {
	if uc.publisher != nil {
		uc.publisher.Fire(tenantID, event, data)
	}
}

func requireCustomer(ctx context.Context, tx repository.TxRepos, tenantID, customerID string) error {
	c, err := tx.Customers.GetByID(ctx, tenantID, customerID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NotFound("cliente")
	}
	return nil
}

// priceCart resuelve los productos del carrito en una sola consulta y calcula el total.
func priceCart(ctx context.Context, tx repository.TxRepos, tenantID string, cart []dto.CartLine, priceOf func(*entity.Product) decimal.Decimal) ([]pricedLine, decimal.Decimal, error) {
	if len(cart) == 0 {
		return nil, decimal.Zero, domain.Validation("el carrito está vacío")
	}
	ids := make([]string, 0, len(cart))
	for _, l := range cart {
		if !l.Quantity.IsPositive() {
			return nil, decimal.Zero, domain.Validation("la cantidad debe ser mayor que cero")
		}
		if err := domain.CheckQuantity("quantity", l.Quantity); err != nil {
			return nil, decimal.Zero, err
		}
		ids = append(ids, l.ProductID)
	}
	products, err := tx.Products.GetByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}
	lines := make([]pricedLine, 0, len(cart))
	total := decimal.Zero
	for _, l := range cart {
		p, ok := products[l.ProductID]
		if !ok {
			return nil, decimal.Zero, domain.NotFound("producto")
		}
		if !p.IsActive {
			return nil, decimal.Zero, domain.Validation("el producto " + p.Name + " está inactivo")
		}
		price := priceOf(p)
		lines = append(lines, pricedLine{product: p, quantity: l.Quantity, price: price})
		total = total.Add(domain.RoundMoney(price.Mul(l.Quantity)))
	}
	return lines, total, nil
}

func newOrder(ctx context.Context, tx repository.TxRepos, tenantID, actorID, channel, customerID, notes string, total decimal.Decimal, now time.Time) (*entity.SalesOrder, error) {
	seq, err := tx.Folios.Next(ctx, tenantID, FolioPrefix)
	if err != nil {
		return nil, err
	}
	return &entity.SalesOrder{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		Folio:         fmt.Sprintf("%s-%06d", FolioPrefix, seq),
		Channel:       channel,
		CustomerID:    customerID,
		Status:        entity.SalesPending,
		PaymentStatus: entity.PaymentStatusPending,
		TotalAmount:   total,
		Notes:         notes,
		CreatedBy:     actorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func salePayload(o *entity.SalesOrder) map[string]any {
	return map[string]any{
		"sale_id":        o.ID,
		"folio":          o.Folio,
		"channel":        o.Channel,
		"status":         string(o.Status),
		"payment_status": o.PaymentStatus,
		"total":          o.TotalAmount.StringFixed(2),
	}
}

func toSalesResponse(o *entity.SalesOrder, items []*entity.SalesOrderItem) *dto.SalesOrderResponse {
	resp := &dto.SalesOrderResponse{
		ID:            o.ID,
		Folio:         o.Folio,
		Channel:       o.Channel,
		CustomerID:    o.CustomerID,
		Status:        string(o.Status),
		PaymentStatus: o.PaymentStatus,
		PaymentMethod: o.PaymentMethod,
		TotalAmount:   o.TotalAmount,
		Notes:         o.Notes,
		PaidAt:        o.PaidAt,
		CreatedAt:     o.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SalesItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return resp
}
