package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// OrderFilter filtros del listado de órdenes de servicio.
type OrderFilter struct {
	Status     string
	CustomerID string
	Priority   string
	Search     string // folio o descripción
	Limit      int
	Offset     int
}

// ServiceOrderRepository órdenes de servicio y sus ítems.
type ServiceOrderRepository interface {
	Create(ctx context.Context, order *entity.ServiceOrder) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.ServiceOrder, error)
	GetForUpdate(ctx context.Context, tenantID, id string) (*entity.ServiceOrder, error)
	List(ctx context.Context, tenantID string, f OrderFilter) ([]*entity.ServiceOrder, int, error)
	UpdateStatus(ctx context.Context, order *entity.ServiceOrder) error

	AddItem(ctx context.Context, item *entity.ServiceOrderItem) error
	// DeleteItem borra y devuelve la fila eliminada; (nil, nil) si ya no existía.
	DeleteItem(ctx context.Context, tenantID, orderID, itemID string) (*entity.ServiceOrderItem, error)
	ListItems(ctx context.Context, tenantID, orderID string) ([]*entity.ServiceOrderItem, error)
}

// OrderEventRepository línea de tiempo de las órdenes.
type OrderEventRepository interface {
	Create(ctx context.Context, event *entity.OrderEvent) error
	ListByOrder(ctx context.Context, tenantID, orderID string) ([]*entity.OrderEvent, error)
}

// PaymentRepository pagos de órdenes de servicio y de venta.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByOrder(ctx context.Context, tenantID string, kind entity.OrderKind, orderID string) ([]*entity.Payment, error)
}

// FolioRepository consecutivos por tenant y prefijo.
type FolioRepository interface {
	Next(ctx context.Context, tenantID, prefix string) (int64, error)
}
