package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// SalesFilter filtros del listado de ventas.
type SalesFilter struct {
	Channel    string
	Status     string
	CustomerID string
	Limit      int
	Offset     int
}

// SalesOrderRepository ventas POS y en línea.
type SalesOrderRepository interface {
	Create(ctx context.Context, order *entity.SalesOrder) error
	AddItems(ctx context.Context, items []*entity.SalesOrderItem) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.SalesOrder, error)
	GetForUpdate(ctx context.Context, tenantID, id string) (*entity.SalesOrder, error)
	ListItems(ctx context.Context, tenantID, orderID string) ([]*entity.SalesOrderItem, error)
	List(ctx context.Context, tenantID string, f SalesFilter) ([]*entity.SalesOrder, error)
	UpdateStatus(ctx context.Context, order *entity.SalesOrder) error
}
