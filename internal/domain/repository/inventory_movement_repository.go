package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// MovementFilter filtros del kardex.
type MovementFilter struct {
	ProductID   string
	ReferenceID string
	From, To    *time.Time
	Limit       int
	Offset      int
}

// InventoryMovementRepository libro de movimientos (solo inserción).
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	List(ctx context.Context, tenantID string, f MovementFilter) ([]*entity.InventoryMovement, error)
	// SumByProduct suma con signo de todos los movimientos del producto.
	SumByProduct(ctx context.Context, tenantID, productID string) (decimal.Decimal, error)
}
