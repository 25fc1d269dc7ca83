package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// ProductFilter filtros del listado de catálogo.
type ProductFilter struct {
	Type       string
	CategoryID string
	Search     string // nombre o SKU
	OnlyActive bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las lecturas van acotadas por tenant; un producto de otro tenant se comporta como inexistente.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE). Solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, tenantID string, ids []string) (map[string]*entity.Product, error)
	List(ctx context.Context, tenantID string, f ProductFilter) ([]*entity.Product, error)
	// Update escribe datos de catálogo; nunca toca quantity ni type.
	Update(ctx context.Context, product *entity.Product) error
	// ApplyStockDelta suma delta a quantity en una sola sentencia.
	// ok=false si el resultado quedaría negativo (no se modifica nada).
	ApplyStockDelta(ctx context.Context, tenantID, id string, delta decimal.Decimal) (newQty decimal.Decimal, ok bool, err error)
	SetQuantity(ctx context.Context, tenantID, id string, qty decimal.Decimal) error
}
