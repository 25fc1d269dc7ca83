package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType dirección del movimiento.
type MovementType string

const (
	MovementIn  MovementType = "in"  // entrada
	MovementOut MovementType = "out" // salida
)

// Origen del movimiento (ReferenceKind). Junto con ReferenceID identifica el documento.
const (
	RefServiceOrder = "service_order"
	RefSalesOrder   = "sales_order"
	RefAdjustment   = "adjustment"
	RefInitial      = "initial"
)

// InventoryMovement fila append-only del libro de inventario.
// Quantity siempre es positiva; el signo lo da Type.
type InventoryMovement struct {
	ID            string
	TenantID      string
	ProductID     string
	Type          MovementType
	Quantity      decimal.Decimal
	ReferenceKind string
	ReferenceID   string
	Notes         string
	BalanceAfter  decimal.Decimal // stock del producto después de aplicar el movimiento
	CreatedBy     string
	CreatedAt     time.Time
}

// Signed devuelve la cantidad con signo (+entrada, -salida).
func (m *InventoryMovement) Signed() decimal.Decimal {
	if m.Type == MovementOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
