package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/inventory/movements.
type RecordMovementRequest struct {
	ProductID     string          `json:"product_id" validate:"required,uuid"`
	Type          string          `json:"type" validate:"required,oneof=in out"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceKind string          `json:"reference_kind,omitempty" validate:"omitempty,oneof=service_order sales_order adjustment"`
	ReferenceID   string          `json:"reference_id,omitempty" validate:"omitempty,uuid"`
	Notes         string          `json:"notes,omitempty" validate:"max=500"`
}

// AdjustStockRequest body para POST /api/inventory/adjust. Delta positivo suma, negativo resta.
type AdjustStockRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Delta     decimal.Decimal `json:"delta"`
	Notes     string          `json:"notes,omitempty" validate:"max=500"`
}

// MovementResponse fila del kardex.
type MovementResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceKind string          `json:"reference_kind"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	CreatedBy     string          `json:"created_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MovementListResponse listado paginado del kardex.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockResponse existencia cacheada frente a la reconstruida desde el libro.
type StockResponse struct {
	ProductID      string          `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	LedgerQuantity decimal.Decimal `json:"ledger_quantity"`
	Consistent     bool            `json:"consistent"`
	// Solo en reconciliación: contador antes de corregirlo.
	PreviousQuantity *decimal.Decimal `json:"previous_quantity,omitempty"`
}
