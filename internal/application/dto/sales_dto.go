package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine línea del carrito. UnitPrice se acepta en el JSON pero se ignora:
// el precio siempre sale del catálogo.
type CartLine struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CheckoutRequest cobro en mostrador (POS).
type CheckoutRequest struct {
	CustomerID    string     `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	PaymentMethod string     `json:"payment_method" validate:"required,oneof=cash card transfer"`
	Notes         string     `json:"notes,omitempty" validate:"max=500"`
	Items         []CartLine `json:"items" validate:"required,min=1,dive"`
}

// OnlineOrderRequest pedido desde la tienda o el portal.
type OnlineOrderRequest struct {
	CustomerID string     `json:"customer_id" validate:"required,uuid"`
	Channel    string     `json:"channel" validate:"required,oneof=web portal"`
	Notes      string     `json:"notes,omitempty" validate:"max=500"`
	Items      []CartLine `json:"items" validate:"required,min=1,dive"`
}

// ChangeSalesStatusRequest avance de estado de un pedido en línea.
type ChangeSalesStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SalesListQuery filtros de GET /api/sales.
type SalesListQuery struct {
	Channel    string `query:"channel"`
	Status     string `query:"status"`
	CustomerID string `query:"customer_id"`
	PageRequest
}

// SalesItemResponse línea de una venta.
type SalesItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SalesOrderResponse salida de una venta.
type SalesOrderResponse struct {
	ID            string              `json:"id"`
	Folio         string              `json:"folio"`
	Channel       string              `json:"channel"`
	CustomerID    string              `json:"customer_id,omitempty"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Notes         string              `json:"notes,omitempty"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
	Items         []SalesItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}
