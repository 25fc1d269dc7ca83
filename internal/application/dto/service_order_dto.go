package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea a agregar. UnitPrice vacío toma el precio de venta vigente.
type OrderItemRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateServiceOrderRequest body de POST /api/service-orders.
type CreateServiceOrderRequest struct {
	CustomerID  string             `json:"customer_id" validate:"required,uuid"`
	AssetID     string             `json:"asset_id" validate:"required,uuid"`
	Priority    string             `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	Description string             `json:"description" validate:"required,max=2000"`
	AssignedTo  string             `json:"assigned_to,omitempty" validate:"omitempty,uuid"`
	Items       []OrderItemRequest `json:"items,omitempty" validate:"dive"`
}

// ChangeStatusRequest body de PATCH /api/service-orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RegisterPaymentRequest abono a una orden.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method" validate:"required,oneof=cash card transfer"`
	Notes  string          `json:"notes,omitempty" validate:"max=500"`
}

// CommentRequest comentario en la línea de tiempo.
type CommentRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

// ServiceOrderListQuery filtros de GET /api/service-orders.
type ServiceOrderListQuery struct {
	Status     string `query:"status"`
	CustomerID string `query:"customer_id"`
	Priority   string `query:"priority"`
	Search     string `query:"q"`
	PageRequest
}

// ServiceOrderResponse cabecera de la orden.
type ServiceOrderResponse struct {
	ID          string     `json:"id"`
	Folio       string     `json:"folio"`
	CustomerID  string     `json:"customer_id"`
	AssetID     string     `json:"asset_id"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Description string     `json:"description"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	CreatedBy   string     `json:"created_by"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	NextStatus  []string   `json:"next_status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// OrderItemResponse línea de la orden con su precio congelado.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductType string          `json:"product_type"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID        string          `json:"id"`
	OrderKind string          `json:"order_kind"`
	OrderID   string          `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderTotals total de ítems, pagado y saldo.
type OrderTotals struct {
	Items   decimal.Decimal `json:"items"`
	Paid    decimal.Decimal `json:"paid"`
	Balance decimal.Decimal `json:"balance"`
}

// ServiceOrderDetailResponse orden completa.
type ServiceOrderDetailResponse struct {
	ServiceOrderResponse
	Items    []OrderItemResponse `json:"items"`
	Payments []PaymentResponse   `json:"payments"`
	Totals   OrderTotals         `json:"totals"`
}

// ServiceOrderListResponse listado paginado.
type ServiceOrderListResponse struct {
	Items []ServiceOrderResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// TimelineEventResponse entrada de la línea de tiempo. URL solo en evidencias (firmada, temporal).
type TimelineEventResponse struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	ActorID   string     `json:"actor_id"`
	Content   string     `json:"content"`
	URL       string     `json:"url,omitempty"`
	ExpiresAt *time.Time `json:"url_expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
