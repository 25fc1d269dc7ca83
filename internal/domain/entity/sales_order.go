package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canales de venta.
const (
	ChannelPOS    = "pos"
	ChannelWeb    = "web"
	ChannelPortal = "portal"
)

// SalesStatus estado de una orden de venta.
type SalesStatus string

const (
	SalesPending   SalesStatus = "pending"
	SalesPaid      SalesStatus = "paid"
	SalesShipped   SalesStatus = "shipped"
	SalesDelivered SalesStatus = "delivered"
	SalesCancelled SalesStatus = "cancelled"
)

// Estados de pago de una venta.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// SalesOrder venta POS o de la tienda en línea.
// POS nace en estado terminal (delivered/paid); tienda y portal avanzan por estados.
type SalesOrder struct {
	ID            string
	TenantID      string
	Folio         string
	Channel       string
	CustomerID    string // vacío en ventas de mostrador anónimas
	Status        SalesStatus
	PaymentStatus string
	PaymentMethod string
	TotalAmount   decimal.Decimal
	Notes         string
	CreatedBy     string
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SalesOrderItem línea de venta con precio tomado del catálogo en el servidor.
type SalesOrderItem struct {
	ID          string
	TenantID    string
	OrderID     string
	ProductID   string
	ProductName string
	ProductType string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	CreatedAt   time.Time
}

// Subtotal cantidad × precio unitario, redondeado a centavos.
func (i *SalesOrderItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice).Round(2)
}

// TracksStock indica si la línea generó un movimiento de inventario.
func (i *SalesOrderItem) TracksStock() bool {
	return i.ProductType == ProductTypeProduct
}
