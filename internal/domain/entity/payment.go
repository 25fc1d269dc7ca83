package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderKind discrimina a qué tipo de orden pertenece un pago.
type OrderKind string

const (
	OrderKindService OrderKind = "service"
	OrderKindSales   OrderKind = "sales"
)

// Métodos de pago.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentPOSWeb   = "pos_web" // ventas POS y tienda en línea en los reportes
)

// Payment pago registrado contra una orden de servicio o de venta.
type Payment struct {
	ID        string
	TenantID  string
	OrderKind OrderKind
	OrderID   string
	Amount    decimal.Decimal
	Method    string
	Notes     string
	CreatedBy string
	CreatedAt time.Time
}

// ValidServicePaymentMethod métodos admitidos en el mostrador para órdenes de servicio y POS.
func ValidServicePaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}
