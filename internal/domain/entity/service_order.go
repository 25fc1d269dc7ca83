package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden de servicio. Las transiciones válidas viven en domain/workflow.
type OrderStatus string

// Estados de la orden de servicio, en el orden del flujo normal.
const (
	StatusReception OrderStatus = "reception"
	StatusDiagnosis OrderStatus = "diagnosis"
	StatusApproval  OrderStatus = "approval"
	StatusRepair    OrderStatus = "repair"
	StatusQA        OrderStatus = "qa"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
)

// Priority prioridad de la orden.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ServiceOrder orden de reparación de un equipo de un cliente.
type ServiceOrder struct {
	ID          string
	TenantID    string
	CustomerID  string
	AssetID     string
	Folio       string // consecutivo legible, ej. OS-000123
	Status      OrderStatus
	Priority    Priority
	Description string
	AssignedTo  string
	CreatedBy   string
	DeliveredAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsClosed indica si la orden ya no admite cambios en sus ítems.
func (o *ServiceOrder) IsClosed() bool {
	return o.Status == StatusDelivered
}

// ServiceOrderItem línea de una orden. UnitPrice, ProductName y ProductType son
// una foto del producto al momento de agregarla y no se recalculan.
type ServiceOrderItem struct {
	ID          string
	TenantID    string
	OrderID     string
	ProductID   string
	ProductName string
	ProductType string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	CreatedBy   string
	CreatedAt   time.Time
}

// Subtotal cantidad × precio unitario, redondeado a centavos.
func (i *ServiceOrderItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice).Round(2)
}

// TracksStock indica si la línea generó un movimiento de inventario.
func (i *ServiceOrderItem) TracksStock() bool {
	return i.ProductType == ProductTypeProduct
}
