package entity

import "time"

// Tipos de evento de la línea de tiempo de una orden.
const (
	EventTypeCreated       = "created"
	EventTypeStatusChanged = "status_changed"
	EventTypeComment       = "comment"
	EventTypeEvidence      = "evidence"
	EventTypeItemAdded     = "item_added"
	EventTypeItemRemoved   = "item_removed"
	EventTypePayment       = "payment"
)

// OrderEvent entrada append-only de la línea de tiempo.
// StoragePath solo aplica a evidencias (ruta en el bucket privado, nunca una URL pública).
type OrderEvent struct {
	ID          string
	TenantID    string
	OrderID     string
	ActorID     string
	Type        string
	Content     string
	StoragePath string
	CreatedAt   time.Time
}
