// Package workflow contiene las máquinas de estado de órdenes de servicio y de venta.
package workflow

import (
	"strings"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// orderTransitions estado actual -> estados destino permitidos.
// Flujo lineal más dos retrocesos: cotización rechazada (approval -> diagnosis)
// y control de calidad fallido (qa -> repair). delivered no tiene salidas.
var orderTransitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.StatusReception: {entity.StatusDiagnosis},
	entity.StatusDiagnosis: {entity.StatusApproval},
	entity.StatusApproval:  {entity.StatusRepair, entity.StatusDiagnosis},
	entity.StatusRepair:    {entity.StatusQA},
	entity.StatusQA:        {entity.StatusReady, entity.StatusRepair},
	entity.StatusReady:     {entity.StatusDelivered},
	entity.StatusDelivered: nil,
}

// OrderStatuses estados en el orden del flujo.
var OrderStatuses = []entity.OrderStatus{
	entity.StatusReception,
	entity.StatusDiagnosis,
	entity.StatusApproval,
	entity.StatusRepair,
	entity.StatusQA,
	entity.StatusReady,
	entity.StatusDelivered,
}

// ParseStatus convierte texto libre en un estado conocido.
func ParseStatus(s string) (entity.OrderStatus, error) {
	st := entity.OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := orderTransitions[st]; !ok {
		return "", domain.Validation("estado de orden desconocido: " + s)
	}
	return st, nil
}

// ParsePriority normaliza la prioridad; vacío equivale a normal.
func ParsePriority(s string) (entity.Priority, error) {
	p := entity.Priority(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return entity.PriorityNormal, nil
	case entity.PriorityLow, entity.PriorityNormal, entity.PriorityHigh, entity.PriorityUrgent:
		return p, nil
	}
	return "", domain.Validation("prioridad inválida: " + s)
}

// CanTransition indica si from -> to está en la tabla.
func CanTransition(from, to entity.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition devuelve ErrInvalidTransition si el salto no está permitido.
// Escribir el mismo estado también se rechaza.
func ValidateTransition(from, to entity.OrderStatus) error {
	if !CanTransition(from, to) {
		return domain.InvalidTransition(string(from), string(to))
	}
	return nil
}

// NextStatuses estados alcanzables desde from (para que la UI muestre acciones).
func NextStatuses(from entity.OrderStatus) []entity.OrderStatus {
	out := make([]entity.OrderStatus, len(orderTransitions[from]))
	copy(out, orderTransitions[from])
	return out
}
