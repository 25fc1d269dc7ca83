package workflow

import (
	"strings"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

var salesTransitions = map[entity.SalesStatus][]entity.SalesStatus{
	entity.SalesPending:   {entity.SalesPaid, entity.SalesCancelled},
	entity.SalesPaid:      {entity.SalesShipped, entity.SalesCancelled},
	entity.SalesShipped:   {entity.SalesDelivered},
	entity.SalesDelivered: nil,
	entity.SalesCancelled: nil,
}

// ParseSalesStatus convierte texto en un estado de venta conocido.
func ParseSalesStatus(s string) (entity.SalesStatus, error) {
	st := entity.SalesStatus(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := salesTransitions[st]; !ok {
		return "", domain.Validation("estado de venta desconocido: " + s)
	}
	return st, nil
}

// ValidateSalesTransition aplica la tabla de estados de ventas en línea.
func ValidateSalesTransition(from, to entity.SalesStatus) error {
	for _, next := range salesTransitions[from] {
		if next == to {
			return nil
		}
	}
	return domain.InvalidTransition(string(from), string(to))
}
