package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// MovementInput entrada del libro de inventario.
// ReferenceKind + ReferenceID identifican el documento que originó el movimiento
// y se conocen antes de insertar (no se corrigen después).
type MovementInput struct {
	TenantID      string
	ActorID       string
	ProductID     string
	Type          entity.MovementType
	Quantity      decimal.Decimal
	ReferenceKind string
	ReferenceID   string
	Notes         string
}

func (in MovementInput) validate() error {
	if in.TenantID == "" {
		return domain.ErrUnauthorized
	}
	if in.ProductID == "" {
		return domain.Validation("product_id es obligatorio")
	}
	if in.Type != entity.MovementIn && in.Type != entity.MovementOut {
		return domain.Validation("tipo de movimiento inválido, use in u out")
	}
	if !in.Quantity.IsPositive() {
		return domain.Validation("la cantidad debe ser mayor que cero")
	}
	return domain.CheckQuantity("quantity", in.Quantity)
}

func (in MovementInput) delta() decimal.Decimal {
	if in.Type == entity.MovementOut {
		return in.Quantity.Neg()
	}
	return in.Quantity
}
