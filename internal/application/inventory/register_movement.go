package inventory

import (
	"context"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// RecordFromRequest adapta el request HTTP al caso de uso RecordMovement.
// Sin reference_kind el movimiento se trata como ajuste manual.
func (uc *LedgerUseCase) RecordFromRequest(ctx context.Context, tenantID, userID string, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	kind := in.ReferenceKind
	if kind == "" {
		kind = entity.RefAdjustment
	}
	return uc.RecordMovement(ctx, MovementInput{
		TenantID:      tenantID,
		ActorID:       userID,
		ProductID:     in.ProductID,
		Type:          entity.MovementType(in.Type),
		Quantity:      in.Quantity,
		ReferenceKind: kind,
		ReferenceID:   in.ReferenceID,
		Notes:         in.Notes,
	})
}
