package inventory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// LedgerUseCase libro de inventario. Es la única vía para cambiar products.quantity:
// cada movimiento inserta su fila y aplica el delta al contador en la misma transacción.
type LedgerUseCase struct {
	txRunner  repository.TxRunner
	products  repository.ProductRepository
	movements repository.InventoryMovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner repository.TxRunner,
	products repository.ProductRepository,
	movements repository.InventoryMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, products: products, movements: movements}
}

// RecordMovement registra un movimiento en su propia transacción.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, in MovementInput) (*dto.MovementResponse, error) {
	var mov *entity.InventoryMovement
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		var err error
		mov, err = uc.RecordInTx(ctx, tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// RecordInTx registra el movimiento usando la transacción del llamador
// (órdenes de servicio, POS, alta de producto). No hace commit.
func (uc *LedgerUseCase) RecordInTx(ctx context.Context, tx repository.TxRepos, in MovementInput) (*entity.InventoryMovement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	product, err := tx.Products.GetByID(ctx, in.TenantID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto")
	}
	if !product.TracksStock() {
		return nil, domain.Validation("los servicios no manejan inventario")
	}

	// Sentencia única: quantity = quantity + delta, condicionada a no quedar en negativo.
	newQty, ok, err := tx.Products.ApplyStockDelta(ctx, in.TenantID, in.ProductID, in.delta())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.InsufficientStock(product.Name)
	}

	mov := &entity.InventoryMovement{
		ID:            uuid.New().String(),
		TenantID:      in.TenantID,
		ProductID:     in.ProductID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		ReferenceKind: in.ReferenceKind,
		ReferenceID:   in.ReferenceID,
		Notes:         in.Notes,
		BalanceAfter:  newQty,
		CreatedBy:     in.ActorID,
		CreatedAt:     time.Now(),
	}
	if err := tx.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// LockProducts bloquea las filas de los productos en orden de id, sin repetir.
// Quien mueve varios productos en una tx lo llama primero para no interbloquearse con otra.
func LockProducts(ctx context.Context, tx repository.TxRepos, tenantID string, productIDs []string) error {
	ids := slices.Clone(productIDs)
	slices.Sort(ids)
	for _, id := range slices.Compact(ids) {
		if _, err := tx.Products.GetForUpdate(ctx, tenantID, id); err != nil {
			return err
		}
	}
	return nil
}

// AdjustStock ajuste manual: delta positivo es entrada, negativo salida.
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, tenantID, actorID, productID string, delta decimal.Decimal, notes string) (*dto.MovementResponse, error) {
	if delta.IsZero() {
		return nil, domain.Validation("el ajuste no puede ser cero")
	}
	typ := entity.MovementIn
	if delta.IsNegative() {
		typ = entity.MovementOut
	}
	return uc.RecordMovement(ctx, MovementInput{
		TenantID:      tenantID,
		ActorID:       actorID,
		ProductID:     productID,
		Type:          typ,
		Quantity:      delta.Abs(),
		ReferenceKind: entity.RefAdjustment,
		Notes:         notes,
	})
}

// GetStock devuelve el contador cacheado y la suma del libro.
func (uc *LedgerUseCase) GetStock(ctx context.Context, tenantID, productID string) (*dto.StockResponse, error) {
	product, err := uc.products.GetByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto")
	}
	sum, err := uc.movements.SumByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		ProductID:      product.ID,
		Quantity:       product.Quantity,
		LedgerQuantity: sum,
		Consistent:     product.Quantity.Equal(sum),
	}, nil
}

// Reconcile reescribe el contador con la suma del libro, con la fila del producto bloqueada.
func (uc *LedgerUseCase) Reconcile(ctx context.Context, tenantID, productID string) (*dto.StockResponse, error) {
	var out *dto.StockResponse
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		product, err := tx.Products.GetForUpdate(ctx, tenantID, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto")
		}
		sum, err := tx.Movements.SumByProduct(ctx, tenantID, productID)
		if err != nil {
			return err
		}
		if sum.IsNegative() {
			return domain.Conflict("el libro de movimientos suma un saldo negativo; revise los movimientos")
		}
		previous := product.Quantity
		if !previous.Equal(sum) {
			if err := tx.Products.SetQuantity(ctx, tenantID, productID, sum); err != nil {
				return err
			}
		}
		out = &dto.StockResponse{
			ProductID:        productID,
			Quantity:         sum,
			LedgerQuantity:   sum,
			Consistent:       true,
			PreviousQuantity: &previous,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListMovements kardex del tenant con filtros.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, tenantID string, f repository.MovementFilter) (*dto.MovementListResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	list, err := uc.movements.List(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

func toMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          string(m.Type),
		Quantity:      m.Quantity,
		ReferenceKind: m.ReferenceKind,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		BalanceAfter:  m.BalanceAfter,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}
