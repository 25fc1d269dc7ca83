package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
	"github.com/jhoicas/taller-api/pkg/metrics"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, tenant_id, product_id, type, quantity, reference_kind,
	COALESCE(reference_id::text, '') AS reference_id, notes, balance_after,
	COALESCE(created_by::text, '') AS created_by, created_at`

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q      Querier
	commit *afterCommit
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create inserta la fila del libro. reference_id ya viene resuelto por el llamador.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_movements (id, tenant_id, product_id, type, quantity, reference_kind,
			reference_id, notes, balance_after, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.TenantID, m.ProductID, string(m.Type), m.Quantity, m.ReferenceKind,
		nullable(m.ReferenceID), m.Notes, m.BalanceAfter, nullable(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return wrap("create inventory movement", err)
	}
	typ, ref := string(m.Type), m.ReferenceKind
	r.commit.add(func() { metrics.InventoryMovements.WithLabelValues(typ, ref).Inc() })
	return nil
}

// List kardex filtrado, más reciente primero.
func (r *InventoryMovementRepo) List(ctx context.Context, tenantID string, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	limit, offset := limitOffset(f.Limit, f.Offset)
	q := psql.Select(movementColumns).From("inventory_movements").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC", "id").Limit(limit).Offset(offset)
	if f.ProductID != "" {
		q = q.Where(squirrel.Eq{"product_id": f.ProductID})
	}
	if f.ReferenceID != "" {
		q = q.Where(squirrel.Eq{"reference_id": f.ReferenceID})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.Lt{"created_at": *f.To})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, wrap("build list movements", err)
	}
	var list []*entity.InventoryMovement
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, wrap("list movements", err)
	}
	return list, nil
}

// SumByProduct saldo reconstruido: entradas menos salidas.
func (r *InventoryMovementRepo) SumByProduct(ctx context.Context, tenantID, productID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type = 'in' THEN quantity ELSE -quantity END), 0)
		FROM inventory_movements WHERE tenant_id = $1 AND product_id = $2`, tenantID, productID).Scan(&sum)
	if err != nil {
		return decimal.Zero, wrap("sum movements", err)
	}
	return sum, nil
}
