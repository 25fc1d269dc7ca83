package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

const salesColumns = `id, tenant_id, folio, channel, COALESCE(customer_id::text, '') AS customer_id, status,
	payment_status, payment_method, total_amount, notes, COALESCE(created_by::text, '') AS created_by,
	paid_at, created_at, updated_at`

// SalesOrderRepo ventas POS y en línea.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador.
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

func (r *SalesOrderRepo) Create(ctx context.Context, o *entity.SalesOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales_orders (id, tenant_id, folio, channel, customer_id, status, payment_status,
			payment_method, total_amount, notes, created_by, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		o.ID, o.TenantID, o.Folio, o.Channel, nullable(o.CustomerID), string(o.Status), o.PaymentStatus,
		o.PaymentMethod, o.TotalAmount, o.Notes, nullable(o.CreatedBy), o.PaidAt, o.CreatedAt, o.UpdatedAt)
	return wrap("insert sales order", err)
}

// AddItems inserta todas las líneas en una sola sentencia.
func (r *SalesOrderRepo) AddItems(ctx context.Context, items []*entity.SalesOrderItem) error {
	if len(items) == 0 {
		return nil
	}
	q := psql.Insert("sales_order_items").Columns(
		"id", "tenant_id", "order_id", "product_id", "product_name", "product_type", "quantity", "unit_price", "created_at")
	for _, it := range items {
		q = q.Values(it.ID, it.TenantID, it.OrderID, it.ProductID, it.ProductName, it.ProductType,
			it.Quantity, it.UnitPrice, it.CreatedAt)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return wrap("build insert sales items", err)
	}
	_, err = r.q.Exec(ctx, sql, args...)
	return wrap("insert sales items", err)
}

func (r *SalesOrderRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.SalesOrder, error) {
	return r.getOne(ctx, `SELECT `+salesColumns+` FROM sales_orders WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

func (r *SalesOrderRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.SalesOrder, error) {
	return r.getOne(ctx, `SELECT `+salesColumns+` FROM sales_orders WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, tenantID, id)
}

func (r *SalesOrderRepo) getOne(ctx context.Context, query string, args ...any) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	if err := pgxscan.Get(ctx, r.q, &o, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, wrap("get sales order", err)
	}
	return &o, nil
}

func (r *SalesOrderRepo) ListItems(ctx context.Context, tenantID, orderID string) ([]*entity.SalesOrderItem, error) {
	var list []*entity.SalesOrderItem
	err := pgxscan.Select(ctx, r.q, &list, `
		SELECT id, tenant_id, order_id, product_id, product_name, product_type, quantity, unit_price, created_at
		FROM sales_order_items WHERE tenant_id = $1 AND order_id = $2 ORDER BY created_at, id`, tenantID, orderID)
	if err != nil {
		return nil, wrap("list sales items", err)
	}
	return list, nil
}

func (r *SalesOrderRepo) List(ctx context.Context, tenantID string, f repository.SalesFilter) ([]*entity.SalesOrder, error) {
	limit, offset := limitOffset(f.Limit, f.Offset)
	q := psql.Select(salesColumns).From("sales_orders").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC").Limit(limit).Offset(offset)
	if f.Channel != "" {
		q = q.Where(squirrel.Eq{"channel": f.Channel})
	}
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"status": f.Status})
	}
	if f.CustomerID != "" {
		q = q.Where(squirrel.Eq{"customer_id": f.CustomerID})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, wrap("build list sales", err)
	}
	var list []*entity.SalesOrder
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, wrap("list sales", err)
	}
	return list, nil
}

func (r *SalesOrderRepo) UpdateStatus(ctx context.Context, o *entity.SalesOrder) error {
	_, err := r.q.Exec(ctx, `
		UPDATE sales_orders SET status = $3, payment_status = $4, payment_method = $5, paid_at = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2`,
		o.TenantID, o.ID, string(o.Status), o.PaymentStatus, o.PaymentMethod, o.PaidAt, o.UpdatedAt)
	return wrap("update sales order status", err)
}
