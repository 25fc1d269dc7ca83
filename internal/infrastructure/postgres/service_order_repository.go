package postgres

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.ServiceOrderRepository = (*ServiceOrderRepo)(nil)

const orderColumns = `id, tenant_id, customer_id, asset_id, folio, status, priority, description,
	COALESCE(assigned_to::text, '') AS assigned_to, COALESCE(created_by::text, '') AS created_by,
	delivered_at, created_at, updated_at`

const orderItemColumns = `id, tenant_id, order_id, product_id, product_name, product_type, quantity, unit_price,
	COALESCE(created_by::text, '') AS created_by, created_at`

// ServiceOrderRepo órdenes de servicio e ítems sobre PostgreSQL.
type ServiceOrderRepo struct {
	q Querier
}

// NewServiceOrderRepository construye el adaptador.
func NewServiceOrderRepository(q Querier) *ServiceOrderRepo {
	return &ServiceOrderRepo{q: q}
}

func (r *ServiceOrderRepo) Create(ctx context.Context, o *entity.ServiceOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO service_orders (id, tenant_id, customer_id, asset_id, folio, status, priority, description,
			assigned_to, created_by, delivered_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		o.ID, o.TenantID, o.CustomerID, o.AssetID, o.Folio, string(o.Status), string(o.Priority), o.Description,
		nullable(o.AssignedTo), nullable(o.CreatedBy), o.DeliveredAt, o.CreatedAt, o.UpdatedAt)
	return wrap("insert service order", err)
}

func (r *ServiceOrderRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.ServiceOrder, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM service_orders WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

// GetForUpdate bloquea la orden: serializa altas y bajas de ítems concurrentes.
func (r *ServiceOrderRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.ServiceOrder, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM service_orders WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, tenantID, id)
}

func (r *ServiceOrderRepo) getOne(ctx context.Context, query string, args ...any) (*entity.ServiceOrder, error) {
	var o entity.ServiceOrder
	if err := pgxscan.Get(ctx, r.q, &o, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, wrap("get service order", err)
	}
	return &o, nil
}

// List devuelve la página y el total de filas que cumplen el filtro.
func (r *ServiceOrderRepo) List(ctx context.Context, tenantID string, f repository.OrderFilter) ([]*entity.ServiceOrder, int, error) {
	where := squirrel.And{squirrel.Eq{"tenant_id": tenantID}}
	if f.Status != "" {
		where = append(where, squirrel.Eq{"status": f.Status})
	}
	if f.CustomerID != "" {
		where = append(where, squirrel.Eq{"customer_id": f.CustomerID})
	}
	if f.Priority != "" {
		where = append(where, squirrel.Eq{"priority": f.Priority})
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		where = append(where, squirrel.Or{squirrel.ILike{"folio": like}, squirrel.ILike{"description": like}})
	}

	countSQL, countArgs, err := psql.Select("COUNT(*)").From("service_orders").Where(where).ToSql()
	if err != nil {
		return nil, 0, wrap("build count orders", err)
	}
	var total int
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, wrap("count orders", err)
	}

	limit, offset := limitOffset(f.Limit, f.Offset)
	sql, args, err := psql.Select(orderColumns).From("service_orders").Where(where).
		OrderBy("created_at DESC").Limit(limit).Offset(offset).ToSql()
	if err != nil {
		return nil, 0, wrap("build list orders", err)
	}
	var list []*entity.ServiceOrder
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, 0, wrap("list orders", err)
	}
	return list, total, nil
}

func (r *ServiceOrderRepo) UpdateStatus(ctx context.Context, o *entity.ServiceOrder) error {
	_, err := r.q.Exec(ctx, `
		UPDATE service_orders SET status = $3, delivered_at = $4, updated_at = $5
		WHERE tenant_id = $1 AND id = $2`,
		o.TenantID, o.ID, string(o.Status), o.DeliveredAt, o.UpdatedAt)
	return wrap("update service order status", err)
}

func (r *ServiceOrderRepo) AddItem(ctx context.Context, it *entity.ServiceOrderItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO service_order_items (id, tenant_id, order_id, product_id, product_name, product_type,
			quantity, unit_price, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		it.ID, it.TenantID, it.OrderID, it.ProductID, it.ProductName, it.ProductType,
		it.Quantity, it.UnitPrice, nullable(it.CreatedBy), it.CreatedAt)
	return wrap("insert service order item", err)
}

// DeleteItem borra con RETURNING: solo quien borra la fila recibe el ítem.
func (r *ServiceOrderRepo) DeleteItem(ctx context.Context, tenantID, orderID, itemID string) (*entity.ServiceOrderItem, error) {
	rows, err := r.q.Query(ctx, `
		DELETE FROM service_order_items
		WHERE tenant_id = $1 AND order_id = $2 AND id = $3
		RETURNING `+orderItemColumns, tenantID, orderID, itemID)
	if err != nil {
		return nil, wrap("delete service order item", err)
	}
	var it entity.ServiceOrderItem
	if err := pgxscan.ScanOne(&it, rows); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("scan deleted item", err)
	}
	return &it, nil
}

func (r *ServiceOrderRepo) ListItems(ctx context.Context, tenantID, orderID string) ([]*entity.ServiceOrderItem, error) {
	var list []*entity.ServiceOrderItem
	err := pgxscan.Select(ctx, r.q, &list,
		`SELECT `+orderItemColumns+` FROM service_order_items WHERE tenant_id = $1 AND order_id = $2 ORDER BY created_at, id`,
		tenantID, orderID)
	if err != nil {
		return nil, wrap("list service order items", err)
	}
	return list, nil
}

var _ repository.OrderEventRepository = (*OrderEventRepo)(nil)

// OrderEventRepo línea de tiempo (solo inserción).
type OrderEventRepo struct {
	q Querier
}

// NewOrderEventRepository construye el adaptador.
func NewOrderEventRepository(q Querier) *OrderEventRepo {
	return &OrderEventRepo{q: q}
}

func (r *OrderEventRepo) Create(ctx context.Context, ev *entity.OrderEvent) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_events (id, tenant_id, order_id, actor_id, type, content, storage_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ev.ID, ev.TenantID, ev.OrderID, nullable(ev.ActorID), ev.Type, ev.Content, nullable(ev.StoragePath), ev.CreatedAt)
	return wrap("insert order event", err)
}

func (r *OrderEventRepo) ListByOrder(ctx context.Context, tenantID, orderID string) ([]*entity.OrderEvent, error) {
	var list []*entity.OrderEvent
	err := pgxscan.Select(ctx, r.q, &list, `
		SELECT id, tenant_id, order_id, COALESCE(actor_id::text, '') AS actor_id, type, content,
			COALESCE(storage_path, '') AS storage_path, created_at
		FROM order_events WHERE tenant_id = $1 AND order_id = $2
		ORDER BY created_at, id`, tenantID, orderID)
	if err != nil {
		return nil, wrap("list order events", err)
	}
	return list, nil
}

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos polimórficos (order_kind + order_id).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (id, tenant_id, order_kind, order_id, amount, method, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.TenantID, string(p.OrderKind), p.OrderID, p.Amount, p.Method, p.Notes, nullable(p.CreatedBy), p.CreatedAt)
	return wrap("insert payment", err)
}

func (r *PaymentRepo) ListByOrder(ctx context.Context, tenantID string, kind entity.OrderKind, orderID string) ([]*entity.Payment, error) {
	var list []*entity.Payment
	err := pgxscan.Select(ctx, r.q, &list, `
		SELECT id, tenant_id, order_kind, order_id, amount, method, notes,
			COALESCE(created_by::text, '') AS created_by, created_at
		FROM payments WHERE tenant_id = $1 AND order_kind = $2 AND order_id = $3
		ORDER BY created_at, id`, tenantID, string(kind), orderID)
	if err != nil {
		return nil, wrap("list payments", err)
	}
	return list, nil
}

var _ repository.FolioRepository = (*FolioRepo)(nil)

// FolioRepo consecutivos por tenant y prefijo.
type FolioRepo struct {
	q Querier
}

// NewFolioRepository construye el adaptador.
func NewFolioRepository(q Querier) *FolioRepo {
	return &FolioRepo{q: q}
}

// Next incrementa y devuelve el consecutivo en una sola sentencia. Dentro de la tx de la
// orden, un rollback no deja huecos.
func (r *FolioRepo) Next(ctx context.Context, tenantID, prefix string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO folio_sequences (tenant_id, prefix, current_val)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, prefix) DO UPDATE SET current_val = folio_sequences.current_val + 1
		RETURNING current_val`, tenantID, prefix).Scan(&n)
	if err != nil {
		return 0, wrap("next folio", err)
	}
	return n, nil
}
