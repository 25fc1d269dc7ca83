package postgres

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.AssetRepository    = (*AssetRepo)(nil)
)

const customerColumns = `id, tenant_id, COALESCE(user_id::text, '') AS user_id, name, tax_id, email, phone, address, created_at, updated_at`

// CustomerRepo clientes sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customers (id, tenant_id, user_id, name, tax_id, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.TenantID, nullable(c.UserID), c.Name, c.TaxID, c.Email, c.Phone, c.Address, c.CreatedAt, c.UpdatedAt)
	return wrap("insert customer", err)
}

func (r *CustomerRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error) {
	var c entity.Customer
	err := pgxscan.Get(ctx, r.q, &c,
		`SELECT `+customerColumns+` FROM customers WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, wrap("get customer", err)
	}
	return &c, nil
}

// List busca por nombre, documento o correo.
func (r *CustomerRepo) List(ctx context.Context, tenantID, search string, limit, offset int) ([]*entity.Customer, error) {
	l, o := limitOffset(limit, offset)
	q := psql.Select(customerColumns).From("customers").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("name").Limit(l).Offset(o)
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + s + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"tax_id": like},
			squirrel.ILike{"email": like},
		})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, wrap("build list customers", err)
	}
	var list []*entity.Customer
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, wrap("list customers", err)
	}
	return list, nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		UPDATE customers SET user_id = $3, name = $4, tax_id = $5, email = $6, phone = $7, address = $8, updated_at = $9
		WHERE tenant_id = $1 AND id = $2`,
		c.TenantID, c.ID, nullable(c.UserID), c.Name, c.TaxID, c.Email, c.Phone, c.Address, c.UpdatedAt)
	return wrap("update customer", err)
}

func (r *CustomerRepo) Delete(ctx context.Context, tenantID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM customers WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return wrap("delete customer", err)
}

// AssetRepo equipos de clientes (tabla customer_assets).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador.
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

const assetColumns = `id, tenant_id, customer_id, identifier, details, created_at, updated_at`

func (r *AssetRepo) Create(ctx context.Context, a *entity.Asset) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customer_assets (id, tenant_id, customer_id, identifier, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.TenantID, a.CustomerID, a.Identifier, a.Details, a.CreatedAt, a.UpdatedAt)
	return wrap("insert asset", err)
}

func (r *AssetRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Asset, error) {
	var a entity.Asset
	err := pgxscan.Get(ctx, r.q, &a,
		`SELECT `+assetColumns+` FROM customer_assets WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, wrap("get asset", err)
	}
	return &a, nil
}

func (r *AssetRepo) ListByCustomer(ctx context.Context, tenantID, customerID string) ([]*entity.Asset, error) {
	var list []*entity.Asset
	err := pgxscan.Select(ctx, r.q, &list,
		`SELECT `+assetColumns+` FROM customer_assets WHERE tenant_id = $1 AND customer_id = $2 ORDER BY created_at`,
		tenantID, customerID)
	if err != nil {
		return nil, wrap("list assets", err)
	}
	return list, nil
}

func (r *AssetRepo) Update(ctx context.Context, a *entity.Asset) error {
	_, err := r.q.Exec(ctx, `
		UPDATE customer_assets SET identifier = $3, details = $4, updated_at = $5
		WHERE tenant_id = $1 AND id = $2`,
		a.TenantID, a.ID, a.Identifier, a.Details, a.UpdatedAt)
	return wrap("update asset", err)
}
