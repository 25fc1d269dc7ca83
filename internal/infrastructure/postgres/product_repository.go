package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, tenant_id, COALESCE(category_id::text, ''), COALESCE(sku, ''), name, description, type,
	sale_price, public_price, cost, quantity, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. quantity inicia en 0: el stock inicial entra por el libro.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, tenant_id, category_id, sku, name, description, type,
			sale_price, public_price, cost, quantity, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.TenantID, nullable(p.CategoryID), nullable(p.SKU), p.Name, p.Description, p.Type,
		p.SalePrice, p.PublicPrice, p.Cost, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	return wrap("insert product", err)
}

// GetByID obtiene un producto del tenant. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, tenantID, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get product", err)
	}
	return p, nil
}

// GetByIDs devuelve los productos encontrados indexados por id.
func (r *ProductRepo) GetByIDs(ctx context.Context, tenantID string, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND id = ANY($2::uuid[])`, tenantID, ids)
	if err != nil {
		return nil, wrap("get products", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrap("scan product", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

// List filtra por tipo, categoría, activo y búsqueda en nombre/SKU.
func (r *ProductRepo) List(ctx context.Context, tenantID string, f repository.ProductFilter) ([]*entity.Product, error) {
	limit, offset := limitOffset(f.Limit, f.Offset)
	q := psql.Select(productColumns).From("products").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("name").Limit(limit).Offset(offset)
	if f.Type != "" {
		q = q.Where(squirrel.Eq{"type": f.Type})
	}
	if f.CategoryID != "" {
		q = q.Where(squirrel.Eq{"category_id": f.CategoryID})
	}
	if f.OnlyActive {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where(squirrel.Or{squirrel.ILike{"name": like}, squirrel.ILike{"sku": like}})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, wrap("build list products", err)
	}
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrap("scan product", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update escribe datos de catálogo. quantity y type no se tocan.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET category_id = $3, sku = $4, name = $5, description = $6,
			sale_price = $7, public_price = $8, cost = $9, is_active = $10, updated_at = $11
		WHERE tenant_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		p.TenantID, p.ID, nullable(p.CategoryID), nullable(p.SKU), p.Name, p.Description,
		p.SalePrice, p.PublicPrice, p.Cost, p.IsActive, p.UpdatedAt,
	)
	return wrap("update product", err)
}

// ApplyStockDelta incremento/decremento atómico. Sin fila devuelta el saldo habría quedado negativo.
func (r *ProductRepo) ApplyStockDelta(ctx context.Context, tenantID, id string, delta decimal.Decimal) (decimal.Decimal, bool, error) {
	var qty decimal.Decimal
	err := r.q.QueryRow(ctx, `
		UPDATE products SET quantity = quantity + $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2 AND type = 'product' AND quantity + $3 >= 0
		RETURNING quantity`, tenantID, id, delta).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, wrap("apply stock delta", err)
	}
	return qty, true, nil
}

// SetQuantity sobrescribe el contador (solo reconciliación contra el libro).
func (r *ProductRepo) SetQuantity(ctx context.Context, tenantID, id string, qty decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $3, updated_at = now() WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, qty)
	return wrap("set product quantity", err)
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.TenantID, &p.CategoryID, &p.SKU, &p.Name, &p.Description, &p.Type,
		&p.SalePrice, &p.PublicPrice, &p.Cost, &p.Quantity, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
