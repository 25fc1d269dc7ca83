package postgres

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO categories (id, tenant_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.TenantID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt)
	return wrap("insert category", err)
}

func (r *CategoryRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Category, error) {
	var c entity.Category
	err := pgxscan.Get(ctx, r.q, &c, `
		SELECT id, tenant_id, name, description, created_at, updated_at
		FROM categories WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, wrap("get category", err)
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context, tenantID string) ([]*entity.Category, error) {
	var list []*entity.Category
	err := pgxscan.Select(ctx, r.q, &list, `
		SELECT id, tenant_id, name, description, created_at, updated_at
		FROM categories WHERE tenant_id = $1 ORDER BY name`, tenantID)
	if err != nil {
		return nil, wrap("list categories", err)
	}
	return list, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `
		UPDATE categories SET name = $3, description = $4, updated_at = $5
		WHERE tenant_id = $1 AND id = $2`,
		c.TenantID, c.ID, c.Name, c.Description, c.UpdatedAt)
	return wrap("update category", err)
}

func (r *CategoryRepo) Delete(ctx context.Context, tenantID, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM categories WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return wrap("delete category", err)
}
