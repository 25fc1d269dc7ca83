package postgres

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo tenants sobre PostgreSQL.
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador.
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO tenants (id, name, industry, tax_id, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Name, t.Industry, t.TaxID, t.Email, t.Phone, t.Address, t.CreatedAt, t.UpdatedAt)
	return wrap("insert tenant", err)
}

func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	var t entity.Tenant
	err := pgxscan.Get(ctx, r.q, &t, `
		SELECT id, name, industry, tax_id, email, phone, address, created_at, updated_at
		FROM tenants WHERE id = $1`, id)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, wrap("get tenant", err)
	}
	return &t, nil
}

// Update no toca industry.
func (r *TenantRepo) Update(ctx context.Context, t *entity.Tenant) error {
	_, err := r.q.Exec(ctx, `
		UPDATE tenants SET name = $2, tax_id = $3, email = $4, phone = $5, address = $6, updated_at = $7
		WHERE id = $1`,
		t.ID, t.Name, t.TaxID, t.Email, t.Phone, t.Address, t.UpdatedAt)
	return wrap("update tenant", err)
}
