package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// TenantRepository puerto de persistencia para Tenant.
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
}
