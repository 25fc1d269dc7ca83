package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error)
	List(ctx context.Context, tenantID, search string, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, tenantID, id string) error
}

// AssetRepository equipos/vehículos de los clientes.
type AssetRepository interface {
	Create(ctx context.Context, asset *entity.Asset) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Asset, error)
	ListByCustomer(ctx context.Context, tenantID, customerID string) ([]*entity.Asset, error)
	Update(ctx context.Context, asset *entity.Asset) error
}
