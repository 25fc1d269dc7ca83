package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// CustomerUseCase clientes del taller y sus equipos.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	assets    repository.AssetRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customers repository.CustomerRepository, assets repository.AssetRepository) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, assets: assets}
}

// Create crea un cliente. user_id lo liga a una cuenta del portal.
func (uc *CustomerUseCase) Create(ctx context.Context, tenantID string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		UserID:    in.UserID,
		Name:      strings.TrimSpace(in.Name),
		TaxID:     strings.TrimSpace(in.TaxID),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if c.Name == "" {
		return nil, domain.Validation("el nombre es obligatorio")
	}
	if err := uc.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// GetByID obtiene un cliente del tenant.
func (uc *CustomerUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// List clientes con búsqueda por nombre, documento o correo.
func (uc *CustomerUseCase) List(ctx context.Context, tenantID, search string, limit, offset int) ([]dto.CustomerResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	list, err := uc.customers.List(ctx, tenantID, strings.TrimSpace(search), limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

// Update reemplaza los datos de contacto.
func (uc *CustomerUseCase) Update(ctx context.Context, tenantID, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	c.UserID = in.UserID
	c.Name = strings.TrimSpace(in.Name)
	c.TaxID = strings.TrimSpace(in.TaxID)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Address = in.Address
	c.UpdatedAt = time.Now()
	if err := uc.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Delete elimina un cliente. Falla con conflicto si tiene órdenes (FK en la base).
func (uc *CustomerUseCase) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := uc.get(ctx, tenantID, id); err != nil {
		return err
	}
	return uc.customers.Delete(ctx, tenantID, id)
}

// CreateAsset registra un equipo del cliente.
func (uc *CustomerUseCase) CreateAsset(ctx context.Context, tenantID string, in dto.AssetRequest) (*dto.AssetResponse, error) {
	if _, err := uc.get(ctx, tenantID, in.CustomerID); err != nil {
		return nil, err
	}
	details, err := normalizeDetails(in.Details)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	a := &entity.Asset{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		CustomerID: in.CustomerID,
		Identifier: strings.TrimSpace(in.Identifier),
		Details:    details,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.assets.Create(ctx, a); err != nil {
		return nil, err
	}
	return toAssetResponse(a), nil
}

// GetAsset obtiene un equipo.
func (uc *CustomerUseCase) GetAsset(ctx context.Context, tenantID, id string) (*dto.AssetResponse, error) {
	a, err := uc.assets.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NotFound("equipo")
	}
	return toAssetResponse(a), nil
}

// ListAssets equipos de un cliente.
func (uc *CustomerUseCase) ListAssets(ctx context.Context, tenantID, customerID string) ([]dto.AssetResponse, error) {
	if _, err := uc.get(ctx, tenantID, customerID); err != nil {
		return nil, err
	}
	list, err := uc.assets.ListByCustomer(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AssetResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAssetResponse(a))
	}
	return out, nil
}

// UpdateAsset cambia identificador y detalles; el dueño no se puede cambiar.
func (uc *CustomerUseCase) UpdateAsset(ctx context.Context, tenantID, id string, in dto.AssetRequest) (*dto.AssetResponse, error) {
	a, err := uc.assets.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NotFound("equipo")
	}
	if in.CustomerID != a.CustomerID {
		return nil, domain.Validation("no se puede cambiar el cliente de un equipo")
	}
	details, err := normalizeDetails(in.Details)
	if err != nil {
		return nil, err
	}
	a.Identifier = strings.TrimSpace(in.Identifier)
	a.Details = details
	a.UpdatedAt = time.Now()
	if err := uc.assets.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAssetResponse(a), nil
}

func (uc *CustomerUseCase) get(ctx context.Context, tenantID, id string) (*entity.Customer, error) {
	c, err := uc.customers.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("cliente")
	}
	return c, nil
}

// normalizeDetails exige un objeto JSON; vacío equivale a {}.
func normalizeDetails(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage(`{}`), nil
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, domain.Validation("details debe ser un objeto JSON")
	}
	return raw, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}

func toAssetResponse(a *entity.Asset) *dto.AssetResponse {
	return &dto.AssetResponse{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Identifier: a.Identifier,
		Details:    a.Details,
		CreatedAt:  a.CreatedAt,
	}
}
