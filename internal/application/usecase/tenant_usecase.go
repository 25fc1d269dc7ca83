package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// TenantUseCase registro y datos del taller.
type TenantUseCase struct {
	repo repository.TenantRepository
}

// NewTenantUseCase construye el caso de uso.
func NewTenantUseCase(repo repository.TenantRepository) *TenantUseCase {
	return &TenantUseCase{repo: repo}
}

// Create registra un tenant. La industria queda fija desde aquí.
func (uc *TenantUseCase) Create(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	industry := strings.ToLower(strings.TrimSpace(in.Industry))
	if !entity.ValidIndustry(industry) {
		return nil, domain.Validation("industria inválida: " + in.Industry)
	}
	now := time.Now()
	t := &entity.Tenant{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Industry:  industry,
		TaxID:     strings.TrimSpace(in.TaxID),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

// Get datos del tenant actual.
func (uc *TenantUseCase) Get(ctx context.Context, tenantID string) (*dto.TenantResponse, error) {
	t, err := uc.repo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NotFound("tenant")
	}
	return toTenantResponse(t), nil
}

// Update datos de contacto del tenant.
func (uc *TenantUseCase) Update(ctx context.Context, tenantID string, in dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	t, err := uc.repo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NotFound("tenant")
	}
	if in.Name != nil {
		t.Name = strings.TrimSpace(*in.Name)
	}
	if in.TaxID != nil {
		t.TaxID = strings.TrimSpace(*in.TaxID)
	}
	if in.Email != nil {
		t.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		t.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		t.Address = *in.Address
	}
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Industry:  t.Industry,
		TaxID:     t.TaxID,
		Email:     t.Email,
		Phone:     t.Phone,
		Address:   t.Address,
		CreatedAt: t.CreatedAt,
	}
}
