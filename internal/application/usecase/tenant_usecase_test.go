package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/usecase"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/infrastructure/memory"
)

func TestTenantCreate_ValidaIndustria(t *testing.T) {
	uc := usecase.NewTenantUseCase(memory.NewStore().Tenants())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateTenantRequest{Name: "Taller Sur", Industry: "aerospace"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tn, err := uc.Create(ctx, dto.CreateTenantRequest{Name: " Taller Sur ", Industry: " Automotive "})
	require.NoError(t, err)
	assert.Equal(t, entity.IndustryAutomotive, tn.Industry)
	assert.Equal(t, "Taller Sur", tn.Name)
}

func TestTenantUpdate_IndustriaInmutable(t *testing.T) {
	uc := usecase.NewTenantUseCase(memory.NewStore().Tenants())
	ctx := context.Background()
	tn, err := uc.Create(ctx, dto.CreateTenantRequest{Name: "Electro Norte", Industry: entity.IndustryElectronics})
	require.NoError(t, err)

	upd, err := uc.Update(ctx, tn.ID, dto.UpdateTenantRequest{Name: ptr("Electro Norte SAS"), Phone: ptr("3001234567")})
	require.NoError(t, err)
	assert.Equal(t, "Electro Norte SAS", upd.Name)
	assert.Equal(t, entity.IndustryElectronics, upd.Industry)

	got, err := uc.Get(ctx, tn.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.IndustryElectronics, got.Industry)
	assert.Equal(t, "3001234567", got.Phone)
}

func TestTenantGet_Inexistente(t *testing.T) {
	uc := usecase.NewTenantUseCase(memory.NewStore().Tenants())

	_, err := uc.Get(context.Background(), tenantA)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
