package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/usecase"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/infrastructure/memory"
)

func setupProducts(t *testing.T) (*memory.Store, *usecase.ProductUseCase, *inventory.LedgerUseCase) {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	tx := memory.NewTxRunner(store)
	ledger := inventory.NewLedgerUseCase(tx, repos.Products, repos.Movements)
	return store, usecase.NewProductUseCase(tx, repos.Products, store.Categories(), ledger), ledger
}

func TestProductCreate_StockInicialEntraPorElLibro(t *testing.T) {
	store, uc, ledger := setupProducts(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, tenantA, actor, dto.CreateProductRequest{
		Name: "Pantalla 6.1", Type: entity.ProductTypeProduct,
		SalePrice: dec("180000"), Cost: dec("120000"), InitialStock: ptr(dec("7.5")),
	})
	require.NoError(t, err)
	assert.True(t, p.Quantity.Equal(dec("7.5")))

	movs := store.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementIn, movs[0].Type)
	assert.Equal(t, entity.RefInitial, movs[0].ReferenceKind)
	assert.Equal(t, p.ID, movs[0].ReferenceID)
	assert.Equal(t, actor, movs[0].CreatedBy)

	stock, err := ledger.GetStock(ctx, tenantA, p.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(stock.LedgerQuantity))
	assert.True(t, stock.Consistent)
}

func TestProductCreate_SinStockNoGeneraMovimientos(t *testing.T) {
	store, uc, _ := setupProducts(t)

	p, err := uc.Create(context.Background(), tenantA, actor, dto.CreateProductRequest{
		Name: "Cable USB-C", Type: entity.ProductTypeProduct, SalePrice: dec("15000"),
	})
	require.NoError(t, err)
	assert.True(t, p.Quantity.IsZero())
	assert.Empty(t, store.Movements())
}

func TestProductCreate_Rechazos(t *testing.T) {
	cases := []struct {
		name string
		in   dto.CreateProductRequest
	}{
		{"servicio con stock inicial", dto.CreateProductRequest{Name: "Diagnóstico", Type: entity.ProductTypeService, SalePrice: dec("50000"), InitialStock: ptr(dec("1"))}},
		{"stock inicial negativo", dto.CreateProductRequest{Name: "Batería", Type: entity.ProductTypeProduct, InitialStock: ptr(dec("-2"))}},
		{"stock inicial con cuatro decimales", dto.CreateProductRequest{Name: "Pasta térmica", Type: entity.ProductTypeProduct, InitialStock: ptr(dec("0.0001"))}},
		{"precio con tres decimales", dto.CreateProductRequest{Name: "Tornillo", Type: entity.ProductTypeProduct, SalePrice: dec("10.005")}},
		{"costo negativo", dto.CreateProductRequest{Name: "Tornillo", Type: entity.ProductTypeProduct, Cost: dec("-1")}},
		{"tipo desconocido", dto.CreateProductRequest{Name: "Kit", Type: "bundle"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, uc, _ := setupProducts(t)
			_, err := uc.Create(context.Background(), tenantA, actor, tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, store.Movements())
		})
	}
}

func TestProductCreate_ServicioSinStockSePermite(t *testing.T) {
	_, uc, _ := setupProducts(t)

	p, err := uc.Create(context.Background(), tenantA, actor, dto.CreateProductRequest{
		Name: "Cambio de pantalla", Type: entity.ProductTypeService, SalePrice: dec("40000"), InitialStock: ptr(dec("0")),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductTypeService, p.Type)
}

func TestProductCreate_CategoriaDeOtroTenant(t *testing.T) {
	store, uc, _ := setupProducts(t)
	ctx := context.Background()
	cat, err := usecase.NewCategoryUseCase(store.Categories()).Create(ctx, tenantB, dto.CategoryRequest{Name: "Baterías"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, tenantA, actor, dto.CreateProductRequest{
		Name: "Batería", Type: entity.ProductTypeProduct, CategoryID: cat.ID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUpdate_NoTocaLaCantidad(t *testing.T) {
	store, uc, _ := setupProducts(t)
	ctx := context.Background()
	p, err := uc.Create(ctx, tenantA, actor, dto.CreateProductRequest{
		Name: "Pantalla", Type: entity.ProductTypeProduct, SalePrice: dec("100"), InitialStock: ptr(dec("4")),
	})
	require.NoError(t, err)

	upd, err := uc.Update(ctx, tenantA, p.ID, dto.UpdateProductRequest{Name: ptr("Pantalla OLED"), SalePrice: ptr(dec("120.50"))})
	require.NoError(t, err)
	assert.Equal(t, "Pantalla OLED", upd.Name)
	assert.True(t, upd.Quantity.Equal(dec("4")))
	assert.Len(t, store.Movements(), 1)

	_, err = uc.Update(ctx, tenantA, p.ID, dto.UpdateProductRequest{PublicPrice: ptr(dec("0.001"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductDelete_DesactivaSinBorrar(t *testing.T) {
	_, uc, _ := setupProducts(t)
	ctx := context.Background()
	p, err := uc.Create(ctx, tenantA, actor, dto.CreateProductRequest{Name: "Filtro", Type: entity.ProductTypeProduct})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, tenantA, p.ID))

	got, err := uc.GetByID(ctx, tenantA, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	_, err = uc.GetByID(ctx, tenantB, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
