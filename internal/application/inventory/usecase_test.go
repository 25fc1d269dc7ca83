package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
	"github.com/jhoicas/taller-api/internal/infrastructure/memory"
)

const (
	tenantA = "11111111-1111-1111-1111-111111111111"
	tenantB = "22222222-2222-2222-2222-222222222222"
	actor   = "33333333-3333-3333-3333-333333333333"
	filtro  = "44444444-4444-4444-4444-444444444444"
	revisar = "55555555-5555-5555-5555-555555555555"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*memory.Store, *inventory.LedgerUseCase) {
	t.Helper()
	store := memory.NewStore()
	store.PutProduct(entity.Product{ID: filtro, TenantID: tenantA, Name: "Filtro de aceite", Type: entity.ProductTypeProduct, SalePrice: dec("25"), IsActive: true})
	store.PutProduct(entity.Product{ID: revisar, TenantID: tenantA, Name: "Diagnóstico", Type: entity.ProductTypeService, SalePrice: dec("50"), IsActive: true})
	repos := store.Repos()
	uc := inventory.NewLedgerUseCase(memory.NewTxRunner(store), repos.Products, repos.Movements)
	return store, uc
}

func record(t *testing.T, uc *inventory.LedgerUseCase, typ entity.MovementType, qty string) error {
	t.Helper()
	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		TenantID:      tenantA,
		ActorID:       actor,
		ProductID:     filtro,
		Type:          typ,
		Quantity:      dec(qty),
		ReferenceKind: entity.RefAdjustment,
	})
	return err
}

func TestRecordMovement_EntradaYSalidaActualizanContador(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	require.NoError(t, record(t, uc, entity.MovementIn, "10"))
	require.NoError(t, record(t, uc, entity.MovementOut, "3"))

	stock, err := uc.GetStock(ctx, tenantA, filtro)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(dec("7")), "stock = %s", stock.Quantity)
	assert.True(t, stock.LedgerQuantity.Equal(dec("7")))
	assert.True(t, stock.Consistent)
}

func TestRecordMovement_BalanceAfter(t *testing.T) {
	_, uc := setup(t)
	mov, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		TenantID: tenantA, ActorID: actor, ProductID: filtro,
		Type: entity.MovementIn, Quantity: dec("4.5"), ReferenceKind: entity.RefAdjustment,
	})
	require.NoError(t, err)
	assert.True(t, mov.BalanceAfter.Equal(dec("4.5")))
	assert.Equal(t, "in", mov.Type)
}

func TestRecordMovement_SalidaSinStockNoDejaRastro(t *testing.T) {
	store, uc := setup(t)
	require.NoError(t, record(t, uc, entity.MovementIn, "2"))

	err := record(t, uc, entity.MovementOut, "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, domain.MessageOf(err), "Filtro de aceite")

	assert.Len(t, store.Movements(), 1, "la salida rechazada no debe quedar en el libro")
	stock, err := uc.GetStock(context.Background(), tenantA, filtro)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(dec("2")))
}

func TestRecordMovement_Validaciones(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()
	cases := map[string]inventory.MovementInput{
		"cantidad cero":     {TenantID: tenantA, ProductID: filtro, Type: entity.MovementIn, Quantity: decimal.Zero},
		"cantidad negativa": {TenantID: tenantA, ProductID: filtro, Type: entity.MovementIn, Quantity: dec("-1")},
		"tipo inválido":     {TenantID: tenantA, ProductID: filtro, Type: "transfer", Quantity: dec("1")},
		"sin producto":      {TenantID: tenantA, Type: entity.MovementIn, Quantity: dec("1")},
		"servicio":          {TenantID: tenantA, ProductID: revisar, Type: entity.MovementIn, Quantity: dec("1")},
		"cuatro decimales":  {TenantID: tenantA, ProductID: filtro, Type: entity.MovementIn, Quantity: dec("1.0005")},
		"fuera de rango":    {TenantID: tenantA, ProductID: filtro, Type: entity.MovementIn, Quantity: dec("100000000000")},
	}
	for name, in := range cases {
		_, err := uc.RecordMovement(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

func TestRecordMovement_OtroTenantNoEncuentraProducto(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		TenantID: tenantB, ProductID: filtro, Type: entity.MovementIn, Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordMovement_FalloAlInsertarRevierteContador(t *testing.T) {
	store, uc := setup(t)
	require.NoError(t, record(t, uc, entity.MovementIn, "5"))

	store.FailNext("movements.create", errors.New("disco lleno"))
	require.Error(t, record(t, uc, entity.MovementOut, "1"))

	stock, err := uc.GetStock(context.Background(), tenantA, filtro)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(dec("5")), "el contador no debe cambiar si el movimiento no se guardó")
	assert.True(t, stock.Consistent)
}

func TestAdjustStock_SignoDefineTipo(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, tenantA, actor, filtro, dec("8"), "conteo físico")
	require.NoError(t, err)
	mov, err := uc.AdjustStock(ctx, tenantA, actor, filtro, dec("-3"), "merma")
	require.NoError(t, err)
	assert.Equal(t, "out", mov.Type)
	assert.True(t, mov.Quantity.Equal(dec("3")))

	_, err = uc.AdjustStock(ctx, tenantA, actor, filtro, decimal.Zero, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	for _, m := range store.Movements() {
		assert.Equal(t, entity.RefAdjustment, m.ReferenceKind)
	}
}

func TestReconcile_CorrigeContadorDesdeLibro(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	require.NoError(t, record(t, uc, entity.MovementIn, "6"))

	// Contador alterado por fuera del libro.
	p, _ := store.Repos().Products.GetByID(ctx, tenantA, filtro)
	p.Quantity = dec("99")
	store.PutProduct(*p)

	before, err := uc.GetStock(ctx, tenantA, filtro)
	require.NoError(t, err)
	assert.False(t, before.Consistent)

	out, err := uc.Reconcile(ctx, tenantA, filtro)
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(dec("6")))
	require.NotNil(t, out.PreviousQuantity)
	assert.True(t, out.PreviousQuantity.Equal(dec("99")))

	after, err := uc.GetStock(ctx, tenantA, filtro)
	require.NoError(t, err)
	assert.True(t, after.Consistent)
}

func TestListMovements_FiltraPorProducto(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()
	require.NoError(t, record(t, uc, entity.MovementIn, "3"))
	require.NoError(t, record(t, uc, entity.MovementOut, "1"))

	list, err := uc.ListMovements(ctx, tenantA, repository.MovementFilter{ProductID: filtro})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "out", list.Items[0].Type, "el kardex va del más reciente al más antiguo")
	assert.Equal(t, 50, list.Page.Limit)

	other, err := uc.ListMovements(ctx, tenantB, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

func TestAdjustStock_RechazaDeltaFueraDeEscala(t *testing.T) {
	store, uc := setup(t)
	_, err := uc.AdjustStock(context.Background(), tenantA, actor, filtro, dec("0.0001"), "conteo")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.Movements())
}

// lockRecorder anota el orden en que se bloquean las filas.
type lockRecorder struct {
	repository.ProductRepository
	locked []string
}

func (r *lockRecorder) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	r.locked = append(r.locked, id)
	return r.ProductRepository.GetForUpdate(ctx, tenantID, id)
}

func TestLockProducts_OrdenaYSinRepetir(t *testing.T) {
	store, _ := setup(t)
	rec := &lockRecorder{ProductRepository: store.Repos().Products}
	tx := repository.TxRepos{Products: rec}

	err := inventory.LockProducts(context.Background(), tx, tenantA, []string{revisar, filtro, revisar, filtro})
	require.NoError(t, err)
	assert.Equal(t, []string{filtro, revisar}, rec.locked)
}
