//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/infrastructure/postgres"
)

// setupDB levanta PostgreSQL en un contenedor y aplica las migraciones.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:alpine",
		tcpostgres.WithDatabase("taller_test"),
		tcpostgres.WithUsername("taller"),
		tcpostgres.WithPassword("taller"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPoolFromDSN(ctx, dsn, 5)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	// Idempotente.
	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

func seedTenantAndProduct(t *testing.T, pool *pgxpool.Pool) (tenantID, productID string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	tenantID = uuid.NewString()
	require.NoError(t, postgres.NewTenantRepository(pool).Create(ctx, &entity.Tenant{
		ID: tenantID, Name: "Taller Integración", Industry: entity.IndustryElectronics, CreatedAt: now, UpdatedAt: now,
	}))

	productID = uuid.NewString()
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, &entity.Product{
		ID: productID, TenantID: tenantID, SKU: "PANT-01", Name: "Pantalla", Type: entity.ProductTypeProduct,
		SalePrice: decimal.NewFromInt(180000), IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))
	return tenantID, productID
}

func TestLedger_Postgres(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	tenantID, productID := seedTenantAndProduct(t, pool)

	ledger := inventory.NewLedgerUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewProductRepository(pool),
		postgres.NewInventoryMovementRepository(pool),
	)
	move := func(typ entity.MovementType, qty int64) error {
		_, err := ledger.RecordMovement(ctx, inventory.MovementInput{
			TenantID: tenantID, ProductID: productID, Type: typ,
			Quantity: decimal.NewFromInt(qty), ReferenceKind: entity.RefAdjustment,
		})
		return err
	}

	require.NoError(t, move(entity.MovementIn, 10))
	require.NoError(t, move(entity.MovementOut, 4))

	err := move(entity.MovementOut, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stock, err := ledger.GetStock(ctx, tenantID, productID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(6)), "stock = %s", stock.Quantity)
	assert.True(t, stock.Consistent)

	sum, err := postgres.NewInventoryMovementRepository(pool).SumByProduct(ctx, tenantID, productID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(6)), "la salida rechazada no deja movimiento")
}

func TestLedger_PostgresSalidasConcurrentes(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	tenantID, productID := seedTenantAndProduct(t, pool)

	ledger := inventory.NewLedgerUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewProductRepository(pool),
		postgres.NewInventoryMovementRepository(pool),
	)
	_, err := ledger.RecordMovement(ctx, inventory.MovementInput{
		TenantID: tenantID, ProductID: productID, Type: entity.MovementIn,
		Quantity: decimal.NewFromInt(5), ReferenceKind: entity.RefInitial,
	})
	require.NoError(t, err)

	const workers = 10
	errs := make(chan error, workers)
	for range workers {
		go func() {
			_, err := ledger.RecordMovement(ctx, inventory.MovementInput{
				TenantID: tenantID, ProductID: productID, Type: entity.MovementOut,
				Quantity: decimal.NewFromInt(1), ReferenceKind: entity.RefAdjustment,
			})
			errs <- err
		}()
	}
	ok := 0
	for range workers {
		if err := <-errs; err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 5, ok, "nunca se vende más de lo que hay")

	stock, err := ledger.GetStock(ctx, tenantID, productID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.IsZero())
	assert.True(t, stock.Consistent)
}

func TestTenantIsolation_Postgres(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	_, productID := seedTenantAndProduct(t, pool)
	otherTenant, _ := seedTenantAndProduct(t, pool)

	p, err := postgres.NewProductRepository(pool).GetByID(ctx, otherTenant, productID)
	require.NoError(t, err)
	assert.Nil(t, p, "un tenant no ve productos de otro")
}
