package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/application/sales"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/infrastructure/memory"
)

const (
	tenantID   = "11111111-1111-1111-1111-111111111111"
	actorID    = "33333333-3333-3333-3333-333333333333"
	customerID = "44444444-4444-4444-4444-444444444444"
	cargador   = "66666666-6666-6666-6666-666666666666"
	limpieza   = "77777777-7777-7777-7777-777777777777"
	inactivo   = "88888888-8888-8888-8888-888888888888"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type eventLog struct{ names []string }

func (e *eventLog) Fire(_, event string, _ any) { e.names = append(e.names, event) }

func setup(t *testing.T) (*memory.Store, *inventory.LedgerUseCase, *sales.UseCase, *eventLog) {
	t.Helper()
	store := memory.NewStore()
	store.PutCustomer(entity.Customer{ID: customerID, TenantID: tenantID, Name: "Luis"})
	store.PutProduct(entity.Product{ID: cargador, TenantID: tenantID, Name: "Cargador USB-C", Type: entity.ProductTypeProduct, SalePrice: dec("30"), PublicPrice: dec("35"), IsActive: true})
	store.PutProduct(entity.Product{ID: limpieza, TenantID: tenantID, Name: "Limpieza", Type: entity.ProductTypeService, SalePrice: dec("20"), IsActive: true})
	store.PutProduct(entity.Product{ID: inactivo, TenantID: tenantID, Name: "Descontinuado", Type: entity.ProductTypeProduct, SalePrice: dec("5"), IsActive: false})

	repos := store.Repos()
	runner := memory.NewTxRunner(store)
	ledger := inventory.NewLedgerUseCase(runner, repos.Products, repos.Movements)
	_, err := ledger.RecordMovement(context.Background(), inventory.MovementInput{
		TenantID: tenantID, ActorID: actorID, ProductID: cargador,
		Type: entity.MovementIn, Quantity: dec("5"), ReferenceKind: entity.RefInitial,
	})
	require.NoError(t, err)

	events := &eventLog{}
	return store, ledger, sales.NewUseCase(runner, repos.Sales, ledger, events), events
}

func stockOf(t *testing.T, ledger *inventory.LedgerUseCase) decimal.Decimal {
	t.Helper()
	s, err := ledger.GetStock(context.Background(), tenantID, cargador)
	require.NoError(t, err)
	require.True(t, s.Consistent)
	return s.Quantity
}

func TestCheckout_PrecioDelServidorIgnoraElDelCliente(t *testing.T) {
	store, ledger, uc, events := setup(t)
	fake := dec("0.01")

	out, err := uc.Checkout(context.Background(), tenantID, actorID, dto.CheckoutRequest{
		PaymentMethod: "cash",
		Items: []dto.CartLine{
			{ProductID: cargador, Quantity: dec("2"), UnitPrice: &fake},
			{ProductID: limpieza, Quantity: dec("1"), UnitPrice: &fake},
		},
	})
	require.NoError(t, err)

	assert.True(t, out.TotalAmount.Equal(dec("80")), "total = %s", out.TotalAmount)
	assert.Equal(t, "V-000001", out.Folio)
	assert.Equal(t, entity.ChannelPOS, out.Channel)
	assert.Equal(t, string(entity.SalesDelivered), out.Status)
	assert.Equal(t, entity.PaymentStatusPaid, out.PaymentStatus)
	assert.NotNil(t, out.PaidAt)
	for _, it := range out.Items {
		assert.False(t, it.UnitPrice.Equal(fake))
	}

	assert.True(t, stockOf(t, ledger).Equal(dec("3")))
	payments := store.Payments()
	require.Len(t, payments, 1)
	assert.Equal(t, entity.OrderKindSales, payments[0].OrderKind)
	assert.True(t, payments[0].Amount.Equal(dec("80")))
	assert.Equal(t, []string{entity.WebhookEventSaleCompleted}, events.names)
}

func TestCheckout_StockInsuficienteNoCreaVenta(t *testing.T) {
	store, ledger, uc, _ := setup(t)

	_, err := uc.Checkout(context.Background(), tenantID, actorID, dto.CheckoutRequest{
		PaymentMethod: "card",
		Items:         []dto.CartLine{{ProductID: cargador, Quantity: dec("6")}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	list, err := uc.List(context.Background(), tenantID, dto.SalesListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, store.Payments())
	assert.True(t, stockOf(t, ledger).Equal(dec("5")))
}

func TestCheckout_Validaciones(t *testing.T) {
	_, _, uc, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Checkout(ctx, tenantID, actorID, dto.CheckoutRequest{PaymentMethod: "cash"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "carrito vacío")

	_, err = uc.Checkout(ctx, tenantID, actorID, dto.CheckoutRequest{
		PaymentMethod: "pos_web", Items: []dto.CartLine{{ProductID: cargador, Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "pos_web no es un método de mostrador")

	_, err = uc.Checkout(ctx, tenantID, actorID, dto.CheckoutRequest{
		PaymentMethod: "cash", Items: []dto.CartLine{{ProductID: inactivo, Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "producto inactivo")

	_, err = uc.Checkout(ctx, tenantID, actorID, dto.CheckoutRequest{
		PaymentMethod: "cash", Items: []dto.CartLine{{ProductID: "00000000-0000-0000-0000-00000000abcd", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Checkout(ctx, tenantID, actorID, dto.CheckoutRequest{
		PaymentMethod: "cash", CustomerID: "00000000-0000-0000-0000-00000000abcd",
		Items: []dto.CartLine{{ProductID: cargador, Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente inexistente")
}

func TestOnlineOrder_ReservaPagaYCancela(t *testing.T) {
	store, ledger, uc, events := setup(t)
	ctx := context.Background()

	order, err := uc.CreateOnlineOrder(ctx, tenantID, actorID, dto.OnlineOrderRequest{
		CustomerID: customerID,
		Channel:    entity.ChannelWeb,
		Items:      []dto.CartLine{{ProductID: cargador, Quantity: dec("2")}},
	})
	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(dec("70")), "la tienda usa el precio público")
	assert.Equal(t, string(entity.SalesPending), order.Status)
	assert.True(t, stockOf(t, ledger).Equal(dec("3")), "el pedido reserva stock")

	paid, err := uc.ChangeOnlineStatus(ctx, tenantID, actorID, order.ID, "paid")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, entity.PaymentPOSWeb, paid.PaymentMethod)
	payments := store.Payments()
	require.Len(t, payments, 1)
	assert.Equal(t, entity.PaymentPOSWeb, payments[0].Method)

	cancelled, err := uc.ChangeOnlineStatus(ctx, tenantID, actorID, order.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusRefunded, cancelled.PaymentStatus)
	assert.True(t, stockOf(t, ledger).Equal(dec("5")), "cancelar devuelve lo reservado")

	_, err = uc.ChangeOnlineStatus(ctx, tenantID, actorID, order.ID, "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	assert.Equal(t, []string{
		entity.WebhookEventSaleStatusChanged,
		entity.WebhookEventSaleCompleted,
		entity.WebhookEventSaleStatusChanged,
	}, events.names)
}

func TestChangeOnlineStatus_VentaPOSNoCambia(t *testing.T) {
	_, _, uc, _ := setup(t)
	ctx := context.Background()
	sale, err := uc.Checkout(ctx, tenantID, actorID, dto.CheckoutRequest{
		PaymentMethod: "transfer", Items: []dto.CartLine{{ProductID: limpieza, Quantity: dec("1")}},
	})
	require.NoError(t, err)

	_, err = uc.ChangeOnlineStatus(ctx, tenantID, actorID, sale.ID, "cancelled")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestGet_DevuelveLineas(t *testing.T) {
	_, _, uc, _ := setup(t)
	ctx := context.Background()
	sale, err := uc.Checkout(ctx, tenantID, actorID, dto.CheckoutRequest{
		PaymentMethod: "cash", Items: []dto.CartLine{{ProductID: cargador, Quantity: dec("1")}},
	})
	require.NoError(t, err)

	got, err := uc.Get(ctx, tenantID, sale.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Cargador USB-C", got.Items[0].ProductName)
	assert.True(t, got.Items[0].Subtotal.Equal(dec("30")))
}

func TestCheckout_RechazaCantidadConMasDeTresDecimales(t *testing.T) {
	store, ledger, uc, _ := setup(t)

	_, err := uc.Checkout(context.Background(), tenantID, actorID, dto.CheckoutRequest{
		PaymentMethod: "cash",
		Items:         []dto.CartLine{{ProductID: cargador, Quantity: dec("1.0005")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.Payments())
	assert.True(t, stockOf(t, ledger).Equal(dec("5")))
}

func TestCheckout_TotalRedondeadoACentavos(t *testing.T) {
	store, _, uc, _ := setup(t)

	// 30 × 0.333 = 9.99; 20 × 0.125 = 2.5
	out, err := uc.Checkout(context.Background(), tenantID, actorID, dto.CheckoutRequest{
		PaymentMethod: "cash",
		Items: []dto.CartLine{
			{ProductID: cargador, Quantity: dec("0.333")},
			{ProductID: limpieza, Quantity: dec("0.125")},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.TotalAmount.Equal(dec("12.49")), "total = %s", out.TotalAmount)
	assert.GreaterOrEqual(t, out.TotalAmount.Exponent(), int32(-2))
	require.Len(t, store.Payments(), 1)
	assert.True(t, store.Payments()[0].Amount.Equal(out.TotalAmount))
}

func TestCheckout_MueveStockEnOrdenDeProducto(t *testing.T) {
	const bateria = "55555555-5555-5555-5555-555555555555"
	store, ledger, uc, _ := setup(t)
	ctx := context.Background()
	store.PutProduct(entity.Product{ID: bateria, TenantID: tenantID, Name: "Batería", Type: entity.ProductTypeProduct, SalePrice: dec("90"), IsActive: true})
	_, err := ledger.RecordMovement(ctx, inventory.MovementInput{
		TenantID: tenantID, ActorID: actorID, ProductID: bateria,
		Type: entity.MovementIn, Quantity: dec("3"), ReferenceKind: entity.RefInitial,
	})
	require.NoError(t, err)
	before := len(store.Movements())

	// El carrito trae el id mayor primero; el libro se escribe en orden de id.
	_, err = uc.Checkout(ctx, tenantID, actorID, dto.CheckoutRequest{
		PaymentMethod: "cash",
		Items: []dto.CartLine{
			{ProductID: cargador, Quantity: dec("1")},
			{ProductID: bateria, Quantity: dec("1")},
		},
	})
	require.NoError(t, err)

	movs := store.Movements()[before:]
	require.Len(t, movs, 2)
	assert.Equal(t, bateria, movs[0].ProductID)
	assert.Equal(t, cargador, movs[1].ProductID)
}
