// Package serviceorder implementa el flujo de órdenes de servicio: estados, ítems con
// su movimiento de inventario, pagos, línea de tiempo con evidencias y comprobante PDF.
package serviceorder

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// StockLedger registra movimientos dentro de la transacción de la orden.
type StockLedger interface {
	RecordInTx(ctx context.Context, tx repository.TxRepos, in inventory.MovementInput) (*entity.InventoryMovement, error)
}

// EventPublisher envía eventos a los webhooks del tenant sin bloquear al llamador.
type EventPublisher interface {
	Fire(tenantID, event string, data any)
}

// Notifier crea avisos para usuarios. Los errores se registran, no se devuelven.
type Notifier interface {
	Notify(ctx context.Context, userID, tenantID, title, message, link string)
}

// EvidenceStorage bucket privado de evidencias; la lectura es solo por URL firmada.
type EvidenceStorage interface {
	Upload(ctx context.Context, objectKey, contentType string, r io.Reader) error
	SignedURL(ctx context.Context, objectKey string) (url string, expiresAt time.Time, err error)
}

// ReceiptGenerator arma el PDF del comprobante.
type ReceiptGenerator interface {
	Generate(data ReceiptData) ([]byte, error)
}

// ReceiptData datos del comprobante de una orden.
type ReceiptData struct {
	Tenant   *entity.Tenant
	Customer *entity.Customer
	Asset    *entity.Asset
	Order    *entity.ServiceOrder
	Items    []*entity.ServiceOrderItem
	Payments []*entity.Payment
	Total    decimal.Decimal
	Paid     decimal.Decimal
	Balance  decimal.Decimal
}

// Deps dependencias del caso de uso. Publisher, Notifier, Storage y Receipts son opcionales.
type Deps struct {
	TxRunner  repository.TxRunner
	Orders    repository.ServiceOrderRepository
	Events    repository.OrderEventRepository
	Payments  repository.PaymentRepository
	Customers repository.CustomerRepository
	Assets    repository.AssetRepository
	Tenants   repository.TenantRepository
	Ledger    StockLedger
	Publisher EventPublisher
	Notifier  Notifier
	Storage   EvidenceStorage
	Receipts  ReceiptGenerator
	Log       zerolog.Logger
}

type noopPublisher struct{}

func (noopPublisher) Fire(string, string, any) {}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, string, string, string, string) {}
