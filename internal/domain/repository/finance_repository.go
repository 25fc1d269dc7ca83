package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailyAmount total de un día calendario (YYYY-MM-DD en la zona del negocio).
type DailyAmount struct {
	Day    string          `db:"day"`
	Amount decimal.Decimal `db:"amount"`
}

// FinanceRepository consultas de solo lectura para reportes de ingresos.
// Los rangos son semiabiertos [from, to).
type FinanceRepository interface {
	ServicePaymentsByMethod(ctx context.Context, tenantID string, from, to time.Time) (map[string]decimal.Decimal, error)
	PaidSalesTotal(ctx context.Context, tenantID string, from, to time.Time) (decimal.Decimal, error)
	DailyServicePayments(ctx context.Context, tenantID string, from, to time.Time, tz string) ([]DailyAmount, error)
}
