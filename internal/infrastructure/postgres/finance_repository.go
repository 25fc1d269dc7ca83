package postgres

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.FinanceRepository = (*FinanceRepo)(nil)

// FinanceRepo agregaciones de ingresos. Solo lectura.
type FinanceRepo struct {
	q Querier
}

// NewFinanceRepository construye el adaptador.
func NewFinanceRepository(q Querier) *FinanceRepo {
	return &FinanceRepo{q: q}
}

// ServicePaymentsByMethod suma los pagos de órdenes de servicio por método.
func (r *FinanceRepo) ServicePaymentsByMethod(ctx context.Context, tenantID string, from, to time.Time) (map[string]decimal.Decimal, error) {
	var rows []struct {
		Method string          `db:"method"`
		Total  decimal.Decimal `db:"total"`
	}
	err := pgxscan.Select(ctx, r.q, &rows, `
		SELECT method, COALESCE(SUM(amount), 0) AS total
		FROM payments
		WHERE tenant_id = $1 AND order_kind = 'service' AND created_at >= $2 AND created_at < $3
		GROUP BY method`, tenantID, from, to)
	if err != nil {
		return nil, wrap("service payments by method", err)
	}
	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.Method] = row.Total
	}
	return out, nil
}

// PaidSalesTotal total de ventas cobradas en el rango, por fecha de cobro.
func (r *FinanceRepo) PaidSalesTotal(ctx context.Context, tenantID string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sales_orders
		WHERE tenant_id = $1 AND payment_status = 'paid' AND paid_at >= $2 AND paid_at < $3`,
		tenantID, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, wrap("paid sales total", err)
	}
	return total, nil
}

// DailyServicePayments totales diarios agrupados en la zona horaria del negocio.
// Los días sin pagos no aparecen; el caso de uso los rellena.
func (r *FinanceRepo) DailyServicePayments(ctx context.Context, tenantID string, from, to time.Time, tz string) ([]repository.DailyAmount, error) {
	var rows []repository.DailyAmount
	err := pgxscan.Select(ctx, r.q, &rows, `
		SELECT to_char(created_at AT TIME ZONE $4, 'YYYY-MM-DD') AS day, SUM(amount) AS amount
		FROM payments
		WHERE tenant_id = $1 AND order_kind = 'service' AND created_at >= $2 AND created_at < $3
		GROUP BY 1
		ORDER BY 1`, tenantID, from, to, tz)
	if err != nil {
		return nil, wrap("daily service payments", err)
	}
	return rows, nil
}
