// Package finance reportes de ingresos: ingreso diario por método y serie diaria.
package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

const (
	DefaultChartDays = 7
	MaxChartDays     = 90
	dateLayout       = "2006-01-02"

	// LiveCacheTTL tope de caché para resultados que incluyen el día en curso.
	LiveCacheTTL = 30 * time.Second
)

// Cache caché opcional de lectura. Get devuelve false si la clave no existe.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// UseCase agregador de ingresos. Los días se cortan en la zona horaria del negocio.
type UseCase struct {
	repo  repository.FinanceRepository
	loc   *time.Location
	cache Cache
	ttl   time.Duration
	log   zerolog.Logger
	now   func() time.Time
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(repo repository.FinanceRepository, loc *time.Location, cache Cache, ttl time.Duration, log zerolog.Logger) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{repo: repo, loc: loc, cache: cache, ttl: ttl, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// DailyIncome suma los pagos de órdenes de servicio por método y las ventas pagadas
// bajo la clave pos_web. date vacío es hoy.
func (uc *UseCase) DailyIncome(ctx context.Context, tenantID, date string) (*dto.DailyIncomeResponse, error) {
	day, err := uc.parseDay(date)
	if err != nil {
		return nil, err
	}
	// Solo los días cerrados van a caché; hoy todavía recibe pagos.
	today, _ := uc.parseDay("")
	closed := day.Before(today)
	key := fmt.Sprintf("finance:daily:%s:%s", tenantID, day.Format(dateLayout))
	var cached dto.DailyIncomeResponse
	if closed && uc.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	from, to := day, day.AddDate(0, 0, 1)
	var byMethod map[string]decimal.Decimal
	var sales decimal.Decimal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		byMethod, err = uc.repo.ServicePaymentsByMethod(gctx, tenantID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = uc.repo.PaidSalesTotal(gctx, tenantID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	breakdown := MergeIncome(byMethod, sales)
	total := decimal.Zero
	out := &dto.DailyIncomeResponse{
		Date:      day.Format(dateLayout),
		Breakdown: make(map[string]string, len(breakdown)),
	}
	for method, amount := range breakdown {
		total = total.Add(amount)
		out.Breakdown[method] = amount.StringFixed(2)
	}
	out.Total = total.StringFixed(2)
	if closed {
		uc.toCache(ctx, key, out, uc.ttl)
	}
	return out, nil
}

// MergeIncome une los pagos de servicio por método con el total de ventas pagadas.
// Los métodos en cero se omiten.
func MergeIncome(byMethod map[string]decimal.Decimal, paidSales decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(byMethod)+1)
	for m, v := range byMethod {
		if !v.IsZero() {
			out[m] = v
		}
	}
	if !paidSales.IsZero() {
		out[entity.PaymentPOSWeb] = out[entity.PaymentPOSWeb].Add(paidSales)
	}
	return out
}

// RevenueChart ingresos por servicios de los últimos days días (incluye hoy), sin huecos.
func (uc *UseCase) RevenueChart(ctx context.Context, tenantID string, days int) (*dto.RevenueChartResponse, error) {
	if days == 0 {
		days = DefaultChartDays
	}
	if days < 1 || days > MaxChartDays {
		return nil, domain.Validation(fmt.Sprintf("days debe estar entre 1 y %d", MaxChartDays))
	}
	today, _ := uc.parseDay("")
	key := fmt.Sprintf("finance:chart:%s:%s:%d", tenantID, today.Format(dateLayout), days)
	var cached dto.RevenueChartResponse
	if uc.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	from := today.AddDate(0, 0, -(days - 1))
	to := today.AddDate(0, 0, 1)
	rows, err := uc.repo.DailyServicePayments(ctx, tenantID, from, to, uc.loc.String())
	if err != nil {
		return nil, err
	}
	points := FillDays(rows, from, days)
	total := decimal.Zero
	out := &dto.RevenueChartResponse{Days: days, Points: make([]dto.RevenuePoint, 0, len(points))}
	for _, p := range points {
		total = total.Add(p.Amount)
		out.Points = append(out.Points, dto.RevenuePoint{Date: p.Day, Amount: p.Amount.StringFixed(2)})
	}
	out.Total = total.StringFixed(2)
	uc.toCache(ctx, key, out, min(uc.ttl, LiveCacheTTL))
	return out, nil
}

// FillDays devuelve un punto por día desde from, con cero en los días sin datos.
func FillDays(rows []repository.DailyAmount, from time.Time, days int) []repository.DailyAmount {
	byDay := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		byDay[r.Day] = byDay[r.Day].Add(r.Amount)
	}
	out := make([]repository.DailyAmount, 0, days)
	for i := 0; i < days; i++ {
		d := from.AddDate(0, 0, i).Format(dateLayout)
		out = append(out, repository.DailyAmount{Day: d, Amount: byDay[d]})
	}
	return out
}

func (uc *UseCase) parseDay(date string) (time.Time, error) {
	if date == "" {
		n := uc.now().In(uc.loc)
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, uc.loc), nil
	}
	d, err := time.ParseInLocation(dateLayout, date, uc.loc)
	if err != nil {
		return time.Time{}, domain.Validation("fecha inválida, use YYYY-MM-DD")
	}
	return d, nil
}

func (uc *UseCase) fromCache(ctx context.Context, key string, dst any) bool {
	if uc.cache == nil {
		return false
	}
	hit, err := uc.cache.Get(ctx, key, dst)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("cache finance: lectura fallida")
		return false
	}
	return hit
}

func (uc *UseCase) toCache(ctx context.Context, key string, v any, ttl time.Duration) {
	if uc.cache == nil || ttl <= 0 {
		return
	}
	if err := uc.cache.Set(ctx, key, v, ttl); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("cache finance: escritura fallida")
	}
}
