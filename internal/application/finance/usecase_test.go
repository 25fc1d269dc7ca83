package finance_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/finance"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeFinanceRepo struct {
	byMethod map[string]decimal.Decimal
	sales    decimal.Decimal
	daily    []repository.DailyAmount
	calls    int

	from, to time.Time
	tz       string
}

func (r *fakeFinanceRepo) ServicePaymentsByMethod(_ context.Context, _ string, from, to time.Time) (map[string]decimal.Decimal, error) {
	r.calls++
	r.from, r.to = from, to
	return r.byMethod, nil
}

func (r *fakeFinanceRepo) PaidSalesTotal(context.Context, string, time.Time, time.Time) (decimal.Decimal, error) {
	return r.sales, nil
}

func (r *fakeFinanceRepo) DailyServicePayments(_ context.Context, _ string, from, to time.Time, tz string) ([]repository.DailyAmount, error) {
	r.calls++
	r.from, r.to, r.tz = from, to, tz
	return r.daily, nil
}

// mapCache guarda JSON como lo haría Redis y recuerda el TTL de cada clave.
type mapCache struct {
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *mapCache) Set(_ context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = raw
	c.ttls[key] = ttl
	return nil
}

func bogota(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	return loc
}

func TestMergeIncome_SumaVentasComoPosWeb(t *testing.T) {
	out := finance.MergeIncome(map[string]decimal.Decimal{
		"cash":     dec("50"),
		"card":     dec("30"),
		"transfer": decimal.Zero,
	}, dec("20"))

	assert.Len(t, out, 3, "los métodos en cero no aparecen")
	assert.True(t, out["cash"].Equal(dec("50")))
	assert.True(t, out["card"].Equal(dec("30")))
	assert.True(t, out["pos_web"].Equal(dec("20")))

	total := decimal.Zero
	for _, v := range out {
		total = total.Add(v)
	}
	assert.True(t, total.Equal(dec("100")))
}

func TestMergeIncome_SinDatos(t *testing.T) {
	assert.Empty(t, finance.MergeIncome(nil, decimal.Zero))
}

func TestFillDays_RellenaHuecosConCero(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	points := finance.FillDays([]repository.DailyAmount{
		{Day: "2026-03-01", Amount: dec("10")},
		{Day: "2026-03-03", Amount: dec("5.5")},
	}, from, 4)

	require.Len(t, points, 4)
	assert.Equal(t, "2026-03-01", points[0].Day)
	assert.Equal(t, "2026-03-04", points[3].Day)
	assert.True(t, points[1].Amount.IsZero())
	assert.True(t, points[2].Amount.Equal(dec("5.5")))
}

func TestDailyIncome_TotalYDesglose(t *testing.T) {
	loc := bogota(t)
	repo := &fakeFinanceRepo{
		byMethod: map[string]decimal.Decimal{"cash": dec("50"), "card": dec("30")},
		sales:    dec("20"),
	}
	uc := finance.NewUseCase(repo, loc, nil, 0, zerolog.Nop())

	out, err := uc.DailyIncome(context.Background(), "t1", "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, "100.00", out.Total)
	assert.Equal(t, map[string]string{"cash": "50.00", "card": "30.00", "pos_web": "20.00"}, out.Breakdown)

	// El día se corta a medianoche de Bogotá (UTC-5).
	assert.Equal(t, time.Date(2026, 3, 10, 5, 0, 0, 0, time.UTC), repo.from.UTC())
	assert.Equal(t, 24*time.Hour, repo.to.Sub(repo.from))
}

func TestDailyIncome_HoySegunZonaDelNegocio(t *testing.T) {
	loc := bogota(t)
	repo := &fakeFinanceRepo{}
	// 02:00 UTC del 11 de marzo todavía es 10 de marzo en Bogotá.
	uc := finance.NewUseCase(repo, loc, nil, 0, zerolog.Nop()).
		WithClock(func() time.Time { return time.Date(2026, 3, 11, 2, 0, 0, 0, time.UTC) })

	out, err := uc.DailyIncome(context.Background(), "t1", "")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", out.Date)
	assert.Equal(t, "0.00", out.Total)
	assert.Empty(t, out.Breakdown)
}

func TestDailyIncome_FechaInvalida(t *testing.T) {
	uc := finance.NewUseCase(&fakeFinanceRepo{}, time.UTC, nil, 0, zerolog.Nop())
	_, err := uc.DailyIncome(context.Background(), "t1", "10/03/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDailyIncome_UsaCache(t *testing.T) {
	repo := &fakeFinanceRepo{byMethod: map[string]decimal.Decimal{"cash": dec("12")}}
	cache := newMapCache()
	uc := finance.NewUseCase(repo, time.UTC, cache, time.Minute, zerolog.Nop()).
		WithClock(func() time.Time { return time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC) })
	ctx := context.Background()

	first, err := uc.DailyIncome(ctx, "t1", "2026-03-10")
	require.NoError(t, err)
	second, err := uc.DailyIncome(ctx, "t1", "2026-03-10")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls, "la segunda lectura sale de la caché")
	assert.Equal(t, time.Minute, cache.ttls["finance:daily:t1:2026-03-10"])
}

func TestDailyIncome_HoyNoSeCachea(t *testing.T) {
	loc := bogota(t)
	repo := &fakeFinanceRepo{byMethod: map[string]decimal.Decimal{"cash": dec("12")}}
	cache := newMapCache()
	// 02:00 UTC del 11 de marzo es todavía el 10 en Bogotá.
	uc := finance.NewUseCase(repo, loc, cache, time.Hour, zerolog.Nop()).
		WithClock(func() time.Time { return time.Date(2026, 3, 11, 2, 0, 0, 0, time.UTC) })
	ctx := context.Background()

	for _, date := range []string{"", "2026-03-10"} {
		_, err := uc.DailyIncome(ctx, "t1", date)
		require.NoError(t, err)
	}
	assert.Empty(t, cache.data, "el día en curso no se guarda")

	// Un pago nuevo se ve en la siguiente lectura.
	repo.byMethod["cash"] = dec("40")
	out, err := uc.DailyIncome(ctx, "t1", "")
	require.NoError(t, err)
	assert.Equal(t, "40.00", out.Total)
	assert.Equal(t, 3, repo.calls)
}

func TestRevenueChart_CacheCortaPorIncluirHoy(t *testing.T) {
	cache := newMapCache()
	uc := finance.NewUseCase(&fakeFinanceRepo{}, time.UTC, cache, time.Hour, zerolog.Nop()).
		WithClock(func() time.Time { return time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC) })

	_, err := uc.RevenueChart(context.Background(), "t1", 7)
	require.NoError(t, err)
	assert.Equal(t, finance.LiveCacheTTL, cache.ttls["finance:chart:t1:2026-03-10:7"])
}

func TestRevenueChart_SerieCompleta(t *testing.T) {
	repo := &fakeFinanceRepo{daily: []repository.DailyAmount{
		{Day: "2026-03-08", Amount: dec("40")},
		{Day: "2026-03-10", Amount: dec("60")},
	}}
	uc := finance.NewUseCase(repo, time.UTC, nil, 0, zerolog.Nop()).
		WithClock(func() time.Time { return time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC) })

	out, err := uc.RevenueChart(context.Background(), "t1", 0)
	require.NoError(t, err)
	assert.Equal(t, finance.DefaultChartDays, out.Days)
	require.Len(t, out.Points, 7)
	assert.Equal(t, "2026-03-04", out.Points[0].Date)
	assert.Equal(t, "2026-03-10", out.Points[6].Date)
	assert.Equal(t, "0.00", out.Points[5].Amount)
	assert.Equal(t, "100.00", out.Total)
	assert.Equal(t, "UTC", repo.tz)
}

func TestRevenueChart_RangoDeDias(t *testing.T) {
	uc := finance.NewUseCase(&fakeFinanceRepo{}, time.UTC, nil, 0, zerolog.Nop())
	_, err := uc.RevenueChart(context.Background(), "t1", finance.MaxChartDays+1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RevenueChart(context.Background(), "t1", -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
