package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
	"github.com/jhoicas/taller-api/pkg/metrics"
)

// fakeTx acepta cualquier Exec; Commit devuelve commitErr.
type fakeTx struct {
	pgx.Tx
	commitErr error
}

func (t *fakeTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}
func (t *fakeTx) Commit(context.Context) error   { return t.commitErr }
func (t *fakeTx) Rollback(context.Context) error { return nil }

type fakeBeginner struct {
	Querier
	tx *fakeTx
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) { return b.tx, nil }

func movementFor(ref string) *entity.InventoryMovement {
	return &entity.InventoryMovement{
		ID: "m1", TenantID: "t1", ProductID: "p1", Type: entity.MovementOut,
		Quantity: decimal.NewFromInt(1), ReferenceKind: ref, CreatedAt: time.Now(),
	}
}

func TestTxRunner_MetricaDeMovimientosSoloTrasCommit(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name      string
		ref       string
		fnErr     error
		commitErr error
		want      float64
	}{
		{"rollback por error del caso de uso", "ref_fn_error", errors.New("falla posterior"), nil, 0},
		{"commit fallido", "ref_commit_error", nil, &pgconn.PgError{Code: "40001"}, 0},
		{"commit exitoso", "ref_commit_ok", nil, nil, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			counter := metrics.InventoryMovements.WithLabelValues(string(entity.MovementOut), tc.ref)
			before := testutil.ToFloat64(counter)

			runner := NewTxRunner(&fakeBeginner{tx: &fakeTx{commitErr: tc.commitErr}})
			err := runner.Run(ctx, func(tx repository.TxRepos) error {
				require.NoError(t, tx.Movements.Create(ctx, movementFor(tc.ref)))
				assert.Equal(t, before, testutil.ToFloat64(counter), "dentro de la tx no se cuenta")
				return tc.fnErr
			})
			if tc.fnErr != nil || tc.commitErr != nil {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, before+tc.want, testutil.ToFloat64(counter))
		})
	}
}

func TestInventoryMovementRepo_FueraDeTxCuentaAlInsertar(t *testing.T) {
	ctx := context.Background()
	counter := metrics.InventoryMovements.WithLabelValues(string(entity.MovementOut), "ref_pool")
	before := testutil.ToFloat64(counter)

	require.NoError(t, NewInventoryMovementRepository(&fakeTx{}).Create(ctx, movementFor("ref_pool")))
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
