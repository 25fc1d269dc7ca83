package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxBeginner lo que necesita el runner del pool (permite usar pgxpool.Pool o una conexión).
type TxBeginner interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool TxBeginner) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var hooks afterCommit
	if err := fn(reposFor(tx, &hooks)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrap("commit transaction", err)
	}
	hooks.run()
	return nil
}

// afterCommit acciones que solo valen si la transacción confirma (métricas).
// Un *afterCommit nil ejecuta en el acto: fuera de tx cada sentencia ya es definitiva.
type afterCommit []func()

func (h *afterCommit) add(fn func()) {
	if h == nil {
		fn()
		return
	}
	*h = append(*h, fn)
}

func (h afterCommit) run() {
	for _, fn := range h {
		fn()
	}
}

// ReposFor arma el juego de repositorios sobre un Querier (pool o tx).
func ReposFor(q Querier) repository.TxRepos {
	return reposFor(q, nil)
}

func reposFor(q Querier, hooks *afterCommit) repository.TxRepos {
	return repository.TxRepos{
		Products:  NewProductRepository(q),
		Movements: &InventoryMovementRepo{q: q, commit: hooks},
		Orders:    NewServiceOrderRepository(q),
		Events:    NewOrderEventRepository(q),
		Payments:  NewPaymentRepository(q),
		Sales:     NewSalesOrderRepository(q),
		Folios:    NewFolioRepository(q),
		Customers: NewCustomerRepository(q),
		Assets:    NewAssetRepository(q),
	}
}
