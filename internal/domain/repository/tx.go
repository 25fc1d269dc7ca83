package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products  ProductRepository
	Movements InventoryMovementRepository
	Orders    ServiceOrderRepository
	Events    OrderEventRepository
	Payments  PaymentRepository
	Sales     SalesOrderRepository
	Folios    FolioRepository
	Customers CustomerRepository
	Assets    AssetRepository
}

// TxRunner ejecuta fn dentro de una transacción: commit si fn devuelve nil, rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
