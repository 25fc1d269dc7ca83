// Package memory implementa los repositorios en memoria con transacciones de tipo
// snapshot: si la función del TxRunner falla, el estado vuelve al de antes.
// Lo usan los tests de los casos de uso.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// Store estado compartido de todos los repositorios.
type Store struct {
	txMu sync.Mutex // serializa transacciones, como el FOR UPDATE de Postgres
	mu   sync.Mutex

	products   map[string]entity.Product
	movements  []entity.InventoryMovement
	orders     map[string]entity.ServiceOrder
	orderItems []entity.ServiceOrderItem
	events     []entity.OrderEvent
	payments   []entity.Payment
	sales      map[string]entity.SalesOrder
	salesItems []entity.SalesOrderItem
	folios     map[string]int64
	customers  map[string]entity.Customer
	assets     map[string]entity.Asset
	tenants    map[string]entity.Tenant
	categories map[string]entity.Category

	failures map[string]error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:   map[string]entity.Product{},
		orders:     map[string]entity.ServiceOrder{},
		sales:      map[string]entity.SalesOrder{},
		folios:     map[string]int64{},
		customers:  map[string]entity.Customer{},
		assets:     map[string]entity.Asset{},
		tenants:    map[string]entity.Tenant{},
		categories: map[string]entity.Category{},
		failures:   map[string]error{},
	}
}

// FailNext hace que la próxima llamada a op ("movements.create", "events.create", ...) devuelva err.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) fail(op string) error {
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return err
	}
	return nil
}

type snapshot struct {
	products   map[string]entity.Product
	movements  []entity.InventoryMovement
	orders     map[string]entity.ServiceOrder
	orderItems []entity.ServiceOrderItem
	events     []entity.OrderEvent
	payments   []entity.Payment
	sales      map[string]entity.SalesOrder
	salesItems []entity.SalesOrderItem
	folios     map[string]int64
	customers  map[string]entity.Customer
	assets     map[string]entity.Asset
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copySlice[V any](s []V) []V {
	return append([]V(nil), s...)
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		products:   copyMap(s.products),
		movements:  copySlice(s.movements),
		orders:     copyMap(s.orders),
		orderItems: copySlice(s.orderItems),
		events:     copySlice(s.events),
		payments:   copySlice(s.payments),
		sales:      copyMap(s.sales),
		salesItems: copySlice(s.salesItems),
		folios:     copyMap(s.folios),
		customers:  copyMap(s.customers),
		assets:     copyMap(s.assets),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.movements = snap.movements
	s.orders = snap.orders
	s.orderItems = snap.orderItems
	s.events = snap.events
	s.payments = snap.payments
	s.sales = snap.sales
	s.salesItems = snap.salesItems
	s.folios = snap.folios
	s.customers = snap.customers
	s.assets = snap.assets
}

// Repos repositorios fuera de transacción.
func (s *Store) Repos() repository.TxRepos {
	return repository.TxRepos{
		Products:  ProductRepo{s},
		Movements: MovementRepo{s},
		Orders:    ServiceOrderRepo{s},
		Events:    OrderEventRepo{s},
		Payments:  PaymentRepo{s},
		Sales:     SalesOrderRepo{s},
		Folios:    FolioRepo{s},
		Customers: CustomerRepo{s},
		Assets:    AssetRepo{s},
	}
}

// TxRunner implementa repository.TxRunner sobre el store.
type TxRunner struct {
	s *Store
}

// NewTxRunner crea el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn; si devuelve error restaura el snapshot tomado al inicio.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.TxRepos) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	snap := r.s.snapshot()
	if err := fn(r.s.Repos()); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// Seed helpers para preparar datos.

// PutTenant inserta o reemplaza un tenant.
func (s *Store) PutTenant(t entity.Tenant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants[t.ID] = t
}

// PutProduct inserta o reemplaza un producto (sin pasar por el libro).
func (s *Store) PutProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// PutCustomer inserta o reemplaza un cliente.
func (s *Store) PutCustomer(c entity.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = c
}

// PutAsset inserta o reemplaza un equipo.
func (s *Store) PutAsset(a entity.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[a.ID] = a
}

// Movements copia del libro en orden de inserción.
func (s *Store) Movements() []entity.InventoryMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlice(s.movements)
}

// Payments copia de los pagos.
func (s *Store) Payments() []entity.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlice(s.payments)
}

// Events copia de la línea de tiempo de todas las órdenes.
func (s *Store) Events() []entity.OrderEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlice(s.events)
}

// ProductRepo repository.ProductRepository en memoria.
type ProductRepo struct{ s *Store }

func (r ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("products.create"); err != nil {
		return err
	}
	for _, x := range r.s.products {
		if x.TenantID == p.TenantID && p.SKU != "" && x.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r ProductRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, nil
	}
	return &p, nil
}

func (r ProductRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, tenantID, id)
}

func (r ProductRepo) GetByIDs(_ context.Context, tenantID string, ids []string) (map[string]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok && p.TenantID == tenantID {
			out[id] = &p
		}
	}
	return out, nil
}

func (r ProductRepo) List(_ context.Context, tenantID string, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.TenantID != tenantID || (f.Type != "" && p.Type != f.Type) || (f.OnlyActive && !p.IsActive) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.SKU), strings.ToLower(f.Search)) {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok || cur.TenantID != p.TenantID {
		return domain.ErrNotFound
	}
	upd := *p
	upd.Quantity = cur.Quantity
	upd.Type = cur.Type
	r.s.products[p.ID] = upd
	return nil
}

func (r ProductRepo) ApplyStockDelta(_ context.Context, tenantID, id string, delta decimal.Decimal) (decimal.Decimal, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("products.apply_delta"); err != nil {
		return decimal.Zero, false, err
	}
	p, ok := r.s.products[id]
	if !ok || p.TenantID != tenantID {
		return decimal.Zero, false, nil
	}
	next := p.Quantity.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, false, nil
	}
	p.Quantity = next
	r.s.products[id] = p
	return next, true, nil
}

func (r ProductRepo) SetQuantity(_ context.Context, tenantID, id string, qty decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.TenantID != tenantID {
		return domain.ErrNotFound
	}
	p.Quantity = qty
	r.s.products[id] = p
	return nil
}

// MovementRepo libro en memoria.
type MovementRepo struct{ s *Store }

func (r MovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("movements.create"); err != nil {
		return err
	}
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r MovementRepo) List(_ context.Context, tenantID string, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.InventoryMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if m.TenantID != tenantID ||
			(f.ProductID != "" && m.ProductID != f.ProductID) ||
			(f.ReferenceID != "" && m.ReferenceID != f.ReferenceID) ||
			(f.From != nil && m.CreatedAt.Before(*f.From)) ||
			(f.To != nil && !m.CreatedAt.Before(*f.To)) {
			continue
		}
		out = append(out, &m)
	}
	return paginate(out, f.Limit, f.Offset), nil
}

func (r MovementRepo) SumByProduct(_ context.Context, tenantID, productID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, m := range r.s.movements {
		if m.TenantID == tenantID && m.ProductID == productID {
			sum = sum.Add(m.Signed())
		}
	}
	return sum, nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
