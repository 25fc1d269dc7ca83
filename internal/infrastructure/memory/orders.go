package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// ServiceOrderRepo órdenes de servicio en memoria.
type ServiceOrderRepo struct{ s *Store }

func (r ServiceOrderRepo) Create(_ context.Context, o *entity.ServiceOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("orders.create"); err != nil {
		return err
	}
	r.s.orders[o.ID] = *o
	return nil
}

func (r ServiceOrderRepo) GetByID(_ context.Context, tenantID, id string) (*entity.ServiceOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok || o.TenantID != tenantID {
		return nil, nil
	}
	return &o, nil
}

func (r ServiceOrderRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.ServiceOrder, error) {
	return r.GetByID(ctx, tenantID, id)
}

func (r ServiceOrderRepo) List(_ context.Context, tenantID string, f repository.OrderFilter) ([]*entity.ServiceOrder, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ServiceOrder
	for _, o := range r.s.orders {
		if o.TenantID != tenantID ||
			(f.Status != "" && string(o.Status) != f.Status) ||
			(f.CustomerID != "" && o.CustomerID != f.CustomerID) ||
			(f.Priority != "" && string(o.Priority) != f.Priority) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(o.Folio+" "+o.Description), strings.ToLower(f.Search)) {
			continue
		}
		o := o
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.Limit, f.Offset), len(out), nil
}

func (r ServiceOrderRepo) UpdateStatus(_ context.Context, o *entity.ServiceOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.orders[o.ID]
	if !ok || cur.TenantID != o.TenantID {
		return domain.ErrNotFound
	}
	cur.Status = o.Status
	cur.UpdatedAt = o.UpdatedAt
	cur.DeliveredAt = o.DeliveredAt
	r.s.orders[o.ID] = cur
	return nil
}

func (r ServiceOrderRepo) AddItem(_ context.Context, it *entity.ServiceOrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("orders.add_item"); err != nil {
		return err
	}
	r.s.orderItems = append(r.s.orderItems, *it)
	return nil
}

func (r ServiceOrderRepo) DeleteItem(_ context.Context, tenantID, orderID, itemID string) (*entity.ServiceOrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, it := range r.s.orderItems {
		if it.ID == itemID && it.OrderID == orderID && it.TenantID == tenantID {
			r.s.orderItems = append(r.s.orderItems[:i:i], r.s.orderItems[i+1:]...)
			return &it, nil
		}
	}
	return nil, nil
}

func (r ServiceOrderRepo) ListItems(_ context.Context, tenantID, orderID string) ([]*entity.ServiceOrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ServiceOrderItem
	for _, it := range r.s.orderItems {
		if it.TenantID == tenantID && it.OrderID == orderID {
			it := it
			out = append(out, &it)
		}
	}
	return out, nil
}

// OrderEventRepo línea de tiempo en memoria.
type OrderEventRepo struct{ s *Store }

func (r OrderEventRepo) Create(_ context.Context, ev *entity.OrderEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("events.create"); err != nil {
		return err
	}
	r.s.events = append(r.s.events, *ev)
	return nil
}

func (r OrderEventRepo) ListByOrder(_ context.Context, tenantID, orderID string) ([]*entity.OrderEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.OrderEvent
	for _, ev := range r.s.events {
		if ev.TenantID == tenantID && ev.OrderID == orderID {
			ev := ev
			out = append(out, &ev)
		}
	}
	return out, nil
}

// PaymentRepo pagos en memoria.
type PaymentRepo struct{ s *Store }

func (r PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("payments.create"); err != nil {
		return err
	}
	r.s.payments = append(r.s.payments, *p)
	return nil
}

func (r PaymentRepo) ListByOrder(_ context.Context, tenantID string, kind entity.OrderKind, orderID string) ([]*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.TenantID == tenantID && p.OrderKind == kind && p.OrderID == orderID {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

// FolioRepo consecutivos en memoria.
type FolioRepo struct{ s *Store }

func (r FolioRepo) Next(_ context.Context, tenantID, prefix string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := tenantID + "/" + prefix
	r.s.folios[key]++
	return r.s.folios[key], nil
}

// SalesOrderRepo ventas en memoria.
type SalesOrderRepo struct{ s *Store }

func (r SalesOrderRepo) Create(_ context.Context, o *entity.SalesOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sales[o.ID] = *o
	return nil
}

func (r SalesOrderRepo) AddItems(_ context.Context, items []*entity.SalesOrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range items {
		r.s.salesItems = append(r.s.salesItems, *it)
	}
	return nil
}

func (r SalesOrderRepo) GetByID(_ context.Context, tenantID, id string) (*entity.SalesOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.sales[id]
	if !ok || o.TenantID != tenantID {
		return nil, nil
	}
	return &o, nil
}

func (r SalesOrderRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.SalesOrder, error) {
	return r.GetByID(ctx, tenantID, id)
}

func (r SalesOrderRepo) ListItems(_ context.Context, tenantID, orderID string) ([]*entity.SalesOrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SalesOrderItem
	for _, it := range r.s.salesItems {
		if it.TenantID == tenantID && it.OrderID == orderID {
			it := it
			out = append(out, &it)
		}
	}
	return out, nil
}

func (r SalesOrderRepo) List(_ context.Context, tenantID string, f repository.SalesFilter) ([]*entity.SalesOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SalesOrder
	for _, o := range r.s.sales {
		if o.TenantID != tenantID ||
			(f.Channel != "" && o.Channel != f.Channel) ||
			(f.Status != "" && string(o.Status) != f.Status) ||
			(f.CustomerID != "" && o.CustomerID != f.CustomerID) {
			continue
		}
		o := o
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.Limit, f.Offset), nil
}

func (r SalesOrderRepo) UpdateStatus(_ context.Context, o *entity.SalesOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.sales[o.ID]
	if !ok || cur.TenantID != o.TenantID {
		return domain.ErrNotFound
	}
	r.s.sales[o.ID] = *o
	return nil
}

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ s *Store }

func (r CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers[c.ID] = *c
	return nil
}

func (r CustomerRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, nil
	}
	return &c, nil
}

func (r CustomerRepo) List(_ context.Context, tenantID, search string, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if c.TenantID != tenantID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.customers[c.ID]
	if !ok || cur.TenantID != c.TenantID {
		return domain.ErrNotFound
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r CustomerRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.customers[id]
	if !ok || cur.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.s.customers, id)
	return nil
}

// AssetRepo equipos en memoria.
type AssetRepo struct{ s *Store }

func (r AssetRepo) Create(_ context.Context, a *entity.Asset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.assets[a.ID] = *a
	return nil
}

func (r AssetRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Asset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.assets[id]
	if !ok || a.TenantID != tenantID {
		return nil, nil
	}
	return &a, nil
}

func (r AssetRepo) ListByCustomer(_ context.Context, tenantID, customerID string) ([]*entity.Asset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Asset
	for _, a := range r.s.assets {
		if a.TenantID == tenantID && a.CustomerID == customerID {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r AssetRepo) Update(_ context.Context, a *entity.Asset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.assets[a.ID]
	if !ok || cur.TenantID != a.TenantID {
		return domain.ErrNotFound
	}
	r.s.assets[a.ID] = *a
	return nil
}

// TenantRepo tenants en memoria.
type TenantRepo struct{ s *Store }

// Tenants repositorio de tenants (no participa en transacciones).
func (s *Store) Tenants() TenantRepo {
	return TenantRepo{s}
}

func (r TenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tenants[t.ID] = *t
	return nil
}

func (r TenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tenants[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r TenantRepo) Update(_ context.Context, t *entity.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tenants[t.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.tenants[t.ID] = *t
	return nil
}

var (
	_ repository.TxRunner                    = (*TxRunner)(nil)
	_ repository.ProductRepository           = ProductRepo{}
	_ repository.InventoryMovementRepository = MovementRepo{}
	_ repository.ServiceOrderRepository      = ServiceOrderRepo{}
	_ repository.OrderEventRepository        = OrderEventRepo{}
	_ repository.PaymentRepository           = PaymentRepo{}
	_ repository.FolioRepository             = FolioRepo{}
	_ repository.SalesOrderRepository        = SalesOrderRepo{}
	_ repository.CustomerRepository          = CustomerRepo{}
	_ repository.AssetRepository             = AssetRepo{}
	_ repository.TenantRepository            = TenantRepo{}
)
