package serviceorder

import (
	"context"
	"errors"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// Receipt genera el PDF del comprobante de la orden. Devuelve también el nombre sugerido del archivo.
func (uc *UseCase) Receipt(ctx context.Context, tenantID, orderID string) ([]byte, string, error) {
	if uc.d.Receipts == nil {
		return nil, "", errors.New("generador de comprobantes no configurado")
	}
	order, err := uc.requireOrder(ctx, tenantID, orderID)
	if err != nil {
		return nil, "", err
	}
	tenant, err := uc.d.Tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, "", err
	}
	if tenant == nil {
		return nil, "", domain.NotFound("tenant")
	}
	customer, err := uc.d.Customers.GetByID(ctx, tenantID, order.CustomerID)
	if err != nil {
		return nil, "", err
	}
	asset, err := uc.d.Assets.GetByID(ctx, tenantID, order.AssetID)
	if err != nil {
		return nil, "", err
	}
	items, err := uc.d.Orders.ListItems(ctx, tenantID, orderID)
	if err != nil {
		return nil, "", err
	}
	payments, err := uc.d.Payments.ListByOrder(ctx, tenantID, entity.OrderKindService, orderID)
	if err != nil {
		return nil, "", err
	}
	total, paid := totals(items, payments)

	pdf, err := uc.d.Receipts.Generate(ReceiptData{
		Tenant:   tenant,
		Customer: customer,
		Asset:    asset,
		Order:    order,
		Items:    items,
		Payments: payments,
		Total:    total,
		Paid:     paid,
		Balance:  total.Sub(paid),
	})
	if err != nil {
		return nil, "", err
	}
	return pdf, order.Folio + ".pdf", nil
}
