package serviceorder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/inventory"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// AddItem agrega una línea con precio congelado y, si es producto, su salida de inventario.
// La fila de la orden queda bloqueada durante la transacción.
func (uc *UseCase) AddItem(ctx context.Context, tenantID, actorID, orderID string, in dto.OrderItemRequest) (*dto.OrderItemResponse, error) {
	var item *entity.ServiceOrderItem
	err := uc.d.TxRunner.Run(ctx, func(tx repository.TxRepos) error {
		order, err := lockOpenOrder(ctx, tx, tenantID, orderID)
		if err != nil {
			return err
		}
		item, err = uc.addItemTx(ctx, tx, order, actorID, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// RemoveItem borra la línea y devuelve su cantidad al inventario.
// Una segunda llamada no encuentra la fila y no genera otro movimiento.
func (uc *UseCase) RemoveItem(ctx context.Context, tenantID, actorID, orderID, itemID string) error {
	return uc.d.TxRunner.Run(ctx, func(tx repository.TxRepos) error {
		order, err := lockOpenOrder(ctx, tx, tenantID, orderID)
		if err != nil {
			return err
		}
		item, err := tx.Orders.DeleteItem(ctx, tenantID, orderID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.NotFound("ítem")
		}
		if item.TracksStock() {
			_, err = uc.d.Ledger.RecordInTx(ctx, tx, inventory.MovementInput{
				TenantID:      tenantID,
				ActorID:       actorID,
				ProductID:     item.ProductID,
				Type:          entity.MovementIn,
				Quantity:      item.Quantity,
				ReferenceKind: entity.RefServiceOrder,
				ReferenceID:   order.ID,
				Notes:         "Retiro de ítem de la orden " + order.Folio,
			})
			if err != nil {
				return err
			}
		}
		content := fmt.Sprintf("%s x %s", item.Quantity.String(), item.ProductName)
		return appendEvent(ctx, tx.Events, order, actorID, entity.EventTypeItemRemoved, content, "")
	})
}

func lockOpenOrder(ctx context.Context, tx repository.TxRepos, tenantID, orderID string) (*entity.ServiceOrder, error) {
	order, err := tx.Orders.GetForUpdate(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("orden")
	}
	if order.IsClosed() {
		return nil, domain.Conflict("la orden ya fue entregada y no admite cambios en sus ítems")
	}
	return order, nil
}

func (uc *UseCase) addItemTx(ctx context.Context, tx repository.TxRepos, order *entity.ServiceOrder, actorID string, in dto.OrderItemRequest) (*entity.ServiceOrderItem, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.Validation("la cantidad debe ser mayor que cero")
	}
	if err := domain.CheckQuantity("quantity", in.Quantity); err != nil {
		return nil, err
	}
	product, err := tx.Products.GetByID(ctx, order.TenantID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto")
	}
	if !product.IsActive {
		return nil, domain.Validation("el producto " + product.Name + " está inactivo")
	}
	price := product.SalePrice
	if in.UnitPrice != nil {
		price = *in.UnitPrice
	}
	if price.IsNegative() {
		return nil, domain.Validation("el precio unitario no puede ser negativo")
	}
	if err := domain.CheckMoney("unit_price", price); err != nil {
		return nil, err
	}

	item := &entity.ServiceOrderItem{
		ID:          uuid.New().String(),
		TenantID:    order.TenantID,
		OrderID:     order.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		ProductType: product.Type,
		Quantity:    in.Quantity,
		UnitPrice:   price,
		CreatedBy:   actorID,
		CreatedAt:   time.Now(),
	}
	if err := tx.Orders.AddItem(ctx, item); err != nil {
		return nil, err
	}
	if item.TracksStock() {
		_, err = uc.d.Ledger.RecordInTx(ctx, tx, inventory.MovementInput{
			TenantID:      order.TenantID,
			ActorID:       actorID,
			ProductID:     product.ID,
			Type:          entity.MovementOut,
			Quantity:      in.Quantity,
			ReferenceKind: entity.RefServiceOrder,
			ReferenceID:   order.ID,
			Notes:         "Consumo en orden " + order.Folio,
		})
		if err != nil {
			return nil, err
		}
	}
	content := fmt.Sprintf("%s x %s", in.Quantity.String(), product.Name)
	if err := appendEvent(ctx, tx.Events, order, actorID, entity.EventTypeItemAdded, content, ""); err != nil {
		return nil, err
	}
	return item, nil
}
