package serviceorder

import (
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/workflow"
)

func toOrderResponse(o *entity.ServiceOrder) *dto.ServiceOrderResponse {
	next := workflow.NextStatuses(o.Status)
	nextStr := make([]string, 0, len(next))
	for _, s := range next {
		nextStr = append(nextStr, string(s))
	}
	return &dto.ServiceOrderResponse{
		ID:          o.ID,
		Folio:       o.Folio,
		CustomerID:  o.CustomerID,
		AssetID:     o.AssetID,
		Status:      string(o.Status),
		Priority:    string(o.Priority),
		Description: o.Description,
		AssignedTo:  o.AssignedTo,
		CreatedBy:   o.CreatedBy,
		DeliveredAt: o.DeliveredAt,
		NextStatus:  nextStr,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toItemResponse(it *entity.ServiceOrderItem) *dto.OrderItemResponse {
	return &dto.OrderItemResponse{
		ID:          it.ID,
		ProductID:   it.ProductID,
		ProductName: it.ProductName,
		ProductType: it.ProductType,
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
		Subtotal:    it.Subtotal(),
		CreatedAt:   it.CreatedAt,
	}
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:        p.ID,
		OrderKind: string(p.OrderKind),
		OrderID:   p.OrderID,
		Amount:    p.Amount,
		Method:    p.Method,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

func toEventResponse(ev *entity.OrderEvent) *dto.TimelineEventResponse {
	return &dto.TimelineEventResponse{
		ID:        ev.ID,
		Type:      ev.Type,
		ActorID:   ev.ActorID,
		Content:   ev.Content,
		CreatedAt: ev.CreatedAt,
	}
}
