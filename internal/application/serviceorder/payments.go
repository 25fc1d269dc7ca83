package serviceorder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// RegisterPayment registra un abono. No cambia el estado de la orden ni se valida contra el saldo.
func (uc *UseCase) RegisterPayment(ctx context.Context, tenantID, actorID, orderID string, in dto.RegisterPaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.Validation("el monto debe ser mayor que cero")
	}
	if err := domain.CheckMoney("amount", in.Amount); err != nil {
		return nil, err
	}
	method := strings.ToLower(strings.TrimSpace(in.Method))
	if !entity.ValidServicePaymentMethod(method) {
		return nil, domain.Validation("método de pago inválido: " + in.Method)
	}

	var payment *entity.Payment
	var order *entity.ServiceOrder
	err := uc.d.TxRunner.Run(ctx, func(tx repository.TxRepos) error {
		var err error
		order, err = tx.Orders.GetByID(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NotFound("orden")
		}
		payment = &entity.Payment{
			ID:        uuid.New().String(),
			TenantID:  tenantID,
			OrderKind: entity.OrderKindService,
			OrderID:   order.ID,
			Amount:    in.Amount,
			Method:    method,
			Notes:     in.Notes,
			CreatedBy: actorID,
			CreatedAt: time.Now(),
		}
		if err := tx.Payments.Create(ctx, payment); err != nil {
			return err
		}
		content := fmt.Sprintf("Pago de %s (%s)", in.Amount.StringFixed(2), method)
		return appendEvent(ctx, tx.Events, order, actorID, entity.EventTypePayment, content, "")
	})
	if err != nil {
		return nil, err
	}

	uc.d.Publisher.Fire(tenantID, entity.WebhookEventPaymentRegistered, map[string]any{
		"payment_id": payment.ID,
		"order_kind": string(payment.OrderKind),
		"order_id":   order.ID,
		"folio":      order.Folio,
		"amount":     payment.Amount.StringFixed(2),
		"method":     payment.Method,
	})
	return toPaymentResponse(payment), nil
}
