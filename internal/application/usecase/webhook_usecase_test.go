package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/usecase"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/infrastructure/memory"
)

func TestWebhookCreate_NormalizaEventos(t *testing.T) {
	uc := usecase.NewWebhookUseCase(memory.NewWebhookRepo())

	w, err := uc.Create(context.Background(), tenantA, dto.CreateWebhookRequest{
		URL:    " https://hooks.example.com/taller ",
		Events: []string{" ORDER.Created", "order.created", "Payment.Registered "},
		Secret: "super-secreto-1234",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.WebhookEventOrderCreated, entity.WebhookEventPaymentRegistered}, w.Events)
	assert.Equal(t, "https://hooks.example.com/taller", w.URL)
	assert.Equal(t, "****1234", w.SecretHint)
	assert.True(t, w.IsActive)
}

func TestWebhookCreate_EventosInvalidos(t *testing.T) {
	cases := []struct {
		name   string
		events []string
	}{
		{"evento desconocido", []string{"order.created", "invoice.issued"}},
		{"lista vacía", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := usecase.NewWebhookUseCase(memory.NewWebhookRepo())
			_, err := uc.Create(context.Background(), tenantA, dto.CreateWebhookRequest{
				URL: "https://hooks.example.com", Events: tc.events, Secret: "12345678",
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestWebhookUpdate_ReemplazaEventosYDesactiva(t *testing.T) {
	uc := usecase.NewWebhookUseCase(memory.NewWebhookRepo())
	ctx := context.Background()
	w, err := uc.Create(ctx, tenantA, dto.CreateWebhookRequest{
		URL: "https://hooks.example.com", Events: []string{"*"}, Secret: "abcd",
	})
	require.NoError(t, err)
	assert.Equal(t, "****", w.SecretHint, "un secreto corto no se expone")

	upd, err := uc.Update(ctx, tenantA, w.ID, dto.UpdateWebhookRequest{
		Events: []string{"SALE.COMPLETED"}, IsActive: ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.WebhookEventSaleCompleted}, upd.Events)
	assert.False(t, upd.IsActive)

	_, err = uc.Update(ctx, tenantA, w.ID, dto.UpdateWebhookRequest{Events: []string{"nada"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, tenantB, w.ID, dto.UpdateWebhookRequest{IsActive: ptr(true)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
