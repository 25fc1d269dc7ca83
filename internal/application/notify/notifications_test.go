package notify_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/notify"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/infrastructure/memory"
)

func TestNotifications_ListarYMarcar(t *testing.T) {
	ctx := context.Background()
	uc := notify.NewNotificationUseCase(memory.NewNotificationRepo(), zerolog.Nop())

	uc.Notify(ctx, "u1", tenantID, "Tu equipo está listo", "OS-000001", "/portal/orders/1")
	uc.Notify(ctx, "u1", tenantID, "Orden entregada", "OS-000001", "/portal/orders/1")
	uc.Notify(ctx, "u2", tenantID, "Otro usuario", "", "")

	all, err := uc.List(ctx, "u1", false, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Orden entregada", all[0].Title, "más recientes primero")

	require.NoError(t, uc.MarkRead(ctx, "u1", all[0].ID))
	unread, err := uc.List(ctx, "u1", true, 0)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	err = uc.MarkRead(ctx, "u2", all[1].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "no se marcan avisos ajenos")

	n, err := uc.MarkAllRead(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
