package workflow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/workflow"
)

func TestValidateTransition_FlujoLineal(t *testing.T) {
	for i := 0; i < len(workflow.OrderStatuses)-1; i++ {
		from, to := workflow.OrderStatuses[i], workflow.OrderStatuses[i+1]
		assert.NoError(t, workflow.ValidateTransition(from, to), "%s -> %s", from, to)
	}
}

func TestValidateTransition_Retrocesos(t *testing.T) {
	assert.NoError(t, workflow.ValidateTransition(entity.StatusApproval, entity.StatusDiagnosis))
	assert.NoError(t, workflow.ValidateTransition(entity.StatusQA, entity.StatusRepair))
}

func TestValidateTransition_SaltosRechazados(t *testing.T) {
	cases := []struct{ from, to entity.OrderStatus }{
		{entity.StatusReception, entity.StatusDelivered},
		{entity.StatusReception, entity.StatusRepair},
		{entity.StatusDiagnosis, entity.StatusReception},
		{entity.StatusReady, entity.StatusRepair},
		{entity.StatusDelivered, entity.StatusReception},
		{entity.StatusDelivered, entity.StatusReady},
	}
	for _, tc := range cases {
		err := workflow.ValidateTransition(tc.from, tc.to)
		require.Error(t, err, "%s -> %s", tc.from, tc.to)
		assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
	}
}

func TestValidateTransition_MismoEstado(t *testing.T) {
	for _, st := range workflow.OrderStatuses {
		err := workflow.ValidateTransition(st, st)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, st)
	}
}

func TestNextStatuses_DeliveredEsTerminal(t *testing.T) {
	assert.Empty(t, workflow.NextStatuses(entity.StatusDelivered))
	assert.ElementsMatch(t,
		[]entity.OrderStatus{entity.StatusReady, entity.StatusRepair},
		workflow.NextStatuses(entity.StatusQA))
}

func TestParseStatus(t *testing.T) {
	st, err := workflow.ParseStatus(" Diagnosis ")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDiagnosis, st)

	_, err = workflow.ParseStatus("cerrada")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParsePriority(t *testing.T) {
	p, err := workflow.ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, entity.PriorityNormal, p)

	p, err = workflow.ParsePriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, entity.PriorityHigh, p)

	_, err = workflow.ParsePriority("critica")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// --- Ventas en línea ---

func TestValidateSalesTransition(t *testing.T) {
	assert.NoError(t, workflow.ValidateSalesTransition(entity.SalesPending, entity.SalesPaid))
	assert.NoError(t, workflow.ValidateSalesTransition(entity.SalesPaid, entity.SalesShipped))
	assert.NoError(t, workflow.ValidateSalesTransition(entity.SalesShipped, entity.SalesDelivered))
	assert.NoError(t, workflow.ValidateSalesTransition(entity.SalesPending, entity.SalesCancelled))
	assert.NoError(t, workflow.ValidateSalesTransition(entity.SalesPaid, entity.SalesCancelled))

	assert.ErrorIs(t, workflow.ValidateSalesTransition(entity.SalesShipped, entity.SalesCancelled), domain.ErrInvalidTransition)
	assert.ErrorIs(t, workflow.ValidateSalesTransition(entity.SalesDelivered, entity.SalesPending), domain.ErrInvalidTransition)
	assert.ErrorIs(t, workflow.ValidateSalesTransition(entity.SalesPending, entity.SalesDelivered), domain.ErrInvalidTransition)
}
