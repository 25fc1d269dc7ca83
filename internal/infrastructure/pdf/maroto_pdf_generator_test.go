package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/serviceorder"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

func TestMoney(t *testing.T) {
	cases := map[string]string{
		"0":        "$0,00",
		"25000":    "$25.000,00",
		"1234.5":   "$1.234,50",
		"1000000":  "$1.000.000,00",
		"-4500.25": "-$4.500,25",
	}
	for in, want := range cases {
		assert.Equal(t, want, money(decimal.RequireFromString(in)), in)
	}
}

func TestGenerate_ProduceUnPDF(t *testing.T) {
	now := time.Now()
	order := &entity.ServiceOrder{
		ID: "o1", Folio: "OS-000042", Status: entity.StatusReady, Priority: entity.PriorityHigh,
		Description: "Cambio de pantalla y batería", CreatedAt: now,
	}
	items := []*entity.ServiceOrderItem{
		{ProductName: "Pantalla", ProductType: entity.ProductTypeProduct, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(180000)},
		{ProductName: "Mano de obra", ProductType: entity.ProductTypeService, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(40000)},
	}
	payments := []*entity.Payment{
		{Amount: decimal.NewFromInt(100000), Method: entity.PaymentCash, CreatedAt: now},
	}

	out, err := NewMarotoReceiptGenerator().Generate(serviceorder.ReceiptData{
		Tenant:   &entity.Tenant{Name: "Taller Central", TaxID: "900123456-7"},
		Customer: &entity.Customer{Name: "Ana Pérez", Phone: "3001234567"},
		Asset:    &entity.Asset{Identifier: "IMEI-1234"},
		Order:    order,
		Items:    items,
		Payments: payments,
		Total:    decimal.NewFromInt(220000),
		Paid:     decimal.NewFromInt(100000),
		Balance:  decimal.NewFromInt(120000),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerate_SinOrdenFalla(t *testing.T) {
	_, err := NewMarotoReceiptGenerator().Generate(serviceorder.ReceiptData{})
	assert.Error(t, err)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Control de calidad", statusLabel(entity.StatusQA))
	assert.Equal(t, "otro", statusLabel("otro"))
}
