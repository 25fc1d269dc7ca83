package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Escalas de las columnas NUMERIC: cantidades (14,3) y dinero (14,2).
const (
	QuantityScale = 3
	MoneyScale    = 2
)

var (
	maxQuantity = decimal.New(1, 14-QuantityScale)
	maxMoney    = decimal.New(1, 14-MoneyScale)
)

// CheckQuantity rechaza cantidades con más de 3 decimales o fuera del rango de la columna.
func CheckQuantity(field string, v decimal.Decimal) error {
	return checkScale(field, v, QuantityScale, maxQuantity)
}

// CheckMoney igual que CheckQuantity para montos y precios (2 decimales).
func CheckMoney(field string, v decimal.Decimal) error {
	return checkScale(field, v, MoneyScale, maxMoney)
}

func checkScale(field string, v decimal.Decimal, scale int32, limit decimal.Decimal) error {
	if !v.Equal(v.Truncate(scale)) {
		return Validation(fmt.Sprintf("%s admite como máximo %d decimales", field, scale))
	}
	if v.Abs().GreaterThanOrEqual(limit) {
		return Validation(field + " fuera de rango")
	}
	return nil
}

// RoundMoney lleva un producto cantidad × precio a la escala del dinero.
func RoundMoney(v decimal.Decimal) decimal.Decimal {
	return v.Round(MoneyScale)
}
