package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto del catálogo.
const (
	ProductTypeProduct = "product" // maneja stock
	ProductTypeService = "service" // mano de obra, nunca maneja stock
)

// Product representa un producto o servicio del catálogo de un tenant.
// Quantity es el contador materializado del libro de movimientos: solo lo escribe el ledger.
type Product struct {
	ID          string
	TenantID    string
	CategoryID  string // vacío si no tiene categoría
	SKU         string
	Name        string
	Description string
	Type        string
	SalePrice   decimal.Decimal // precio de mostrador (POS y órdenes de servicio)
	PublicPrice decimal.Decimal // precio de la tienda en línea
	Cost        decimal.Decimal
	Quantity    decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TracksStock indica si el producto mueve inventario.
func (p *Product) TracksStock() bool {
	return p.Type == ProductTypeProduct
}

// StorefrontPrice devuelve el precio público o, si no está definido, el de venta.
func (p *Product) StorefrontPrice() decimal.Decimal {
	if p.PublicPrice.GreaterThan(decimal.Zero) {
		return p.PublicPrice
	}
	return p.SalePrice
}

// ValidProductType indica si t es un tipo de producto conocido.
func ValidProductType(t string) bool {
	return t == ProductTypeProduct || t == ProductTypeService
}
