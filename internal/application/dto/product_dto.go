package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto o servicio.
// InitialStock se registra como un movimiento de entrada, no como valor directo.
type CreateProductRequest struct {
	CategoryID   string           `json:"category_id,omitempty" validate:"omitempty,uuid"`
	SKU          string           `json:"sku,omitempty" validate:"max=100"`
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	Description  string           `json:"description"`
	Type         string           `json:"type" validate:"required,oneof=product service"`
	SalePrice    decimal.Decimal  `json:"sale_price"`
	PublicPrice  decimal.Decimal  `json:"public_price"`
	Cost         decimal.Decimal  `json:"cost"`
	InitialStock *decimal.Decimal `json:"initial_stock,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto (sin cantidad ni tipo).
type UpdateProductRequest struct {
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	SKU         *string          `json:"sku" validate:"omitempty,max=100"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	PublicPrice *decimal.Decimal `json:"public_price"`
	Cost        *decimal.Decimal `json:"cost"`
	IsActive    *bool            `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenant_id"`
	CategoryID  string          `json:"category_id,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	PublicPrice decimal.Decimal `json:"public_price"`
	Cost        decimal.Decimal `json:"cost"`
	Quantity    decimal.Decimal `json:"quantity"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CategoryRequest alta o edición de categoría.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
