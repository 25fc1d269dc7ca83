package dto

import (
	"encoding/json"
	"time"
)

// CustomerRequest alta o edición de cliente.
type CustomerRequest struct {
	UserID  string `json:"user_id,omitempty" validate:"omitempty,uuid"`
	Name    string `json:"name" validate:"required,min=1,max=200"`
	TaxID   string `json:"tax_id" validate:"max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=30"`
	Address string `json:"address"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// AssetRequest alta o edición de un equipo. Details es JSON libre (marca, modelo, año...).
type AssetRequest struct {
	CustomerID string          `json:"customer_id" validate:"required,uuid"`
	Identifier string          `json:"identifier" validate:"required,max=100"`
	Details    json.RawMessage `json:"details,omitempty" swaggertype:"object"`
}

// AssetResponse salida de un equipo.
type AssetResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Identifier string          `json:"identifier"`
	Details    json.RawMessage `json:"details" swaggertype:"object"`
	CreatedAt  time.Time       `json:"created_at"`
}
