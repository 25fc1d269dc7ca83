package dto

import "time"

// CreateTenantRequest alta de un taller (registro).
type CreateTenantRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Industry string `json:"industry" validate:"required,oneof=automotive electronics machinery"`
	TaxID    string `json:"tax_id" validate:"max=30"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"max=30"`
	Address  string `json:"address"`
}

// UpdateTenantRequest datos editables; la industria no se puede cambiar.
type UpdateTenantRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=200"`
	TaxID   *string `json:"tax_id" validate:"omitempty,max=30"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Address *string `json:"address"`
}

// TenantResponse salida de un tenant.
type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry"`
	TaxID     string    `json:"tax_id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
