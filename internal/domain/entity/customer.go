package entity

import "time"

// Customer representa un cliente del taller.
// UserID enlaza con la identidad global y habilita el acceso al portal; vacío si no tiene.
type Customer struct {
	ID        string
	TenantID  string
	UserID    string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
