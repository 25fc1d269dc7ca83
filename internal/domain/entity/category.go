package entity

import "time"

// Category agrupa productos de un tenant. El nombre es único por tenant (validado en código).
type Category struct {
	ID          string
	TenantID    string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
