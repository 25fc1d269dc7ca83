package entity

import "time"

// Notification aviso para un usuario (campana del portal o del panel).
type Notification struct {
	ID        string
	UserID    string
	TenantID  string
	Title     string
	Message   string
	Link      string
	IsRead    bool
	CreatedAt time.Time
}
