package entity

import (
	"encoding/json"
	"time"
)

// Asset es el equipo del cliente (vehículo, celular, máquina).
// Identifier distingue equipos del mismo cliente (placa, serial, IMEI).
// Details es un JSON libre cuya forma depende de la industria del tenant.
type Asset struct {
	ID         string
	TenantID   string
	CustomerID string
	Identifier string
	Details    json.RawMessage
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
