package entity

import "time"

// Industrias soportadas. Determinan qué campos de Asset.Details son relevantes,
// pero el esquema no lo impone.
const (
	IndustryAutomotive  = "automotive"
	IndustryElectronics = "electronics"
	IndustryMachinery   = "machinery"
)

// Tenant representa un taller (límite de aislamiento multi-tenant).
// Industry es inmutable después del registro.
type Tenant struct {
	ID        string
	Name      string
	Industry  string
	TaxID     string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidIndustry indica si s es una industria conocida.
func ValidIndustry(s string) bool {
	switch s {
	case IndustryAutomotive, IndustryElectronics, IndustryMachinery:
		return true
	}
	return false
}
