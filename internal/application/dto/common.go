package dto

// Paginación de los listados del panel.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PageRequest limit/offset de la query string. Se embebe en los filtros de listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// Normalize aplica el límite por defecto y recorta valores fuera de rango.
func (p *PageRequest) Normalize() {
	p.Limit, p.Offset = ClampPage(p.Limit, p.Offset)
}

// Page eco de la página pedida. total < 0 omite el conteo.
func (p PageRequest) Page(total int) PageResponse {
	out := PageResponse{Limit: p.Limit, Offset: p.Offset}
	if total >= 0 {
		out.Total = total
	}
	return out
}

// ClampPage igual que Normalize, para filtros de repositorio que no embeben PageRequest.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// PageResponse metadatos de página. Total solo en listados que cuentan filas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error de la API. Code es estable para los clientes
// (VALIDATION, INSUFFICIENT_STOCK, FORBIDDEN); Message es para mostrar.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
