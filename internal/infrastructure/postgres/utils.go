package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/taller-api/internal/domain"
)

// sqlState código SQLSTATE del error de Postgres, o "" si no viene del servidor.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// wrap traduce errores del driver a errores de dominio y conserva la causa.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	switch sqlState(err) {
	case "23505": // unique_violation
		return &domain.Error{Kind: domain.ErrDuplicate, Message: "ya existe un registro con esos datos", Err: err}
	case "23503": // foreign_key_violation
		return &domain.Error{Kind: domain.ErrConflict, Message: "el registro está relacionado con otros datos", Err: err}
	case "40P01", "40001": // deadlock_detected, serialization_failure
		return &domain.Error{Kind: domain.ErrConflict, Message: "operación concurrente sobre los mismos datos, intente de nuevo", Err: err}
	case "22P02": // invalid_text_representation (p. ej. un id que no es UUID)
		return &domain.Error{Kind: domain.ErrInvalidInput, Message: "identificador o valor con formato inválido", Err: err}
	case "22003": // numeric_value_out_of_range
		return &domain.Error{Kind: domain.ErrInvalidInput, Message: "valor numérico fuera de rango", Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullable convierte "" en NULL para columnas UUID opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func limitOffset(limit, offset int) (uint64, uint64) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uint64(limit), uint64(offset)
}
