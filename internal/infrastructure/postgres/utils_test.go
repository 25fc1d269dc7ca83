package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/taller-api/internal/domain"
)

func TestWrap_TraduceSQLState(t *testing.T) {
	cases := map[string]error{
		"23505": domain.ErrDuplicate,
		"23503": domain.ErrConflict,
		"40P01": domain.ErrConflict,
		"40001": domain.ErrConflict,
		"22P02": domain.ErrInvalidInput,
		"22003": domain.ErrInvalidInput,
	}
	for code, kind := range cases {
		pgErr := &pgconn.PgError{Code: code}
		err := wrap("op", pgErr)
		assert.ErrorIs(t, err, kind, code)
		assert.ErrorAs(t, err, &pgErr, "conserva la causa")
		assert.NotEmpty(t, domain.MessageOf(err), code)
	}
}

func TestWrap_ErrorDesconocidoNoEsDeDominio(t *testing.T) {
	cause := errors.New("conexión cerrada")
	err := wrap("get product", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "get product: conexión cerrada", err.Error())
	assert.Empty(t, domain.MessageOf(err))

	assert.NoError(t, wrap("op", nil))
}
