package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/pkg/jwt"
)

func TestGenerateYParse_ConservaIdentidad(t *testing.T) {
	id := jwt.Identity{UserID: "u-1", TenantID: "t-1", Role: jwt.RoleCashier}
	tok, err := jwt.Generate("clave", id, "taller-api", 10)
	require.NoError(t, err)

	got, err := jwt.Parse("clave", tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_Rechazos(t *testing.T) {
	id := jwt.Identity{UserID: "u-1", TenantID: "t-1", Role: jwt.RoleAdmin}
	expired, err := jwt.Generate("clave", id, "taller-api", -1)
	require.NoError(t, err)
	valid, err := jwt.Generate("clave", id, "taller-api", 10)
	require.NoError(t, err)

	_, err = jwt.Parse("clave", expired)
	assert.Error(t, err, "expirado")
	_, err = jwt.Parse("otra-clave", valid)
	assert.Error(t, err, "firma")
	_, err = jwt.Parse("", valid)
	assert.Error(t, err, "secreto vacío")
}

func TestGenerate_SecretoVacio(t *testing.T) {
	_, err := jwt.Generate("", jwt.Identity{}, "taller-api", 10)
	assert.Error(t, err)
}
