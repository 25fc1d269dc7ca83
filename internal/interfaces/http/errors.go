package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
)

// errorStatus tabla de sentinelas de dominio → status HTTP y código de error.
var errorStatus = []struct {
	kind   error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrInvalidTransition, fiber.StatusUnprocessableEntity, "INVALID_TRANSITION"},
}

// writeError responde con el status que corresponde al error. Los errores no tipados
// se registran completos y al cliente solo le llega un mensaje genérico.
func writeError(c *fiber.Ctx, err error) error {
	for _, e := range errorStatus {
		if errors.Is(err, e.kind) {
			msg := domain.MessageOf(err)
			if msg == "" {
				msg = e.kind.Error()
			}
			return c.Status(e.status).JSON(dto.ErrorResponse{Code: e.code, Message: msg})
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("tenant_id", GetTenantID(c)).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// bindJSON parsea y valida el cuerpo. Devuelve false si ya respondió con error.
func bindJSON(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, badBody(c)
	}
	if err := dto.Validate(dst); err != nil {
		return false, writeError(c, err)
	}
	return true, nil
}

// ValidateIDParams exige que todos los parámetros de la ruta (:id, :itemId, :productId)
// sean UUID; un id mal formado es un error de validación y no llega a la base.
func ValidateIDParams(c *fiber.Ctx) error {
	for _, name := range c.Route().Params {
		if err := uuid.Validate(c.Params(name)); err != nil {
			return writeError(c, domain.Validation(name+" debe ser un UUID"))
		}
	}
	return c.Next()
}
