package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/taller-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar el nombre JSON del campo, que es lo que ve el cliente.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate aplica las reglas `validate:` del struct y devuelve un error de dominio
// de tipo ErrInvalidInput con el primer campo que falla.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.Validation(fieldMessage(fe))
	}
	return domain.Validation(err.Error())
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s debe ser un UUID", field)
	case "url", "http_url":
		return fmt.Sprintf("%s debe ser una URL válida", field)
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	case "min", "max":
		return fmt.Sprintf("%s fuera de rango (%s=%s)", field, fe.Tag(), fe.Param())
	case "email":
		return fmt.Sprintf("%s debe ser un correo válido", field)
	default:
		return fmt.Sprintf("%s inválido (%s)", field, fe.Tag())
	}
}
