package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
)

// Error es el error tipado que cruzan los casos de uso hacia la capa HTTP.
// Kind es siempre uno de los sentinelas de arriba, así errors.Is sigue funcionando.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap expone tanto el sentinela como la causa.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Validation error de entrada con mensaje para el usuario.
func Validation(msg string) *Error {
	return &Error{Kind: ErrInvalidInput, Message: msg}
}

// NotFound indica que la entidad no existe para el tenant actual.
func NotFound(entity string) *Error {
	return &Error{Kind: ErrNotFound, Message: entity + " no encontrado"}
}

// Conflict indica que la operación no aplica al estado actual del recurso.
func Conflict(msg string) *Error {
	return &Error{Kind: ErrConflict, Message: msg}
}

// InsufficientStock incluye el producto afectado en el mensaje.
func InsufficientStock(productName string) *Error {
	return &Error{Kind: ErrInsufficientStock, Message: "stock insuficiente para " + productName}
}

// InvalidTransition rechaza un salto de estado fuera de la tabla de transiciones.
func InvalidTransition(from, to string) *Error {
	return &Error{
		Kind:    ErrInvalidTransition,
		Message: fmt.Sprintf("no se puede pasar de %q a %q", from, to),
	}
}

// MessageOf devuelve el mensaje apto para el cliente: el de un *Error si existe,
// si no el texto del sentinela. Para errores desconocidos devuelve "".
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	for _, s := range []error{
		ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrUnauthorized, ErrForbidden,
		ErrConflict, ErrInsufficientStock, ErrInvalidTransition,
	} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return ""
}
