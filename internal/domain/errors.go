package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
)

// IsDomainError indica si err es (o envuelve) un error de dominio.
// Los adaptadores de persistencia lo usan para distinguir fallos de negocio
// de fallos de infraestructura.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrUserNotFound, ErrEmailAlreadyExists, ErrInvalidInput,
		ErrDuplicate, ErrUnauthorized, ErrForbidden, ErrConflict, ErrInvalidTransition,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
