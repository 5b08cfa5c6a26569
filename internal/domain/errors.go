package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrRFQNotFound        = errors.New("RFQ no encontrada")
	ErrRoleNotFound       = errors.New("rol no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Token de recuperación de contraseña.
	ErrResetTokenInvalid = errors.New("token de recuperación inválido")
	ErrResetTokenExpired = errors.New("token de recuperación expirado")
	ErrResetTokenUsed    = errors.New("token de recuperación ya utilizado")
)

// ValidationError agrupa uno o varios incumplimientos de reglas de entrada.
// Details lista cada regla violada para que el cliente muestre un checklist completo.
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput) sobre cualquier ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError construye un ValidationError.
func NewValidationError(msg string, details ...string) *ValidationError {
	return &ValidationError{Message: msg, Details: details}
}

// IsNotFound informa si err representa una fila ausente (de cualquier entidad).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrRFQNotFound) ||
		errors.Is(err, ErrRoleNotFound)
}
