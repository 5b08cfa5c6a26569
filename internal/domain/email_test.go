package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/mercado-b2b-api/internal/domain"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, domain.IsValidEmail("compras@acme.test"))
	assert.False(t, domain.IsValidEmail(""))
	assert.False(t, domain.IsValidEmail("sin-arroba"))
	assert.False(t, domain.IsValidEmail("Ana <ana@acme.test>"))
	assert.False(t, domain.IsValidEmail("ana@localhost"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@acme.test", domain.NormalizeEmail("  Ana@ACME.test "))
}

func TestValidationError(t *testing.T) {
	err := domain.NewValidationError("contraseña débil", "regla 1", "regla 2")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, "contraseña débil: regla 1; regla 2", err.Error())

	var ve *domain.ValidationError
	assert.True(t, errors.As(fmt.Errorf("registro: %w", err), &ve))
	assert.Len(t, ve.Details, 2)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, domain.IsNotFound(fmt.Errorf("get: %w", domain.ErrRFQNotFound)))
	assert.False(t, domain.IsNotFound(errors.New("conexión rechazada")))
}
