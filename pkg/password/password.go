// Package password valida la fortaleza de contraseñas y encapsula el hash bcrypt.
package password

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Cost factor de trabajo fijo de bcrypt.
const Cost = 12

// MinLength longitud mínima aceptada.
const MinLength = 8

// SpecialChars conjunto fijo de caracteres especiales aceptados.
const SpecialChars = `!@#$%^&*(),.?":{}|<>`

// Mensajes de cada regla (uno por regla violada).
const (
	MsgRequired  = "la contraseña es obligatoria"
	MsgMinLength = "la contraseña debe tener al menos 8 caracteres"
	MsgUppercase = "la contraseña debe contener al menos una letra mayúscula"
	MsgDigit     = "la contraseña debe contener al menos un número"
	MsgSpecial   = `la contraseña debe contener al menos un carácter especial (!@#$%^&*(),.?":{}|<>)`
)

// Result resultado de la validación. Errors trae todas las reglas incumplidas.
type Result struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Validate evalúa todas las reglas sin cortar en la primera falla.
func Validate(pw string) Result {
	errs := make([]string, 0, 5)
	if pw == "" {
		errs = append(errs, MsgRequired)
	}
	if len([]rune(pw)) < MinLength {
		errs = append(errs, MsgMinLength)
	}
	var upper, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(SpecialChars, r):
			special = true
		}
	}
	if !upper {
		errs = append(errs, MsgUppercase)
	}
	if !digit {
		errs = append(errs, MsgDigit)
	}
	if !special {
		errs = append(errs, MsgSpecial)
	}
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// Hash genera el hash bcrypt de la contraseña.
func Hash(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare verifica la contraseña contra el hash (comparación en tiempo constante de bcrypt).
func Compare(pw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
