package entity

import "time"

// PasswordResetToken token de un solo uso para restablecer contraseña.
// Solo se persiste el hash SHA-256; el token plano viaja únicamente por email.
type PasswordResetToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	Used      bool
	UsedAt    *time.Time
	CreatedAt time.Time
}

// IsExpired informa si el token venció respecto a now.
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
