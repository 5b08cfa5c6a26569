package entity

import "time"

// User representa una cuenta del marketplace (comprador, vendedor o captain).
// El rol efectivo vive en UserRole (una única fila primaria por usuario).
type User struct {
	ID           string
	Email        string // único, en minúsculas
	PasswordHash string // bcrypt
	FirstName    string
	LastName     string
	Phone        string
	CompanyName  string
	VendorCode   string // código de referencia legible, p.ej. SLR-7KQ2XA
	IsVerified   bool
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName devuelve nombre y apellido separados por espacio.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserWithRole usuario junto a su rol primario (listados de administración).
type UserWithRole struct {
	User
	Role string
}
