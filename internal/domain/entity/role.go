package entity

import "time"

// Roles válidos del marketplace.
const (
	RoleBuyer   = "buyer"
	RoleSeller  = "seller"
	RoleCaptain = "captain" // administrador: aprueba productos y asigna roles
)

// Códigos cortos por rol (prefijo del vendor code).
var roleCodes = map[string]string{
	RoleBuyer:   "BYR",
	RoleSeller:  "SLR",
	RoleCaptain: "CPT",
}

// RoleCode devuelve el código corto del rol y si el rol es conocido.
func RoleCode(name string) (string, bool) {
	c, ok := roleCodes[name]
	return c, ok
}

// IsValidRole informa si name es uno de los roles del sistema.
func IsValidRole(name string) bool {
	_, ok := roleCodes[name]
	return ok
}

// IsSelfRegistrable indica los roles que un usuario puede elegir al registrarse.
func IsSelfRegistrable(name string) bool {
	return name == RoleBuyer || name == RoleSeller
}

// Role catálogo de roles.
type Role struct {
	ID   string
	Name string
	Code string
}

// UserRole asignación usuario↔rol. Solo una fila por usuario puede tener IsPrimary.
type UserRole struct {
	UserID     string
	RoleID     string
	IsPrimary  bool
	AssignedBy string // vacío en el registro
	AssignedAt time.Time
}
