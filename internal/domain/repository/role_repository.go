package repository

import (
	"context"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
)

// RoleRepository catálogo de roles.
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	List(ctx context.Context) ([]*entity.Role, error)
}

// UserRoleRepository asignaciones usuario↔rol.
type UserRoleRepository interface {
	// AssignPrimary degrada la fila primaria actual (si existe) y marca roleID como primario.
	// Debe ejecutarse dentro de una transacción para no dejar cero o dos filas primarias.
	AssignPrimary(ctx context.Context, ur *entity.UserRole) error
	// GetPrimaryRole devuelve el rol primario del usuario o un error que envuelve domain.ErrRoleNotFound.
	GetPrimaryRole(ctx context.Context, userID string) (*entity.Role, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.UserRole, error)
}
