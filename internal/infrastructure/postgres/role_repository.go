package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

var (
	_ repository.RoleRepository     = (*RoleRepo)(nil)
	_ repository.UserRoleRepository = (*UserRoleRepo)(nil)
)

// RoleRepo catálogo de roles.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(ctx, `SELECT id, name, code FROM roles WHERE name = $1`, name).
		Scan(&role.ID, &role.Name, &role.Code)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("get role %q: %w", name, domain.ErrRoleNotFound)
		}
		return nil, wrapDBErr("get role", err)
	}
	return &role, nil
}

func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, code FROM roles ORDER BY name`)
	if err != nil {
		return nil, wrapDBErr("list roles", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Code); err != nil {
			return nil, wrapDBErr("scan role", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// UserRoleRepo asignaciones usuario↔rol.
type UserRoleRepo struct {
	q Querier
}

// NewUserRoleRepository construye el adaptador.
func NewUserRoleRepository(q Querier) *UserRoleRepo {
	return &UserRoleRepo{q: q}
}

// AssignPrimary degrada la primaria vigente y hace upsert de la nueva como primaria.
// Debe correr dentro de una transacción; el índice parcial user_roles_one_primary
// rechaza una segunda primaria concurrente.
func (r *UserRoleRepo) AssignPrimary(ctx context.Context, ur *entity.UserRole) error {
	if _, err := r.q.Exec(ctx,
		`UPDATE user_roles SET is_primary = FALSE WHERE user_id = $1 AND role_id <> $2 AND is_primary`,
		ur.UserID, ur.RoleID,
	); err != nil {
		return wrapDBErr("demote primary role", err)
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id, is_primary, assigned_by, assigned_at)
		VALUES ($1, $2, TRUE, $3, $4)
		ON CONFLICT (user_id, role_id)
		DO UPDATE SET is_primary = TRUE, assigned_by = EXCLUDED.assigned_by, assigned_at = EXCLUDED.assigned_at`,
		ur.UserID, ur.RoleID, nullable(ur.AssignedBy), ur.AssignedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("assign primary role: %w", domain.ErrConflict)
		}
		return wrapDBErr("assign primary role", err)
	}
	return nil
}

func (r *UserRoleRepo) GetPrimaryRole(ctx context.Context, userID string) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(ctx, `
		SELECT r.id, r.name, r.code FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1 AND ur.is_primary`, userID,
	).Scan(&role.ID, &role.Name, &role.Code)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("primary role of %s: %w", userID, domain.ErrRoleNotFound)
		}
		return nil, wrapDBErr("get primary role", err)
	}
	return &role, nil
}

func (r *UserRoleRepo) ListByUser(ctx context.Context, userID string) ([]*entity.UserRole, error) {
	rows, err := r.q.Query(ctx, `
		SELECT user_id, role_id, is_primary, assigned_by, assigned_at
		FROM user_roles WHERE user_id = $1 ORDER BY assigned_at`, userID)
	if err != nil {
		return nil, wrapDBErr("list user roles", err)
	}
	defer rows.Close()
	var list []*entity.UserRole
	for rows.Next() {
		var (
			ur entity.UserRole
			by *string
		)
		if err := rows.Scan(&ur.UserID, &ur.RoleID, &ur.IsPrimary, &by, &ur.AssignedAt); err != nil {
			return nil, wrapDBErr("scan user role", err)
		}
		ur.AssignedBy = deref(by)
		list = append(list, &ur)
	}
	return list, rows.Err()
}
