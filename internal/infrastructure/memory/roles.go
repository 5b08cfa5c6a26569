package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

var (
	_ repository.RoleRepository     = (*RoleRepo)(nil)
	_ repository.UserRoleRepository = (*UserRoleRepo)(nil)
)

// RoleRepo catálogo de roles sembrado en NewStore.
type RoleRepo struct {
	s *Store
}

// NewRoleRepository construye el repositorio.
func NewRoleRepository(s *Store) *RoleRepo { return &RoleRepo{s: s} }

func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, role := range r.s.roles {
		if role.Name == name {
			c := *role
			return &c, nil
		}
	}
	return nil, fmt.Errorf("get role %q: %w", name, domain.ErrRoleNotFound)
}

func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Role, 0, len(r.s.roles))
	for _, role := range r.s.roles {
		c := *role
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UserRoleRepo asignaciones usuario↔rol.
type UserRoleRepo struct {
	s  *Store
	tx *txLog
}

// NewUserRoleRepository construye el repositorio.
func NewUserRoleRepository(s *Store) *UserRoleRepo { return &UserRoleRepo{s: s} }

// AssignPrimary degrada la primaria actual y marca (o inserta) la nueva como primaria.
func (r *UserRoleRepo) AssignPrimary(ctx context.Context, ur *entity.UserRole) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("user_roles.assign"); err != nil {
		return err
	}
	if _, ok := r.s.roles[ur.RoleID]; !ok {
		return fmt.Errorf("assign role: %w", domain.ErrRoleNotFound)
	}
	next := make([]*entity.UserRole, 0, len(r.s.userRoles)+1)
	found := false
	for _, existing := range r.s.userRoles {
		c := *existing
		if c.UserID == ur.UserID {
			c.IsPrimary = false
			if c.RoleID == ur.RoleID {
				c.IsPrimary = true
				c.AssignedAt = ur.AssignedAt
				c.AssignedBy = ur.AssignedBy
				found = true
			}
		}
		next = append(next, &c)
	}
	if !found {
		c := *ur
		c.IsPrimary = true
		next = append(next, &c)
	}
	r.tx.userRole(r.s, ur.UserID)
	r.s.userRoles = next
	return nil
}

func (r *UserRoleRepo) GetPrimaryRole(ctx context.Context, userID string) (*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	role := r.s.primaryRole(userID)
	if role == nil {
		return nil, fmt.Errorf("primary role of %s: %w", userID, domain.ErrRoleNotFound)
	}
	c := *role
	return &c, nil
}

func (r *UserRoleRepo) ListByUser(ctx context.Context, userID string) ([]*entity.UserRole, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.UserRole
	for _, ur := range r.s.userRoles {
		if ur.UserID == userID {
			c := *ur
			out = append(out, &c)
		}
	}
	return out, nil
}

// primaryRole debe llamarse con s.mu tomado.
func (s *Store) primaryRole(userID string) *entity.Role {
	for _, ur := range s.userRoles {
		if ur.UserID == userID && ur.IsPrimary {
			return s.roles[ur.RoleID]
		}
	}
	return nil
}
