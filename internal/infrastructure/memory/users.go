package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	s  *Store
	tx *txLog
}

// NewUserRepository construye el repositorio.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.create"); err != nil {
		return err
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	c := *u
	r.tx.user(r.s, u.ID)
	r.s.users[u.ID] = &c
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("get user %s: %w", id, domain.ErrUserNotFound)
	}
	c := *u
	return &c, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.failure("users.get_by_email"); err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", domain.ErrUserNotFound)
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return fmt.Errorf("update user %s: %w", u.ID, domain.ErrUserNotFound)
	}
	c := *u
	r.tx.user(r.s, u.ID)
	r.s.users[u.ID] = &c
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID, hash string, at time.Time) error {
	return r.mutate(userID, func(u *entity.User) {
		u.PasswordHash = hash
		u.UpdatedAt = at
	})
}

func (r *UserRepo) TouchLogin(ctx context.Context, userID string, at time.Time) error {
	return r.mutate(userID, func(u *entity.User) {
		t := at
		u.LastLoginAt = &t
	})
}

func (r *UserRepo) mutate(id string, fn func(u *entity.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return fmt.Errorf("update user %s: %w", id, domain.ErrUserNotFound)
	}
	c := *u
	fn(&c)
	r.tx.user(r.s, id)
	r.s.users[id] = &c
	return nil
}

func (r *UserRepo) List(ctx context.Context, f *repository.ListFilter) ([]*entity.UserWithRole, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*entity.UserWithRole, 0, len(r.s.users))
	for _, u := range r.s.users {
		uw := &entity.UserWithRole{User: *u}
		if role := r.s.primaryRole(u.ID); role != nil {
			uw.Role = role.Name
		}
		all = append(all, uw)
	}
	return applyFilter(all, f, func(u *entity.UserWithRole) row {
		return row{
			"email":       u.Email,
			"is_active":   u.IsActive,
			"is_verified": u.IsVerified,
			"role":        u.Role,
			"created_at":  u.CreatedAt,
		}
	})
}
