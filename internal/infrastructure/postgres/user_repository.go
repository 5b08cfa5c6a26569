package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `u.id, u.email, u.password_hash, u.first_name, u.last_name, u.phone, u.company_name,
	u.vendor_code, u.is_verified, u.is_active, u.last_login_at, u.created_at, u.updated_at`

func scanUser(row pgx.Row, extra ...any) (*entity.User, error) {
	var u entity.User
	dest := []any{
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.CompanyName,
		&u.VendorCode, &u.IsVerified, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, phone, company_name,
			vendor_code, is_verified, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone, user.CompanyName,
		user.VendorCode, user.IsVerified, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return wrapDBErr("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("get user %s: %w", id, domain.ErrUserNotFound)
		}
		return nil, wrapDBErr("get user by id", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email (ya normalizado).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.email = $1 LIMIT 1`, email))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("get user by email: %w", domain.ErrUserNotFound)
		}
		return nil, wrapDBErr("get user by email", err)
	}
	return u, nil
}

// ExistsByEmail informa si ya hay una cuenta con ese email.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return false, wrapDBErr("exists user by email", err)
	}
	return exists, nil
}

// Update actualiza los datos de perfil y estado. La contraseña va por UpdatePassword.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET first_name = $2, last_name = $3, phone = $4, company_name = $5,
			vendor_code = $6, is_verified = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Phone, user.CompanyName,
		user.VendorCode, user.IsVerified, user.IsActive, user.UpdatedAt,
	)
	if err != nil {
		return wrapDBErr("update user", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update user %s: %w", user.ID, domain.ErrUserNotFound)
	}
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID, hash string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`, userID, hash, at)
	if err != nil {
		return wrapDBErr("update password", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update password %s: %w", userID, domain.ErrUserNotFound)
	}
	return nil
}

func (r *UserRepo) TouchLogin(ctx context.Context, userID string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE users SET last_login_at = $2 WHERE id = $1`, userID, at); err != nil {
		return wrapDBErr("touch login", err)
	}
	return nil
}

// List usuarios con su rol primario (vacío si no tiene).
func (r *UserRepo) List(ctx context.Context, f *repository.ListFilter) ([]*entity.UserWithRole, error) {
	where, args, err := buildWhere(repository.CollectionUsers, f)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", domain.NewValidationError(err.Error()))
	}
	query := `SELECT ` + userColumns + `, COALESCE(r.name, '')
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id AND ur.is_primary
		LEFT JOIN roles r ON r.id = ur.role_id` + where
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBErr("list users", err)
	}
	defer rows.Close()
	var list []*entity.UserWithRole
	for rows.Next() {
		var role string
		u, err := scanUser(rows, &role)
		if err != nil {
			return nil, wrapDBErr("scan user", err)
		}
		list = append(list, &entity.UserWithRole{User: *u, Role: role})
	}
	return list, rows.Err()
}
