package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/mercado-b2b-api/internal/application/auth"
	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

// UserUseCase administración de usuarios por un captain.
type UserUseCase struct {
	users    repository.UserRepository
	roles    repository.RoleRepository
	tx       repository.TxRunner
	notifier *Notifier
	log      *logger.Logger
	now      func() time.Time
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(
	users repository.UserRepository,
	roles repository.RoleRepository,
	tx repository.TxRunner,
	notifier *Notifier,
	log *logger.Logger,
) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{
		users:    users,
		roles:    roles,
		tx:       tx,
		notifier: notifier,
		log:      log.Named("users"),
		now:      time.Now,
	}
}

// ListUsers lista usuarios con su rol primario; role vacío no filtra.
func (uc *UserUseCase) ListUsers(ctx context.Context, role string, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	f := repository.NewFilter().Page(page.Limit, page.Offset)
	if role != "" {
		if !entity.IsValidRole(role) {
			return nil, domain.NewValidationError("rol inválido", role)
		}
		f.Where("role", role)
	}
	list, err := uc.users.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		u := u
		items = append(items, *auth.ToUserResponse(&u.User, u.Role))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Count: len(items)},
	}, nil
}

// AssignRole reemplaza el rol primario del usuario. La degradación del rol anterior y
// el alta del nuevo corren en una transacción, así el usuario nunca queda con dos primarios.
func (uc *UserUseCase) AssignRole(ctx context.Context, captainID string, in dto.AssignRoleRequest) (*dto.UserResponse, error) {
	if in.UserID == "" {
		return nil, domain.NewValidationError("user_id es requerido")
	}
	if !entity.IsValidRole(in.Role) {
		return nil, domain.NewValidationError("rol inválido", "role debe ser buyer, seller o captain")
	}
	if in.UserID == captainID {
		return nil, fmt.Errorf("%w: no puedes cambiar tu propio rol", domain.ErrForbidden)
	}
	user, err := uc.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	role, err := uc.roles.GetByName(ctx, in.Role)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		return repos.UserRoles.AssignPrimary(ctx, &entity.UserRole{
			UserID:     user.ID,
			RoleID:     role.ID,
			IsPrimary:  true,
			AssignedBy: captainID,
			AssignedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", role.Name).Str("by", captainID).Msg("rol primario asignado")
	uc.notifier.Notify(ctx, user.ID, entity.NotificationRoleAssigned,
		"Rol actualizado", fmt.Sprintf("Tu rol ahora es %s. Vuelve a iniciar sesión para aplicar los cambios.", role.Name))
	return auth.ToUserResponse(user, role.Name), nil
}
