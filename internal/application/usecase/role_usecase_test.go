package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/application/usecase"
	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
	"github.com/jhoicas/mercado-b2b-api/internal/infrastructure/memory"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

const captainID = "captain-1"

// seedUser crea un usuario activo con el rol primario indicado.
func seedUser(t *testing.T, s *memory.Store, id, email, role string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, memory.NewUserRepository(s).Create(ctx, &entity.User{
		ID: id, Email: email, FirstName: "Ana", LastName: "Ruiz", IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))
	r, err := memory.NewRoleRepository(s).GetByName(ctx, role)
	require.NoError(t, err)
	require.NoError(t, memory.NewUserRoleRepository(s).AssignPrimary(ctx, &entity.UserRole{
		UserID: id, RoleID: r.ID, IsPrimary: true, AssignedAt: now,
	}))
}

func newUserUseCase(s *memory.Store) *usecase.UserUseCase {
	notifier := usecase.NewNotifier(memory.NewNotificationRepository(s), logger.Nop())
	return usecase.NewUserUseCase(
		memory.NewUserRepository(s),
		memory.NewRoleRepository(s),
		memory.NewTxRunner(s),
		notifier,
		logger.Nop(),
	)
}

func primaries(t *testing.T, s *memory.Store, userID string) int {
	t.Helper()
	rows, err := memory.NewUserRoleRepository(s).ListByUser(context.Background(), userID)
	require.NoError(t, err)
	n := 0
	for _, r := range rows {
		if r.IsPrimary {
			n++
		}
	}
	return n
}

func TestAssignRole_UnaSolaPrimaria(t *testing.T) {
	s := memory.NewStore()
	seedUser(t, s, "u1", "u1@mercado.test", entity.RoleBuyer)
	uc := newUserUseCase(s)
	ctx := context.Background()

	for _, role := range []string{entity.RoleSeller, entity.RoleCaptain, entity.RoleBuyer, entity.RoleSeller} {
		out, err := uc.AssignRole(ctx, captainID, dto.AssignRoleRequest{UserID: "u1", Role: role})
		require.NoError(t, err)
		assert.Equal(t, role, out.Role)
		assert.Equal(t, 1, primaries(t, s, "u1"), "tras asignar %s", role)
	}

	primary, err := memory.NewUserRoleRepository(s).GetPrimaryRole(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSeller, primary.Name)
}

func TestAssignRole_Notifica(t *testing.T) {
	s := memory.NewStore()
	seedUser(t, s, "u1", "u1@mercado.test", entity.RoleBuyer)
	_, err := newUserUseCase(s).AssignRole(context.Background(), captainID, dto.AssignRoleRequest{UserID: "u1", Role: entity.RoleSeller})
	require.NoError(t, err)

	list, err := memory.NewNotificationRepository(s).List(context.Background(), repository.NewFilter().Where("user_id", "u1"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.NotificationRoleAssigned, list[0].Type)
}

func TestAssignRole_FalloDeNotificacionNoRevierte(t *testing.T) {
	s := memory.NewStore()
	seedUser(t, s, "u1", "u1@mercado.test", entity.RoleBuyer)
	s.FailOn("notifications.create", errors.New("tabla bloqueada"))

	out, err := newUserUseCase(s).AssignRole(context.Background(), captainID, dto.AssignRoleRequest{UserID: "u1", Role: entity.RoleSeller})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSeller, out.Role)
}

func TestAssignRole_Errores(t *testing.T) {
	s := memory.NewStore()
	seedUser(t, s, "u1", "u1@mercado.test", entity.RoleBuyer)
	seedUser(t, s, captainID, "cap@mercado.test", entity.RoleCaptain)
	uc := newUserUseCase(s)
	ctx := context.Background()

	_, err := uc.AssignRole(ctx, captainID, dto.AssignRoleRequest{UserID: "u1", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AssignRole(ctx, captainID, dto.AssignRoleRequest{UserID: captainID, Role: entity.RoleBuyer})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.AssignRole(ctx, captainID, dto.AssignRoleRequest{UserID: "nadie", Role: entity.RoleBuyer})
	assert.True(t, domain.IsNotFound(err))

	s.FailOn("user_roles.assign", errors.New("timeout"))
	_, err = uc.AssignRole(ctx, captainID, dto.AssignRoleRequest{UserID: "u1", Role: entity.RoleSeller})
	require.Error(t, err)
	s.FailOn("user_roles.assign", nil)
	primary, err := memory.NewUserRoleRepository(s).GetPrimaryRole(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBuyer, primary.Name, "el rol anterior se conserva si la asignación falla")
}

func TestListUsers_FiltraPorRol(t *testing.T) {
	s := memory.NewStore()
	seedUser(t, s, "u1", "u1@mercado.test", entity.RoleBuyer)
	seedUser(t, s, "u2", "u2@mercado.test", entity.RoleSeller)
	seedUser(t, s, "u3", "u3@mercado.test", entity.RoleSeller)
	uc := newUserUseCase(s)

	out, err := uc.ListUsers(context.Background(), entity.RoleSeller, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	for _, u := range out.Items {
		assert.Equal(t, entity.RoleSeller, u.Role)
	}
	assert.Equal(t, 20, out.Page.Limit)

	_, err = uc.ListUsers(context.Background(), "root", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
