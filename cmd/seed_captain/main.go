// seed_captain crea (o promueve) la cuenta captain inicial. El registro público solo
// admite buyer y seller, así que el primer administrador se siembra con esta herramienta.
//
// Uso: go run ./cmd/seed_captain <email> <password> [nombre] [apellido]
// Si el email ya existe, la cuenta se promueve a captain sin tocar su contraseña.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/mercado-b2b-api/internal/application/auth"
	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/bootstrap"
	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
	"github.com/jhoicas/mercado-b2b-api/internal/infrastructure/mail"
	"github.com/jhoicas/mercado-b2b-api/internal/infrastructure/postgres"
	"github.com/jhoicas/mercado-b2b-api/pkg/config"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: seed_captain <email> <password> [nombre] [apellido]")
		os.Exit(2)
	}
	in := dto.RegisterRequest{
		Email:     os.Args[1],
		Password:  os.Args[2],
		FirstName: "Captain",
		LastName:  "Admin",
		Role:      entity.RoleBuyer,
	}
	if len(os.Args) > 3 {
		in.FirstName = os.Args[3]
	}
	if len(os.Args) > 4 {
		in.LastName = os.Args[4]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_captain"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	repos := bootstrap.PostgresRepositories(pool)

	authUC := auth.NewAuthUseCase(auth.Deps{
		Users:       repos.Users,
		Roles:       repos.Roles,
		UserRoles:   repos.UserRoles,
		ResetTokens: repos.ResetTokens,
		Tx:          repos.Tx,
		Mailer:      mail.NewLogMailer(log),
		Log:         log,
	}, auth.Config{JWTSecret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})

	userID, err := ensureUser(ctx, authUC, repos.Users, in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear usuario: %v\n", err)
		os.Exit(1)
	}
	if err := promote(ctx, repos, userID); err != nil {
		fmt.Fprintf(os.Stderr, "Asignar rol captain: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Captain listo: %s (%s)\n", domain.NormalizeEmail(in.Email), userID)
}

// ensureUser registra la cuenta o devuelve el id de la existente.
func ensureUser(ctx context.Context, uc *auth.AuthUseCase, users repository.UserRepository, in dto.RegisterRequest) (string, error) {
	u, err := uc.RegisterUser(ctx, in)
	if err == nil {
		return u.ID, nil
	}
	if !errors.Is(err, domain.ErrEmailAlreadyExists) {
		return "", err
	}
	existing, err := users.GetByEmail(ctx, domain.NormalizeEmail(in.Email))
	if err != nil {
		return "", err
	}
	return existing.ID, nil
}

func promote(ctx context.Context, repos bootstrap.Repositories, userID string) error {
	role, err := repos.Roles.GetByName(ctx, entity.RoleCaptain)
	if err != nil {
		return err
	}
	return repos.Tx.Run(ctx, func(tx repository.TxRepos) error {
		return tx.UserRoles.AssignPrimary(ctx, &entity.UserRole{
			UserID:     userID,
			RoleID:     role.ID,
			IsPrimary:  true,
			AssignedAt: time.Now(),
		})
	})
}
