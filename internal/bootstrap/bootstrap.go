// Package bootstrap arma repositorios y casos de uso a partir de la configuración.
// Lo usan cmd/api y las pruebas de punta a punta de la capa HTTP.
package bootstrap

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/mercado-b2b-api/internal/application/auth"
	"github.com/jhoicas/mercado-b2b-api/internal/application/ports"
	"github.com/jhoicas/mercado-b2b-api/internal/application/rfq"
	"github.com/jhoicas/mercado-b2b-api/internal/application/usecase"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
	"github.com/jhoicas/mercado-b2b-api/internal/infrastructure/catalogxml"
	"github.com/jhoicas/mercado-b2b-api/internal/infrastructure/memory"
	"github.com/jhoicas/mercado-b2b-api/internal/infrastructure/pdf"
	"github.com/jhoicas/mercado-b2b-api/internal/infrastructure/postgres"
	apphttp "github.com/jhoicas/mercado-b2b-api/internal/interfaces/http"
	"github.com/jhoicas/mercado-b2b-api/pkg/config"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

// Drivers de almacenamiento soportados.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Repositories conjunto de puertos de persistencia de un driver.
type Repositories struct {
	Driver        string
	Users         repository.UserRepository
	Roles         repository.RoleRepository
	UserRoles     repository.UserRoleRepository
	Products      repository.ProductRepository
	Categories    repository.CategoryRepository
	Currencies    repository.CurrencyRepository
	RFQs          repository.RFQRepository
	Notifications repository.NotificationRepository
	ResetTokens   repository.PasswordResetTokenRepository
	Contacts      repository.ContactSubmissionRepository
	Tx            repository.TxRunner
	Health        repository.HealthChecker
}

// PostgresRepositories repositorios sobre el pool de PostgreSQL.
func PostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Driver:        DriverPostgres,
		Users:         postgres.NewUserRepository(pool),
		Roles:         postgres.NewRoleRepository(pool),
		UserRoles:     postgres.NewUserRoleRepository(pool),
		Products:      postgres.NewProductRepository(pool),
		Categories:    postgres.NewCategoryRepository(pool),
		Currencies:    postgres.NewCurrencyRepository(pool),
		RFQs:          postgres.NewRFQRepository(pool),
		Notifications: postgres.NewNotificationRepository(pool),
		ResetTokens:   postgres.NewResetTokenRepository(pool),
		Contacts:      postgres.NewContactRepository(pool),
		Tx:            postgres.NewTxRunner(pool),
		Health:        postgres.NewHealth(pool),
	}
}

// MemoryRepositories repositorios sobre el store en memoria.
func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Driver:        DriverMemory,
		Users:         memory.NewUserRepository(s),
		Roles:         memory.NewRoleRepository(s),
		UserRoles:     memory.NewUserRoleRepository(s),
		Products:      memory.NewProductRepository(s),
		Categories:    memory.NewCategoryRepository(s),
		Currencies:    memory.NewCurrencyRepository(s),
		RFQs:          memory.NewRFQRepository(s),
		Notifications: memory.NewNotificationRepository(s),
		ResetTokens:   memory.NewResetTokenRepository(s),
		Contacts:      memory.NewContactRepository(s),
		Tx:            memory.NewTxRunner(s),
		Health:        s,
	}
}

// Options parámetros de los casos de uso que no son dependencias.
type Options struct {
	AppName          string
	JWTSecret        string
	JWTIssuer        string
	TokenTTL         time.Duration
	ResetTTL         time.Duration
	FrontendURL      string
	ContactRecipient string
}

// OptionsFromConfig toma las opciones de la configuración cargada.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		AppName:          cfg.App.Name,
		JWTSecret:        cfg.JWT.Secret,
		JWTIssuer:        cfg.JWT.Issuer,
		TokenTTL:         cfg.JWT.TTL(),
		ResetTTL:         cfg.Auth.ResetTokenTTL(),
		FrontendURL:      cfg.App.FrontendURL,
		ContactRecipient: cfg.Auth.ContactRecipient,
	}
}

// RouterDeps construye todos los casos de uso y los entrega al router HTTP.
func RouterDeps(repos Repositories, mailer ports.Mailer, opts Options, log *logger.Logger) apphttp.RouterDeps {
	if log == nil {
		log = logger.Nop()
	}
	notifier := usecase.NewNotifier(repos.Notifications, log)

	authUC := auth.NewAuthUseCase(auth.Deps{
		Users:       repos.Users,
		Roles:       repos.Roles,
		UserRoles:   repos.UserRoles,
		ResetTokens: repos.ResetTokens,
		Tx:          repos.Tx,
		Mailer:      mailer,
		Log:         log,
	}, auth.Config{
		JWTSecret:   opts.JWTSecret,
		Issuer:      opts.JWTIssuer,
		TokenTTL:    opts.TokenTTL,
		ResetTTL:    opts.ResetTTL,
		FrontendURL: opts.FrontendURL,
	})

	return apphttp.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Currencies, notifier, log),
		UserUC:         usecase.NewUserUseCase(repos.Users, repos.Roles, repos.Tx, notifier, log),
		CatalogUC:      usecase.NewCatalogUseCase(repos.Categories, repos.Currencies, repos.Products, catalogxml.NewBuilder(), opts.AppName),
		ContactUC:      usecase.NewContactUseCase(repos.Contacts, mailer, opts.ContactRecipient, log),
		NotificationUC: usecase.NewNotificationUseCase(repos.Notifications),
		DashboardUC:    usecase.NewDashboardUseCase(repos.Products, repos.RFQs),
		RFQUC: rfq.NewUseCase(rfq.Deps{
			RFQs:       repos.RFQs,
			Products:   repos.Products,
			Users:      repos.Users,
			Currencies: repos.Currencies,
			Notifier:   notifier,
			PDF:        pdf.NewMarotoRFQGenerator(opts.AppName),
			Log:        log,
		}),
		DB:        repos.Health,
		DBDriver:  repos.Driver,
		JWTSecret: opts.JWTSecret,
		Log:       log,
	}
}
