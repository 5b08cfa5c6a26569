package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/mercado-b2b-api/internal/bootstrap"
	"github.com/jhoicas/mercado-b2b-api/internal/infrastructure/mail"
	"github.com/jhoicas/mercado-b2b-api/internal/infrastructure/memory"
	"github.com/jhoicas/mercado-b2b-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/mercado-b2b-api/internal/interfaces/http"
	"github.com/jhoicas/mercado-b2b-api/pkg/config"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var repos bootstrap.Repositories
	switch cfg.DB.Driver {
	case bootstrap.DriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		repos = bootstrap.MemoryRepositories(memory.NewStore())
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos = bootstrap.PostgresRepositories(pool)
	}

	smtpMailer, err := mail.New(cfg.SMTP, log)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración SMTP")
	}
	mailer := mail.NewAsyncMailer(smtpMailer, 0, log)

	deps := bootstrap.RouterDeps(repos, mailer, bootstrap.OptionsFromConfig(cfg), log)
	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		AllowOrigins: cfg.HTTP.AllowOrigins,
		SwaggerFile:  cfg.Docs.SwaggerFile,
	}, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := mailer.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("emails pendientes sin enviar")
	}

	log.Info().Msg("aplicación detenida")
}
