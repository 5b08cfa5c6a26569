package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/mercado-b2b-api/internal/application/auth"
	"github.com/jhoicas/mercado-b2b-api/internal/application/rfq"
	"github.com/jhoicas/mercado-b2b-api/internal/application/usecase"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProductUC      *usecase.ProductUseCase
	UserUC         *usecase.UserUseCase
	CatalogUC      *usecase.CatalogUseCase
	ContactUC      *usecase.ContactUseCase
	NotificationUC *usecase.NotificationUseCase
	DashboardUC    *usecase.DashboardUseCase
	RFQUC          *rfq.UseCase
	DB             repository.HealthChecker
	DBDriver       string
	JWTSecret      string
	Log            *logger.Logger
}

// AppConfig parámetros del servidor Fiber.
type AppConfig struct {
	Name         string
	AllowOrigins string // CORS, lista separada por comas
	SwaggerFile  string // vacío o inexistente desactiva /docs
}

// NewApp construye la aplicación Fiber con middlewares globales y todas las rutas.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	log := deps.Log.Named("http")

	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))
	if cfg.AllowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization, If-None-Match",
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		}))
	}

	// Swagger UI: http://localhost:<port>/docs
	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    cfg.Name,
			}))
		} else {
			log.Warn().Str("file", cfg.SwaggerFile).Msg("swagger no disponible")
		}
	}

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")
	authn := AuthMiddleware(deps.JWTSecret)

	// Health (público)
	healthHandler := NewHealthHandler(deps.DB, deps.DBDriver, log)
	api.Get("/health", healthHandler.Health)
	api.Get("/health/db", healthHandler.DB)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/register", authHandler.Register)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/validate-password", authHandler.ValidatePassword)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Get("/me", authn, authHandler.Me)
	authGroup.Put("/change-password", authn, authHandler.ChangePassword)

	// Products: lectura pública, escritura solo seller
	productHandler := NewProductHandler(deps.ProductUC, deps.DashboardUC, log)
	sellerOnly := RequireRole(entity.RoleSeller)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", authn, sellerOnly, productHandler.Create)
	products.Put("/:id", authn, sellerOnly, productHandler.Update)

	// Catálogos (público)
	catalogHandler := NewCatalogHandler(deps.CatalogUC, log)
	api.Get("/catalogs", catalogHandler.Get)
	api.Get("/catalogs/feed.xml", catalogHandler.Feed)

	// Contacto (público)
	contactHandler := NewContactHandler(deps.ContactUC, log)
	api.Post("/contact", contactHandler.Submit)

	// RFQ: creación/edición por buyer; detalle y PDF para participantes o captain
	rfqHandler := NewRFQHandler(deps.RFQUC, log)
	buyerOnly := RequireRole(entity.RoleBuyer)
	anyRole := RequireRole(entity.RoleBuyer, entity.RoleSeller, entity.RoleCaptain)
	rfqs := api.Group("/rfq", authn)
	rfqs.Post("/", buyerOnly, rfqHandler.Create)
	rfqs.Get("/", buyerOnly, rfqHandler.ListMine)
	rfqs.Get("/:id", anyRole, rfqHandler.GetByID)
	rfqs.Put("/:id", buyerOnly, rfqHandler.Update)
	rfqs.Get("/:id/pdf", anyRole, rfqHandler.PDF)

	// Seller
	seller := api.Group("/seller", authn, sellerOnly)
	seller.Get("/products", productHandler.ListOwn)
	seller.Post("/products/:id/submit", productHandler.Submit)
	seller.Get("/rfqs", rfqHandler.SellerList)
	seller.Post("/rfqs/:id/respond", rfqHandler.Respond)
	seller.Get("/dashboard", productHandler.Dashboard)

	// Captain
	captainHandler := NewCaptainHandler(deps.ProductUC, deps.UserUC, deps.ContactUC, log)
	captain := api.Group("/captain", authn, RequireRole(entity.RoleCaptain))
	captain.Get("/products/pending", captainHandler.PendingProducts)
	captain.Post("/products/approve", captainHandler.ApproveProduct)
	captain.Post("/products/reject", captainHandler.RejectProduct)
	captain.Get("/users", captainHandler.ListUsers)
	captain.Post("/users/assign-role", captainHandler.AssignRole)
	captain.Get("/contact-submissions", captainHandler.ListContacts)

	// Notificaciones (cualquier usuario autenticado)
	notificationHandler := NewNotificationHandler(deps.NotificationUC, log)
	notifications := api.Group("/notifications", authn)
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/:id/read", notificationHandler.MarkRead)
}
