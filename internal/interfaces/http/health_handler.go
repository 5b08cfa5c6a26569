package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

// HealthHandler liveness y estado del almacenamiento.
type HealthHandler struct {
	db      repository.HealthChecker
	driver  string
	started time.Time
	log     *logger.Logger
}

// NewHealthHandler construye el handler.
func NewHealthHandler(db repository.HealthChecker, driver string, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, driver: driver, started: time.Now(), log: log}
}

// Health godoc
// @Summary      Liveness
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, fiber.Map{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

// DB godoc
// @Summary      Estado del almacenamiento
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/health/db [get]
func (h *HealthHandler) DB(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Str("driver", h.driver).Msg("ping de almacenamiento falló")
		return abort(c, fiber.StatusServiceUnavailable, "DB_UNAVAILABLE", "almacenamiento no disponible")
	}
	return ok(c, fiber.StatusOK, fiber.Map{"status": "ok", "driver": h.driver})
}
