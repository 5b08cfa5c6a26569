package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/mercado-b2b-api/internal/application/usecase"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

// CatalogHandler catálogos de referencia y feed XML de productos.
type CatalogHandler struct {
	uc  *usecase.CatalogUseCase
	log *logger.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Categorías, monedas y unidades
// @Tags         catalogs
// @Produce      json
// @Success      200  {object}  dto.CatalogResponse
// @Router       /api/catalogs [get]
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{
		"categories": out.Categories,
		"currencies": out.Currencies,
		"units":      out.Units,
	})
}

// Feed godoc
// @Summary      Catálogo de productos aprobados en XML
// @Description  ETag = SHA-256 del XML canónico; If-None-Match coincidente responde 304.
// @Tags         catalogs
// @Produce      application/xml
// @Success      200  {file}  binary
// @Success      304
// @Router       /api/catalogs/feed.xml [get]
func (h *CatalogHandler) Feed(c *fiber.Ctx) error {
	feed, err := h.uc.Feed(c.UserContext())
	if err != nil {
		return fail(c, h.log, err)
	}
	c.Set(fiber.HeaderETag, feed.ETag)
	if etagMatches(c.Get(fiber.HeaderIfNoneMatch), feed.ETag) {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(feed.XML)
}

// etagMatches compara If-None-Match (lista separada por comas, admite W/ y *) con etag.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}
