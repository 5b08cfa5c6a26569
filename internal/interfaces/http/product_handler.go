package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/application/usecase"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

// ProductHandler catálogo público y gestión de productos del vendedor.
type ProductHandler struct {
	uc        *usecase.ProductUseCase
	dashboard *usecase.DashboardUseCase
	log       *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, dashboard *usecase.DashboardUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, dashboard: dashboard, log: log}
}

// List godoc
// @Summary      Listar productos publicados
// @Tags         products
// @Produce      json
// @Param        category   query  string  false  "Nombre de categoría"
// @Param        seller_id  query  string  false  "ID del vendedor"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	if err := checkID("seller_id", c.Query("seller_id")); err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.ListPublic(c.UserContext(), usecase.PublicProductQuery{
		Category:    c.Query("category"),
		SellerID:    c.Query("seller_id"),
		PageRequest: pageFromQuery(c),
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"items": out.Items, "page": out.Page})
}

// GetByID godoc
// @Summary      Detalle de producto publicado
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.GetPublic(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"product": out})
}

// Create godoc
// @Summary      Crear producto (queda pendiente de revisión)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{"product": out})
}

// Update godoc
// @Summary      Actualizar producto propio
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"product": out})
}

// ListOwn godoc
// @Summary      Productos del vendedor
// @Tags         seller
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending|submitted|approved|rejected"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/seller/products [get]
func (h *ProductHandler) ListOwn(c *fiber.Ctx) error {
	out, err := h.uc.ListBySeller(c.UserContext(), GetUserID(c), c.Query("status"), pageFromQuery(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"items": out.Items, "page": out.Page})
}

// Submit godoc
// @Summary      Enviar producto a revisión
// @Tags         seller
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/seller/products/{id}/submit [post]
func (h *ProductHandler) Submit(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Submit(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"product": out})
}

// Dashboard godoc
// @Summary      Conteos por estado de productos y RFQs del vendedor
// @Tags         seller
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SellerDashboardResponse
// @Router       /api/seller/dashboard [get]
func (h *ProductHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.SellerDashboard(c.UserContext(), GetUserID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"products": out.Products, "rfqs": out.RFQs})
}
