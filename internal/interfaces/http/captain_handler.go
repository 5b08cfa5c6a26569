package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/application/usecase"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

// CaptainHandler endpoints de administración: revisión de productos, roles y contacto.
type CaptainHandler struct {
	products *usecase.ProductUseCase
	users    *usecase.UserUseCase
	contacts *usecase.ContactUseCase
	log      *logger.Logger
}

// NewCaptainHandler construye el handler.
func NewCaptainHandler(products *usecase.ProductUseCase, users *usecase.UserUseCase, contacts *usecase.ContactUseCase, log *logger.Logger) *CaptainHandler {
	return &CaptainHandler{products: products, users: users, contacts: contacts, log: log}
}

// PendingProducts godoc
// @Summary      Productos pendientes de revisión
// @Tags         captain
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/captain/products/pending [get]
func (h *CaptainHandler) PendingProducts(c *fiber.Ctx) error {
	out, err := h.products.ListPending(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"items": out.Items, "page": out.Page})
}

// ApproveProduct godoc
// @Summary      Aprobar producto
// @Tags         captain
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReviewProductRequest  true  "product_id"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/captain/products/approve [post]
func (h *CaptainHandler) ApproveProduct(c *fiber.Ctx) error {
	var in dto.ReviewProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ProductID == "" {
		return abort(c, fiber.StatusBadRequest, "VALIDATION", "product_id es requerido")
	}
	if err := checkID("product_id", in.ProductID); err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.products.Approve(c.UserContext(), GetUserID(c), in.ProductID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"product": out})
}

// RejectProduct godoc
// @Summary      Rechazar producto
// @Tags         captain
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReviewProductRequest  true  "product_id, reason"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/captain/products/reject [post]
func (h *CaptainHandler) RejectProduct(c *fiber.Ctx) error {
	var in dto.ReviewProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ProductID == "" {
		return abort(c, fiber.StatusBadRequest, "VALIDATION", "product_id es requerido")
	}
	if err := checkID("product_id", in.ProductID); err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.products.Reject(c.UserContext(), GetUserID(c), in.ProductID, in.Reason)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"product": out})
}

// ListUsers godoc
// @Summary      Usuarios con su rol primario
// @Tags         captain
// @Security     Bearer
// @Produce      json
// @Param        role    query  string  false  "buyer|seller|captain"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/captain/users [get]
func (h *CaptainHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.users.ListUsers(c.UserContext(), c.Query("role"), pageFromQuery(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"items": out.Items, "page": out.Page})
}

// AssignRole godoc
// @Summary      Asignar rol primario
// @Tags         captain
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignRoleRequest  true  "user_id, role"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/captain/users/assign-role [post]
func (h *CaptainHandler) AssignRole(c *fiber.Ctx) error {
	var in dto.AssignRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := checkID("user_id", in.UserID); err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.users.AssignRole(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"user": out})
}

// ListContacts godoc
// @Summary      Mensajes del formulario de contacto
// @Tags         captain
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.ContactSubmissionResponse
// @Router       /api/captain/contact-submissions [get]
func (h *CaptainHandler) ListContacts(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	items, err := h.contacts.List(c.UserContext(), c.Query("status"), page)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{
		"items": items,
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Count: len(items)},
	})
}
