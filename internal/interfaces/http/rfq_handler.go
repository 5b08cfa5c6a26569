package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/application/rfq"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

// RFQHandler solicitudes de cotización de compradores y respuestas de vendedores.
type RFQHandler struct {
	uc  *rfq.UseCase
	log *logger.Logger
}

// NewRFQHandler construye el handler.
func NewRFQHandler(uc *rfq.UseCase, log *logger.Logger) *RFQHandler {
	return &RFQHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear RFQ
// @Tags         rfq
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRFQRequest  true  "product_id, quantity, ..."
// @Success      201   {object}  dto.RFQResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rfq [post]
func (h *RFQHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRFQRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := checkID("product_id", in.ProductID); err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{"rfq": out})
}

// ListMine godoc
// @Summary      RFQs del comprador
// @Tags         rfq
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.RFQListResponse
// @Router       /api/rfq [get]
func (h *RFQHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListForBuyer(c.UserContext(), GetUserID(c), c.Query("status"), pageFromQuery(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"items": out.Items, "page": out.Page})
}

// GetByID godoc
// @Summary      Detalle de RFQ
// @Tags         rfq
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la RFQ"
// @Success      200  {object}  dto.RFQResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rfq/{id} [get]
func (h *RFQHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), GetRole(c), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"rfq": out})
}

// Update godoc
// @Summary      Editar RFQ propia
// @Description  Una RFQ rechazada o en negociación pasa a resubmitted al editarse.
// @Tags         rfq
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la RFQ"
// @Param        body  body  dto.UpdateRFQRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.RFQResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rfq/{id} [put]
func (h *RFQHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	var in dto.UpdateRFQRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateByBuyer(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"rfq": out})
}

// PDF godoc
// @Summary      Resumen PDF de la RFQ
// @Tags         rfq
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la RFQ"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rfq/{id}/pdf [get]
func (h *RFQHandler) PDF(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	data, filename, err := h.uc.PDF(c.UserContext(), GetUserID(c), GetRole(c), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(data)
}

// SellerList godoc
// @Summary      RFQs dirigidas al vendedor
// @Tags         seller
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.RFQListResponse
// @Router       /api/seller/rfqs [get]
func (h *RFQHandler) SellerList(c *fiber.Ctx) error {
	out, err := h.uc.ListForSeller(c.UserContext(), GetUserID(c), c.Query("status"), pageFromQuery(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"items": out.Items, "page": out.Page})
}

// Respond godoc
// @Summary      Acción del vendedor sobre una RFQ
// @Tags         seller
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la RFQ"
// @Param        body  body  dto.SellerRFQActionRequest  true  "action, message, quoted_price, lead_time_days"
// @Success      200   {object}  dto.RFQResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/seller/rfqs/{id}/respond [post]
func (h *RFQHandler) Respond(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	var in dto.SellerRFQActionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Respond(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"rfq": out})
}
