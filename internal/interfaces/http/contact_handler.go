package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/application/usecase"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

// ContactHandler formulario de contacto público.
type ContactHandler struct {
	uc  *usecase.ContactUseCase
	log *logger.Logger
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *usecase.ContactUseCase, log *logger.Logger) *ContactHandler {
	return &ContactHandler{uc: uc, log: log}
}

// Submit godoc
// @Summary      Enviar formulario de contacto
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "name, email, message"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contact [post]
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Submit(c.UserContext(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{
		"message": "gracias por escribirnos, te contactaremos pronto",
		"id":      out.ID,
	})
}
