package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

// Mensaje único para errores internos; el detalle solo va al log.
const internalMessage = "error interno del servidor"

// apiError resultado de clasificar un error de dominio.
type apiError struct {
	status  int
	code    string
	message string
	details []string
}

// classify traduce un error de dominio a status + código. Lo no reconocido es INTERNAL.
func classify(err error) apiError {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return apiError{fiber.StatusBadRequest, "VALIDATION", ve.Message, ve.Details}
	case errors.Is(err, domain.ErrInvalidInput):
		return apiError{fiber.StatusBadRequest, "VALIDATION", err.Error(), nil}
	case errors.Is(err, domain.ErrResetTokenInvalid):
		return apiError{fiber.StatusBadRequest, "RESET_TOKEN_INVALID", err.Error(), nil}
	case errors.Is(err, domain.ErrResetTokenExpired):
		return apiError{fiber.StatusBadRequest, "RESET_TOKEN_EXPIRED", err.Error(), nil}
	case errors.Is(err, domain.ErrResetTokenUsed):
		return apiError{fiber.StatusBadRequest, "RESET_TOKEN_USED", err.Error(), nil}
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return apiError{fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error(), nil}
	case errors.Is(err, domain.ErrForbidden):
		return apiError{fiber.StatusForbidden, "FORBIDDEN", err.Error(), nil}
	case domain.IsNotFound(err):
		return apiError{fiber.StatusNotFound, "NOT_FOUND", err.Error(), nil}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return apiError{fiber.StatusConflict, "EMAIL_EXISTS", err.Error(), nil}
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return apiError{fiber.StatusConflict, "CONFLICT", err.Error(), nil}
	}
	return apiError{fiber.StatusInternalServerError, "INTERNAL", internalMessage, nil}
}

// fail escribe el sobre de error. Los 5xx se registran con el error completo.
func fail(c *fiber.Ctx, log *logger.Logger, err error) error {
	ae := classify(err)
	if ae.status >= fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("user_id", GetUserID(c)).
			Msg("error no controlado")
	}
	return c.Status(ae.status).JSON(dto.ErrorResponse{
		Code:    ae.code,
		Error:   ae.message,
		Details: ae.details,
	})
}

// abort responde un error propio de la capa HTTP (cuerpo inválido, auth).
func abort(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Error: msg})
}

// badBody respuesta estándar cuando BodyParser falla.
func badBody(c *fiber.Ctx) error {
	return abort(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo de la petición inválido")
}

// ErrorHandler manejador global de Fiber: rutas inexistentes, métodos no permitidos
// y cualquier error que un handler devuelva sin responder.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return abort(c, fe.Code, fiberCode(fe.Code), fe.Message)
		}
		return fail(c, log, err)
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	}
	if status >= fiber.StatusInternalServerError {
		return "INTERNAL"
	}
	return "ERROR"
}

// ok escribe {"success": true, ...payload}.
func ok(c *fiber.Ctx, status int, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// pathID lee el :id de la ruta. Un id que no es UUID no puede existir: 404.
func pathID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: id %q", domain.ErrNotFound, id)
	}
	return id, nil
}

// checkID valida un id recibido en cuerpo o query; vacío se deja al caso de uso.
func checkID(field, v string) error {
	if v == "" {
		return nil
	}
	if _, err := uuid.Parse(v); err != nil {
		return domain.NewValidationError(field+" debe ser un UUID", v)
	}
	return nil
}

// pageFromQuery lee limit/offset de la query y aplica topes.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}
