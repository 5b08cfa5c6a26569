package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/mercado-b2b-api/internal/application/auth"
	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
	"github.com/jhoicas/mercado-b2b-api/pkg/password"
)

// AuthHandler maneja registro, login y recuperación de contraseña.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, nombre, rol (buyer|seller)"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{"message": "usuario registrado", "user": user})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return abort(c, fiber.StatusBadRequest, "VALIDATION", "email y password son requeridos")
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{
		"token":      out.Token,
		"expires_at": out.ExpiresAt,
		"user":       out.User,
	})
}

// ValidatePassword godoc
// @Summary      Checklist de fortaleza de contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidatePasswordRequest  true  "password"
// @Success      200   {object}  password.Result
// @Router       /api/auth/validate-password [post]
func (h *AuthHandler) ValidatePassword(c *fiber.Ctx) error {
	var in dto.ValidatePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res := password.Validate(in.Password)
	if res.Errors == nil {
		res.Errors = []string{}
	}
	return ok(c, fiber.StatusOK, fiber.Map{"is_valid": res.IsValid, "errors": res.Errors})
}

// ForgotPassword godoc
// @Summary      Solicitar enlace de recuperación
// @Description  Responde el mismo mensaje exista o no la cuenta.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ForgotPassword(c.UserContext(), in); err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"message": auth.ForgotPasswordMessage})
}

// ResetPassword godoc
// @Summary      Restablecer contraseña con token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "token, new_password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ResetPassword(c.UserContext(), in); err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"message": "contraseña actualizada"})
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"user": user})
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "current_password, new_password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetUserID(c), in); err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"message": "contraseña actualizada"})
}
