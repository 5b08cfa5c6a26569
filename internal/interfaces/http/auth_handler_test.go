package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-b2b-api/internal/application/auth"
	pkgjwt "github.com/jhoicas/mercado-b2b-api/pkg/jwt"
)

func TestAuth_RegistroLoginRolEnToken(t *testing.T) {
	env := newTestEnv(t)
	id := env.register(t, "Vendedor@Mercado.test", "seller")

	tok := env.login(t, "vendedor@mercado.test")
	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "seller", claims.Role)
	assert.Equal(t, "vendedor@mercado.test", claims.Email)
	assert.Regexp(t, `^SLR-`, claims.VendorCode)

	status, body := env.call(t, http.MethodGet, "/api/auth/me", tok, nil)
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "seller", user["role"])
	assert.NotContains(t, user, "password_hash")
}

func TestAuth_AliasRegister(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.call(t, http.MethodPost, "/api/register", "", fiber.Map{
		"email": "alias@mercado.test", "password": testPassword,
		"first_name": "Luis", "last_name": "Gómez",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "buyer", body["user"].(map[string]interface{})["role"], "rol por defecto buyer")
}

func TestAuth_EmailDuplicado(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "dup@mercado.test", "buyer")

	status, body := env.call(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email": "DUP@mercado.test", "password": testPassword,
		"first_name": "Otro", "last_name": "Usuario", "role": "seller",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_EXISTS", body["code"])
	assert.Equal(t, false, body["success"])
}

func TestAuth_RegistroPasswordDebil_DetallaReglas(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.call(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email": "debil@mercado.test", "password": "abc",
		"first_name": "Ana", "last_name": "Ruiz",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
	details, ok := body["details"].([]interface{})
	require.True(t, ok, "details debe ser una lista")
	assert.Len(t, details, 4, "longitud, mayúscula, número y especial")
}

func TestAuth_RegistroCaptainNoPermitido(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.call(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email": "cap@mercado.test", "password": testPassword,
		"first_name": "Ana", "last_name": "Ruiz", "role": "captain",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestAuth_LoginCredencialesInvalidas(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ana@mercado.test", "buyer")

	status, wrongPw := env.call(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "ana@mercado.test", "password": "Incorrecta#1",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, unknown := env.call(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "nadie@mercado.test", "password": testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, wrongPw["error"], unknown["error"], "no debe revelar si el email existe")
}

func TestAuth_ValidatePassword(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.call(t, http.MethodPost, "/api/auth/validate-password", "", fiber.Map{"password": "sinmayus1!"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["is_valid"])
	assert.Len(t, body["errors"], 1)

	_, body = env.call(t, http.MethodPost, "/api/auth/validate-password", "", fiber.Map{"password": testPassword})
	assert.Equal(t, true, body["is_valid"])
	assert.Empty(t, body["errors"])
}

func TestAuth_ForgotPassword_MismaRespuesta(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "olvido@mercado.test", "buyer")

	status, known := env.call(t, http.MethodPost, "/api/auth/forgot-password", "", fiber.Map{"email": "olvido@mercado.test"})
	require.Equal(t, http.StatusOK, status)
	status, unknown := env.call(t, http.MethodPost, "/api/auth/forgot-password", "", fiber.Map{"email": "nadie@mercado.test"})
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, auth.ForgotPasswordMessage, known["message"])
	assert.Equal(t, known, unknown)
	assert.Len(t, env.mailer.sent, 1, "solo la cuenta existente recibe correo")
}

func TestAuth_ResetPassword_UnSoloUso(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "reset@mercado.test", "buyer")
	_, _ = env.call(t, http.MethodPost, "/api/auth/forgot-password", "", fiber.Map{"email": "reset@mercado.test"})
	token := resetTokenFrom(t, env.mailer.last(t))

	const nueva = "NuevaClave#99"
	status, body := env.call(t, http.MethodPost, "/api/auth/reset-password", "", fiber.Map{
		"token": token, "new_password": nueva,
	})
	require.Equal(t, http.StatusOK, status, "%v", body)

	status, body = env.call(t, http.MethodPost, "/api/auth/reset-password", "", fiber.Map{
		"token": token, "new_password": "OtraClave#77",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "RESET_TOKEN_USED", body["code"])

	status, _ = env.call(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": "reset@mercado.test", "password": nueva,
	})
	assert.Equal(t, http.StatusOK, status, "la nueva contraseña debe servir para ingresar")

	status, body = env.call(t, http.MethodPost, "/api/auth/reset-password", "", fiber.Map{
		"token": "no-existe", "new_password": nueva,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "RESET_TOKEN_INVALID", body["code"])
}

func TestAuth_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "cambio@mercado.test", "buyer")
	tok := env.login(t, "cambio@mercado.test")

	status, body := env.call(t, http.MethodPut, "/api/auth/change-password", tok, fiber.Map{
		"current_password": "Incorrecta#1", "new_password": "Distinta#123",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body["code"])

	status, _ = env.call(t, http.MethodPut, "/api/auth/change-password", tok, fiber.Map{
		"current_password": testPassword, "new_password": "Distinta#123",
	})
	assert.Equal(t, http.StatusOK, status)

	status, _ = env.call(t, http.MethodPut, "/api/auth/change-password", "", fiber.Map{
		"current_password": testPassword, "new_password": "Distinta#123",
	})
	assert.Equal(t, http.StatusUnauthorized, status, "requiere token")
}

func TestAuth_CuerpoInvalido(t *testing.T) {
	env := newTestEnv(t)
	resp := env.raw(t, http.MethodPost, "/api/auth/login", "", nil, map[string]string{
		"Content-Type": "application/json",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
