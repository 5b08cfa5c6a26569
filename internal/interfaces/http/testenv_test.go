package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-b2b-api/internal/application/ports"
	"github.com/jhoicas/mercado-b2b-api/internal/bootstrap"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/mercado-b2b-api/internal/interfaces/http"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

const testPassword = "Secreta#2024"

// captureMailer guarda los correos en memoria.
type captureMailer struct {
	mu   sync.Mutex
	sent []ports.Mail
}

func (m *captureMailer) Send(_ context.Context, msg ports.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *captureMailer) last(t *testing.T) ports.Mail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent, "se esperaba al menos un correo")
	return m.sent[len(m.sent)-1]
}

type testEnv struct {
	app    *fiber.App
	store  *memory.Store
	repos  bootstrap.Repositories
	mailer *captureMailer
}

// newTestEnv levanta la API completa sobre el store en memoria.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	repos := bootstrap.MemoryRepositories(store)
	mailer := &captureMailer{}
	deps := bootstrap.RouterDeps(repos, mailer, bootstrap.Options{
		AppName:          "Mercado B2B",
		JWTSecret:        testJWTSecret,
		JWTIssuer:        testIssuer,
		FrontendURL:      "http://localhost:3000",
		ContactRecipient: "ventas@mercado.test",
	}, logger.Nop())
	app := apphttp.NewApp(apphttp.AppConfig{Name: "test"}, deps)
	return &testEnv{app: app, store: store, repos: repos, mailer: mailer}
}

// call lanza una petición JSON y devuelve status y cuerpo decodificado.
func (e *testEnv) call(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	resp := e.raw(t, method, path, token, body, nil)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &out), "cuerpo no JSON: %s", string(data))
	}
	return resp.StatusCode, out
}

func (e *testEnv) raw(t *testing.T, method, path, token string, body interface{}, headers map[string]string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// register crea una cuenta por la API y devuelve su id.
func (e *testEnv) register(t *testing.T, email, role string) string {
	t.Helper()
	status, body := e.call(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":      email,
		"password":   testPassword,
		"first_name": "Ana",
		"last_name":  "Pérez",
		"role":       role,
	})
	require.Equal(t, http.StatusCreated, status, "registro: %v", body)
	return body["user"].(map[string]interface{})["id"].(string)
}

// login devuelve el token de la cuenta.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	status, body := e.call(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email": email, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, status, "login: %v", body)
	return body["token"].(string)
}

// captain registra una cuenta y la promueve a captain directamente en el store.
func (e *testEnv) captain(t *testing.T, email string) (string, string) {
	t.Helper()
	id := e.register(t, email, entity.RoleBuyer)
	role, err := e.repos.Roles.GetByName(context.Background(), entity.RoleCaptain)
	require.NoError(t, err)
	require.NoError(t, e.repos.UserRoles.AssignPrimary(context.Background(), &entity.UserRole{
		UserID: id, RoleID: role.ID, IsPrimary: true,
	}))
	return id, e.login(t, email)
}

// resetTokenFrom extrae el token plano del enlace enviado por correo.
func resetTokenFrom(t *testing.T, m ports.Mail) string {
	t.Helper()
	const marker = "token="
	i := strings.Index(m.TextBody, marker)
	require.GreaterOrEqual(t, i, 0, "el correo debe traer el enlace con token")
	rest := m.TextBody[i+len(marker):]
	if j := strings.IndexAny(rest, "\n\" "); j >= 0 {
		rest = rest[:j]
	}
	return rest
}
