package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/hisaab-kitaab/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/hisaab-kitaab/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "hisaab-kitaab-test"
	testExpMin    = 60
)

// buildMeApp aplicación mínima: AuthMiddleware + handler que devuelve el username.
func buildMeApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"username": apphttp.GetUsername(c)})
	})
	return app
}

// bearer genera el header Authorization para username.
func bearer(t *testing.T, username string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, username, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doMe(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeUsername(t *testing.T) {
	resp := doMe(t, buildMeApp(), bearer(t, "alice"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "alice", body["username"])
}

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	resp := doMe(t, buildMeApp(), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoIncorrecto_Retorna401(t *testing.T) {
	resp := doMe(t, buildMeApp(), "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	resp := doMe(t, buildMeApp(), "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "alice", testIssuer, -1)
	require.NoError(t, err)

	resp := doMe(t, buildMeApp(), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SecretIncorrecto_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", "alice", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doMe(t, buildMeApp(), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
