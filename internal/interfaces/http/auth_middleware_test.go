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

	apphttp "github.com/jhoicas/Facturas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Facturas-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "ana@facturas.test"
	testIssuer    = "facturas-api-test"
	testExpMin    = 60
)

// buildMeApp construye una aplicación Fiber mínima con AuthMiddleware y un
// handler que devuelve los locals cargados.
func buildMeApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"email":   apphttp.GetEmail(c),
		})
	})
	return app
}

func bearer(t *testing.T, userID string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, testEmail, testIssuer, expMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func getMe(t *testing.T, app *fiber.App, authHeader string) *http.Response {
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

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	resp := getMe(t, buildMeApp(), bearer(t, testUserID, testExpMin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testEmail, body["email"])
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	tests := []struct {
		name     string
		header   func(t *testing.T) string
		wantCode string
	}{
		{"sin header", func(*testing.T) string { return "" }, "MISSING_TOKEN"},
		{"esquema distinto", func(*testing.T) string { return "Basic abc" }, "INVALID_TOKEN"},
		{"token malformado", func(*testing.T) string { return "Bearer token.invalido.aqui" }, "INVALID_TOKEN"},
		{"token expirado", func(t *testing.T) string { return bearer(t, testUserID, -1) }, "INVALID_TOKEN"},
		{"sin usuario", func(t *testing.T) string { return bearer(t, "", testExpMin) }, "INVALID_TOKEN"},
	}
	app := buildMeApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := getMe(t, app, tt.header(t))
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.wantCode)
		})
	}
}

func TestAuthMiddleware_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", testUserID, testEmail, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := getMe(t, buildMeApp(), "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
