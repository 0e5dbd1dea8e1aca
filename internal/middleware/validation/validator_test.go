package validation

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidatedApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(Middleware(cfg))
	app.Post("/chat", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func post(t *testing.T, app *fiber.App, contentType, body string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte(body)))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestValidationPassesWellFormedQuery(t *testing.T) {
	app := newValidatedApp(Config{})
	assert.Equal(t, http.StatusOK, post(t, app, "application/json", `{"query":"what is argo"}`))
}

func TestValidationIgnoresNonPost(t *testing.T) {
	app := newValidatedApp(Config{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestValidationRejectsWrongContentType(t *testing.T) {
	app := newValidatedApp(Config{})
	assert.Equal(t, http.StatusUnsupportedMediaType, post(t, app, "text/plain", `{"query":"x"}`))
}

func TestValidationRejectsBadJSON(t *testing.T) {
	app := newValidatedApp(Config{})
	assert.Equal(t, http.StatusBadRequest, post(t, app, "application/json", `{broken`))
}

func TestValidationRequiresQuery(t *testing.T) {
	app := newValidatedApp(Config{})
	assert.Equal(t, http.StatusBadRequest, post(t, app, "application/json", `{}`))
	assert.Equal(t, http.StatusBadRequest, post(t, app, "application/json", `{"query":"   "}`))
	assert.Equal(t, http.StatusBadRequest, post(t, app, "application/json", `{"query":42}`))
}

func TestValidationEnforcesMaxLength(t *testing.T) {
	app := newValidatedApp(Config{MaxQueryLength: 50})
	long := strings.Repeat("a", 51)
	assert.Equal(t, http.StatusBadRequest, post(t, app, "application/json", `{"query":"`+long+`"}`))
	assert.Equal(t, http.StatusOK, post(t, app, "application/json", `{"query":"`+strings.Repeat("a", 50)+`"}`))
}

func TestValidationRejectsMarkupInjection(t *testing.T) {
	app := newValidatedApp(Config{})
	for _, payload := range []string{
		`{"query":"<script>alert(1)</script>"}`,
		`{"query":"click javascript:void(0)"}`,
		`{"query":"<IFRAME src=x>"}`,
	} {
		assert.Equal(t, http.StatusBadRequest, post(t, app, "application/json", payload), payload)
	}
}
