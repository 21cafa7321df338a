package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seguraep/acm-reportes/app/models"
)

func TestFieldErrors(t *testing.T) {
	err := validate.Struct(registerRequest{
		Nombres:  "Al",
		Email:    "no-es-un-email",
		Password: "123",
	})
	require.Error(t, err)

	fields := fieldErrors(err)
	assert.Contains(t, fields, "Nombres")
	assert.Contains(t, fields, "Apellidos")
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Cedula")
	assert.Contains(t, fields, "Password")
	assert.Contains(t, fields["Email"], "email")
}

func TestFieldErrorsIgnoresNonValidatorErrors(t *testing.T) {
	assert.Empty(t, fieldErrors(io.EOF))
}

func TestConflictResponseNamesOffendingField(t *testing.T) {
	app := fiber.New()
	app.Post("/register", func(c *fiber.Ctx) error {
		existing := &models.User{Nombres: "Ana", Apellidos: "Mora"}
		return conflict(c, "cedula", existing)
	})

	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Campo             string `json:"campo"`
			UsuarioExistente  struct {
				Nombres   string `json:"nombres"`
				Apellidos string `json:"apellidos"`
			} `json:"usuario_existente"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "cedula", body.Data.Campo)
	assert.Equal(t, "Ana", body.Data.UsuarioExistente.Nombres)
	assert.Equal(t, "Mora", body.Data.UsuarioExistente.Apellidos)
}

func TestEnvelopeShape(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return ok(c, "listo", fiber.Map{"valor": 1})
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return fail(c, fiber.StatusNotFound, "no encontrado")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"listo","data":{"valor":1}}`, string(payload))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	payload, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"no encontrado","data":null}`, string(payload))
}
