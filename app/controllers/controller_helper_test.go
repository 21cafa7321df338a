package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/seguraep/acm-reportes/app/models"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.False(t, isDuplicateKeyErr(nil))
	assert.False(t, isDuplicateKeyErr(errors.New("connection refused")))
	assert.True(t, isDuplicateKeyErr(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKeyErr(errors.New("Error 1062 (23000): Duplicate entry 'ana@acm.gob.ec' for key 'uniq_users_email'")))
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantOffset int
		wantLimit  int
	}{
		{name: "defaults", query: "", wantOffset: 0, wantLimit: 20},
		{name: "second page", query: "pagina=2&por_pagina=10", wantOffset: 10, wantLimit: 10},
		{name: "page below one is clamped", query: "pagina=0", wantOffset: 0, wantLimit: 20},
		{name: "per page above cap is clamped", query: "por_pagina=500", wantOffset: 0, wantLimit: 100},
		{name: "per page below one is clamped", query: "pagina=3&por_pagina=0", wantOffset: 2, wantLimit: 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/reportes", func(c *fiber.Ctx) error {
				offset, limit := parsePagination(c)
				assert.Equal(t, tc.wantOffset, offset)
				assert.Equal(t, tc.wantLimit, limit)
				return c.SendStatus(fiber.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/reportes?"+tc.query, nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		})
	}
}

func TestParseReportFilter(t *testing.T) {
	app := fiber.New()
	app.Get("/buscar", func(c *fiber.Ctx) error {
		filter, err := parseReportFilter(c)
		require.NoError(t, err)
		require.NotNil(t, filter.FechaDesde)
		assert.Equal(t, "2025-01-01", filter.FechaDesde.Format("2006-01-02"))
		assert.Nil(t, filter.FechaHasta)
		assert.Equal(t, "Norte", filter.Zona)
		assert.Equal(t, "", filter.Distrito)
		assert.Equal(t, models.ESTADO_PENDIENTE, filter.Estado)
		assert.Equal(t, uint(7), filter.UserID)
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/buscar?fecha_desde=2025-01-01&zona=Norte&estado=pendiente&usuario_id=7", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestParseReportFilterRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "malformed fecha_desde", query: "fecha_desde=01-01-2025"},
		{name: "malformed fecha_hasta", query: "fecha_hasta=ayer"},
		{name: "unknown estado", query: "estado=cerrado"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/buscar", func(c *fiber.Ctx) error {
				_, err := parseReportFilter(c)
				assert.Error(t, err)
				return c.SendStatus(fiber.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/buscar?"+tc.query, nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		})
	}
}

func TestSerializeReportSummaryHidesAuthorWhenPublic(t *testing.T) {
	report := &models.Report{
		UUID:            "3f1c2a9e-0000-0000-0000-000000000001",
		NombreAgente:    "Ana Mora",
		CedulaAgente:    "0912345678",
		AutorVerificado: true,
		Zona:            "Norte",
		FechaReporte:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Estado:          models.ESTADO_PENDIENTE,
		Novedad:         "Ruido excesivo",
	}

	private := serializeReportSummary(report, false)
	assert.Equal(t, "Ana Mora", private["nombre_agente"])
	assert.Equal(t, "0912345678", private["cedula_agente"])
	assert.Equal(t, true, private["autor_verificado"])
	assert.NotContains(t, private, "agente")

	public := serializeReportSummary(report, true)
	assert.Equal(t, "Agente verificado", public["agente"])
	assert.NotContains(t, public, "nombre_agente")
	assert.NotContains(t, public, "cedula_agente")

	report.AutorVerificado = false
	assert.Equal(t, "Autor no verificado", serializeReportSummary(report, true)["agente"])
}

func TestSerializeReportDetailKeepsImageOrder(t *testing.T) {
	report := &models.Report{
		UUID:         "3f1c2a9e-0000-0000-0000-000000000002",
		Zona:         "Centro",
		FechaReporte: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Estado:       models.ESTADO_COMPLETADO,
		Novedad:      "Venta ambulante no autorizada",
		Images: []models.ReportImage{
			{URL: "https://cdn.example/r/1.jpg", FileName: "a.jpg", Orden: 1},
			{URL: "https://cdn.example/r/2.jpg", FileName: "b.jpg", Orden: 2},
			{URL: "https://cdn.example/r/3.jpg", FileName: "c.jpg", Orden: 3},
		},
		Leyes: []models.LawReportAssociation{
			{
				LawID:   4,
				Law:     &models.Law{Codigo: "ORD-010", Nombre: "Ordenanza de espacio público"},
				Article: &models.Article{Numero: "12"},
			},
		},
	}

	m := serializeReportDetail(report, false)

	images, isSlice := m["imagenes"].([]fiber.Map)
	require.True(t, isSlice)
	require.Len(t, images, 3)
	for i, img := range images {
		assert.Equal(t, i+1, img["orden"])
	}

	leyes, isSlice := m["leyes"].([]fiber.Map)
	require.True(t, isSlice)
	require.Len(t, leyes, 1)
	assert.Equal(t, "ORD-010", leyes[0]["codigo"])
	assert.Equal(t, "12", leyes[0]["articulo"])
}
