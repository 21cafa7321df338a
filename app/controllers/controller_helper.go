package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/seguraep/acm-reportes/app/models"
)

// All endpoints answer with the same envelope so the web client can decode
// responses uniformly.
func envelope(success bool, message string, data interface{}) fiber.Map {
	return fiber.Map{
		"success": success,
		"message": message,
		"data":    data,
	}
}

func ok(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(envelope(true, message, data))
}

func created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(envelope(true, message, data))
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(envelope(false, message, nil))
}

func failWithData(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(envelope(false, message, data))
}

// isDuplicateKeyErr detects unique-constraint violations across gorm's
// translated error and the raw MySQL 1062 message.
func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}

// parsePagination reads ?pagina= and ?por_pagina= with sane bounds.
func parsePagination(c *fiber.Ctx) (offset, limit int) {
	page := c.QueryInt("pagina", 1)
	if page < 1 {
		page = 1
	}
	perPage := c.QueryInt("por_pagina", 20)
	if perPage < 1 {
		perPage = 1
	}
	if perPage > 100 {
		perPage = 100
	}
	return (page - 1) * perPage, perPage
}

// serializeReportSummary is the list-view shape shared by the authenticated
// and the public search results.
func serializeReportSummary(report *models.Report, public bool) fiber.Map {
	m := fiber.Map{
		"uuid":          report.UUID,
		"zona":          report.Zona,
		"distrito":      report.Distrito,
		"circuito":      report.Circuito,
		"fecha_reporte": report.FechaReporte.Format("2006-01-02"),
		"hora_reporte":  report.HoraReporte,
		"estado":        report.Estado,
		"novedad":       report.Novedad,
		"imagenes":      len(report.Images),
	}
	if public {
		m["agente"] = publicAuthorLabel(report)
	} else {
		m["nombre_agente"] = report.NombreAgente
		m["cedula_agente"] = report.CedulaAgente
		m["autor_verificado"] = report.AutorVerificado
	}
	return m
}

// serializeReportDetail is the detail shape with ordered images and law
// associations. The public variant hides the author identity.
func serializeReportDetail(report *models.Report, public bool) fiber.Map {
	images := make([]fiber.Map, 0, len(report.Images))
	for _, img := range report.Images {
		images = append(images, fiber.Map{
			"url":           img.URL,
			"thumbnail_url": img.ThumbnailURL,
			"file_name":     img.FileName,
			"orden":         img.Orden,
		})
	}

	leyes := make([]fiber.Map, 0, len(report.Leyes))
	for _, assoc := range report.Leyes {
		entry := fiber.Map{"law_id": assoc.LawID}
		if assoc.Law != nil {
			entry["codigo"] = assoc.Law.Codigo
			entry["nombre"] = assoc.Law.Nombre
		}
		if assoc.Article != nil {
			entry["articulo"] = assoc.Article.Numero
		}
		leyes = append(leyes, entry)
	}

	m := serializeReportSummary(report, public)
	m["direccion"] = report.Direccion
	m["turno_inicio"] = report.TurnoInicio
	m["turno_fin"] = report.TurnoFin
	m["latitud"] = report.Latitud
	m["longitud"] = report.Longitud
	m["documento_url"] = report.DocumentoURL
	m["created_at"] = report.CreatedAt
	m["imagenes"] = images
	m["leyes"] = leyes
	return m
}

func publicAuthorLabel(report *models.Report) string {
	if report.AutorVerificado {
		return "Agente verificado"
	}
	return "Autor no verificado"
}
