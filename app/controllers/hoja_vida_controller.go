package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/seguraep/acm-reportes/app/models"
	"github.com/seguraep/acm-reportes/app/repository"
	"github.com/seguraep/acm-reportes/internal/pkg/docgen"
	"github.com/seguraep/acm-reportes/internal/pkg/usercontext"
)

// HandleGetHojaVida returns the authenticated user's resume, creating an
// empty one on first access.
func HandleGetHojaVida(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	repo := repository.GetGlobalFactory().GetHojaVidaRepository()

	hoja, err := repo.GetOrCreate(userCtx.UserID)
	if err != nil {
		fiberlog.Errorf("hoja de vida fetch failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo cargar la hoja de vida")
	}

	return ok(c, "", hoja)
}

type hojaVidaRequest struct {
	DatosPersonales *models.JSON `json:"datos_personales"`
	Educacion       *models.JSON `json:"educacion"`
	Experiencia     *models.JSON `json:"experiencia"`
	Habilidades     *models.JSON `json:"habilidades"`
	Referencias     *models.JSON `json:"referencias"`
}

// HandleUpdateHojaVida replaces the supplied resume sections. Sections absent
// from the payload keep their stored value.
func HandleUpdateHojaVida(c *fiber.Ctx) error {
	var req hojaVidaRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cuerpo de solicitud inválido")
	}

	userCtx := usercontext.GetUserContext(c)
	repo := repository.GetGlobalFactory().GetHojaVidaRepository()

	hoja, err := repo.GetOrCreate(userCtx.UserID)
	if err != nil {
		fiberlog.Errorf("hoja de vida fetch failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo cargar la hoja de vida")
	}

	if req.DatosPersonales != nil {
		hoja.DatosPersonales = req.DatosPersonales
	}
	if req.Educacion != nil {
		hoja.Educacion = req.Educacion
	}
	if req.Experiencia != nil {
		hoja.Experiencia = req.Experiencia
	}
	if req.Habilidades != nil {
		hoja.Habilidades = req.Habilidades
	}
	if req.Referencias != nil {
		hoja.Referencias = req.Referencias
	}

	if err := repo.Save(hoja); err != nil {
		fiberlog.Errorf("hoja de vida save failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo guardar la hoja de vida")
	}

	return ok(c, "Hoja de vida actualizada", hoja)
}

// HandleGetHojaVidaByUser is the admin read of any user's resume.
func HandleGetHojaVidaByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil || userID < 1 {
		return fail(c, fiber.StatusBadRequest, "Identificador de usuario inválido")
	}

	repo := repository.GetGlobalFactory().GetHojaVidaRepository()
	hoja, err := repo.GetByUserID(uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "Hoja de vida no encontrada")
		}
		fiberlog.Errorf("hoja de vida fetch failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo cargar la hoja de vida")
	}

	return ok(c, "", hoja)
}

// HandleDownloadHojaVida exports a resume as PDF or DOCX. Own resume for
// everyone, any resume for admins.
func HandleDownloadHojaVida(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userID")
	if err != nil || userID < 1 {
		return fail(c, fiber.StatusBadRequest, "Identificador de usuario inválido")
	}

	userCtx := usercontext.GetUserContext(c)
	if uint(userID) != userCtx.UserID && !userCtx.IsAdmin {
		return fail(c, fiber.StatusForbidden, "No autorizado")
	}

	repo := repository.GetGlobalFactory().GetHojaVidaRepository()
	hoja, err := repo.GetByUserID(uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "Hoja de vida no encontrada")
		}
		fiberlog.Errorf("hoja de vida fetch failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo cargar la hoja de vida")
	}

	formato := c.Query("formato", "pdf")
	switch formato {
	case "pdf":
		doc, err := docgen.HojaVidaPDF(hoja)
		if err != nil {
			fiberlog.Errorf("hoja de vida pdf failed: %v", err)
			return fail(c, fiber.StatusInternalServerError, "No se pudo generar el documento")
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="hoja_vida_%d.pdf"`, userID))
		return c.Send(doc)
	case "docx":
		doc, err := docgen.HojaVidaDocx(hoja)
		if err != nil {
			fiberlog.Errorf("hoja de vida docx failed: %v", err)
			return fail(c, fiber.StatusInternalServerError, "No se pudo generar el documento")
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="hoja_vida_%d.docx"`, userID))
		return c.Send(doc)
	default:
		return fail(c, fiber.StatusBadRequest, "Formato no soportado: "+formato)
	}
}
