package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seguraep/acm-reportes/app/models"
	"github.com/seguraep/acm-reportes/app/repository"
	"github.com/seguraep/acm-reportes/internal/pkg/imageprocessor"
	"github.com/seguraep/acm-reportes/internal/pkg/statistics"
	"github.com/seguraep/acm-reportes/internal/pkg/storage"
	"github.com/seguraep/acm-reportes/internal/pkg/upload"
	"github.com/seguraep/acm-reportes/internal/pkg/usercontext"
)

const maxReportImages = 10

// lawTag is the wire shape of one "leyes" entry in the submission form.
type lawTag struct {
	LawID     uint  `json:"law_id"`
	ArticleID *uint `json:"article_id,omitempty"`
}

// HandleCreateReport accepts the multipart report submission. Authenticated
// submissions snapshot the author; without a usable token the report is
// stored with an unverified author. Required fields: zona, novedad, fecha.
func HandleCreateReport(c *fiber.Ctx) error {
	zona := strings.TrimSpace(c.FormValue("zona"))
	novedad := strings.TrimSpace(c.FormValue("novedad"))
	fechaStr := strings.TrimSpace(c.FormValue("fecha"))

	campos := map[string]string{}
	if zona == "" {
		campos["zona"] = "la zona es obligatoria"
	}
	if novedad == "" {
		campos["novedad"] = "la novedad es obligatoria"
	}
	if fechaStr == "" {
		campos["fecha"] = "la fecha es obligatoria"
	}
	var fecha time.Time
	if fechaStr != "" {
		var err error
		fecha, err = time.Parse("2006-01-02", fechaStr)
		if err != nil {
			campos["fecha"] = "formato de fecha inválido (AAAA-MM-DD)"
		}
	}
	if len(campos) > 0 {
		return failWithData(c, fiber.StatusBadRequest, "Datos del reporte inválidos", fiber.Map{"campos": campos})
	}

	report := &models.Report{
		UUID:         uuid.NewString(),
		Zona:         zona,
		Distrito:     strings.TrimSpace(c.FormValue("distrito")),
		Circuito:     strings.TrimSpace(c.FormValue("circuito")),
		Direccion:    strings.TrimSpace(c.FormValue("direccion")),
		FechaReporte: fecha,
		HoraReporte:  strings.TrimSpace(c.FormValue("hora")),
		TurnoInicio:  strings.TrimSpace(c.FormValue("turno_inicio")),
		TurnoFin:     strings.TrimSpace(c.FormValue("turno_fin")),
		Novedad:      novedad,
		Estado:       models.ESTADO_PENDIENTE,
	}

	if lat, err := strconv.ParseFloat(c.FormValue("latitud"), 64); err == nil {
		report.Latitud = &lat
	}
	if lng, err := strconv.ParseFloat(c.FormValue("longitud"), 64); err == nil {
		report.Longitud = &lng
	}

	// Author snapshot: verified when a valid bearer resolved, otherwise the
	// submission stays anonymous. An invalid token never rejects here.
	userCtx := usercontext.GetUserContext(c)
	if userCtx.IsLoggedIn {
		uid := userCtx.UserID
		report.UserID = &uid
		report.NombreAgente = userCtx.Username
		report.CedulaAgente = userCtx.Cedula
		report.AutorVerificado = true
	} else {
		report.NombreAgente = strings.TrimSpace(c.FormValue("nombre_agente"))
		report.CedulaAgente = strings.TrimSpace(c.FormValue("cedula_agente"))
	}

	files, err := collectImageFiles(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	repo := repository.GetGlobalFactory().GetReportRepository()
	if err := repo.Create(report); err != nil {
		fiberlog.Errorf("report create failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo guardar el reporte")
	}

	images, err := storeReportImages(c, report, files)
	if err != nil {
		fiberlog.Errorf("report %s: image storage failed: %v", report.UUID, err)
		return fail(c, fiber.StatusInternalServerError, "El reporte se guardó pero falló la carga de imágenes")
	}
	report.Images = images

	if err := associateLaws(repo, report, c.FormValue("leyes")); err != nil {
		return failWithData(c, fiber.StatusBadRequest, err.Error(), fiber.Map{"uuid": report.UUID})
	}

	statistics.InvalidateReportStats()

	return created(c, "Reporte registrado", serializeReportDetail(report, false))
}

func collectImageFiles(c *fiber.Ctx) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}
	files := form.File["imagenes"]
	if len(files) > maxReportImages {
		return nil, fmt.Errorf("máximo %d imágenes por reporte", maxReportImages)
	}
	return files, nil
}

// storeReportImages uploads every attachment, generates its thumbnail and
// backfills GPS coordinates from EXIF when the form carried none.
func storeReportImages(c *fiber.Ctx, report *models.Report, files []*multipart.FileHeader) ([]models.ReportImage, error) {
	if len(files) == 0 {
		return nil, nil
	}

	store, err := storage.GetClient()
	if err != nil {
		return nil, err
	}
	repo := repository.GetGlobalFactory().GetReportRepository()

	images := make([]models.ReportImage, 0, len(files))
	for i, fh := range files {
		data, err := readMultipartFile(fh)
		if err != nil {
			return images, err
		}

		contentType, err := upload.ValidateImageBySniff(fh.Filename, head(data))
		if err != nil {
			return images, err
		}

		if report.Latitud == nil || report.Longitud == nil {
			if lat, lng := imageprocessor.ExtractGPS(data); lat != nil && lng != nil {
				report.Latitud = lat
				report.Longitud = lng
				if err := repo.Update(report); err != nil {
					fiberlog.Warnf("report %s: coordinate backfill failed: %v", report.UUID, err)
				}
			}
		}

		ext := strings.ToLower(filepath.Ext(fh.Filename))
		key := fmt.Sprintf("reportes/%s/%d%s", report.UUID, i+1, ext)
		url, err := store.Upload(c.Context(), key, data, contentType)
		if err != nil {
			return images, err
		}

		image := models.ReportImage{
			ReportID:    report.ID,
			StorageKey:  key,
			URL:         url,
			FileName:    fh.Filename,
			FileSize:    int64(len(data)),
			ContentType: contentType,
			Orden:       i + 1,
		}

		if thumb, err := imageprocessor.GenerateThumbnail(data); err == nil {
			thumbKey := fmt.Sprintf("reportes/%s/thumb_%d.jpg", report.UUID, i+1)
			if thumbURL, err := store.Upload(c.Context(), thumbKey, thumb, "image/jpeg"); err == nil {
				image.ThumbnailKey = thumbKey
				image.ThumbnailURL = thumbURL
			} else {
				fiberlog.Warnf("report %s: thumbnail upload failed: %v", report.UUID, err)
			}
		} else {
			fiberlog.Warnf("report %s: thumbnail generation failed: %v", report.UUID, err)
		}

		if err := repo.AddImage(&image); err != nil {
			return images, err
		}
		images = append(images, image)
	}
	return images, nil
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func head(data []byte) []byte {
	if len(data) > 512 {
		return data[:512]
	}
	return data
}

func associateLaws(repo repository.ReportRepository, report *models.Report, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var tags []lawTag
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return errors.New("el campo leyes debe ser un arreglo JSON")
	}
	for _, tag := range tags {
		assoc := &models.LawReportAssociation{
			ReportID:  report.ID,
			LawID:     tag.LawID,
			ArticleID: tag.ArticleID,
		}
		if err := repo.AssociateLaw(assoc); err != nil {
			return fmt.Errorf("normativa inválida: %v", err)
		}
		report.Leyes = append(report.Leyes, *assoc)
	}
	return nil
}

type estadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// HandleUpdateReportEstado sets the report state (admin action, direct set).
func HandleUpdateReportEstado(c *fiber.Ctx) error {
	var req estadoRequest
	if err := c.BodyParser(&req); err != nil || req.Estado == "" {
		return fail(c, fiber.StatusBadRequest, "El campo estado es obligatorio")
	}
	if !models.IsValidEstado(req.Estado) {
		return fail(c, fiber.StatusBadRequest, "Estado inválido: "+req.Estado)
	}

	repo := repository.GetGlobalFactory().GetReportRepository()
	if err := repo.UpdateEstado(c.Params("uuid"), req.Estado); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "Reporte no encontrado")
		}
		fiberlog.Errorf("report estado update failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo actualizar el estado")
	}

	statistics.InvalidateReportStats()
	return ok(c, "Estado actualizado", fiber.Map{"estado": req.Estado})
}

// HandleDeleteReport soft deletes a report (admin action).
func HandleDeleteReport(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetReportRepository()
	if err := repo.Delete(c.Params("uuid")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "Reporte no encontrado")
		}
		fiberlog.Errorf("report delete failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo eliminar el reporte")
	}

	statistics.InvalidateReportStats()
	return ok(c, "Reporte eliminado", nil)
}
