package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/seguraep/acm-reportes/app/models"
	"github.com/seguraep/acm-reportes/app/repository"
	"github.com/seguraep/acm-reportes/internal/pkg/statistics"
	"github.com/seguraep/acm-reportes/internal/pkg/usercontext"
)

// parseReportFilter reads the AND-combined search filters. Absent query
// params leave the corresponding filter unset.
func parseReportFilter(c *fiber.Ctx) (repository.ReportFilter, error) {
	var filter repository.ReportFilter

	if raw := c.Query("fecha_desde"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errors.New("fecha_desde inválida (AAAA-MM-DD)")
		}
		filter.FechaDesde = &t
	}
	if raw := c.Query("fecha_hasta"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errors.New("fecha_hasta inválida (AAAA-MM-DD)")
		}
		filter.FechaHasta = &t
	}
	filter.Zona = c.Query("zona")
	filter.Distrito = c.Query("distrito")
	filter.Circuito = c.Query("circuito")
	if estado := c.Query("estado"); estado != "" {
		if !models.IsValidEstado(estado) {
			return filter, errors.New("estado inválido: " + estado)
		}
		filter.Estado = estado
	}
	filter.UserID = uint(c.QueryInt("usuario_id", 0))

	return filter, nil
}

func searchReports(c *fiber.Ctx, filter repository.ReportFilter, scope repository.AccessScope, public bool) error {
	offset, limit := parsePagination(c)
	repo := repository.GetGlobalFactory().GetReportRepository()

	reports, total, err := repo.Search(filter, scope, offset, limit)
	if err != nil {
		fiberlog.Errorf("report search failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo buscar reportes")
	}

	items := make([]fiber.Map, 0, len(reports))
	for i := range reports {
		items = append(items, serializeReportSummary(&reports[i], public))
	}

	return ok(c, "", fiber.Map{"reportes": items, "total": total})
}

// HandleMyReports lists the authenticated user's own reports.
func HandleMyReports(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	return searchReports(c, repository.ReportFilter{}, repository.ScopeOwn(userCtx.UserID), false)
}

// HandleSearchReports runs a filtered search over all reports (authenticated).
func HandleSearchReports(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	return searchReports(c, filter, repository.ScopeAuthenticated, false)
}

// HandlePublicReports is the transparency listing: same shape, public scope,
// author identity hidden.
func HandlePublicReports(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	filter.UserID = 0 // author filtering is not exposed publicly
	return searchReports(c, filter, repository.ScopePublic, true)
}

func getReport(c *fiber.Ctx, scope repository.AccessScope, public bool) error {
	repo := repository.GetGlobalFactory().GetReportRepository()
	report, err := repo.GetByUUID(c.Params("uuid"), scope)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "Reporte no encontrado")
		}
		fiberlog.Errorf("report fetch failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo cargar el reporte")
	}
	return ok(c, "", serializeReportDetail(report, public))
}

// HandleGetReport returns the authenticated detail view.
func HandleGetReport(c *fiber.Ctx) error {
	return getReport(c, repository.ScopeAuthenticated, false)
}

// HandleGetPublicReport returns the public detail view.
func HandleGetPublicReport(c *fiber.Ctx) error {
	return getReport(c, repository.ScopePublic, true)
}

// HandleGetReportCoordinates returns only the location of a report.
func HandleGetReportCoordinates(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetReportRepository()
	report, err := repo.GetByUUID(c.Params("uuid"), repository.ScopePublic)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "Reporte no encontrado")
		}
		fiberlog.Errorf("report fetch failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo cargar el reporte")
	}

	return ok(c, "", fiber.Map{
		"uuid":     report.UUID,
		"latitud":  report.Latitud,
		"longitud": report.Longitud,
		"zona":     report.Zona,
	})
}

// HandleReportStats returns aggregate counts. This endpoint never fails:
// the dashboard substitutes zeros on its side and the server honors the same
// soft-failure contract.
func HandleReportStats(c *fiber.Ctx) error {
	return ok(c, "", statistics.GetReportStats())
}
