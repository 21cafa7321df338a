package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/seguraep/acm-reportes/app/repository"
	"github.com/seguraep/acm-reportes/internal/pkg/docgen"
)

func composeReportPDF(c *fiber.Ctx) ([]byte, string, error) {
	repo := repository.GetGlobalFactory().GetReportRepository()
	report, err := repo.GetByUUID(c.Params("uuid"), repository.ScopeAuthenticated)
	if err != nil {
		return nil, "", err
	}

	pdf, err := docgen.ReportPDF(report)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("reporte_%s.pdf", report.UUID), nil
}

func sendReportPDF(c *fiber.Ctx, disposition string) error {
	pdf, filename, err := composeReportPDF(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "Reporte no encontrado")
		}
		fiberlog.Errorf("report pdf failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo generar el documento")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`%s; filename="%s"`, disposition, filename))
	return c.Send(pdf)
}

// HandleDownloadReport streams the report PDF as a download.
func HandleDownloadReport(c *fiber.Ctx) error {
	return sendReportPDF(c, "attachment")
}

// HandlePrintReport streams the same PDF inline for the browser print dialog.
func HandlePrintReport(c *fiber.Ctx) error {
	return sendReportPDF(c, "inline")
}

// exports are capped so a filterless request cannot pull the entire table
// into one workbook.
const maxExportRows = 5000

// HandleExportReports renders a filtered search as an Excel workbook.
func HandleExportReports(c *fiber.Ctx) error {
	filter, err := parseReportFilter(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	repo := repository.GetGlobalFactory().GetReportRepository()
	reports, _, err := repo.Search(filter, repository.ScopeAuthenticated, 0, maxExportRows)
	if err != nil {
		fiberlog.Errorf("report export search failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo exportar reportes")
	}

	workbook, err := docgen.ReportsExcel(reports)
	if err != nil {
		fiberlog.Errorf("report export generation failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo generar el documento")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reportes.xlsx"`)
	return c.Send(workbook)
}
