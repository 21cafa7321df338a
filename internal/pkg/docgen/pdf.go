package docgen

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/seguraep/acm-reportes/app/models"
)

// ReportPDF composes the printable incident report. The client only triggers
// the download, the whole document is laid out server-side.
func ReportPDF(report *models.Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// core fonts are latin-1, Spanish text needs the translator
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("Reporte de Novedad"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Código: %s", report.UUID)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeField := func(label, value string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(45, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 7, tr(value), "", "L", false)
	}

	agente := report.NombreAgente
	if agente == "" {
		agente = "No verificado"
	}
	writeField("Agente:", agente)
	if report.CedulaAgente != "" {
		writeField("Cédula:", report.CedulaAgente)
	}
	writeField("Fecha:", report.FechaReporte.Format("2006-01-02"))
	if report.HoraReporte != "" {
		writeField("Hora:", report.HoraReporte)
	}
	if report.TurnoInicio != "" || report.TurnoFin != "" {
		writeField("Turno:", fmt.Sprintf("%s - %s", report.TurnoInicio, report.TurnoFin))
	}
	writeField("Zona:", report.Zona)
	if report.Distrito != "" {
		writeField("Distrito:", report.Distrito)
	}
	if report.Circuito != "" {
		writeField("Circuito:", report.Circuito)
	}
	if report.Direccion != "" {
		writeField("Dirección:", report.Direccion)
	}
	if report.Latitud != nil && report.Longitud != nil {
		writeField("Coordenadas:", fmt.Sprintf("%.6f, %.6f", *report.Latitud, *report.Longitud))
	}
	writeField("Estado:", report.Estado)

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, tr("Novedad"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, tr(report.Novedad), "", "L", false)

	if len(report.Leyes) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, tr("Normativa aplicable"), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		for _, assoc := range report.Leyes {
			line := ""
			if assoc.Law != nil {
				line = assoc.Law.Nombre
			}
			if assoc.Article != nil {
				line += fmt.Sprintf(" — Art. %s", assoc.Article.Numero)
			}
			if line != "" {
				pdf.MultiCell(0, 6, tr("• "+line), "", "L", false)
			}
		}
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Generado el %s", time.Now().Format("2006-01-02 15:04"))), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error generating report PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// HojaVidaPDF composes the printable resume of a user.
func HojaVidaPDF(hoja *models.HojaVida) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("Hoja de Vida"), "", 1, "C", false, 0, "")
	if hoja.User != nil {
		pdf.SetFont("Arial", "", 12)
		pdf.CellFormat(0, 8, tr(hoja.User.NombreCompleto()), "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Cédula: %s", hoja.User.Cedula)), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	section := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
	}

	var educacion []models.HojaVidaEducacion
	if err := models.DecodeSection(hoja.Educacion, &educacion); err == nil && len(educacion) > 0 {
		section("Educación")
		for _, e := range educacion {
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s — %s (%s)", e.Institucion, e.Titulo, e.Anio)), "", "L", false)
		}
		pdf.Ln(2)
	}

	var experiencia []models.HojaVidaExperiencia
	if err := models.DecodeSection(hoja.Experiencia, &experiencia); err == nil && len(experiencia) > 0 {
		section("Experiencia laboral")
		for _, x := range experiencia {
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s, %s (%s - %s)", x.Empresa, x.Cargo, x.Desde, x.Hasta)), "", "L", false)
			if x.Descripcion != "" {
				pdf.MultiCell(0, 6, tr("    "+x.Descripcion), "", "L", false)
			}
		}
		pdf.Ln(2)
	}

	var habilidades []string
	if err := models.DecodeSection(hoja.Habilidades, &habilidades); err == nil && len(habilidades) > 0 {
		section("Habilidades")
		for _, h := range habilidades {
			pdf.MultiCell(0, 6, tr("• "+h), "", "L", false)
		}
		pdf.Ln(2)
	}

	var referencias []models.HojaVidaReferencia
	if err := models.DecodeSection(hoja.Referencias, &referencias); err == nil && len(referencias) > 0 {
		section("Referencias")
		for _, ref := range referencias {
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s (%s) — %s", ref.Nombre, ref.Relacion, ref.Telefono)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error generating resume PDF: %w", err)
	}
	return buf.Bytes(), nil
}
