package docgen

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/seguraep/acm-reportes/app/models"
)

func sampleReport() *models.Report {
	lat, lng := -2.170998, -79.922356
	return &models.Report{
		UUID:         "0b7d64f2-9c1e-4a77-9a53-1f2f6f9edc01",
		NombreAgente: "Ana Mora",
		CedulaAgente: "0912345678",
		Zona:         "Zona 1",
		Distrito:     "Distrito Centro",
		Circuito:     "Circuito 3",
		Direccion:    "Av. 9 de Octubre y Malecón",
		Latitud:      &lat,
		Longitud:     &lng,
		FechaReporte: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		HoraReporte:  "14:30",
		TurnoInicio:  "08:00",
		TurnoFin:     "16:00",
		Novedad:      "Ocupación indebida del espacio público con ventas no autorizadas.",
		Estado:       models.ESTADO_PENDIENTE,
	}
}

func TestReportPDF(t *testing.T) {
	out, err := ReportPDF(sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output should be a PDF document")
}

func TestReportPDFWithoutOptionalFields(t *testing.T) {
	report := &models.Report{
		UUID:         "aaaa-bbbb",
		Zona:         "Zona 2",
		FechaReporte: time.Now(),
		Novedad:      "Sin novedades relevantes.",
		Estado:       models.ESTADO_COMPLETADO,
	}
	out, err := ReportPDF(report)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func sampleHoja() *models.HojaVida {
	educacion := models.JSON(`[{"institucion":"U. de Guayaquil","titulo":"Lcdo. Seguridad","anio":"2018"}]`)
	habilidades := models.JSON(`["Mediación de conflictos","Primeros auxilios"]`)
	return &models.HojaVida{
		UserID:      7,
		User:        &models.User{Nombres: "Ana", Apellidos: "Mora", Cedula: "0912345678"},
		Educacion:   &educacion,
		Habilidades: &habilidades,
	}
}

func TestHojaVidaPDF(t *testing.T) {
	out, err := HojaVidaPDF(sampleHoja())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestHojaVidaDocx(t *testing.T) {
	out, err := HojaVidaDocx(sampleHoja())
	require.NoError(t, err)
	// docx files are zip archives
	assert.True(t, bytes.HasPrefix(out, []byte("PK")), "output should be a zip container")
}

func TestReportsExcel(t *testing.T) {
	out, err := ReportsExcel([]models.Report{*sampleReport()})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reportes")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, reportExportHeader[0], rows[0][0])
	assert.Equal(t, "Zona 1", rows[1][5])
}

func TestReportsExcelEmpty(t *testing.T) {
	out, err := ReportsExcel(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reportes")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
