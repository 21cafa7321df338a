package docgen

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/seguraep/acm-reportes/app/models"
)

// reportExportHeader lists the exported columns in order.
var reportExportHeader = []string{
	"Código",
	"Fecha",
	"Hora",
	"Agente",
	"Cédula",
	"Zona",
	"Distrito",
	"Circuito",
	"Dirección",
	"Estado",
	"Novedad",
	"Imágenes",
}

// ReportsExcel renders a filtered report search as an Excel workbook for the
// administrative export endpoint.
func ReportsExcel(reports []models.Report) ([]byte, error) {
	f := excelize.NewFile()
	// Note: don't defer Close() here, WriteToBuffer needs the file open

	sheetName := "Reportes"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range reportExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, report := range reports {
		agente := report.NombreAgente
		if agente == "" {
			agente = "No verificado"
		}
		row := []interface{}{
			report.UUID,
			report.FechaReporte.Format("2006-01-02"),
			report.HoraReporte,
			agente,
			report.CedulaAgente,
			report.Zona,
			report.Distrito,
			report.Circuito,
			report.Direccion,
			report.Estado,
			report.Novedad,
			len(report.Images),
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
