package docgen

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"

	"github.com/seguraep/acm-reportes/app/models"
)

// HojaVidaDocx composes the resume as a word-processor document for users
// who want to keep editing it after download.
func HojaVidaDocx(hoja *models.HojaVida) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText("Hoja de Vida").Size("36")
	if hoja.User != nil {
		doc.AddParagraph().AddText(hoja.User.NombreCompleto()).Size("28")
		doc.AddParagraph().AddText("Cédula: " + hoja.User.Cedula)
	}
	doc.AddParagraph()

	var educacion []models.HojaVidaEducacion
	if err := models.DecodeSection(hoja.Educacion, &educacion); err == nil && len(educacion) > 0 {
		doc.AddParagraph().AddText("Educación").Size("28")
		for _, e := range educacion {
			doc.AddParagraph().AddText(fmt.Sprintf("%s — %s (%s)", e.Institucion, e.Titulo, e.Anio))
		}
		doc.AddParagraph()
	}

	var experiencia []models.HojaVidaExperiencia
	if err := models.DecodeSection(hoja.Experiencia, &experiencia); err == nil && len(experiencia) > 0 {
		doc.AddParagraph().AddText("Experiencia laboral").Size("28")
		for _, x := range experiencia {
			doc.AddParagraph().AddText(fmt.Sprintf("%s, %s (%s - %s)", x.Empresa, x.Cargo, x.Desde, x.Hasta))
			if x.Descripcion != "" {
				doc.AddParagraph().AddText(x.Descripcion)
			}
		}
		doc.AddParagraph()
	}

	var habilidades []string
	if err := models.DecodeSection(hoja.Habilidades, &habilidades); err == nil && len(habilidades) > 0 {
		doc.AddParagraph().AddText("Habilidades").Size("28")
		for _, h := range habilidades {
			doc.AddParagraph().AddText("• " + h)
		}
		doc.AddParagraph()
	}

	var referencias []models.HojaVidaReferencia
	if err := models.DecodeSection(hoja.Referencias, &referencias); err == nil && len(referencias) > 0 {
		doc.AddParagraph().AddText("Referencias").Size("28")
		for _, ref := range referencias {
			doc.AddParagraph().AddText(fmt.Sprintf("%s (%s) — %s", ref.Nombre, ref.Relacion, ref.Telefono))
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("error generating resume DOCX: %w", err)
	}
	return buf.Bytes(), nil
}
