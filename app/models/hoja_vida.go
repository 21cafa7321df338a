package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// HojaVida is the structured resume of a user, one row per user. The section
// payloads are nested documents stored as JSON columns.
type HojaVida struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	User           *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	DatosPersonales *JSON         `gorm:"type:json" json:"datos_personales"`
	Educacion      *JSON          `gorm:"type:json" json:"educacion"`
	Experiencia    *JSON          `gorm:"type:json" json:"experiencia"`
	Habilidades    *JSON          `gorm:"type:json" json:"habilidades"`
	Referencias    *JSON          `gorm:"type:json" json:"referencias"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (HojaVida) TableName() string {
	return "hoja_vida"
}

// HojaVidaEducacion is the expected shape of one Educacion entry. The JSON
// columns stay schemaless in the database; these structs document the wire
// shape and back the document exporters.
type HojaVidaEducacion struct {
	Institucion string `json:"institucion"`
	Titulo      string `json:"titulo"`
	Anio        string `json:"anio"`
}

type HojaVidaExperiencia struct {
	Empresa     string `json:"empresa"`
	Cargo       string `json:"cargo"`
	Desde       string `json:"desde"`
	Hasta       string `json:"hasta"`
	Descripcion string `json:"descripcion"`
}

type HojaVidaReferencia struct {
	Nombre   string `json:"nombre"`
	Relacion string `json:"relacion"`
	Telefono string `json:"telefono"`
}

// DecodeSection unmarshals one JSON section into out. A nil section leaves
// out untouched.
func DecodeSection(section *JSON, out interface{}) error {
	if section == nil || len(*section) == 0 {
		return nil
	}
	return json.Unmarshal([]byte(*section), out)
}
