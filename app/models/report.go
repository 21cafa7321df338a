package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	ESTADO_PENDIENTE  = "pendiente"
	ESTADO_COMPLETADO = "completado"
	ESTADO_REVISADO   = "revisado"
	ESTADO_ARCHIVADO  = "archivado"
)

// ReportEstados is the fixed set of report states. Estado is set directly by
// administrative action, there are no automatic transitions.
var ReportEstados = []string{ESTADO_PENDIENTE, ESTADO_COMPLETADO, ESTADO_REVISADO, ESTADO_ARCHIVADO}

// Report is an incident record submitted by a control agent. The author
// fields are a snapshot taken at submission time; UserID is nil for
// anonymous submissions.
type Report struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	UUID           string `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	UserID         *uint  `gorm:"index" json:"user_id,omitempty"`
	User           *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	NombreAgente   string `gorm:"type:varchar(300)" json:"nombre_agente"`
	CedulaAgente   string `gorm:"type:varchar(20)" json:"cedula_agente"`
	AutorVerificado bool  `gorm:"default:false" json:"autor_verificado"`
	// location
	Zona      string   `gorm:"type:varchar(100);not null;index" json:"zona" validate:"required,max=100"`
	Distrito  string   `gorm:"type:varchar(100);index" json:"distrito" validate:"max=100"`
	Circuito  string   `gorm:"type:varchar(100);index" json:"circuito" validate:"max=100"`
	Direccion string   `gorm:"type:varchar(255)" json:"direccion" validate:"max=255"`
	Latitud   *float64 `gorm:"type:decimal(10,8)" json:"latitud"`
	Longitud  *float64 `gorm:"type:decimal(11,8)" json:"longitud"`
	// time
	FechaReporte time.Time `gorm:"type:date;not null;index" json:"fecha_reporte"`
	HoraReporte  string    `gorm:"type:varchar(5)" json:"hora_reporte"`
	TurnoInicio  string    `gorm:"type:varchar(5)" json:"turno_inicio"`
	TurnoFin     string    `gorm:"type:varchar(5)" json:"turno_fin"`
	// content
	Novedad      string `gorm:"type:text;not null" json:"novedad" validate:"required"`
	Estado       string `gorm:"type:varchar(20);default:'pendiente';index" json:"estado" validate:"oneof=pendiente completado revisado archivado"`
	DocumentoURL string `gorm:"type:varchar(255);default:null" json:"documento_url,omitempty"`
	// relations
	Images    []ReportImage          `gorm:"foreignKey:ReportID" json:"imagenes,omitempty"`
	Leyes     []LawReportAssociation `gorm:"foreignKey:ReportID" json:"leyes,omitempty"`
	CreatedAt time.Time              `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time              `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt         `gorm:"index" json:"-"`
}

func (r *Report) Validate() error {
	v := validator.New()

	return v.Struct(r)
}

// IsValidEstado reports whether s belongs to the fixed report-state set.
func IsValidEstado(s string) bool {
	for _, e := range ReportEstados {
		if e == s {
			return true
		}
	}
	return false
}

// ReportImage is an ordered attachment of a report. Orden is unique per
// report so the gallery renders in a stable order.
type ReportImage struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ReportID     uint           `gorm:"index;not null;uniqueIndex:idx_report_orden" json:"report_id"`
	StorageKey   string         `gorm:"type:varchar(255);not null" json:"-"`
	URL          string         `gorm:"type:varchar(255);not null" json:"url"`
	ThumbnailKey string         `gorm:"type:varchar(255);default:null" json:"-"`
	ThumbnailURL string         `gorm:"type:varchar(255);default:null" json:"thumbnail_url,omitempty"`
	FileName     string         `gorm:"type:varchar(255);not null" json:"file_name"`
	FileSize     int64          `gorm:"type:bigint" json:"file_size"`
	ContentType  string         `gorm:"type:varchar(50)" json:"content_type"`
	Orden        int            `gorm:"not null;uniqueIndex:idx_report_orden" json:"orden"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
