package models

import (
	"time"

	"gorm.io/gorm"
)

// Law is an entry of the read-mostly regulation catalog. The catalog can be
// synced from a public endpoint, see internal/pkg/lawsync.
type Law struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Codigo      string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"codigo"`
	Nombre      string         `gorm:"type:varchar(255);not null" json:"nombre"`
	Descripcion string         `gorm:"type:text" json:"descripcion"`
	Articles    []Article      `gorm:"foreignKey:LawID" json:"articulos,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Article belongs to exactly one Law.
type Article struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	LawID     uint           `gorm:"index;not null" json:"law_id"`
	Numero    string         `gorm:"type:varchar(20);not null" json:"numero"`
	Texto     string         `gorm:"type:text;not null" json:"texto"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// LawReportAssociation tags a report with an applicable regulation. ArticleID
// is optional; when present the article must belong to the referenced law,
// which the repository enforces before insert.
type LawReportAssociation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReportID  uint      `gorm:"index;not null" json:"report_id"`
	LawID     uint      `gorm:"index;not null" json:"law_id"`
	Law       *Law      `gorm:"foreignKey:LawID" json:"ley,omitempty"`
	ArticleID *uint     `gorm:"index" json:"article_id,omitempty"`
	Article   *Article  `gorm:"foreignKey:ArticleID" json:"articulo,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
