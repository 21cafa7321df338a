package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/seguraep/acm-reportes/app/models"
)

// reportRepository implements the ReportRepository interface
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create creates a new report in the database
func (r *reportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) scoped(scope AccessScope) *gorm.DB {
	q := r.db.Model(&models.Report{})
	if scope.Public {
		q = q.Where("estado <> ?", models.ESTADO_ARCHIVADO)
	}
	if scope.UserID != 0 {
		q = q.Where("user_id = ?", scope.UserID)
	}
	return q
}

// GetByUUID retrieves a report with its ordered images and law associations.
// The same operation serves the authenticated and the public path; scope
// decides visibility.
func (r *reportRepository) GetByUUID(uuid string, scope AccessScope) (*models.Report, error) {
	var report models.Report
	err := r.scoped(scope).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("orden ASC")
		}).
		Preload("Leyes").
		Preload("Leyes.Law").
		Preload("Leyes.Article").
		Where("uuid = ?", uuid).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Search returns the reports matching every supplied filter; absent filters
// are not applied. Results are newest-first with a total count for paging.
func (r *reportRepository) Search(filter ReportFilter, scope AccessScope, offset, limit int) ([]models.Report, int64, error) {
	q := r.scoped(scope)

	if filter.FechaDesde != nil {
		q = q.Where("fecha_reporte >= ?", filter.FechaDesde)
	}
	if filter.FechaHasta != nil {
		q = q.Where("fecha_reporte <= ?", filter.FechaHasta)
	}
	if filter.Zona != "" {
		q = q.Where("zona = ?", filter.Zona)
	}
	if filter.Distrito != "" {
		q = q.Where("distrito = ?", filter.Distrito)
	}
	if filter.Circuito != "" {
		q = q.Where("circuito = ?", filter.Circuito)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	err := q.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("orden ASC")
		}).
		Order("fecha_reporte DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&reports).Error
	return reports, total, err
}

// Update updates an existing report in the database
func (r *reportRepository) Update(report *models.Report) error {
	return r.db.Save(report).Error
}

// UpdateEstado sets the report state directly, no automatic transitions.
func (r *reportRepository) UpdateEstado(uuid, estado string) error {
	if !models.IsValidEstado(estado) {
		return fmt.Errorf("estado inválido: %s", estado)
	}
	res := r.db.Model(&models.Report{}).Where("uuid = ?", uuid).Update("estado", estado)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft deletes a report by UUID
func (r *reportRepository) Delete(uuid string) error {
	res := r.db.Where("uuid = ?", uuid).Delete(&models.Report{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddImage appends an attachment row
func (r *reportRepository) AddImage(image *models.ReportImage) error {
	return r.db.Create(image).Error
}

// GetImages returns the attachments of a report in ascending orden
func (r *reportRepository) GetImages(reportID uint) ([]models.ReportImage, error) {
	var images []models.ReportImage
	err := r.db.Where("report_id = ?", reportID).Order("orden ASC").Find(&images).Error
	return images, err
}

// AssociateLaw tags a report with a regulation. When an article is supplied
// it must belong to the referenced law.
func (r *reportRepository) AssociateLaw(assoc *models.LawReportAssociation) error {
	var law models.Law
	if err := r.db.First(&law, assoc.LawID).Error; err != nil {
		return fmt.Errorf("la ley referenciada no existe: %w", err)
	}
	if assoc.ArticleID != nil {
		var article models.Article
		if err := r.db.First(&article, *assoc.ArticleID).Error; err != nil {
			return fmt.Errorf("el artículo referenciado no existe: %w", err)
		}
		if article.LawID != assoc.LawID {
			return fmt.Errorf("el artículo %d no pertenece a la ley %d", article.ID, assoc.LawID)
		}
	}
	return r.db.Create(assoc).Error
}

// GetLawAssociations returns the regulation tags of a report
func (r *reportRepository) GetLawAssociations(reportID uint) ([]models.LawReportAssociation, error) {
	var assocs []models.LawReportAssociation
	err := r.db.Preload("Law").Preload("Article").
		Where("report_id = ?", reportID).Find(&assocs).Error
	return assocs, err
}

// Stats returns the total plus by-zone and by-state counts.
func (r *reportRepository) Stats() (*ReportStats, error) {
	stats := EmptyReportStats()

	if err := r.db.Model(&models.Report{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var byZona []bucket
	if err := r.db.Model(&models.Report{}).
		Select("zona AS `key`, COUNT(*) AS count").
		Group("zona").Scan(&byZona).Error; err != nil {
		return nil, err
	}
	for _, b := range byZona {
		stats.PorZona[b.Key] = b.Count
	}

	var byEstado []bucket
	if err := r.db.Model(&models.Report{}).
		Select("estado AS `key`, COUNT(*) AS count").
		Group("estado").Scan(&byEstado).Error; err != nil {
		return nil, err
	}
	for _, b := range byEstado {
		stats.PorEstado[b.Key] = b.Count
	}

	return stats, nil
}
