package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/seguraep/acm-reportes/app/models"
)

// lawRepository implements the LawRepository interface
type lawRepository struct {
	db *gorm.DB
}

// NewLawRepository creates a new law repository instance
func NewLawRepository(db *gorm.DB) LawRepository {
	return &lawRepository{db: db}
}

// GetAll returns the full catalog ordered by code
func (r *lawRepository) GetAll() ([]models.Law, error) {
	var laws []models.Law
	err := r.db.Order("codigo ASC").Find(&laws).Error
	return laws, err
}

// GetByID retrieves a law by its ID
func (r *lawRepository) GetByID(id uint) (*models.Law, error) {
	var law models.Law
	err := r.db.First(&law, id).Error
	if err != nil {
		return nil, err
	}
	return &law, nil
}

// GetByCodigo retrieves a law by its catalog code
func (r *lawRepository) GetByCodigo(codigo string) (*models.Law, error) {
	var law models.Law
	err := r.db.Where("codigo = ?", codigo).First(&law).Error
	if err != nil {
		return nil, err
	}
	return &law, nil
}

// GetArticles returns the articles of a law ordered by number
func (r *lawRepository) GetArticles(lawID uint) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Where("law_id = ?", lawID).Order("numero ASC").Find(&articles).Error
	return articles, err
}

// GetArticleByID retrieves a single article
func (r *lawRepository) GetArticleByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Upsert inserts or updates a law keyed by its codigo. Used by catalog sync.
func (r *lawRepository) Upsert(law *models.Law) error {
	var existing models.Law
	err := r.db.Where("codigo = ?", law.Codigo).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(law).Error
		}
		return err
	}
	law.ID = existing.ID
	law.CreatedAt = existing.CreatedAt
	return r.db.Save(law).Error
}

// UpsertArticle inserts or updates an article keyed by (law, numero).
func (r *lawRepository) UpsertArticle(article *models.Article) error {
	var existing models.Article
	err := r.db.Where("law_id = ? AND numero = ?", article.LawID, article.Numero).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(article).Error
		}
		return err
	}
	article.ID = existing.ID
	article.CreatedAt = existing.CreatedAt
	return r.db.Save(article).Error
}
