package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/seguraep/acm-reportes/app/models"
)

// hojaVidaRepository implements the HojaVidaRepository interface
type hojaVidaRepository struct {
	db *gorm.DB
}

// NewHojaVidaRepository creates a new resume repository instance
func NewHojaVidaRepository(db *gorm.DB) HojaVidaRepository {
	return &hojaVidaRepository{db: db}
}

// GetByUserID retrieves the resume of a user
func (r *hojaVidaRepository) GetByUserID(userID uint) (*models.HojaVida, error) {
	var hoja models.HojaVida
	err := r.db.Preload("User").Where("user_id = ?", userID).First(&hoja).Error
	if err != nil {
		return nil, err
	}
	return &hoja, nil
}

// GetOrCreate returns the resume of a user, creating an empty row on first
// access so PUT and GET never race over existence.
func (r *hojaVidaRepository) GetOrCreate(userID uint) (*models.HojaVida, error) {
	hoja, err := r.GetByUserID(userID)
	if err == nil {
		return hoja, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &models.HojaVida{UserID: userID}
	if err := r.db.Create(fresh).Error; err != nil {
		return nil, err
	}
	return r.GetByUserID(userID)
}

// Save persists the resume
func (r *hojaVidaRepository) Save(hoja *models.HojaVida) error {
	return r.db.Save(hoja).Error
}
