package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/seguraep/acm-reportes/app/models"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email address
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByCedula retrieves a user by their national ID
func (r *userRepository) GetByCedula(cedula string) (*models.User, error) {
	var user models.User
	err := r.db.Where("cedula = ?", cedula).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByResetToken retrieves a user by their password-reset token
func (r *userRepository) GetByResetToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.Where("reset_token = ? AND reset_token <> ''", token).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailAvailable reports whether no user row holds the email. Advisory only:
// the unique index is the authoritative check at insert time.
func (r *userRepository) EmailAvailable(email string) (bool, error) {
	return r.available("email", email)
}

// CedulaAvailable reports whether no user row holds the cedula.
func (r *userRepository) CedulaAvailable(cedula string) (bool, error) {
	return r.available("cedula", cedula)
}

func (r *userRepository) available(column, value string) (bool, error) {
	var user models.User
	err := r.db.Select("id").Where(column+" = ?", value).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// Update updates an existing user in the database
func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete soft deletes a user by their ID
func (r *userRepository) Delete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// List retrieves a paginated list of users
func (r *userRepository) List(offset, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

// Count returns the total number of users
func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// Search searches for users by name, email or cedula
func (r *userRepository) Search(query string) ([]models.User, error) {
	var users []models.User
	searchPattern := "%" + strings.TrimSpace(query) + "%"
	err := r.db.Where(
		"nombres LIKE ? OR apellidos LIKE ? OR email LIKE ? OR cedula LIKE ?",
		searchPattern, searchPattern, searchPattern, searchPattern,
	).Find(&users).Error
	return users, err
}
