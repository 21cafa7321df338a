package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ROLE_ACM        = "acm"
	ROLE_ADMIN      = "admin"
	ROLE_SUPERVISOR = "supervisor"
	STATUS_ACTIVE   = "active"
	STATUS_INACTIVE = "inactive"
	STATUS_DISABLED = "disabled"
)

// User is a municipal control agent (ACM) or an administrative account.
// Email and cedula are unique across the table; the database constraint is
// authoritative, availability checks are advisory only.
type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Nombres          string         `gorm:"type:varchar(150)" json:"nombres" validate:"required,min=3,max=150"`
	Apellidos        string         `gorm:"type:varchar(150)" json:"apellidos" validate:"required,min=3,max=150"`
	Email            string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	Cedula           string         `gorm:"uniqueIndex;type:varchar(20)" json:"cedula" validate:"required,min=10,max=20"`
	Password         string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	Role             string         `gorm:"type:varchar(50);default:'acm'" json:"role" validate:"oneof=acm admin supervisor"`
	Status           string         `gorm:"type:varchar(50);default:'active'" json:"status" validate:"oneof=active inactive disabled"`
	Telefono         string         `gorm:"type:varchar(20);default:null" json:"telefono" validate:"max=20"`
	Cargo            string         `gorm:"type:varchar(100);default:null" json:"cargo" validate:"max=100"`
	FechaIngreso     *time.Time     `gorm:"type:date;default:null" json:"fecha_ingreso"`
	ResetToken       string         `gorm:"type:varchar(100);default:null;index" json:"-"`
	ResetTokenSentAt *time.Time     `gorm:"type:timestamp;default:null" json:"-"`
	LastLoginAt      *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// CreateUser builds a validated ACM user with a hashed password. It does not
// persist anything.
func CreateUser(nombres, apellidos, email, cedula, password string) (*User, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Nombres:   nombres,
		Apellidos: apellidos,
		Email:     email,
		Cedula:    cedula,
		Password:  pw,
		Role:      ROLE_ACM,
		Status:    STATUS_ACTIVE,
	}

	err = u.Validate()
	if err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// NombreCompleto returns the display name used in report author snapshots.
func (u *User) NombreCompleto() string {
	return u.Nombres + " " + u.Apellidos
}

// IsActive reports whether the user status is active
func (u *User) IsActive() bool {
	return u.Status == STATUS_ACTIVE
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

// GenerateResetToken creates a random password-reset token and stamps
// ResetTokenSentAt.
func (u *User) GenerateResetToken() error {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return err
	}
	u.ResetToken = hex.EncodeToString(b)
	now := time.Now()
	u.ResetTokenSentAt = &now
	return nil
}

// IsAdmin reports whether the user may manage reports and accounts.
func (u *User) IsAdmin() bool {
	return u.Role == ROLE_ADMIN
}
