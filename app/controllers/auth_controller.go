package controllers

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/seguraep/acm-reportes/app/models"
	"github.com/seguraep/acm-reportes/app/repository"
	"github.com/seguraep/acm-reportes/internal/pkg/mail"
	"github.com/seguraep/acm-reportes/internal/pkg/token"
)

type registerRequest struct {
	Nombres   string `json:"nombres" validate:"required,min=3,max=150"`
	Apellidos string `json:"apellidos" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Cedula    string `json:"cedula" validate:"required,min=10,max=20"`
	Password  string `json:"password" validate:"required,min=6"`
	Telefono  string `json:"telefono" validate:"max=20"`
	Cargo     string `json:"cargo" validate:"max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var validate = validator.New()

// fieldErrors maps a validator error into a per-field message map for inline
// display.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = "valor inválido (" + fe.Tag() + ")"
		}
	}
	return out
}

// HandleRegister creates an ACM account. Availability is pre-checked for a
// friendly field-specific conflict, the unique index remains authoritative.
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cuerpo de solicitud inválido")
	}
	if err := validate.Struct(req); err != nil {
		return failWithData(c, fiber.StatusBadRequest, "Datos de registro inválidos", fiber.Map{"campos": fieldErrors(err)})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()

	if existing, err := repo.GetByEmail(req.Email); err == nil {
		return conflict(c, "email", existing)
	}
	if existing, err := repo.GetByCedula(req.Cedula); err == nil {
		return conflict(c, "cedula", existing)
	}

	user, err := models.CreateUser(req.Nombres, req.Apellidos, req.Email, req.Cedula, req.Password)
	if err != nil {
		return failWithData(c, fiber.StatusBadRequest, "Datos de registro inválidos", fiber.Map{"campos": fieldErrors(err)})
	}
	user.Telefono = req.Telefono
	user.Cargo = req.Cargo

	if err := repo.Create(user); err != nil {
		// The advisory check raced a concurrent insert; the constraint wins.
		if isDuplicateKeyErr(err) {
			if existing, lookupErr := repo.GetByEmail(req.Email); lookupErr == nil {
				return conflict(c, "email", existing)
			}
			if existing, lookupErr := repo.GetByCedula(req.Cedula); lookupErr == nil {
				return conflict(c, "cedula", existing)
			}
			return fail(c, fiber.StatusConflict, "El email o la cédula ya están registrados")
		}
		fiberlog.Errorf("register: create failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo completar el registro")
	}

	return created(c, "Registro exitoso", fiber.Map{
		"id":     user.ID,
		"email":  user.Email,
		"cedula": user.Cedula,
	})
}

func conflict(c *fiber.Ctx, field string, existing *models.User) error {
	return failWithData(c, fiber.StatusConflict, "El campo "+field+" ya está registrado", fiber.Map{
		"campo": field,
		"usuario_existente": fiber.Map{
			"nombres":   existing.Nombres,
			"apellidos": existing.Apellidos,
		},
	})
}

// HandleLogin verifies credentials and issues an access/refresh token pair.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cuerpo de solicitud inválido")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Email y contraseña son obligatorios")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusUnauthorized, "Credenciales inválidas")
		}
		fiberlog.Errorf("login: lookup failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo iniciar sesión")
	}

	if !user.CheckPassword(req.Password) {
		return fail(c, fiber.StatusUnauthorized, "Credenciales inválidas")
	}
	if !user.IsActive() {
		return fail(c, fiber.StatusUnauthorized, "Cuenta inactiva, contacte al administrador")
	}

	pair, err := token.IssuePair(user.ID, user.Role)
	if err != nil {
		fiberlog.Errorf("login: token issue failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo iniciar sesión")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := repo.Update(user); err != nil {
		fiberlog.Warnf("login: last_login update failed: %v", err)
	}

	return ok(c, "Inicio de sesión exitoso", fiber.Map{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    pair.ExpiresIn,
		"usuario": fiber.Map{
			"id":      user.ID,
			"nombres": user.Nombres,
			"email":   user.Email,
			"role":    user.Role,
		},
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// HandleRefresh exchanges a valid refresh token for a fresh pair. The old
// refresh token is revoked so each one grants exactly one renewal.
func HandleRefresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return fail(c, fiber.StatusBadRequest, "refresh_token es obligatorio")
	}

	claims, err := token.ParseRefresh(req.RefreshToken)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Sesión expirada, inicie sesión nuevamente")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(claims.UserID)
	if err != nil || !user.IsActive() {
		return fail(c, fiber.StatusUnauthorized, "Sesión expirada, inicie sesión nuevamente")
	}

	if err := token.Revoke(claims); err != nil {
		fiberlog.Warnf("refresh: revoke failed: %v", err)
	}

	pair, err := token.IssuePair(user.ID, user.Role)
	if err != nil {
		fiberlog.Errorf("refresh: token issue failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo renovar la sesión")
	}

	return ok(c, "Sesión renovada", pair)
}

// HandleLogout revokes the presented refresh token.
func HandleLogout(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return ok(c, "Sesión cerrada", nil)
	}
	if claims, err := token.ParseRefresh(req.RefreshToken); err == nil {
		if err := token.Revoke(claims); err != nil {
			fiberlog.Warnf("logout: revoke failed: %v", err)
		}
	}
	return ok(c, "Sesión cerrada", nil)
}

type recoverRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleRecoverPassword issues a reset token. The response is identical
// whether or not the address exists.
func HandleRecoverPassword(c *fiber.Ctx) error {
	var req recoverRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cuerpo de solicitud inválido")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Email inválido")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(req.Email)
	if err == nil {
		if err := user.GenerateResetToken(); err == nil {
			if err := repo.Update(user); err != nil {
				fiberlog.Errorf("recover: token persist failed: %v", err)
			} else if err := mail.SendPasswordReset(user.Email, user.ResetToken); err != nil {
				fiberlog.Warnf("recover: mail failed: %v", err)
			}
		}
	}

	return ok(c, "Si el email está registrado recibirá instrucciones para restablecer su contraseña", nil)
}

type resetRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleResetPassword consumes a reset token and sets the new password.
func HandleResetPassword(c *fiber.Ctx) error {
	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cuerpo de solicitud inválido")
	}
	if err := validate.Struct(req); err != nil {
		return failWithData(c, fiber.StatusBadRequest, "Datos inválidos", fiber.Map{"campos": fieldErrors(err)})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByResetToken(req.Token)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Token de restablecimiento inválido o expirado")
	}
	if user.ResetTokenSentAt == nil || time.Since(*user.ResetTokenSentAt) > 24*time.Hour {
		return fail(c, fiber.StatusBadRequest, "Token de restablecimiento inválido o expirado")
	}

	if err := user.SetPassword(req.Password); err != nil {
		return fail(c, fiber.StatusInternalServerError, "No se pudo actualizar la contraseña")
	}
	user.ResetToken = ""
	user.ResetTokenSentAt = nil
	if err := repo.Update(user); err != nil {
		fiberlog.Errorf("reset: persist failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo actualizar la contraseña")
	}

	return ok(c, "Contraseña actualizada", nil)
}
