package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/seguraep/acm-reportes/app/models"
	"github.com/seguraep/acm-reportes/app/repository"
	"github.com/seguraep/acm-reportes/internal/pkg/token"
	"github.com/seguraep/acm-reportes/internal/pkg/usercontext"
)

// BearerAuthMiddleware authenticates requests carrying a bearer access token.
// Missing or invalid tokens get a JSON 401 so the client can run its single
// refresh-then-retry cycle.
func BearerAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractBearerToken(c)
		if raw == "" {
			return unauthorized(c, "Token de acceso requerido")
		}

		userCtx, err := resolveUserContext(raw)
		if err != nil {
			if errors.Is(err, token.ErrInvalidToken) || errors.Is(err, gorm.ErrRecordNotFound) {
				return unauthorized(c, "Token inválido o expirado")
			}
			log.Printf("bearer auth: user lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false, "message": "Error de autenticación",
			})
		}

		setUserContext(c, userCtx)
		return c.Next()
	}
}

// OptionalBearerAuthMiddleware resolves a user context when a valid token is
// present and proceeds anonymously otherwise. Only the endpoints that accept
// unauthenticated submissions mount it; an invalid bearer here degrades to
// anonymous instead of 401, never the other way around.
func OptionalBearerAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractBearerToken(c)
		if raw == "" {
			return c.Next()
		}
		userCtx, err := resolveUserContext(raw)
		if err != nil {
			return c.Next()
		}
		setUserContext(c, userCtx)
		return c.Next()
	}
}

// RequireAdmin gates administrative routes. Mount after BearerAuthMiddleware.
func RequireAdmin(c *fiber.Ctx) error {
	if !usercontext.IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false, "message": "Se requiere rol de administrador",
		})
	}
	return c.Next()
}

func resolveUserContext(raw string) (usercontext.UserContext, error) {
	claims, err := token.ParseAccess(raw)
	if err != nil {
		return usercontext.UserContext{}, err
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByID(claims.UserID)
	if err != nil {
		return usercontext.UserContext{}, err
	}
	if !user.IsActive() {
		return usercontext.UserContext{}, token.ErrInvalidToken
	}

	return usercontext.UserContext{
		UserID:     user.ID,
		Username:   user.NombreCompleto(),
		Cedula:     user.Cedula,
		Role:       user.Role,
		IsLoggedIn: true,
		IsAdmin:    user.Role == models.ROLE_ADMIN,
	}, nil
}

func setUserContext(c *fiber.Ctx, userCtx usercontext.UserContext) {
	c.Locals(usercontext.KeyUserContext, userCtx)
	c.Locals(usercontext.KeyAuthorized, true)
	c.Locals(usercontext.KeyUserID, userCtx.UserID)
	c.Locals(usercontext.KeyUsername, userCtx.Username)
	c.Locals(usercontext.KeyIsAdmin, userCtx.IsAdmin)
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false, "message": msg,
	})
}

func extractBearerToken(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
