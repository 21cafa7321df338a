package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seguraep/acm-reportes/internal/pkg/cache"
	"github.com/seguraep/acm-reportes/internal/pkg/database"
)

// HandleHealth reports component status. Always 200: the load balancer reads
// the body, not the code, and a degraded cache must not take the API down.
func HandleHealth(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "down"
	}
	cacheStatus := "ok"
	if err := cache.Ping(); err != nil {
		cacheStatus = "down"
	}

	return ok(c, "", fiber.Map{
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
