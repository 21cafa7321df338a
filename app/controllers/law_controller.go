package controllers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/seguraep/acm-reportes/app/models"
	"github.com/seguraep/acm-reportes/app/repository"
	"github.com/seguraep/acm-reportes/internal/pkg/cache"
	"github.com/seguraep/acm-reportes/internal/pkg/lawsync"
)

const (
	lawCatalogCacheKey = "leyes:catalogo"
	lawCatalogCacheTTL = time.Hour
)

// HandleListLaws returns the regulation catalog, cached since it is
// read-mostly.
func HandleListLaws(c *fiber.Ctx) error {
	if cached, err := cache.Get(lawCatalogCacheKey); err == nil {
		var laws []models.Law
		if err := json.Unmarshal([]byte(cached), &laws); err == nil {
			return ok(c, "", fiber.Map{"leyes": laws})
		}
	}

	repo := repository.GetGlobalFactory().GetLawRepository()
	laws, err := repo.GetAll()
	if err != nil {
		fiberlog.Errorf("laws: list failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo cargar el catálogo")
	}

	if payload, err := json.Marshal(laws); err == nil {
		if err := cache.Set(lawCatalogCacheKey, payload, lawCatalogCacheTTL); err != nil {
			fiberlog.Warnf("laws: cache write failed: %v", err)
		}
	}

	return ok(c, "", fiber.Map{"leyes": laws})
}

// HandleGetLawArticles returns the articles of one law.
func HandleGetLawArticles(c *fiber.Ctx) error {
	lawID, err := c.ParamsInt("id")
	if err != nil || lawID < 1 {
		return fail(c, fiber.StatusBadRequest, "Identificador de ley inválido")
	}

	repo := repository.GetGlobalFactory().GetLawRepository()
	if _, err := repo.GetByID(uint(lawID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "Ley no encontrada")
		}
		fiberlog.Errorf("laws: fetch failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo cargar la ley")
	}

	articles, err := repo.GetArticles(uint(lawID))
	if err != nil {
		fiberlog.Errorf("laws: articles fetch failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "No se pudo cargar los artículos")
	}

	return ok(c, "", fiber.Map{"articulos": articles})
}

// HandleSyncLaws pulls the catalog from the configured public endpoint and
// upserts it (admin action).
func HandleSyncLaws(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetLawRepository()
	client := lawsync.NewDefaultClient(repo)

	n, err := client.Sync()
	if err != nil {
		fiberlog.Errorf("laws: sync failed: %v", err)
		return fail(c, fiber.StatusBadGateway, "No se pudo sincronizar el catálogo")
	}

	if err := cache.Delete(lawCatalogCacheKey); err != nil {
		fiberlog.Warnf("laws: cache invalidation failed: %v", err)
	}

	return ok(c, "Catálogo sincronizado", fiber.Map{"leyes_sincronizadas": n})
}
