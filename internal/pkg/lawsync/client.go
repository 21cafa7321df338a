package lawsync

import (
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/seguraep/acm-reportes/app/models"
	"github.com/seguraep/acm-reportes/app/repository"
	"github.com/seguraep/acm-reportes/internal/pkg/env"
)

// CatalogLaw is the wire shape of the public regulation catalog. The endpoint
// requires no authentication.
type CatalogLaw struct {
	Codigo      string           `json:"codigo"`
	Nombre      string           `json:"nombre"`
	Descripcion string           `json:"descripcion"`
	Articulos   []CatalogArticle `json:"articulos"`
}

type CatalogArticle struct {
	Numero string `json:"numero"`
	Texto  string `json:"texto"`
}

type catalogResponse struct {
	Success bool         `json:"success"`
	Data    []CatalogLaw `json:"data"`
}

// Client pulls the law/article catalog from the configured public endpoint.
type Client struct {
	httpClient *resty.Client
	repo       repository.LawRepository
}

// NewClient builds a catalog sync client against baseURL.
func NewClient(baseURL string, repo repository.LawRepository) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: httpClient,
		repo:       repo,
	}
}

// NewDefaultClient reads the endpoint from LEYES_CATALOG_URL.
func NewDefaultClient(repo repository.LawRepository) *Client {
	return NewClient(env.GetEnv("LEYES_CATALOG_URL", ""), repo)
}

// Fetch downloads the full catalog.
func (c *Client) Fetch() ([]CatalogLaw, error) {
	var response catalogResponse
	resp, err := c.httpClient.R().
		SetResult(&response).
		Get("/leyes-normas")
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog request failed: status %d", resp.StatusCode())
	}
	return response.Data, nil
}

// Sync fetches the catalog and upserts every law and article. Returns the
// number of laws processed.
func (c *Client) Sync() (int, error) {
	catalog, err := c.Fetch()
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, entry := range catalog {
		law := &models.Law{
			Codigo:      entry.Codigo,
			Nombre:      entry.Nombre,
			Descripcion: entry.Descripcion,
		}
		if err := c.repo.Upsert(law); err != nil {
			return synced, fmt.Errorf("upsert law %s: %w", entry.Codigo, err)
		}
		for _, art := range entry.Articulos {
			article := &models.Article{
				LawID:  law.ID,
				Numero: art.Numero,
				Texto:  art.Texto,
			}
			if err := c.repo.UpsertArticle(article); err != nil {
				return synced, fmt.Errorf("upsert article %s of %s: %w", art.Numero, entry.Codigo, err)
			}
		}
		synced++
	}

	log.Printf("lawsync: synchronized %d laws from catalog", synced)
	return synced, nil
}
