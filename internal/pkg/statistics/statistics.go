package statistics

import (
	"encoding/json"
	"log"
	"time"

	"github.com/seguraep/acm-reportes/app/repository"
	"github.com/seguraep/acm-reportes/internal/pkg/cache"
)

const (
	CacheKeyReportStats = "statistics:reportes"
	CacheExpiration     = 30 * time.Minute
)

// GetReportStats returns aggregate report counts, served from cache when
// fresh. It never returns an error: any cache or database failure degrades
// to the zero-valued default, matching the dashboard's soft-failure policy.
func GetReportStats() *repository.ReportStats {
	if cached, err := cache.Get(CacheKeyReportStats); err == nil {
		var stats repository.ReportStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return normalize(&stats)
		}
	}

	repo := repository.GetGlobalFactory().GetReportRepository()
	stats, err := repo.Stats()
	if err != nil {
		log.Printf("statistics: falling back to zero values: %v", err)
		return repository.EmptyReportStats()
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := cache.Set(CacheKeyReportStats, payload, CacheExpiration); err != nil {
			log.Printf("statistics: cache write failed: %v", err)
		}
	}

	return normalize(stats)
}

// InvalidateReportStats drops the cached aggregates after a write.
func InvalidateReportStats() {
	if err := cache.Delete(CacheKeyReportStats); err != nil {
		log.Printf("statistics: cache invalidation failed: %v", err)
	}
}

// normalize guarantees non-nil maps so the JSON payload always carries
// objects, not nulls.
func normalize(stats *repository.ReportStats) *repository.ReportStats {
	if stats.PorZona == nil {
		stats.PorZona = map[string]int64{}
	}
	if stats.PorEstado == nil {
		stats.PorEstado = map[string]int64{}
	}
	return stats
}
