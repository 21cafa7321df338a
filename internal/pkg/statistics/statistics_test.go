package statistics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seguraep/acm-reportes/app/repository"
)

func TestNormalizeReplacesNilMaps(t *testing.T) {
	stats := normalize(&repository.ReportStats{Total: 3})

	assert.EqualValues(t, 3, stats.Total)
	assert.NotNil(t, stats.PorZona)
	assert.NotNil(t, stats.PorEstado)

	payload, err := json.Marshal(stats)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "null")
}

func TestNormalizeKeepsExistingBuckets(t *testing.T) {
	stats := normalize(&repository.ReportStats{
		Total:     5,
		PorZona:   map[string]int64{"Norte": 3, "Centro": 2},
		PorEstado: map[string]int64{"pendiente": 5},
	})

	assert.EqualValues(t, 3, stats.PorZona["Norte"])
	assert.EqualValues(t, 5, stats.PorEstado["pendiente"])
}

func TestEmptyReportStatsShape(t *testing.T) {
	stats := repository.EmptyReportStats()

	assert.EqualValues(t, 0, stats.Total)
	assert.NotNil(t, stats.PorZona)
	assert.NotNil(t, stats.PorEstado)
	assert.Empty(t, stats.PorZona)
	assert.Empty(t, stats.PorEstado)
}
