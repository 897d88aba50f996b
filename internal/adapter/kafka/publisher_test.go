package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/ghcn-doy-matrix/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeSummary(t *testing.T) {
	generated := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	summary := domain.StationSummary{
		StationID:      "USW00023183",
		StationName:    "PHOENIX AIRPORT, AZ US",
		FirstYear:      2019,
		LastYear:       2021,
		YearCount:      3,
		PopulatedCells: 1000,
		MissingCells:   50,
		BlankCells:     45,
		GeneratedAt:    generated,
	}

	msg, err := serializeSummary(summary)
	require.NoError(t, err)

	assert.Equal(t, []byte("USW00023183"), msg.Key)
	assert.Contains(t, string(msg.Value), `"station_id":"USW00023183"`)
	assert.Contains(t, string(msg.Value), `"first_year":2019`)
	assert.Contains(t, string(msg.Value), `"populated_cells":1000`)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "station_name", msg.Headers[0].Key)
	assert.Equal(t, []byte("PHOENIX AIRPORT, AZ US"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2026-08-29T10:00:00Z"), msg.Headers[1].Value)
}
