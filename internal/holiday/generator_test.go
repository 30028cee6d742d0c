package holiday

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_2026(t *testing.T) {
	holidays, err := Generate(2026)
	require.NoError(t, err)
	require.NotEmpty(t, holidays)

	byDate := map[string]string{}
	for _, h := range holidays {
		byDate[h.Date.Format(dateLayout)] = h.Name
	}

	assert.Equal(t, "New Year's Day", byDate["2026-01-01"])
	assert.Equal(t, "Easter Monday", byDate["2026-04-06"])
	assert.Equal(t, "Christmas Day", byDate["2026-12-25"])
	assert.Equal(t, "Second Day of Christmas", byDate["2026-12-26"])
}

func TestGenerate_InvalidYear(t *testing.T) {
	_, err := Generate(1800)
	assert.Error(t, err)
}

func TestOfflineOracle_Holidays(t *testing.T) {
	o := OfflineOracle{}
	from := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	set, err := o.Holidays(context.Background(), from, to)
	require.NoError(t, err)
	assert.True(t, set["2025-12-25"])
	assert.True(t, set["2025-12-26"])
	assert.False(t, set["2025-12-24"])
}

func TestStaticOracle_FiltersToRange(t *testing.T) {
	o := NewStaticOracle("2025-01-01", "2026-01-01")
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	set, err := o.Holidays(context.Background(), from, to)
	require.NoError(t, err)
	assert.True(t, set["2025-01-01"])
	assert.False(t, set["2026-01-01"])
}
