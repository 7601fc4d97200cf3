package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-bed-caller/internal/schedule"
)

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation(name)
	require.NoError(t, err)

	return loc
}

func TestNextOccurrence_Daily(t *testing.T) {
	after := time.Date(2025, time.May, 5, 8, 0, 0, 0, time.UTC)

	next, ok := schedule.NextOccurrence("30 9 * * *", time.UTC, after)

	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.May, 5, 9, 30, 0, 0, time.UTC), next.UTC())
}

func TestNextOccurrence_StrictlyIncreasing(t *testing.T) {
	after := time.Date(2025, time.May, 5, 8, 0, 0, 0, time.UTC)

	first, ok := schedule.NextOccurrence("30 9 * * *", time.UTC, after)
	require.True(t, ok)

	second, ok := schedule.NextOccurrence("30 9 * * *", time.UTC, first)
	require.True(t, ok)

	assert.True(t, second.After(first))
	assert.Equal(t, 24*time.Hour, second.Sub(first))
}

func TestNextOccurrence_Timezone(t *testing.T) {
	msk := mustLocation(t, "Europe/Moscow")

	// 06:00 UTC = 09:00 MSK, будильник на 09:30 по Москве.
	after := time.Date(2025, time.May, 5, 6, 0, 0, 0, time.UTC)

	next, ok := schedule.NextOccurrence("30 9 * * *", msk, after)

	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.May, 5, 6, 30, 0, 0, time.UTC), next.UTC())
}

func TestNextOccurrence_DaylightSavingGap(t *testing.T) {
	ny := mustLocation(t, "America/New_York")

	// 9 марта 2025 часы переводят с 02:00 сразу на 03:00.
	after := time.Date(2025, time.March, 9, 0, 0, 0, 0, ny)

	next, ok := schedule.NextOccurrence("30 2 * * *", ny, after)

	require.True(t, ok)
	assert.True(t, next.After(after))
}

func TestNextOccurrence_PinnedOneOff(t *testing.T) {
	t.Run("future date", func(t *testing.T) {
		after := time.Date(2025, time.May, 5, 8, 0, 0, 0, time.UTC)

		next, ok := schedule.NextOccurrence("30 9 6 5 * 2025", time.UTC, after)

		require.True(t, ok)
		assert.Equal(t, time.Date(2025, time.May, 6, 9, 30, 0, 0, time.UTC), next.UTC())
	})

	t.Run("past date is expired", func(t *testing.T) {
		after := time.Date(2025, time.May, 5, 8, 0, 0, 0, time.UTC)

		_, ok := schedule.NextOccurrence("30 9 1 1 * 2020", time.UTC, after)

		assert.False(t, ok)
	})

	t.Run("second call after the occurrence is expired", func(t *testing.T) {
		after := time.Date(2025, time.May, 5, 8, 0, 0, 0, time.UTC)

		first, ok := schedule.NextOccurrence("30 9 6 5 * 2025", time.UTC, after)
		require.True(t, ok)

		_, ok = schedule.NextOccurrence("30 9 6 5 * 2025", time.UTC, first)
		assert.False(t, ok)
	})
}

func TestNextOccurrence_BadExpression(t *testing.T) {
	_, ok := schedule.NextOccurrence("это не cron", time.UTC, time.Now())
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, schedule.Validate("30 9 * * *"))
	assert.NoError(t, schedule.Validate("30 9 6 5 * 2025"))
	assert.Error(t, schedule.Validate("30 9 * *"))
	assert.Error(t, schedule.Validate("61 9 * * *"))
	assert.Error(t, schedule.Validate("30 9 6 5 * год"))
}
