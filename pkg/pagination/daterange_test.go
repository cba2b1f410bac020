package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRangeBothOrNeither(t *testing.T) {
	start, end := ParseDateRange("2025-01-01", "")
	assert.Nil(t, start)
	assert.Nil(t, end)

	start, end = ParseDateRange("", "2025-01-31")
	assert.Nil(t, start)
	assert.Nil(t, end)

	start, end = ParseDateRange("2025-01-01", "2025-01-31")
	require.NotNil(t, start)
	require.NotNil(t, end)
}

func TestParseDateRangeDateOnlyEndIsInclusive(t *testing.T) {
	start, end := ParseDateRange("2025-01-01", "2025-01-31")
	require.NotNil(t, start)
	require.NotNil(t, end)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *start)
	// A record saved late on the end date still falls inside the window
	lastMoment := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)
	assert.True(t, end.After(lastMoment))
	assert.True(t, end.Before(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseDateRangeRFC3339(t *testing.T) {
	start, end := ParseDateRange("2025-01-01T10:00:00Z", "2025-01-02T10:00:00Z")
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.Equal(t, 10, start.Hour())
	assert.Equal(t, 10, end.Hour())
}

func TestParseDateRangeUnparseable(t *testing.T) {
	start, end := ParseDateRange("yesterday", "2025-01-31")
	assert.Nil(t, start)
	assert.Nil(t, end)
}
