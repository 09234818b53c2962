package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyWindowExplicitDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)

	from, to, err := dailyWindow("2025-03-10", now)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), from)
	// batas atas masih di hari yang sama, tepat sebelum tengah malam berikutnya
	assert.True(t, to.Before(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 10, to.Day())
	assert.Equal(t, 23, to.Hour())
}

func TestDailyWindowDefaultsToToday(t *testing.T) {
	// 23:59 WIB-style offset tidak berpengaruh: jendela dihitung dalam UTC
	now := time.Date(2025, 6, 1, 23, 59, 0, 0, time.FixedZone("WIB", 7*3600))

	from, _, err := dailyWindow("", now)
	assert.NoError(t, err)
	assert.Equal(t, now.UTC().Truncate(24*time.Hour), from)
	assert.Equal(t, time.UTC, from.Location())
}

func TestDailyWindowInvalidDate(t *testing.T) {
	_, _, err := dailyWindow("10-03-2025", time.Now())
	assert.Error(t, err)

	_, _, err = dailyWindow("kemarin", time.Now())
	assert.Error(t, err)
}
