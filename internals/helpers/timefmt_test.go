package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatWIB(t *testing.T) {
	// 01:30 UTC == 08:30 WIB
	ts := time.Date(2025, 3, 10, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10 08:30:00+07:00", FormatWIB(ts))
}

func TestFormatWIBCrossesMidnight(t *testing.T) {
	// 20:00 UTC == 03:00 WIB hari berikutnya
	ts := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-11 03:00:00+07:00", FormatWIB(ts))
}

func TestFormatWIBPtr(t *testing.T) {
	assert.Nil(t, FormatWIBPtr(nil))

	ts := time.Date(2025, 3, 10, 1, 30, 0, 0, time.UTC)
	got := FormatWIBPtr(&ts)
	assert.NotNil(t, got)
	assert.Equal(t, "2025-03-10 08:30:00+07:00", *got)
}

func TestFormatJamWIB(t *testing.T) {
	ts := time.Date(2025, 3, 10, 1, 30, 45, 0, time.UTC)
	assert.Equal(t, "08:30:45", FormatJamWIB(ts))
}
