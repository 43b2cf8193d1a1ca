package datex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOf(t *testing.T) {
	tests := []struct {
		name string
		ts   string
		want string
	}{
		{"rfc3339 utc", "2025-06-01T09:00:00Z", "2025-06-01"},
		{"rfc3339 offset", "2025-06-01T23:59:59+03:00", "2025-06-01"},
		{"bare date", "2025-06-01", "2025-06-01"},
		{"empty", "", ""},
		{"too short", "2025-06", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateOf(tt.ts))
		})
	}
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay("2025-06-01T00:01:00Z", "2025-06-01T23:59:00Z"))
	assert.False(t, SameDay("2025-06-01T09:00:00Z", "2025-06-02T09:00:00Z"))
	assert.False(t, SameDay("", ""))
}

func TestTodayYesterday(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-01-01", Today(now))
	assert.Equal(t, "2024-12-31", Yesterday(now))
}

func TestTimestampRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 2, 8, 15, 0, 0, time.UTC)
	ts := Timestamp(now)
	parsed, err := time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(now))
	assert.Equal(t, "2025-06-02", DateOf(ts))
}
