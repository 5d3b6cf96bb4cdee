package jsontypes

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWallClock(t *testing.T) {
	t.Run("parses and formats the canonical layout", func(t *testing.T) {
		clock, err := ParseWallClock("08:30:00")
		require.NoError(t, err)
		assert.Equal(t, "08:30:00", clock.String())
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		_, err := ParseWallClock("8:30")
		assert.Error(t, err)
	})

	t.Run("adds hours without date rollover artifacts", func(t *testing.T) {
		clock, err := ParseWallClock("23:00:00")
		require.NoError(t, err)
		assert.Equal(t, "00:00:00", clock.AddHours(1).String())
	})

	t.Run("orders values", func(t *testing.T) {
		early, _ := ParseWallClock("08:00:00")
		late, _ := ParseWallClock("09:00:00")
		assert.True(t, early.Before(late))
		assert.False(t, late.Before(early))
		assert.True(t, early.Equal(early))
	})

	t.Run("round trips through JSON", func(t *testing.T) {
		clock, _ := ParseWallClock("13:45:00")
		data, err := json.Marshal(clock)
		require.NoError(t, err)
		assert.Equal(t, `"13:45:00"`, string(data))

		var decoded WallClock
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, clock.Equal(decoded))
	})

	t.Run("scans driver values", func(t *testing.T) {
		var fromBytes WallClock
		require.NoError(t, fromBytes.Scan([]byte("10:15:00")))
		assert.Equal(t, "10:15:00", fromBytes.String())

		var fromTime WallClock
		require.NoError(t, fromTime.Scan(time.Date(0, time.January, 1, 10, 15, 0, 0, time.UTC)))
		assert.True(t, fromBytes.Equal(fromTime))

		var failed WallClock
		assert.Error(t, failed.Scan(42))
	})
}

func TestCalendarDate(t *testing.T) {
	t.Run("parses and formats the canonical layout", func(t *testing.T) {
		date, err := ParseCalendarDate("2024-06-05")
		require.NoError(t, err)
		assert.Equal(t, "2024-06-05", date.String())
		assert.Equal(t, time.Wednesday, date.Weekday())
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		_, err := ParseCalendarDate("05-06-2024")
		assert.Error(t, err)
	})

	t.Run("adds days across month boundaries", func(t *testing.T) {
		date := NewCalendarDate(2024, time.June, 30)
		assert.Equal(t, "2024-07-01", date.AddDays(1).String())
		assert.Equal(t, "2024-06-28", date.AddDays(-2).String())
	})

	t.Run("round trips through JSON", func(t *testing.T) {
		date := NewCalendarDate(2024, time.June, 5)
		data, err := json.Marshal(date)
		require.NoError(t, err)
		assert.Equal(t, `"2024-06-05"`, string(data))

		var decoded CalendarDate
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, date.Equal(decoded))
	})

	t.Run("scans driver values", func(t *testing.T) {
		var fromBytes CalendarDate
		require.NoError(t, fromBytes.Scan([]byte("2024-06-05")))
		assert.Equal(t, "2024-06-05", fromBytes.String())

		var fromTime CalendarDate
		require.NoError(t, fromTime.Scan(time.Date(2024, time.June, 5, 11, 30, 0, 0, time.UTC)))
		assert.True(t, fromBytes.Equal(fromTime))

		var failed CalendarDate
		assert.Error(t, failed.Scan(3.14))
	})
}
