package schedules

import (
	"testing"
	"time"

	"jadwalin-service/internal/pkg/jsontypes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekdays(t *testing.T) {
	t.Run("maps lowercase names", func(t *testing.T) {
		weekdays, err := ParseWeekdays([]string{"monday", "friday"})
		require.NoError(t, err)
		assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, weekdays)
	})

	t.Run("drops duplicates keeping first occurrence", func(t *testing.T) {
		weekdays, err := ParseWeekdays([]string{"friday", "monday", "friday"})
		require.NoError(t, err)
		assert.Equal(t, []time.Weekday{time.Friday, time.Monday}, weekdays)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := ParseWeekdays([]string{"monday", "someday"})
		assert.Error(t, err)
	})
}

func TestProjectWeek(t *testing.T) {
	// 2024-06-05 is a Wednesday; its Monday-start week runs 06-03 to 06-09.
	anchor := jsontypes.NewCalendarDate(2024, time.June, 5)

	testCases := []struct {
		name     string
		anchor   jsontypes.CalendarDate
		weekdays []time.Weekday
		expected []string
	}{
		{
			name:     "midweek anchor projects selected days across the whole week",
			anchor:   anchor,
			weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
			expected: []string{"2024-06-03", "2024-06-05", "2024-06-07"},
		},
		{
			name:     "days before the anchor are included",
			anchor:   anchor,
			weekdays: []time.Weekday{time.Monday, time.Tuesday},
			expected: []string{"2024-06-03", "2024-06-04"},
		},
		{
			name:     "sunday closes the week",
			anchor:   anchor,
			weekdays: []time.Weekday{time.Sunday, time.Monday},
			expected: []string{"2024-06-03", "2024-06-09"},
		},
		{
			name:     "sunday anchor stays in the same monday-start week",
			anchor:   jsontypes.NewCalendarDate(2024, time.June, 9),
			weekdays: []time.Weekday{time.Monday, time.Sunday},
			expected: []string{"2024-06-03", "2024-06-09"},
		},
		{
			name:     "monday anchor projects itself",
			anchor:   jsontypes.NewCalendarDate(2024, time.June, 3),
			weekdays: []time.Weekday{time.Monday},
			expected: []string{"2024-06-03"},
		},
		{
			name:     "empty selection projects nothing",
			anchor:   anchor,
			weekdays: nil,
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dates := ProjectWeek(tc.anchor, tc.weekdays)

			values := make([]string, 0, len(dates))
			for _, date := range dates {
				values = append(values, date.String())
			}
			if tc.expected == nil {
				assert.Empty(t, dates)
			} else {
				assert.Equal(t, tc.expected, values)
			}
		})
	}
}

func TestProjectWeekAllDays(t *testing.T) {
	anchor := jsontypes.NewCalendarDate(2024, time.June, 5)
	all := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}

	dates := ProjectWeek(anchor, all)

	require.Len(t, dates, 7)
	assert.Equal(t, "2024-06-03", dates[0].String())
	assert.Equal(t, "2024-06-09", dates[6].String())
	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i-1].Before(dates[i]))
	}
}
