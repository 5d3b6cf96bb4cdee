package schedules

import (
	"fmt"
	"time"

	"jadwalin-service/internal/pkg/jsontypes"
)

var weekdaysByName = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParseWeekdays maps lowercase weekday names to time.Weekday values,
// dropping duplicates.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	seen := make(map[time.Weekday]bool, len(names))
	var weekdays []time.Weekday
	for _, name := range names {
		weekday, ok := weekdaysByName[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday name '%s'", name)
		}
		if seen[weekday] {
			continue
		}
		seen[weekday] = true
		weekdays = append(weekdays, weekday)
	}
	return weekdays, nil
}

// ProjectWeek returns, in ascending order, every date of the Monday-start
// week containing anchor whose weekday is selected. Sunday closes the week
// at position 7, ISO style. An empty selection projects to nothing.
func ProjectWeek(anchor jsontypes.CalendarDate, weekdays []time.Weekday) []jsontypes.CalendarDate {
	if len(weekdays) == 0 {
		return nil
	}

	selected := make(map[time.Weekday]bool, len(weekdays))
	for _, weekday := range weekdays {
		selected[weekday] = true
	}

	position := int(anchor.Weekday())
	if position == 0 {
		position = 7
	}
	monday := anchor.AddDays(1 - position)

	var dates []jsontypes.CalendarDate
	for i := 0; i < 7; i++ {
		date := monday.AddDays(i)
		if selected[date.Weekday()] {
			dates = append(dates, date)
		}
	}
	return dates
}
