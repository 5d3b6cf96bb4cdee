package jsontypes

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

const calendarDateLayout = "2006-01-02"

// CalendarDate is a plain calendar date with no time or zone component.
type CalendarDate struct {
	d time.Time
}

func ParseCalendarDate(str string) (CalendarDate, error) {
	parsed, err := time.Parse(calendarDateLayout, str)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("failed to parse calendar date: %v", err)
	}
	return CalendarDate{d: parsed}, nil
}

func NewCalendarDate(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{d: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (c CalendarDate) String() string {
	return c.d.Format(calendarDateLayout)
}

func (c CalendarDate) IsZero() bool {
	return c.d.IsZero()
}

func (c CalendarDate) Weekday() time.Weekday {
	return c.d.Weekday()
}

func (c CalendarDate) AddDays(days int) CalendarDate {
	return CalendarDate{d: c.d.AddDate(0, 0, days)}
}

func (c CalendarDate) Before(other CalendarDate) bool {
	return c.d.Before(other.d)
}

func (c CalendarDate) Equal(other CalendarDate) bool {
	return c.d.Equal(other.d)
}

func (c *CalendarDate) UnmarshalJSON(data []byte) error {
	str := string(data[1 : len(data)-1])
	parsed, err := ParseCalendarDate(str)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c CalendarDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c CalendarDate) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c *CalendarDate) Scan(src interface{}) error {
	switch value := src.(type) {
	case time.Time:
		*c = CalendarDate{d: time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)}
		return nil
	case []byte:
		parsed, err := ParseCalendarDate(string(value))
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case string:
		parsed, err := ParseCalendarDate(value)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into CalendarDate", src)
	}
}
