package jsontypes

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

const wallClockLayout = "15:04:05"

// WallClock is a time of day with second precision and no date, zone or DST
// attached. Slot arithmetic steps over these values, so generation output is
// identical regardless of server timezone.
type WallClock struct {
	t time.Time
}

func ParseWallClock(str string) (WallClock, error) {
	parsed, err := time.Parse(wallClockLayout, str)
	if err != nil {
		return WallClock{}, fmt.Errorf("failed to parse wall clock time: %v", err)
	}
	return WallClock{t: parsed}, nil
}

func (w WallClock) String() string {
	return w.t.Format(wallClockLayout)
}

func (w WallClock) IsZero() bool {
	return w.t.IsZero()
}

func (w WallClock) Before(other WallClock) bool {
	return w.t.Before(other.t)
}

func (w WallClock) Equal(other WallClock) bool {
	return w.t.Equal(other.t)
}

func (w WallClock) AddHours(hours int) WallClock {
	return WallClock{t: w.t.Add(time.Duration(hours) * time.Hour)}
}

func (w *WallClock) UnmarshalJSON(data []byte) error {
	str := string(data[1 : len(data)-1])
	parsed, err := ParseWallClock(str)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

func (w WallClock) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

// Value stores the wall clock as a TIME column literal.
func (w WallClock) Value() (driver.Value, error) {
	return w.String(), nil
}

// Scan accepts TIME column values. lib/pq hands them back either as a
// time.Time on the zero date or as raw bytes depending on the query path.
func (w *WallClock) Scan(src interface{}) error {
	switch value := src.(type) {
	case time.Time:
		*w = WallClock{t: time.Date(0, time.January, 1, value.Hour(), value.Minute(), value.Second(), 0, time.UTC)}
		return nil
	case []byte:
		parsed, err := ParseWallClock(string(value))
		if err != nil {
			return err
		}
		*w = parsed
		return nil
	case string:
		parsed, err := ParseWallClock(value)
		if err != nil {
			return err
		}
		*w = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into WallClock", src)
	}
}
