package booking

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the wire and storage format for booking dates.
const DateFormat = "2006-01-02"

// TimeOfDay is a clock time within a single day, stored as minutes since
// midnight. It maps onto Postgres TIME columns and the "HH:MM" wire format.
type TimeOfDay int

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Scan accepts the TIME representations lib/pq produces.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case time.Time:
		*t = TimeOfDay(v.Hour()*60 + v.Minute())
		return nil
	case nil:
		*t = 0
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

func (t *TimeOfDay) scanString(s string) error {
	parsed, err := time.Parse("15:04:05", s)
	if err != nil {
		parsed, err = time.Parse("15:04", s)
		if err != nil {
			return fmt.Errorf("cannot scan %q into TimeOfDay", s)
		}
	}
	*t = TimeOfDay(parsed.Hour()*60 + parsed.Minute())
	return nil
}

func (t TimeOfDay) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:00", t.Hour(), t.Minute()), nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeRange is a half-open interval [Start, End) within one calendar date.
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

func NewTimeRange(start, end TimeOfDay) TimeRange {
	return TimeRange{Start: start, End: end}
}

// IsValid reports whether the range has positive length.
func (r TimeRange) IsValid() bool {
	return r.Start < r.End
}

// Overlaps reports whether two half-open ranges intersect. Ranges that only
// share a boundary do not overlap, so back-to-back bookings are allowed.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// DurationHours returns the range length in hours.
func (r TimeRange) DurationHours() float64 {
	return float64(r.End-r.Start) / 60
}
