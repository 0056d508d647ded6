// ABOUTME: Calendar day keys used to partition "today" semantics.
// ABOUTME: Keys are YYYY-MM-DD in the location of the time they came from.
package models

import (
	"fmt"
	"time"
)

// DayLayout is the format of a calendar day key.
const DayLayout = "2006-01-02"

// DayKey returns the calendar day key for t in t's location.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay validates a day key and returns midnight UTC of that day.
func ParseDay(key string) (time.Time, error) {
	t, err := time.Parse(DayLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q (use YYYY-MM-DD)", key)
	}
	return t, nil
}

// ShiftDay returns the key n days after key (n may be negative).
func ShiftDay(key string, n int) (string, error) {
	t, err := ParseDay(key)
	if err != nil {
		return "", err
	}
	return DayKey(t.AddDate(0, 0, n)), nil
}

// WeekdayInitial returns the single-letter label for a day key.
func WeekdayInitial(key string) string {
	t, err := ParseDay(key)
	if err != nil {
		return "?"
	}
	return t.Weekday().String()[:1]
}
