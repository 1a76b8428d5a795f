package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the layout used when emitting dates (ISO-8601 without zone).
const DateLayout = "2006-01-02T15:04:05"

// ZonedDateLayout is DateLayout with a numeric UTC offset. It is used for
// dates derived from input that carried a zone.
const ZonedDateLayout = "2006-01-02T15:04:05-07:00"

var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp in any of the layouts clients send.
// Timestamps without a zone are read as UTC wall-clock time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// HasZone reports whether s is a timestamp with an explicit zone, either Z
// or a numeric offset.
func HasZone(s string) bool {
	_, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	return err == nil
}

// ParseOptionalTimestamp parses s when it is set. ok is false for an empty string.
func ParseOptionalTimestamp(s string) (t time.Time, ok bool, err error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, false, nil
	}
	t, err = ParseTimestamp(s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// HoursBetween returns the signed number of hours from start to end.
func HoursBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// WholeDaysBetween returns the whole days from start to end, rounding toward
// negative infinity like a calendar offset.
func WholeDaysBetween(start, end time.Time) int {
	return int(math.Floor(end.Sub(start).Hours() / 24))
}
