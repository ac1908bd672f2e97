package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

// Now is the clock used to compute "today". Tests replace it.
var Now = time.Now

// Today returns today's date string (YYYY-MM-DD) on the local clock.
func Today() string {
	return Now().Format(constants.DateFormat)
}

// TrailingDays returns n date strings, newest first: the day of now and the n-1
// calendar days before it, in now's location.
func TrailingDays(now time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	days := make([]string, n)
	for i := 0; i < n; i++ {
		// AddDate keeps calendar arithmetic correct across DST shifts.
		days[i] = midnight.AddDate(0, 0, -i).Format(constants.DateFormat)
	}
	return days
}

// LastFiveDays returns today and the previous four days on the local clock.
func LastFiveDays() []string {
	return TrailingDays(Now(), constants.TrailingDays)
}

// ParseDay parses a date string in the standard format (YYYY-MM-DD).
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", day, err)
	}
	return t, nil
}

// ValidateDay reports whether day is a well-formed calendar date.
func ValidateDay(day string) bool {
	_, err := ParseDay(day)
	return err == nil
}

// ShortDayLabel formats a day like "20 Mar". Unparseable input is returned as is.
func ShortDayLabel(day string) string {
	t, err := ParseDay(day)
	if err != nil {
		return day
	}
	return t.Format("2 Jan")
}

// LongDayLabel formats a day like "20 March 2024". Unparseable input is returned as is.
func LongDayLabel(day string) string {
	t, err := ParseDay(day)
	if err != nil {
		return day
	}
	return t.Format("2 January 2006")
}
