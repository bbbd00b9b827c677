package interval

import (
	"fmt"
	"time"

	apperrors "slotwise/pkg/errors"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	MinutesPerDay = 24 * 60
)

// ToMinutes parses an HH:MM 24-hour wall-clock string into minutes since
// midnight. Rejects anything that is not exactly two zero-padded fields in
// range.
func ToMinutes(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, apperrors.InvalidFormat(fmt.Sprintf("invalid time %q, expected HH:MM", s))
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, apperrors.InvalidFormat(fmt.Sprintf("invalid time %q, expected HH:MM", s))
		}
	}

	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, apperrors.InvalidFormat(fmt.Sprintf("time %q out of range", s))
	}

	return hour*60 + minute, nil
}

// FormatMinutes renders minutes since midnight back into HH:MM.
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching ranges do not overlap. Every conflict
// check in the codebase must go through this predicate.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// ParseDate parses a YYYY-MM-DD calendar date. The result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperrors.InvalidFormat(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return d, nil
}

// Weekday returns the day-of-week name for a YYYY-MM-DD date.
func Weekday(date string) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return d.Weekday().String(), nil
}

// At combines a YYYY-MM-DD date and an HH:MM time into a UTC instant.
// Inputs are assumed already validated.
func At(date string, hhmm string) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	m, err := ToMinutes(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(time.Duration(m) * time.Minute), nil
}
