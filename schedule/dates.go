package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	// Venue timezones must resolve on hosts without a zoneinfo database.
	_ "time/tzdata"
)

const (
	DateLayout    = "01/02/2006"
	WeekLayout    = "2006-01-02"
	DisplayLayout = "01/02/2006 at 03:04 PM MST"
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format, expected \"Weekday (MM/DD/YYYY)\" or \"MM/DD/YYYY\"")
	ErrInvalidDateValue  = errors.New("invalid date value")
)

// EventNights are the only weekdays sign-ups are accepted for, in display order.
var EventNights = []string{"Thursday", "Friday", "Saturday", "Sunday"}

var (
	labelDate = regexp.MustCompile(`^[A-Za-z]+\s*\((\d{2}/\d{2}/\d{4})\)$`)
	plainDate = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
)

type EventNight struct {
	Day   string `json:"day"`
	Date  string `json:"date"`
	Label string `json:"label"`
}

// UpcomingDates returns Thursday..Sunday of the week anchored on the most recent
// Monday on or before now. When now is Friday or later, earlier nights of that
// week are already in the past; callers get them anyway.
func UpcomingDates(now time.Time) []EventNight {
	offset := (int(now.Weekday()) + 6) % 7
	monday := time.Date(now.Year(), now.Month(), now.Day()-offset, 0, 0, 0, 0, now.Location())

	nights := make([]EventNight, 0, len(EventNights))
	for _, days := range []int{3, 4, 5, 6} {
		d := monday.AddDate(0, 0, days)
		date := d.Format(DateLayout)
		nights = append(nights, EventNight{
			Day:   d.Weekday().String(),
			Date:  date,
			Label: Label(d),
		})
	}
	return nights
}

// Label renders a date the way sign-up forms submit it: "Friday (06/13/2025)".
func Label(d time.Time) string {
	return fmt.Sprintf("%s (%s)", d.Weekday(), d.Format(DateLayout))
}

// ParseLabel extracts the parenthesised MM/DD/YYYY part of a label.
func ParseLabel(s string) (time.Time, error) {
	match := labelDate.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return parseDay(match[1])
}

// ParseDate accepts either a label or a bare "MM/DD/YYYY".
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if plainDate.MatchString(s) {
		return parseDay(s)
	}
	return ParseLabel(s)
}

// WeekdayOf returns the weekday name of a label or bare date.
func WeekdayOf(s string) (string, error) {
	d, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return d.Weekday().String(), nil
}

func parseDay(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDateValue, s)
	}
	return d, nil
}

// WeekdayFromLabel returns the English weekday name of the date inside a label.
func WeekdayFromLabel(s string) (string, error) {
	d, err := ParseLabel(s)
	if err != nil {
		return "", err
	}
	return d.Weekday().String(), nil
}

// IsEventNight reports whether day names one of the supported nights. Matching
// is case-insensitive.
func IsEventNight(day string) bool {
	return CanonicalDay(day) != ""
}

// CanonicalDay maps any casing of a supported night to its canonical spelling,
// or "" when day is not an event night.
func CanonicalDay(day string) string {
	day = strings.TrimSpace(day)
	for _, n := range EventNights {
		if strings.EqualFold(n, day) {
			return n
		}
	}
	return ""
}

// NormalizeDays deduplicates days and orders them Thursday..Sunday. Unknown
// names are returned separately so callers can reject them.
func NormalizeDays(days []string) (valid []string, unknown []string) {
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		c := CanonicalDay(d)
		if c == "" {
			unknown = append(unknown, d)
			continue
		}
		seen[c] = true
	}
	valid = make([]string, 0, len(seen))
	for _, n := range EventNights {
		if seen[n] {
			valid = append(valid, n)
		}
	}
	return valid, unknown
}

// WeekBounds returns the half-open interval [from, to) of the week containing t,
// with weeks starting on start, in t's location.
func WeekBounds(t time.Time, start time.Weekday) (from, to time.Time) {
	offset := (int(t.Weekday()) - int(start) + 7) % 7
	from = time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 0, 7)
}

// ParseWeekday accepts English weekday names ("sunday", "Mon", ...).
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

// FormatVenueTime renders t in the venue's timezone, e.g. "06/13/2025 at 11:42 PM CDT".
func FormatVenueTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DisplayLayout)
}
