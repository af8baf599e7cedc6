package services

import (
	"strings"
	"time"

	"github.com/yeremiapane/guestlist-app/schedule"
)

// Calendar resolves "now", weeks and event nights in the venue timezone.
type Calendar struct {
	Location  *time.Location
	WeekStart time.Weekday
	Now       func() time.Time
}

func NewCalendar(loc *time.Location, weekStart time.Weekday) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{Location: loc, WeekStart: weekStart, Now: time.Now}
}

// Today is the current instant in the venue timezone.
func (c *Calendar) Today() time.Time {
	return c.Now().In(c.Location)
}

func (c *Calendar) UpcomingNights() []schedule.EventNight {
	return schedule.UpcomingDates(c.Today())
}

// WeekOf resolves a "YYYY-MM-DD" query value to a day in the venue
// timezone. Empty means today.
func (c *Calendar) WeekOf(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return c.Today(), nil
	}
	d, err := time.ParseInLocation(schedule.WeekLayout, value, c.Location)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "week", Message: "must be a date formatted YYYY-MM-DD", Err: err}
	}
	return d, nil
}

// Bounds returns the [from, to) interval of the week containing t.
func (c *Calendar) Bounds(t time.Time) (time.Time, time.Time) {
	return schedule.WeekBounds(t.In(c.Location), c.WeekStart)
}

func (c *Calendar) IsCurrentWeek(t time.Time) bool {
	from, _ := c.Bounds(t)
	current, _ := c.Bounds(c.Now())
	return from.Equal(current)
}

// Display renders t for staff screens in the venue timezone.
func (c *Calendar) Display(t time.Time) string {
	return schedule.FormatVenueTime(t, c.Location)
}
