package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yeremiapane/guestlist-app/models"
	"github.com/yeremiapane/guestlist-app/repository"
)

// UnknownClub groups guests whose club can no longer be resolved.
const UnknownClub = "Unknown"

type ClubStat struct {
	TotalGuests     int `json:"total_guests"`
	CheckedInGuests int `json:"checked_in_guests"`
}

// Analytics summarises one week of sign-ups.
type Analytics struct {
	TotalGuests           int                 `json:"total_guests"`
	CheckedInGuests       int                 `json:"checked_in_guests"`
	BottleServiceRequests int                 `json:"bottle_service_requests"`
	ClubStats             map[string]ClubStat `json:"club_stats"`
	From                  time.Time           `json:"from"`
	To                    time.Time           `json:"to"`
	GeneratedAt           time.Time           `json:"generated_at"`
}

// Aggregate counts rows per club. Every club in clubs appears, even with
// zero guests.
func Aggregate(rows []models.GuestView, clubs []models.Club) Analytics {
	names := StatLabels(clubs)
	stats := make(map[string]ClubStat, len(clubs)+1)
	for _, name := range names {
		stats[name] = ClubStat{}
	}

	var a Analytics
	for _, g := range rows {
		a.TotalGuests++
		if g.CheckedIn {
			a.CheckedInGuests++
		}
		if g.BottleService {
			a.BottleServiceRequests++
		}

		name, ok := names[g.ClubID]
		if !ok {
			name = UnknownClub
		}
		st := stats[name]
		st.TotalGuests++
		if g.CheckedIn {
			st.CheckedInGuests++
		}
		stats[name] = st
	}
	a.ClubStats = stats
	return a
}

// StatLabels maps club ids to the keys used in ClubStats. Names shared by
// several clubs, or equal to UnknownClub, get the id prefix appended so each
// club keeps its own entry.
func StatLabels(clubs []models.Club) map[string]string {
	seen := make(map[string]int, len(clubs)+1)
	seen[UnknownClub] = 1
	for _, c := range clubs {
		seen[c.Name]++
	}

	labels := make(map[string]string, len(clubs))
	for _, c := range clubs {
		label := c.Name
		if seen[c.Name] > 1 {
			id := c.ID
			if len(id) > 8 {
				id = id[:8]
			}
			label = fmt.Sprintf("%s (%s)", c.Name, id)
		}
		labels[c.ID] = label
	}
	return labels
}

type AnalyticsService struct {
	Guests   repository.GuestRepository
	Clubs    repository.ClubRepository
	Calendar *Calendar
}

func NewAnalyticsService(guests repository.GuestRepository, clubs repository.ClubRepository, cal *Calendar) *AnalyticsService {
	if cal == nil {
		cal = NewCalendar(time.UTC, time.Sunday)
	}
	return &AnalyticsService{Guests: guests, Clubs: clubs, Calendar: cal}
}

// WeeklyAnalytics aggregates the guests created during the week containing
// weekOf.
func (s *AnalyticsService) WeeklyAnalytics(ctx context.Context, weekOf time.Time) (*Analytics, error) {
	from, to := s.Calendar.Bounds(weekOf)

	rows, err := s.Guests.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	clubs, err := s.Clubs.List(ctx)
	if err != nil {
		return nil, err
	}

	a := Aggregate(rows, clubs)
	a.From = from
	a.To = to
	a.GeneratedAt = s.Calendar.Now().UTC()
	return &a, nil
}
