package services

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/yeremiapane/guestlist-app/models"
)

// Checked-in filter values.
const (
	CheckedInAll = "all"
	CheckedInYes = "yes"
	CheckedInNo  = "no"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// GuestFilter narrows an already fetched set of guests. Zero values match
// everything.
type GuestFilter struct {
	Search    string `form:"search"`
	Club      string `form:"club"`
	Date      string `form:"date"`
	CheckedIn string `form:"checked_in"`
}

// Validate normalises CheckedIn and rejects values other than all/yes/no.
func (f *GuestFilter) Validate() error {
	f.CheckedIn = strings.ToLower(strings.TrimSpace(f.CheckedIn))
	switch f.CheckedIn {
	case "":
		f.CheckedIn = CheckedInAll
	case CheckedInAll, CheckedInYes, CheckedInNo:
	default:
		return &ValidationError{Field: "checked_in", Message: "must be one of all, yes, no"}
	}
	return nil
}

// ApplyFilters keeps the rows matching every criterion, preserving order.
// Search is a case-insensitive substring match on first name, last name and
// voucher code.
func ApplyFilters(rows []models.GuestView, f GuestFilter) []models.GuestView {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.GuestView, 0, len(rows))
	for _, g := range rows {
		if search != "" &&
			!strings.Contains(strings.ToLower(g.FirstName), search) &&
			!strings.Contains(strings.ToLower(g.LastName), search) &&
			!strings.Contains(strings.ToLower(g.VoucherCode), search) {
			continue
		}
		if f.Club != "" && g.ClubName != f.Club {
			continue
		}
		if f.Date != "" && g.Date != f.Date {
			continue
		}
		switch f.CheckedIn {
		case CheckedInYes:
			if !g.CheckedIn {
				continue
			}
		case CheckedInNo:
			if g.CheckedIn {
				continue
			}
		}
		out = append(out, g)
	}
	return out
}

type guestCompare func(a, b *models.GuestView) int

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// compareTimePtr orders unset times first.
func compareTimePtr(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var guestSortKeys = map[string]guestCompare{
	"first_name":     func(a, b *models.GuestView) int { return strings.Compare(a.FirstName, b.FirstName) },
	"last_name":      func(a, b *models.GuestView) int { return strings.Compare(a.LastName, b.LastName) },
	"phone":          func(a, b *models.GuestView) int { return strings.Compare(a.Phone, b.Phone) },
	"men_count":      func(a, b *models.GuestView) int { return cmp.Compare(a.MenCount, b.MenCount) },
	"women_count":    func(a, b *models.GuestView) int { return cmp.Compare(a.WomenCount, b.WomenCount) },
	"bottle_service": func(a, b *models.GuestView) int { return compareBool(a.BottleService, b.BottleService) },
	"date":           func(a, b *models.GuestView) int { return strings.Compare(a.Date, b.Date) },
	"celebration": func(a, b *models.GuestView) int {
		return strings.Compare(derefString(a.Celebration), derefString(b.Celebration))
	},
	"club_name":     func(a, b *models.GuestView) int { return strings.Compare(a.ClubName, b.ClubName) },
	"voucher_code":  func(a, b *models.GuestView) int { return strings.Compare(a.VoucherCode, b.VoucherCode) },
	"checked_in":    func(a, b *models.GuestView) int { return compareBool(a.CheckedIn, b.CheckedIn) },
	"check_in_time": func(a, b *models.GuestView) int { return compareTimePtr(a.CheckInTime, b.CheckInTime) },
	"created_at":    func(a, b *models.GuestView) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

// SortKeys lists the fields SortGuests accepts.
func SortKeys() []string {
	keys := make([]string, 0, len(guestSortKeys))
	for k := range guestSortKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// SortGuests sorts rows in place by a single field. Strings compare by byte
// order; equal rows keep their relative order. An empty key leaves rows as they
// are.
func SortGuests(rows []models.GuestView, key, dir string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	compare, ok := guestSortKeys[key]
	if !ok {
		return &ValidationError{Field: "sort", Message: "unknown sort field " + key}
	}

	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", SortAsc:
	case SortDesc:
		asc := compare
		compare = func(a, b *models.GuestView) int { return -asc(a, b) }
	default:
		return &ValidationError{Field: "dir", Message: "must be asc or desc"}
	}

	slices.SortStableFunc(rows, func(a, b models.GuestView) int {
		return compare(&a, &b)
	})
	return nil
}
