package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/guestlist-app/models"
)

func sampleRows() []models.GuestView {
	at := time.Date(2025, time.June, 13, 23, 0, 0, 0, time.UTC)
	party := "Birthday"
	return []models.GuestView{
		{ID: "1", FirstName: "Maria", LastName: "Lopez", VoucherCode: "AAA111", ClubName: "Vanity", Date: "Friday (06/13/2025)", MenCount: 1, CheckedIn: true, CheckInTime: &at},
		{ID: "2", FirstName: "mark", LastName: "Stone", VoucherCode: "BBB222", ClubName: "Vanity", Date: "Saturday (06/14/2025)", MenCount: 3, Celebration: &party},
		{ID: "3", FirstName: "Zoe", LastName: "Adams", VoucherCode: "MAR333", ClubName: "Sound", Date: "Friday (06/13/2025)", MenCount: 1, BottleService: true},
		{ID: "4", FirstName: "Ann", LastName: "Lee", VoucherCode: "CCC444", ClubName: "", Date: "Friday (06/13/2025)", MenCount: 0},
	}
}

func ids(rows []models.GuestView) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name   string
		filter GuestFilter
		want   []string
	}{
		{"zero filter keeps all", GuestFilter{}, []string{"1", "2", "3", "4"}},
		{"search is case-insensitive over names and voucher", GuestFilter{Search: "MAR"}, []string{"1", "2", "3"}},
		{"search by last name", GuestFilter{Search: "lee"}, []string{"4"}},
		{"club name equality", GuestFilter{Club: "Vanity"}, []string{"1", "2"}},
		{"date equality", GuestFilter{Date: "Saturday (06/14/2025)"}, []string{"2"}},
		{"checked in only", GuestFilter{CheckedIn: CheckedInYes}, []string{"1"}},
		{"not checked in", GuestFilter{CheckedIn: CheckedInNo}, []string{"2", "3", "4"}},
		{"combined", GuestFilter{Club: "Vanity", CheckedIn: CheckedInNo, Search: "ma"}, []string{"2"}},
		{"no match", GuestFilter{Club: "Nowhere"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(ApplyFilters(sampleRows(), tt.filter)))
		})
	}
}

func TestGuestFilterValidate(t *testing.T) {
	f := GuestFilter{CheckedIn: " YES "}
	require.NoError(t, f.Validate())
	assert.Equal(t, CheckedInYes, f.CheckedIn)

	f = GuestFilter{}
	require.NoError(t, f.Validate())
	assert.Equal(t, CheckedInAll, f.CheckedIn)

	f = GuestFilter{CheckedIn: "maybe"}
	assert.True(t, IsValidation(f.Validate()))
}

func TestSortGuests(t *testing.T) {
	tests := []struct {
		key, dir string
		want     []string
	}{
		{"first_name", "asc", []string{"4", "1", "3", "2"}}, // byte order: upper case first
		{"last_name", "desc", []string{"2", "1", "4", "3"}},
		{"men_count", "asc", []string{"4", "1", "3", "2"}},
		{"men_count", "desc", []string{"2", "1", "3", "4"}},
		{"club_name", "asc", []string{"4", "3", "1", "2"}},
		{"checked_in", "desc", []string{"1", "2", "3", "4"}},
		{"check_in_time", "asc", []string{"2", "3", "4", "1"}},
		{"bottle_service", "desc", []string{"3", "1", "2", "4"}},
		{"celebration", "desc", []string{"2", "1", "3", "4"}},
		{"", "", []string{"1", "2", "3", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.key+"_"+tt.dir, func(t *testing.T) {
			rows := sampleRows()
			require.NoError(t, SortGuests(rows, tt.key, tt.dir))
			assert.Equal(t, tt.want, ids(rows))
		})
	}
}

func TestSortGuestsRejectsUnknownInput(t *testing.T) {
	assert.True(t, IsValidation(SortGuests(sampleRows(), "password", "asc")))
	assert.True(t, IsValidation(SortGuests(sampleRows(), "first_name", "sideways")))
	assert.Contains(t, SortKeys(), "created_at")
}
