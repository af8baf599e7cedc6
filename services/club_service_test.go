package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/guestlist-app/schedule"
)

func TestClubsAvailableOn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.club(t, "Zeta", "Friday")
	f.club(t, "Alpha", "friday", "Saturday")
	f.club(t, "Mid", "Thursday")

	clubs, err := f.clubSvc.ClubsAvailableOn(ctx, "Friday (06/13/2025)")
	require.NoError(t, err)
	require.Len(t, clubs, 2)
	assert.Equal(t, "Alpha", clubs[0].Name)
	assert.Equal(t, "Zeta", clubs[1].Name)

	clubs, err = f.clubSvc.ClubsAvailableOn(ctx, "Sunday (06/15/2025)")
	require.NoError(t, err)
	assert.NotNil(t, clubs)
	assert.Empty(t, clubs)

	_, err = f.clubSvc.ClubsAvailableOn(ctx, "NotADate")
	assert.True(t, IsValidation(err))
	assert.True(t, errors.Is(err, schedule.ErrInvalidDateFormat))

	_, err = f.clubSvc.ClubsAvailableOn(ctx, "Friday (13/45/2025)")
	assert.True(t, errors.Is(err, schedule.ErrInvalidDateValue))
}

func TestCreateClubNormalisesDays(t *testing.T) {
	f := newFixture(t)
	club, err := f.clubSvc.CreateClub(context.Background(), ClubInput{
		Name:          "  Vanity ",
		AvailableDays: []string{"sunday", "Friday", "FRIDAY"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Vanity", club.Name)
	assert.Equal(t, []string{"Friday", "Sunday"}, []string(club.AvailableDays))
	assert.NotEmpty(t, club.ID)
}

func TestCreateClubValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.clubSvc.CreateClub(ctx, ClubInput{Name: "", AvailableDays: []string{"Friday"}})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "name", ve.Field)

	_, err = f.clubSvc.CreateClub(ctx, ClubInput{Name: "Vanity", AvailableDays: []string{"Monday"}})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "available_days", ve.Field)
	assert.Contains(t, ve.Error(), "Monday")

	// no days is allowed; the club just never matches
	club, err := f.clubSvc.CreateClub(ctx, ClubInput{Name: "Closed"})
	require.NoError(t, err)
	assert.Empty(t, club.AvailableDays)
}

func TestUpdateClub(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	club := f.club(t, "Vanity", "Friday")

	updated, err := f.clubSvc.UpdateClub(ctx, club.ID, ClubInput{Name: "Vanity Nightclub", Address: "2 Oak", AvailableDays: []string{"Saturday"}})
	require.NoError(t, err)
	assert.Equal(t, "Vanity Nightclub", updated.Name)

	got, err := f.clubSvc.GetClub(ctx, club.ID)
	require.NoError(t, err)
	assert.Equal(t, "2 Oak", got.Address)
	assert.True(t, got.IsAvailableOn("Saturday"))
	assert.False(t, got.IsAvailableOn("Friday"))

	_, err = f.clubSvc.UpdateClub(ctx, "missing", ClubInput{Name: "X"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteClubRestrictsWhenGuestsExist(t *testing.T) {
	f := newFixture(t, "DEL001")
	ctx := context.Background()
	busy := f.club(t, "Busy", "Friday")
	empty := f.club(t, "Empty", "Friday")

	_, err := f.svc.CreateGuest(ctx, validInput(busy.ID))
	require.NoError(t, err)

	err = f.clubSvc.DeleteClub(ctx, busy.ID)
	assert.True(t, errors.Is(err, ErrClubInUse))

	require.NoError(t, f.clubSvc.DeleteClub(ctx, empty.ID))
	assert.True(t, errors.Is(f.clubSvc.DeleteClub(ctx, empty.ID), ErrNotFound))

	clubs, err := f.clubSvc.ListClubs(ctx)
	require.NoError(t, err)
	require.Len(t, clubs, 1)
	assert.Equal(t, "Busy", clubs[0].Name)
}
