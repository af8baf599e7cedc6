package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/guestlist-app/models"
	"github.com/yeremiapane/guestlist-app/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

func init() {
	utils.Silence()
}

func TestGuestViewJoinsClub(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)

	club := models.Club{Name: "Vanity", Address: "1 Main St", AvailableDays: datatypes.JSONSlice[string]{"Friday"}}
	require.NoError(t, db.Create(&club).Error)

	created := time.Date(2025, time.June, 11, 18, 0, 0, 0, time.UTC)
	withClub := models.Guest{FirstName: "Ana", LastName: "Lee", Phone: "1", Date: "Friday (06/13/2025)", ClubID: club.ID, VoucherCode: "AAAAAA", CreatedAt: created}
	orphan := models.Guest{FirstName: "Bo", LastName: "Ray", Phone: "2", Date: "Friday (06/13/2025)", ClubID: "gone", VoucherCode: "BBBBBB", CreatedAt: created}
	require.NoError(t, db.Create(&withClub).Error)
	require.NoError(t, db.Create(&orphan).Error)

	var views []models.GuestView
	require.NoError(t, db.Order("voucher_code ASC").Find(&views).Error)
	require.Len(t, views, 2)

	assert.Equal(t, "Vanity", views[0].ClubName)
	assert.Equal(t, "1 Main St", views[0].ClubAddress)
	assert.True(t, views[0].HasClub())
	assert.True(t, created.Equal(views[0].CreatedAt))

	assert.Equal(t, "", views[1].ClubName)
	assert.False(t, views[1].HasClub())
}

func TestCreateViewsIsRepeatable(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	require.NoError(t, CreateViews(db))
	require.NoError(t, Migrate(db))
}

func TestSeedAdmin(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)

	require.NoError(t, SeedAdmin(db, "Owner", " Owner@Example.com ", "secret-pass"))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "owner@example.com", users[0].Email)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("secret-pass")))

	// second call is a no-op once any user exists
	require.NoError(t, SeedAdmin(db, "Other", "other@example.com", "another-pass"))
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSeedAdminSkipsWithoutCredentials(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)

	require.NoError(t, SeedAdmin(db, "Owner", "", ""))
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
