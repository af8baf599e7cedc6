package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/guestlist-app/config"
	"github.com/yeremiapane/guestlist-app/database"
	"github.com/yeremiapane/guestlist-app/router"
	"github.com/yeremiapane/guestlist-app/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.Silence()
	os.Exit(m.Run())
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, r http.Handler, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

// TestEndToEndIntegration walks a Friday night:
// 0. admin logs in and sets up a club
// 1. a guest picks a night and a club, then signs up
// 2. the door redeems the voucher once
// 3. the admin sees the guest and the weekly numbers
func TestEndToEndIntegration(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, database.SeedAdmin(db, "Owner", "owner@example.com", "owner-pass"))

	deps, err := router.NewDependencies(db, config.Config{
		JWTSecret:         "integration-secret",
		JWTTTL:            time.Hour,
		VenueTimezone:     "America/Chicago",
		WeekStartsOn:      "sunday",
		AnalyticsInterval: time.Minute,
		RateLimit:         100,
		RateLimitWindow:   time.Minute,
	})
	require.NoError(t, err)
	now := time.Date(2025, time.June, 11, 20, 0, 0, 0, time.UTC)
	deps.Calendar.Now = func() time.Time { return now }
	r := router.SetupRouter(deps)

	// 0. login + club
	code, env := call(t, r, http.MethodPost, "/api/admin/login", "", gin.H{"email": "owner@example.com", "password": "owner-pass"})
	require.Equal(t, http.StatusOK, code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))

	code, env = call(t, r, http.MethodPost, "/api/admin/clubs", login.Token, gin.H{
		"name": "Xclusive", "address": "600 N Dearborn", "available_days": []string{"Friday", "Saturday"},
	})
	require.Equal(t, http.StatusCreated, code)
	var club struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &club))

	// 1. pick Friday, find clubs, sign up
	code, env = call(t, r, http.MethodGet, "/api/event-nights", "", nil)
	require.Equal(t, http.StatusOK, code)
	var nights []struct {
		Day   string `json:"day"`
		Label string `json:"label"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &nights))
	require.Len(t, nights, 4)
	friday := nights[1]
	require.Equal(t, "Friday", friday.Day)
	require.Equal(t, "Friday (06/13/2025)", friday.Label)

	code, env = call(t, r, http.MethodGet, "/api/clubs?date="+url.QueryEscape(friday.Label), "", nil)
	require.Equal(t, http.StatusOK, code)
	var clubs []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &clubs))
	require.Len(t, clubs, 1)
	require.Equal(t, club.ID, clubs[0].ID)

	code, env = call(t, r, http.MethodPost, "/api/signup", "", gin.H{
		"first_name": "Jordan", "last_name": "Smith", "phone": "312-555-0100",
		"men_count": 2, "women_count": 1, "bottle_service": true,
		"date": friday.Label, "club_id": club.ID,
	})
	require.Equal(t, http.StatusCreated, code)
	var signup struct {
		GuestID     string `json:"guest_id"`
		VoucherCode string `json:"voucher_code"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &signup))
	require.Regexp(t, `^[A-Z0-9]{6}$`, signup.VoucherCode)

	// 2. door
	now = time.Date(2025, time.June, 14, 4, 30, 0, 0, time.UTC)
	code, env = call(t, r, http.MethodGet, "/api/vouchers/"+signup.VoucherCode, "", nil)
	require.Equal(t, http.StatusOK, code)
	var door struct {
		PartyLabel string `json:"party_label"`
		CheckedIn  bool   `json:"checked_in"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &door))
	assert.Equal(t, "+2", door.PartyLabel)
	assert.False(t, door.CheckedIn)

	code, env = call(t, r, http.MethodPost, "/api/checkin", "", gin.H{"voucher_code": signup.VoucherCode})
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	code, env = call(t, r, http.MethodPost, "/api/checkin", "", gin.H{"voucher_code": signup.VoucherCode})
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Success)

	code, env = call(t, r, http.MethodGet, "/api/guests/"+signup.GuestID, "", nil)
	require.Equal(t, http.StatusOK, code)
	var detail struct {
		CheckedIn          bool   `json:"checked_in"`
		CheckInTimeDisplay string `json:"check_in_time_display"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.True(t, detail.CheckedIn)
	assert.Equal(t, "06/13/2025 at 11:30 PM CDT", detail.CheckInTimeDisplay)

	// 3. admin views; the signup happened in the week of 06/08
	code, env = call(t, r, http.MethodGet, "/api/admin/guests?week=2025-06-11&checked_in=yes", login.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var weekly struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &weekly))
	assert.Equal(t, 1, weekly.Total)

	code, env = call(t, r, http.MethodGet, "/api/admin/analytics?week=2025-06-11", login.Token, nil)
	require.Equal(t, http.StatusOK, code)
	var stats struct {
		TotalGuests           int `json:"total_guests"`
		CheckedInGuests       int `json:"checked_in_guests"`
		BottleServiceRequests int `json:"bottle_service_requests"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.TotalGuests)
	assert.Equal(t, 1, stats.CheckedInGuests)
	assert.Equal(t, 1, stats.BottleServiceRequests)
}
