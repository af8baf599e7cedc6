package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/guestlist-app/config"
	"github.com/yeremiapane/guestlist-app/database"
	"github.com/yeremiapane/guestlist-app/models"
	"github.com/yeremiapane/guestlist-app/router"
	"github.com/yeremiapane/guestlist-app/services"
	"github.com/yeremiapane/guestlist-app/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.Silence()
}

// Wednesday 06/11/2025, 3pm in Chicago.
var testNow = time.Date(2025, time.June, 11, 20, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testApp struct {
	t          *testing.T
	r          *gin.Engine
	deps       *router.Dependencies
	now        time.Time
	adminToken string
	staffToken string
}

func testConfig() config.Config {
	return config.Config{
		GinMode:           gin.TestMode,
		JWTSecret:         "test-secret",
		JWTTTL:            time.Hour,
		VenueTimezone:     "America/Chicago",
		WeekStartsOn:      "sunday",
		AnalyticsInterval: time.Minute,
		CORSOrigins:       []string{"*"},
		RateLimit:         1000,
		RateLimitWindow:   time.Minute,
	}
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, database.SeedAdmin(db, "Owner", "admin@example.com", "admin-pass"))

	deps, err := router.NewDependencies(db, testConfig())
	require.NoError(t, err)

	app := &testApp{t: t, deps: deps, now: testNow}
	deps.Calendar.Now = func() time.Time { return app.now }
	app.r = router.SetupRouter(deps)

	app.adminToken = app.login("admin@example.com", "admin-pass")
	_, err = deps.Auth.Register(context.Background(), services.RegisterInput{
		Name: "Door", Email: "door@example.com", Password: "door-pass-1", Role: models.RoleStaff,
	})
	require.NoError(t, err)
	app.staffToken = app.login("door@example.com", "door-pass-1")
	return app
}

func (a *testApp) login(email, password string) string {
	a.t.Helper()
	w, env := a.do(http.MethodPost, "/api/admin/login", gin.H{"email": email, "password": password}, "")
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	return data.Token
}

func (a *testApp) do(method, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (a *testApp) club(name string, days ...string) models.Club {
	a.t.Helper()
	c, err := a.deps.Clubs.CreateClub(context.Background(), services.ClubInput{Name: name, Address: name + " Ave", AvailableDays: days})
	require.NoError(a.t, err)
	return *c
}

func (a *testApp) signUp(clubID string) (string, string) {
	a.t.Helper()
	w, env := a.do(http.MethodPost, "/api/signup", gin.H{
		"first_name":  "Jordan",
		"last_name":   "Smith",
		"phone":       "312-555-0100",
		"men_count":   2,
		"women_count": 1,
		"date":        "Friday (06/13/2025)",
		"club_id":     clubID,
	}, "")
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var data struct {
		GuestID     string `json:"guest_id"`
		VoucherCode string `json:"voucher_code"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	return data.GuestID, data.VoucherCode
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}
