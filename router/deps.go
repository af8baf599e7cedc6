package router

import (
	"time"

	"github.com/yeremiapane/guestlist-app/config"
	"github.com/yeremiapane/guestlist-app/live"
	"github.com/yeremiapane/guestlist-app/middlewares"
	"github.com/yeremiapane/guestlist-app/repository"
	"github.com/yeremiapane/guestlist-app/services"
	"github.com/yeremiapane/guestlist-app/utils"
	"github.com/yeremiapane/guestlist-app/voucher"
	"gorm.io/gorm"
)

// Dependencies is everything the HTTP layer needs, built once at startup.
type Dependencies struct {
	Config    config.Config
	Calendar  *services.Calendar
	Guests    *services.GuestService
	Clubs     *services.ClubService
	Analytics *services.AnalyticsService
	Auth      *services.AuthService
	Monitor   *services.Monitor
	Tokens    *utils.TokenManager
	Hub       *live.Hub
	Limiter   *middlewares.RateLimiter
}

// NewDependencies wires repositories and services on top of db. The monitor
// is created but not started.
func NewDependencies(db *gorm.DB, cfg config.Config) (*Dependencies, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	weekStart, err := cfg.WeekStart()
	if err != nil {
		return nil, err
	}

	guestRepo := repository.NewGuestRepository(db)
	clubRepo := repository.NewClubRepository(db)
	userRepo := repository.NewUserRepository(db)

	hub := live.NewHub()
	cal := services.NewCalendar(loc, weekStart)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	guests := services.NewGuestService(guestRepo, clubRepo, voucher.NewGenerator(nil), hub)
	guests.Now = func() time.Time { return cal.Now() }
	analytics := services.NewAnalyticsService(guestRepo, clubRepo, cal)

	monitor, err := services.NewMonitor(analytics, hub, cfg.AnalyticsInterval)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		Config:    cfg,
		Calendar:  cal,
		Guests:    guests,
		Clubs:     services.NewClubService(clubRepo, guestRepo, hub),
		Analytics: analytics,
		Auth:      services.NewAuthService(userRepo, tokens),
		Monitor:   monitor,
		Tokens:    tokens,
		Hub:       hub,
		Limiter:   middlewares.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow),
	}, nil
}
