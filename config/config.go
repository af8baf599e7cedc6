package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/guestlist-app/schedule"
)

type Config struct {
	Port     string `env:"PORT" env-default:"8080"`
	GinMode  string `env:"GIN_MODE" env-default:"debug"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	DBDriver string `env:"DB_DRIVER" env-default:"sqlite"`
	DBDSN    string `env:"DB_DSN" env-default:"guestlist.db"`

	JWTSecret string        `env:"JWT_SECRET" env-required:"true"`
	JWTTTL    time.Duration `env:"JWT_TTL" env-default:"24h"`

	AdminName     string `env:"ADMIN_NAME" env-default:"Admin"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	VenueTimezone     string        `env:"VENUE_TIMEZONE" env-default:"America/Chicago"`
	WeekStartsOn      string        `env:"WEEK_STARTS_ON" env-default:"sunday"`
	AnalyticsInterval time.Duration `env:"ANALYTICS_INTERVAL" env-default:"30s"`

	CORSOrigins     []string      `env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
	RateLimit       int           `env:"RATE_LIMIT" env-default:"10"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"1m"`

	RedisAddr string `env:"REDIS_ADDR"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	var cfg Config
	// .env is optional; the environment alone is enough.
	_ = godotenv.Load()

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.DBDriver) {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.WeekStart(); err != nil {
		return err
	}
	if c.AnalyticsInterval <= 0 {
		return fmt.Errorf("ANALYTICS_INTERVAL must be positive")
	}
	return nil
}

// Location is the venue timezone used for event nights and displayed times.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.VenueTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid VENUE_TIMEZONE %q: %w", c.VenueTimezone, err)
	}
	return loc, nil
}

func (c Config) WeekStart() (time.Weekday, error) {
	d, err := schedule.ParseWeekday(c.WeekStartsOn)
	if err != nil {
		return time.Sunday, fmt.Errorf("invalid WEEK_STARTS_ON: %w", err)
	}
	return d, nil
}
