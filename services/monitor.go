package services

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/yeremiapane/guestlist-app/utils"
)

// Monitor runs the background jobs: refreshing the current week's analytics
// for the live dashboard, plus any extra periodic tasks registered with Every.
type Monitor struct {
	Analytics *AnalyticsService
	Notifier  Notifier
	Interval  time.Duration
	Timeout   time.Duration

	scheduler gocron.Scheduler
	mu        sync.RWMutex
	latest    *Analytics
}

func NewMonitor(analytics *AnalyticsService, n Notifier, interval time.Duration) (*Monitor, error) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Monitor{
		Analytics: analytics,
		Notifier:  notifierOrNop(n),
		Interval:  interval,
		Timeout:   10 * time.Second,
		scheduler: s,
	}, nil
}

// Every registers an additional task on the monitor's scheduler.
func (m *Monitor) Every(interval time.Duration, name string, task func()) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
	)
	return err
}

// Start schedules the analytics refresh, running it once immediately.
func (m *Monitor) Start() error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(m.Interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), m.Timeout)
			defer cancel()
			if _, err := m.Refresh(ctx); err != nil {
				utils.ErrorLogger.Errorf("Refreshing analytics: %v", err)
			}
		}),
		gocron.WithName("analytics-refresh"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}
	m.scheduler.Start()
	utils.InfoLogger.Infof("Analytics monitor started (every %s)", m.Interval)
	return nil
}

func (m *Monitor) Stop() error {
	return m.scheduler.Shutdown()
}

// Refresh recomputes the current week, caches it and broadcasts it.
func (m *Monitor) Refresh(ctx context.Context) (*Analytics, error) {
	a, err := m.Analytics.WeeklyAnalytics(ctx, m.Analytics.Calendar.Now())
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.latest = a
	m.mu.Unlock()

	m.Notifier.Broadcast(EventAnalyticsUpdate, a)
	return a, nil
}

// Latest returns the last computed snapshot, if any.
func (m *Monitor) Latest() (*Analytics, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest, m.latest != nil
}

// CurrentWeek serves the cached snapshot when it belongs to the current week
// and computes one otherwise.
func (m *Monitor) CurrentWeek(ctx context.Context) (*Analytics, error) {
	if a, ok := m.Latest(); ok && m.Analytics.Calendar.IsCurrentWeek(a.From) {
		return a, nil
	}
	return m.Refresh(ctx)
}
