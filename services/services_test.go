package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/guestlist-app/database"
	"github.com/yeremiapane/guestlist-app/models"
	"github.com/yeremiapane/guestlist-app/repository"
	"github.com/yeremiapane/guestlist-app/utils"
	"github.com/yeremiapane/guestlist-app/voucher"
	"gorm.io/gorm"
)

func init() {
	utils.Silence()
}

// codeSource replays whole voucher codes one character at a time.
type codeSource struct {
	mu    sync.Mutex
	chars []byte
	pos   int
}

func newCodeSource(codes ...string) *codeSource {
	return &codeSource{chars: []byte(strings.Join(codes, ""))}
}

func (s *codeSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.chars[s.pos%len(s.chars)]
	s.pos++
	return strings.IndexByte(voucher.Charset, c)
}

type recordedEvent struct {
	Event string
	Data  interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) Broadcast(event string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{event, data})
}

func (n *recordingNotifier) names() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Event)
	}
	return out
}

type fixture struct {
	db       *gorm.DB
	guests   repository.GuestRepository
	clubs    repository.ClubRepository
	notifier *recordingNotifier
	svc      *GuestService
	clubSvc  *ClubService
	now      time.Time
}

func newFixture(t *testing.T, codes ...string) *fixture {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)

	f := &fixture{
		db:       db,
		guests:   repository.NewGuestRepository(db),
		clubs:    repository.NewClubRepository(db),
		notifier: &recordingNotifier{},
		now:      time.Date(2025, time.June, 11, 20, 0, 0, 0, time.UTC),
	}
	var gen *voucher.Generator
	if len(codes) > 0 {
		gen = voucher.NewGenerator(newCodeSource(codes...))
	}
	f.svc = NewGuestService(f.guests, f.clubs, gen, f.notifier)
	f.svc.Now = func() time.Time { return f.now }
	f.clubSvc = NewClubService(f.clubs, f.guests, f.notifier)
	return f
}

func (f *fixture) club(t *testing.T, name string, days ...string) models.Club {
	t.Helper()
	c, err := f.clubSvc.CreateClub(context.Background(), ClubInput{Name: name, Address: name + " St", AvailableDays: days})
	require.NoError(t, err)
	return *c
}

func validInput(clubID string) GuestInput {
	return GuestInput{
		FirstName:  "Jordan",
		LastName:   "Smith",
		Phone:      "312-555-0100",
		MenCount:   2,
		WomenCount: 1,
		Date:       "Friday (06/13/2025)",
		ClubID:     clubID,
	}
}
