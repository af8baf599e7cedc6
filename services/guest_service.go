package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/guestlist-app/models"
	"github.com/yeremiapane/guestlist-app/repository"
	"github.com/yeremiapane/guestlist-app/result"
	"github.com/yeremiapane/guestlist-app/schedule"
	"github.com/yeremiapane/guestlist-app/utils"
	"github.com/yeremiapane/guestlist-app/voucher"
)

const (
	// MaxVoucherAttempts bounds regeneration on voucher collisions.
	MaxVoucherAttempts = 5

	DefaultPageSize = 50
	MaxPageSize     = 200
)

// GuestInput is a sign-up as submitted by the public form.
type GuestInput struct {
	FirstName     string `json:"first_name" validate:"required,max=100"`
	LastName      string `json:"last_name" validate:"required,max=100"`
	Phone         string `json:"phone" validate:"required,max=30"`
	MenCount      int    `json:"men_count" validate:"min=0"`
	WomenCount    int    `json:"women_count" validate:"min=0"`
	BottleService bool   `json:"bottle_service"`
	Date          string `json:"date" validate:"required,max=40"`
	Celebration   string `json:"celebration" validate:"max=255"`
	ClubID        string `json:"club_id" validate:"required,max=36"`
}

type GuestService struct {
	Guests   repository.GuestRepository
	Clubs    repository.ClubRepository
	Vouchers *voucher.Generator
	Notifier Notifier
	Now      func() time.Time
}

func NewGuestService(guests repository.GuestRepository, clubs repository.ClubRepository, gen *voucher.Generator, n Notifier) *GuestService {
	if gen == nil {
		gen = voucher.NewGenerator(nil)
	}
	return &GuestService{
		Guests:   guests,
		Clubs:    clubs,
		Vouchers: gen,
		Notifier: notifierOrNop(n),
		Now:      time.Now,
	}
}

// CreateGuest validates a sign-up, allocates a voucher and stores the guest
// as pending.
func (s *GuestService) CreateGuest(ctx context.Context, in GuestInput) (*models.GuestView, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Date = strings.TrimSpace(in.Date)
	in.Celebration = strings.TrimSpace(in.Celebration)
	in.ClubID = strings.TrimSpace(in.ClubID)

	if err := validate.Struct(in); err != nil {
		return nil, fromValidator(err)
	}

	night, err := schedule.WeekdayOf(in.Date)
	if err != nil {
		return nil, invalid("date", err)
	}

	club, err := s.Clubs.FindByID(ctx, in.ClubID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, invalid("club_id", ErrUnknownClub)
	}
	if err != nil {
		return nil, err
	}
	if !club.IsAvailableOn(night) {
		return nil, invalid("club_id", fmt.Errorf("%w: %s is closed on %s", ErrClubUnavailable, club.Name, night))
	}

	guest := &models.Guest{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Phone:         in.Phone,
		MenCount:      in.MenCount,
		WomenCount:    in.WomenCount,
		BottleService: in.BottleService,
		Date:          in.Date,
		ClubID:        club.ID,
		CreatedAt:     s.Now().UTC(),
	}
	if in.Celebration != "" {
		guest.Celebration = &in.Celebration
	}

	if err := s.insertWithVoucher(ctx, guest); err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"guest_id": guest.ID,
		"club_id":  guest.ClubID,
		"date":     guest.Date,
	}).Info("Guest signed up")

	view, err := s.Guests.FindByID(ctx, guest.ID)
	if err != nil {
		return nil, fmt.Errorf("reading back guest %s: %w", guest.ID, err)
	}
	s.Notifier.Broadcast(EventGuestCreated, view)
	return view, nil
}

func (s *GuestService) insertWithVoucher(ctx context.Context, guest *models.Guest) error {
	for attempt := 1; attempt <= MaxVoucherAttempts; attempt++ {
		code := s.Vouchers.Generate()
		taken, err := s.Guests.VoucherExists(ctx, code)
		if err != nil {
			return err
		}
		if taken {
			utils.InfoLogger.Warnf("Voucher collision on %s (attempt %d)", code, attempt)
			continue
		}

		guest.VoucherCode = code
		err = s.Guests.Create(ctx, guest)
		if errors.Is(err, repository.ErrDuplicateKey) {
			utils.InfoLogger.Warnf("Voucher %s inserted concurrently (attempt %d)", code, attempt)
			continue
		}
		return err
	}
	return ErrVoucherExhausted
}

func (s *GuestService) FindByID(ctx context.Context, id string) (*models.GuestView, error) {
	return s.Guests.FindByID(ctx, strings.TrimSpace(id))
}

// FindByVoucher looks a guest up by code. Input is normalised first, so
// " abc123 " finds ABC123.
func (s *GuestService) FindByVoucher(ctx context.Context, code string) (*models.GuestView, error) {
	code = voucher.Normalize(code)
	if code == "" {
		return nil, &ValidationError{Field: "voucher_code", Message: "is required"}
	}
	return s.Guests.FindByVoucher(ctx, code)
}

// CheckIn redeems a pending guest. A guest is stamped at most once; a second
// call returns ErrAlreadyCheckedIn and leaves the first timestamp alone.
func (s *GuestService) CheckIn(ctx context.Context, id string) (*models.GuestView, error) {
	id = strings.TrimSpace(id)
	updated, err := s.Guests.MarkCheckedIn(ctx, id, s.Now())
	if err != nil {
		return nil, err
	}
	if !updated {
		exists, err := s.Guests.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, ErrNotFound
	}

	view, err := s.Guests.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reading back guest %s: %w", id, err)
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"guest_id": view.ID,
		"voucher":  view.VoucherCode,
	}).Info("Guest checked in")
	s.Notifier.Broadcast(EventGuestCheckedIn, view)
	return view, nil
}

func (s *GuestService) CheckInByVoucher(ctx context.Context, code string) (*models.GuestView, error) {
	view, err := s.FindByVoucher(ctx, code)
	if err != nil {
		return nil, err
	}
	if view.CheckedIn {
		return nil, ErrAlreadyCheckedIn
	}
	return s.CheckIn(ctx, view.ID)
}

// WeeklyGuests returns guests created during the week [from, to), newest first.
func (s *GuestService) WeeklyGuests(ctx context.Context, from, to time.Time) ([]models.GuestView, error) {
	rows, err := s.Guests.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.GuestView{}
	}
	return rows, nil
}

// GuestPage returns one page of the full listing, newest first. page is
// 1-based; size falls back to DefaultPageSize.
func (s *GuestService) GuestPage(ctx context.Context, page, size int) (result.Paginated[[]models.GuestView], error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	rows, total, err := s.Guests.ListPage(ctx, result.Offset(page, size), size)
	if err != nil {
		return result.Paginated[[]models.GuestView]{}, err
	}
	if rows == nil {
		rows = []models.GuestView{}
	}
	return result.NewPaginated(size, page, int(total), rows), nil
}
