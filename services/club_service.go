package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/guestlist-app/models"
	"github.com/yeremiapane/guestlist-app/repository"
	"github.com/yeremiapane/guestlist-app/schedule"
	"github.com/yeremiapane/guestlist-app/utils"
	"gorm.io/datatypes"
)

// ClubInput is the admin payload for creating or replacing a club.
type ClubInput struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Address       string   `json:"address" validate:"max=255"`
	AvailableDays []string `json:"available_days" validate:"dive,oneof=Thursday Friday Saturday Sunday"`
}

type ClubService struct {
	Clubs    repository.ClubRepository
	Guests   repository.GuestRepository
	Notifier Notifier
}

func NewClubService(clubs repository.ClubRepository, guests repository.GuestRepository, n Notifier) *ClubService {
	return &ClubService{Clubs: clubs, Guests: guests, Notifier: notifierOrNop(n)}
}

// ClubsAvailableOn returns the clubs open on the weekday of a
// "Weekday (MM/DD/YYYY)" label, ordered by name.
func (s *ClubService) ClubsAvailableOn(ctx context.Context, label string) ([]models.Club, error) {
	day, err := schedule.WeekdayFromLabel(label)
	if err != nil {
		return nil, invalid("date", err)
	}

	clubs, err := s.Clubs.List(ctx)
	if err != nil {
		return nil, err
	}
	open := make([]models.Club, 0, len(clubs))
	for _, c := range clubs {
		if c.IsAvailableOn(day) {
			open = append(open, c)
		}
	}
	return open, nil
}

func (s *ClubService) ListClubs(ctx context.Context) ([]models.Club, error) {
	clubs, err := s.Clubs.List(ctx)
	if err != nil {
		return nil, err
	}
	if clubs == nil {
		clubs = []models.Club{}
	}
	return clubs, nil
}

func (s *ClubService) GetClub(ctx context.Context, id string) (*models.Club, error) {
	return s.Clubs.FindByID(ctx, strings.TrimSpace(id))
}

func (s *ClubService) CreateClub(ctx context.Context, in ClubInput) (*models.Club, error) {
	if err := normalizeClubInput(&in); err != nil {
		return nil, err
	}

	var club models.Club
	if err := copier.Copy(&club, &in); err != nil {
		return nil, fmt.Errorf("copying club input: %w", err)
	}
	club.AvailableDays = datatypes.JSONSlice[string](in.AvailableDays)

	if err := s.Clubs.Create(ctx, &club); err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{"club_id": club.ID, "name": club.Name}).Info("Club created")
	s.Notifier.Broadcast(EventClubChanged, clubChange("created", club))
	return &club, nil
}

// UpdateClub replaces name, address and available days.
func (s *ClubService) UpdateClub(ctx context.Context, id string, in ClubInput) (*models.Club, error) {
	if err := normalizeClubInput(&in); err != nil {
		return nil, err
	}
	club, err := s.Clubs.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}

	if err := copier.Copy(club, &in); err != nil {
		return nil, fmt.Errorf("copying club input: %w", err)
	}
	club.AvailableDays = datatypes.JSONSlice[string](in.AvailableDays)

	if err := s.Clubs.Update(ctx, club); err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{"club_id": club.ID, "name": club.Name}).Info("Club updated")
	s.Notifier.Broadcast(EventClubChanged, clubChange("updated", *club))
	return club, nil
}

// DeleteClub refuses to remove a club that guests still reference.
func (s *ClubService) DeleteClub(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	club, err := s.Clubs.FindByID(ctx, id)
	if err != nil {
		return err
	}

	n, err := s.Guests.CountByClub(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d guest(s) reference %s", ErrClubInUse, n, club.Name)
	}

	if err := s.Clubs.Delete(ctx, id); err != nil {
		return err
	}
	utils.InfoLogger.WithFields(logrus.Fields{"club_id": id, "name": club.Name}).Info("Club deleted")
	s.Notifier.Broadcast(EventClubChanged, clubChange("deleted", *club))
	return nil
}

func normalizeClubInput(in *ClubInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)

	days, unknown := schedule.NormalizeDays(in.AvailableDays)
	if len(unknown) > 0 {
		return &ValidationError{
			Field:   "available_days",
			Message: fmt.Sprintf("unsupported day(s) %s, expected %s", strings.Join(unknown, ", "), strings.Join(schedule.EventNights, ", ")),
		}
	}
	in.AvailableDays = days

	if err := validate.Struct(in); err != nil {
		return fromValidator(err)
	}
	return nil
}

// ClubChange is the payload of a club_changed event.
type ClubChange struct {
	Action string      `json:"action"`
	Club   models.Club `json:"club"`
}

func clubChange(action string, club models.Club) ClubChange {
	return ClubChange{Action: action, Club: club}
}
