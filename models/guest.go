package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Guest is one sign-up. It moves from pending to checked in exactly once.
type Guest struct {
	ID            string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FirstName     string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName      string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Phone         string     `gorm:"type:varchar(30);not null" json:"phone"`
	MenCount      int        `gorm:"not null;default:0" json:"men_count"`
	WomenCount    int        `gorm:"not null;default:0" json:"women_count"`
	BottleService bool       `gorm:"not null;default:false" json:"bottle_service"`
	Date          string     `gorm:"type:varchar(40);not null;index" json:"date"`
	Celebration   *string    `gorm:"type:varchar(255)" json:"celebration,omitempty"`
	ClubID        string     `gorm:"type:varchar(36);not null;index" json:"club_id"`
	VoucherCode   string     `gorm:"type:varchar(12);uniqueIndex;not null" json:"voucher_code"`
	CheckedIn     bool       `gorm:"not null;default:false;index" json:"checked_in"`
	CheckInTime   *time.Time `json:"check_in_time,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// PartySize is the "+N" shown at the door: everyone in the group except the
// guest named on the list.
func PartySize(menCount, womenCount int) int {
	n := menCount + womenCount - 1
	if n < 0 {
		return 0
	}
	return n
}

// GuestView is a row of the guests_with_club_names view.
type GuestView struct {
	ID            string     `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Phone         string     `json:"phone"`
	MenCount      int        `json:"men_count"`
	WomenCount    int        `json:"women_count"`
	BottleService bool       `json:"bottle_service"`
	Date          string     `json:"date"`
	Celebration   *string    `json:"celebration,omitempty"`
	ClubID        string     `json:"club_id"`
	ClubName      string     `json:"club_name"`
	ClubAddress   string     `json:"club_address"`
	VoucherCode   string     `json:"voucher_code"`
	CheckedIn     bool       `json:"checked_in"`
	CheckInTime   *time.Time `json:"check_in_time,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (GuestView) TableName() string {
	return GuestViewName
}

const GuestViewName = "guests_with_club_names"

func (v GuestView) PartySize() int {
	return PartySize(v.MenCount, v.WomenCount)
}

// HasClub is false when the referenced club no longer exists.
func (v GuestView) HasClub() bool {
	return v.ClubName != ""
}
