package repository

import (
	"context"
	"time"

	"github.com/yeremiapane/guestlist-app/models"
	"gorm.io/gorm"
)

// GuestRepository persists guests and reads them back through the
// guests_with_club_names view.
type GuestRepository interface {
	Create(ctx context.Context, guest *models.Guest) error
	FindByID(ctx context.Context, id string) (*models.GuestView, error)
	FindByVoucher(ctx context.Context, code string) (*models.GuestView, error)
	VoucherExists(ctx context.Context, code string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	MarkCheckedIn(ctx context.Context, id string, at time.Time) (bool, error)
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]models.GuestView, error)
	ListPage(ctx context.Context, offset, limit int) ([]models.GuestView, int64, error)
	CountByClub(ctx context.Context, clubID string) (int64, error)
}

type guestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) GuestRepository {
	return &guestRepository{db: db}
}

func (r *guestRepository) Create(ctx context.Context, guest *models.Guest) error {
	return translate(r.db.WithContext(ctx).Create(guest).Error, "creating guest")
}

func (r *guestRepository) FindByID(ctx context.Context, id string) (*models.GuestView, error) {
	var view models.GuestView
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&view).Error
	if err != nil {
		return nil, translate(err, "fetching guest by id")
	}
	return &view, nil
}

func (r *guestRepository) FindByVoucher(ctx context.Context, code string) (*models.GuestView, error) {
	var view models.GuestView
	err := r.db.WithContext(ctx).Where("voucher_code = ?", code).Take(&view).Error
	if err != nil {
		return nil, translate(err, "fetching guest by voucher code")
	}
	return &view, nil
}

func (r *guestRepository) VoucherExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Guest{}).Where("voucher_code = ?", code).Count(&count).Error
	if err != nil {
		return false, translate(err, "checking voucher code")
	}
	return count > 0, nil
}

func (r *guestRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Guest{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, translate(err, "checking guest")
	}
	return count > 0, nil
}

// MarkCheckedIn flips checked_in in a single conditional UPDATE. It returns
// false when no pending guest with that id exists, so two concurrent
// redemptions of one voucher cannot both succeed.
func (r *guestRepository) MarkCheckedIn(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Guest{}).
		Where("id = ? AND checked_in = ?", id, false).
		Updates(map[string]interface{}{
			"checked_in":    true,
			"check_in_time": at.UTC(),
		})
	if res.Error != nil {
		return false, translate(res.Error, "updating guest check-in")
	}
	return res.RowsAffected == 1, nil
}

// ListCreatedBetween returns guests created in [from, to), newest first.
func (r *guestRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]models.GuestView, error) {
	var views []models.GuestView
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Order("created_at DESC").
		Find(&views).Error
	if err != nil {
		return nil, translate(err, "listing guests by week")
	}
	return views, nil
}

func (r *guestRepository) ListPage(ctx context.Context, offset, limit int) ([]models.GuestView, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.GuestView{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "counting guests")
	}

	var views []models.GuestView
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&views).Error
	if err != nil {
		return nil, 0, translate(err, "listing guests")
	}
	return views, total, nil
}

func (r *guestRepository) CountByClub(ctx context.Context, clubID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Guest{}).Where("club_id = ?", clubID).Count(&count).Error
	if err != nil {
		return 0, translate(err, "counting guests for club")
	}
	return count, nil
}
