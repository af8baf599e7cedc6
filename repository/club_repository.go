package repository

import (
	"context"

	"github.com/yeremiapane/guestlist-app/models"
	"gorm.io/gorm"
)

type ClubRepository interface {
	List(ctx context.Context) ([]models.Club, error)
	FindByID(ctx context.Context, id string) (*models.Club, error)
	Create(ctx context.Context, club *models.Club) error
	Update(ctx context.Context, club *models.Club) error
	Delete(ctx context.Context, id string) error
}

type clubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

// List returns every club ordered by name.
func (r *clubRepository) List(ctx context.Context) ([]models.Club, error) {
	var clubs []models.Club
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&clubs).Error; err != nil {
		return nil, translate(err, "listing clubs")
	}
	return clubs, nil
}

func (r *clubRepository) FindByID(ctx context.Context, id string) (*models.Club, error) {
	var club models.Club
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&club).Error; err != nil {
		return nil, translate(err, "fetching club")
	}
	return &club, nil
}

func (r *clubRepository) Create(ctx context.Context, club *models.Club) error {
	return translate(r.db.WithContext(ctx).Create(club).Error, "creating club")
}

func (r *clubRepository) Update(ctx context.Context, club *models.Club) error {
	err := r.db.WithContext(ctx).Model(club).
		Select("name", "address", "available_days").
		Updates(club).Error
	return translate(err, "updating club")
}

func (r *clubRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Club{})
	if res.Error != nil {
		return translate(res.Error, "deleting club")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
