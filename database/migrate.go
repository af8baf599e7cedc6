package database

import (
	"fmt"

	"github.com/yeremiapane/guestlist-app/models"
	"github.com/yeremiapane/guestlist-app/utils"
	"gorm.io/gorm"
)

// guestViewSQL joins guests to the display name and address of their club. The
// LEFT JOIN keeps guests whose club has since been removed.
const guestViewSQL = `CREATE VIEW ` + models.GuestViewName + ` AS
SELECT
    g.id, g.first_name, g.last_name, g.phone, g.men_count, g.women_count,
    g.bottle_service, g.date, g.celebration, g.club_id,
    COALESCE(c.name, '') AS club_name,
    COALESCE(c.address, '') AS club_address,
    g.voucher_code, g.checked_in, g.check_in_time, g.created_at
FROM guests g
LEFT JOIN clubs c ON c.id = g.club_id`

// Migrate creates or updates every table and then rebuilds the read views.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Club{},
		&models.Guest{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if err := CreateViews(db); err != nil {
		return err
	}
	return nil
}

// CreateViews drops and recreates the read views. Both statements are portable
// across sqlite, mysql and postgres.
func CreateViews(db *gorm.DB) error {
	statements := []string{
		"DROP VIEW IF EXISTS " + models.GuestViewName,
		guestViewSQL,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			utils.ErrorLogger.Printf("Error executing view statement: %v\nStatement: %s", err, stmt)
			return fmt.Errorf("create views: %w", err)
		}
	}
	utils.InfoLogger.WithField("view", models.GuestViewName).Info("View created")
	return nil
}
