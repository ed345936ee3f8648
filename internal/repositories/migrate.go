package repositories

import (
	"github.com/anonto42/microposts/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every SQL table this service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Micropost{},
		&models.UserFollow{},
		&models.Favorite{},
	)
}
