package database

import (
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates every table the service uses
func Migrate(db *gorm.DB) error {
	log.Info("Running schema migrations")
	return db.AutoMigrate(
		&models.Restaurant{},
		&models.Pizza{},
		&models.RestaurantPizza{},
		&models.User{},
		&models.OAuthClient{},
	)
}
