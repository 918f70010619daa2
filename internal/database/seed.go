package database

import (
	"fmt"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"gorm.io/gorm"
)

type seedPrice struct {
	restaurant string
	pizza      string
	price      int
}

var (
	seedRestaurants = []models.Restaurant{
		{Name: "Karen's Pizza Shack", Address: "address1"},
		{Name: "Sanjay's Pizza", Address: "address2"},
		{Name: "Kiki's Pizza", Address: "address3"},
	}

	seedPizzas = []models.Pizza{
		{Name: "Emma", Ingredients: "Dough, Tomato Sauce, Cheese"},
		{Name: "Geri", Ingredients: "Dough, Tomato Sauce, Cheese, Pepperoni"},
		{Name: "Melanie", Ingredients: "Dough, Sauce, Ricotta, Red peppers, Mustard"},
	}

	seedPrices = []seedPrice{
		{restaurant: "Karen's Pizza Shack", pizza: "Emma", price: 1},
		{restaurant: "Sanjay's Pizza", pizza: "Geri", price: 4},
		{restaurant: "Kiki's Pizza", pizza: "Melanie", price: 5},
	}
)

// SeedIfEmpty seeds the catalogue only when no restaurant exists yet
func SeedIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Restaurant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Database already seeded with initial data")
		return nil
	}
	log.Info("Database is empty, seeding initial data")
	return Seed(db)
}

// Seed inserts the demo restaurants, pizzas and prices in a single transaction
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		restaurants := make(map[string]uint, len(seedRestaurants))
		for _, r := range seedRestaurants {
			restaurant := r
			if err := tx.Create(&restaurant).Error; err != nil {
				return fmt.Errorf("seeding restaurant %q: %w", r.Name, err)
			}
			restaurants[restaurant.Name] = restaurant.ID
		}

		pizzas := make(map[string]uint, len(seedPizzas))
		for _, p := range seedPizzas {
			pizza := p
			if err := tx.Create(&pizza).Error; err != nil {
				return fmt.Errorf("seeding pizza %q: %w", p.Name, err)
			}
			pizzas[pizza.Name] = pizza.ID
		}

		for _, sp := range seedPrices {
			rp, err := models.NewRestaurantPizza(restaurants[sp.restaurant], pizzas[sp.pizza], sp.price)
			if err != nil {
				return err
			}
			if err := tx.Create(rp).Error; err != nil {
				return fmt.Errorf("seeding price for %s at %s: %w", sp.pizza, sp.restaurant, err)
			}
		}

		log.WithField("restaurants", len(seedRestaurants)).Info("Database seeded successfully")
		return nil
	})
}

// Reset removes all catalogue rows; join rows go first so no dangling references remain
func Reset(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.RestaurantPizza{}, &models.Pizza{}, &models.Restaurant{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
