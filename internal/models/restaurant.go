package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Restaurant is a place that sells pizzas. Names are unique across all restaurants.
type Restaurant struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null;uniqueIndex:uq_restaurant_name" json:"name"`
	Address string `gorm:"not null" json:"address"`

	// Join rows are removed together with the restaurant
	RestaurantPizzas []RestaurantPizza `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}

// BeforeSave rejects a blank name or address.
func (r *Restaurant) BeforeSave(tx *gorm.DB) error {
	return validateRequiredWrite(tx, r,
		requiredField{field: "Name", column: "name"},
		requiredField{field: "Address", column: "address"},
	)
}

// Pizzas returns the pizzas reachable through the loaded join rows, in join row order.
// RestaurantPizzas (and their Pizza) must have been preloaded.
func (r *Restaurant) Pizzas() []Pizza {
	pizzas := make([]Pizza, 0, len(r.RestaurantPizzas))
	for _, rp := range r.RestaurantPizzas {
		if rp.Pizza == nil {
			continue
		}
		pizzas = append(pizzas, *rp.Pizza)
	}
	return pizzas
}

func (r Restaurant) String() string {
	return fmt.Sprintf("<Restaurant %s>", r.Name)
}
