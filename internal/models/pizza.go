package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Pizza represents a pizza recipe. Unlike restaurants, pizza names are not unique.
type Pizza struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Ingredients string `gorm:"not null" json:"ingredients"`

	RestaurantPizzas []RestaurantPizza `gorm:"foreignKey:PizzaID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Pizza) TableName() string {
	return "pizzas"
}

func (p *Pizza) BeforeSave(tx *gorm.DB) error {
	return validateRequiredWrite(tx, p,
		requiredField{field: "Name", column: "name"},
		requiredField{field: "Ingredients", column: "ingredients"},
	)
}

// Restaurants returns the restaurants selling this pizza, in join row order.
// RestaurantPizzas (and their Restaurant) must have been preloaded.
func (p *Pizza) Restaurants() []Restaurant {
	restaurants := make([]Restaurant, 0, len(p.RestaurantPizzas))
	for _, rp := range p.RestaurantPizzas {
		if rp.Restaurant == nil {
			continue
		}
		restaurants = append(restaurants, *rp.Restaurant)
	}
	return restaurants
}

func (p Pizza) String() string {
	return fmt.Sprintf("<Pizza %s>", p.Name)
}
