package models

import (
	"fmt"

	"gorm.io/gorm"
)

// RestaurantPizza is the priced edge between a restaurant and a pizza.
// The price is checked on construction, on every SetPrice call and again before any save.
type RestaurantPizza struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	Price        int  `gorm:"not null;check:chk_restaurant_pizzas_price,price >= 1 AND price <= 30" json:"price"`
	PizzaID      uint `gorm:"not null;index" json:"pizza_id"`
	RestaurantID uint `gorm:"not null;index" json:"restaurant_id"`

	Pizza      *Pizza      `gorm:"foreignKey:PizzaID;constraint:OnDelete:CASCADE" json:"-"`
	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RestaurantPizza) TableName() string {
	return "restaurant_pizzas"
}

// NewRestaurantPizza builds a join row, rejecting prices outside the allowed range.
func NewRestaurantPizza(restaurantID, pizzaID uint, price int) (*RestaurantPizza, error) {
	rp := &RestaurantPizza{RestaurantID: restaurantID, PizzaID: pizzaID}
	if err := rp.SetPrice(price); err != nil {
		return nil, err
	}
	return rp, nil
}

// SetPrice assigns the price if it is valid. On error the previous price is kept.
func (rp *RestaurantPizza) SetPrice(price int) error {
	if err := ValidatePrice(price); err != nil {
		return err
	}
	rp.Price = price
	return nil
}

// BeforeSave runs for creates, saves and column updates. Column updates are
// checked against the value being written, not the price already held by rp.
func (rp *RestaurantPizza) BeforeSave(tx *gorm.DB) error {
	return validatePriceWrite(tx, rp)
}

func (rp RestaurantPizza) String() string {
	return fmt.Sprintf("<RestaurantPizza $%d>", rp.Price)
}
