package services

import (
	"context"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PizzaService provides methods to interact with the pizza database
type PizzaService interface {
	// GetAllPizzas retrieves all pizzas ordered by ID
	GetAllPizzas(ctx context.Context) ([]models.Pizza, error)
	// GetPizzaByID retrieves a pizza with its join rows and their restaurants
	GetPizzaByID(ctx context.Context, id uint) (models.Pizza, error)
	// CreatePizza creates a new pizza in the database
	CreatePizza(ctx context.Context, pizza models.Pizza) (models.Pizza, error)
	// UpdatePizza updates name and ingredients of an existing pizza
	UpdatePizza(ctx context.Context, pizza models.Pizza) (models.Pizza, error)
	// DeletePizza deletes a pizza and every join row referencing it atomically
	DeletePizza(ctx context.Context, id uint) error
	// Restaurants returns the restaurants selling a pizza, in join row order
	Restaurants(ctx context.Context, pizzaID uint) ([]models.Restaurant, error)
	// AddRestaurant puts the pizza on a restaurant's menu at the given price
	AddRestaurant(ctx context.Context, pizzaID, restaurantID uint, price int) (models.RestaurantPizza, error)
}

// pizzaService is the implementation of the PizzaService interface
type pizzaService struct {
	db *gorm.DB
}

// NewPizzaService creates a new instance of PizzaService
func NewPizzaService(db *gorm.DB) PizzaService {
	return &pizzaService{db: db}
}

func (s *pizzaService) GetAllPizzas(ctx context.Context) ([]models.Pizza, error) {
	var pizzas []models.Pizza
	if err := s.db.WithContext(ctx).Order("id").Find(&pizzas).Error; err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *pizzaService) GetPizzaByID(ctx context.Context, id uint) (models.Pizza, error) {
	var pizza models.Pizza
	err := s.db.WithContext(ctx).
		Preload("RestaurantPizzas", func(db *gorm.DB) *gorm.DB { return db.Order("restaurant_pizzas.id") }).
		Preload("RestaurantPizzas.Restaurant").
		First(&pizza, id).Error
	if err != nil {
		return models.Pizza{}, pizzaLookupError(err)
	}
	return pizza, nil
}

func (s *pizzaService) CreatePizza(ctx context.Context, pizza models.Pizza) (models.Pizza, error) {
	pizza.ID = 0
	pizza.RestaurantPizzas = nil
	if err := s.db.WithContext(ctx).Create(&pizza).Error; err != nil {
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (s *pizzaService) UpdatePizza(ctx context.Context, pizza models.Pizza) (models.Pizza, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Pizza
		if err := tx.First(&existing, pizza.ID).Error; err != nil {
			return pizzaLookupError(err)
		}
		existing.Name = pizza.Name
		existing.Ingredients = pizza.Ingredients
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		pizza = existing
		return nil
	})
	if err != nil {
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (s *pizzaService) DeletePizza(ctx context.Context, id uint) error {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pizza models.Pizza
		if err := tx.First(&pizza, id).Error; err != nil {
			return pizzaLookupError(err)
		}

		result := tx.Where("pizza_id = ?", id).Delete(&models.RestaurantPizza{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected

		return tx.Delete(&pizza).Error
	})
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"pizza_id":          id,
		"restaurant_pizzas": removed,
	}).Info("Pizza deleted")
	return nil
}

func (s *pizzaService) Restaurants(ctx context.Context, pizzaID uint) ([]models.Restaurant, error) {
	db := s.db.WithContext(ctx)

	var pizza models.Pizza
	if err := db.Select("id").First(&pizza, pizzaID).Error; err != nil {
		return nil, pizzaLookupError(err)
	}

	var restaurants []models.Restaurant
	err := db.Joins("JOIN restaurant_pizzas ON restaurant_pizzas.restaurant_id = restaurants.id").
		Where("restaurant_pizzas.pizza_id = ?", pizzaID).
		Order("restaurant_pizzas.id").
		Find(&restaurants).Error
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (s *pizzaService) AddRestaurant(ctx context.Context, pizzaID, restaurantID uint, price int) (models.RestaurantPizza, error) {
	return createRestaurantPizza(s.db.WithContext(ctx), restaurantID, pizzaID, price)
}
