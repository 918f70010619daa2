package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RestaurantService provides methods to interact with restaurants and their menus
type RestaurantService interface {
	// GetAllRestaurants retrieves all restaurants ordered by ID
	GetAllRestaurants(ctx context.Context) ([]models.Restaurant, error)
	// GetRestaurantByID retrieves a restaurant with its join rows and their pizzas
	GetRestaurantByID(ctx context.Context, id uint) (models.Restaurant, error)
	// CreateRestaurant inserts a restaurant, failing with ErrRestaurantNameTaken on duplicate names
	CreateRestaurant(ctx context.Context, restaurant models.Restaurant) (models.Restaurant, error)
	// UpdateRestaurant changes name and address of an existing restaurant
	UpdateRestaurant(ctx context.Context, restaurant models.Restaurant) (models.Restaurant, error)
	// DeleteRestaurant deletes a restaurant and all of its join rows atomically
	DeleteRestaurant(ctx context.Context, id uint) error
	// Pizzas returns the pizzas sold by a restaurant, in join row order
	Pizzas(ctx context.Context, restaurantID uint) ([]models.Pizza, error)
	// AddPizza puts a pizza on a restaurant's menu at the given price
	AddPizza(ctx context.Context, restaurantID, pizzaID uint, price int) (models.RestaurantPizza, error)
}

type restaurantService struct {
	db *gorm.DB
}

// NewRestaurantService creates a new instance of RestaurantService
func NewRestaurantService(db *gorm.DB) RestaurantService {
	return &restaurantService{db: db}
}

func (s *restaurantService) GetAllRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := s.db.WithContext(ctx).Order("id").Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (s *restaurantService) GetRestaurantByID(ctx context.Context, id uint) (models.Restaurant, error) {
	var restaurant models.Restaurant
	err := s.db.WithContext(ctx).
		Preload("RestaurantPizzas", func(db *gorm.DB) *gorm.DB { return db.Order("restaurant_pizzas.id") }).
		Preload("RestaurantPizzas.Pizza").
		First(&restaurant, id).Error
	if err != nil {
		return models.Restaurant{}, restaurantLookupError(err)
	}
	return restaurant, nil
}

func (s *restaurantService) CreateRestaurant(ctx context.Context, restaurant models.Restaurant) (models.Restaurant, error) {
	restaurant.ID = 0
	restaurant.RestaurantPizzas = nil

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNameAvailable(tx, restaurant.Name, 0); err != nil {
			return err
		}
		return tx.Create(&restaurant).Error
	})
	if err != nil {
		return models.Restaurant{}, uniquenessError(err)
	}

	log.WithField("restaurant_id", restaurant.ID).Info("Restaurant created")
	return restaurant, nil
}

func (s *restaurantService) UpdateRestaurant(ctx context.Context, restaurant models.Restaurant) (models.Restaurant, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Restaurant
		if err := tx.First(&existing, restaurant.ID).Error; err != nil {
			return restaurantLookupError(err)
		}
		if err := ensureNameAvailable(tx, restaurant.Name, restaurant.ID); err != nil {
			return err
		}
		existing.Name = restaurant.Name
		existing.Address = restaurant.Address
		if err := tx.Omit("RestaurantPizzas").Save(&existing).Error; err != nil {
			return err
		}
		restaurant = existing
		return nil
	})
	if err != nil {
		return models.Restaurant{}, uniquenessError(err)
	}
	return restaurant, nil
}

func (s *restaurantService) DeleteRestaurant(ctx context.Context, id uint) error {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, id).Error; err != nil {
			return restaurantLookupError(err)
		}

		result := tx.Where("restaurant_id = ?", id).Delete(&models.RestaurantPizza{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected

		return tx.Delete(&restaurant).Error
	})
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"restaurant_id":     id,
		"restaurant_pizzas": removed,
	}).Info("Restaurant deleted")
	return nil
}

func (s *restaurantService) Pizzas(ctx context.Context, restaurantID uint) ([]models.Pizza, error) {
	db := s.db.WithContext(ctx)

	var restaurant models.Restaurant
	if err := db.Select("id").First(&restaurant, restaurantID).Error; err != nil {
		return nil, restaurantLookupError(err)
	}

	var pizzas []models.Pizza
	err := db.Joins("JOIN restaurant_pizzas ON restaurant_pizzas.pizza_id = pizzas.id").
		Where("restaurant_pizzas.restaurant_id = ?", restaurantID).
		Order("restaurant_pizzas.id").
		Find(&pizzas).Error
	if err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *restaurantService) AddPizza(ctx context.Context, restaurantID, pizzaID uint, price int) (models.RestaurantPizza, error) {
	return createRestaurantPizza(s.db.WithContext(ctx), restaurantID, pizzaID, price)
}

// ensureNameAvailable reports ErrRestaurantNameTaken if another restaurant uses name.
// The unique index still guards against concurrent inserts.
func ensureNameAvailable(tx *gorm.DB, name string, exceptID uint) error {
	var count int64
	query := tx.Model(&models.Restaurant{}).Where("name = ?", name)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrRestaurantNameTaken, name)
	}
	return nil
}

func uniquenessError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", ErrRestaurantNameTaken, err)
	}
	return err
}

func restaurantLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRestaurantNotFound
	}
	return err
}

func pizzaLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPizzaNotFound
	}
	return err
}
