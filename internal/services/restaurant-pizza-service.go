package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/metrics"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RestaurantPizzaService manages the priced links between restaurants and pizzas
type RestaurantPizzaService interface {
	// CreateRestaurantPizza links an existing restaurant and pizza at a valid price
	CreateRestaurantPizza(ctx context.Context, restaurantID, pizzaID uint, price int) (models.RestaurantPizza, error)
	// GetRestaurantPizzaByID retrieves a join row with both parents loaded
	GetRestaurantPizzaByID(ctx context.Context, id uint) (models.RestaurantPizza, error)
	// UpdatePrice changes the price of a join row; invalid prices leave the stored value untouched
	UpdatePrice(ctx context.Context, id uint, price int) (models.RestaurantPizza, error)
	// DeleteRestaurantPizza removes a single join row
	DeleteRestaurantPizza(ctx context.Context, id uint) error
}

type restaurantPizzaService struct {
	db *gorm.DB
}

// NewRestaurantPizzaService creates a new instance of RestaurantPizzaService
func NewRestaurantPizzaService(db *gorm.DB) RestaurantPizzaService {
	return &restaurantPizzaService{db: db}
}

func (s *restaurantPizzaService) CreateRestaurantPizza(ctx context.Context, restaurantID, pizzaID uint, price int) (models.RestaurantPizza, error) {
	return createRestaurantPizza(s.db.WithContext(ctx), restaurantID, pizzaID, price)
}

func (s *restaurantPizzaService) GetRestaurantPizzaByID(ctx context.Context, id uint) (models.RestaurantPizza, error) {
	var rp models.RestaurantPizza
	err := s.db.WithContext(ctx).Preload("Pizza").Preload("Restaurant").First(&rp, id).Error
	if err != nil {
		return models.RestaurantPizza{}, restaurantPizzaLookupError(err)
	}
	return rp, nil
}

func (s *restaurantPizzaService) UpdatePrice(ctx context.Context, id uint, price int) (models.RestaurantPizza, error) {
	var rp models.RestaurantPizza
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rp, id).Error; err != nil {
			return restaurantPizzaLookupError(err)
		}
		if err := rp.SetPrice(price); err != nil {
			return err
		}
		return tx.Model(&rp).Update("price", rp.Price).Error
	})
	if err != nil {
		recordRejection(err)
		return models.RestaurantPizza{}, err
	}
	return s.GetRestaurantPizzaByID(ctx, id)
}

func (s *restaurantPizzaService) DeleteRestaurantPizza(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.RestaurantPizza{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRestaurantPizzaNotFound
	}
	return nil
}

// createRestaurantPizza is the single write path for new links, shared by both association
// directions. Parents are checked inside the same transaction as the insert.
func createRestaurantPizza(db *gorm.DB, restaurantID, pizzaID uint, price int) (models.RestaurantPizza, error) {
	rp, err := models.NewRestaurantPizza(restaurantID, pizzaID, price)
	if err != nil {
		recordRejection(err)
		return models.RestaurantPizza{}, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, restaurantID).Error; err != nil {
			return integrityError(restaurantLookupError(err))
		}
		var pizza models.Pizza
		if err := tx.First(&pizza, pizzaID).Error; err != nil {
			return integrityError(pizzaLookupError(err))
		}

		if err := tx.Create(rp).Error; err != nil {
			return err
		}
		rp.Restaurant = &restaurant
		rp.Pizza = &pizza
		return nil
	})
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		// A parent was deleted between the lookup and the insert
		return models.RestaurantPizza{}, missingParentError(db, restaurantID, pizzaID, err)
	}
	if err != nil {
		return models.RestaurantPizza{}, err
	}

	log.WithFields(logrus.Fields{
		"restaurant_pizza_id": rp.ID,
		"restaurant_id":       restaurantID,
		"pizza_id":            pizzaID,
		"price":               rp.Price,
	}).Info("Restaurant pizza created")
	return *rp, nil
}

func integrityError(err error) error {
	if errors.Is(err, ErrRestaurantNotFound) || errors.Is(err, ErrPizzaNotFound) {
		return errors.Join(ErrReferentialIntegrity, err)
	}
	return err
}

// missingParentError names the parent a rejected insert pointed at. It runs after
// the transaction has rolled back, and blames the pizza once the restaurant is found.
func missingParentError(db *gorm.DB, restaurantID, pizzaID uint, cause error) error {
	var count int64
	if err := db.Model(&models.Restaurant{}).Where("id = ?", restaurantID).Count(&count).Error; err == nil && count == 0 {
		return integrityError(fmt.Errorf("%w: %w", ErrRestaurantNotFound, cause))
	}
	return integrityError(fmt.Errorf("%w: %w", ErrPizzaNotFound, cause))
}

func restaurantPizzaLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRestaurantPizzaNotFound
	}
	return err
}

func recordRejection(err error) {
	if errors.Is(err, models.ErrValidation) {
		metrics.PriceRejections.Inc()
		log.WithError(err).Warn("Rejected restaurant pizza price")
	}
}
