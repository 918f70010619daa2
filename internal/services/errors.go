package services

import "errors"

var (
	ErrRestaurantNotFound      = errors.New("restaurant not found")
	ErrPizzaNotFound           = errors.New("pizza not found")
	ErrRestaurantPizzaNotFound = errors.New("restaurant pizza not found")

	// ErrRestaurantNameTaken is returned when a restaurant name is already in use
	ErrRestaurantNameTaken = errors.New("restaurant name already exists")

	// ErrReferentialIntegrity is returned when a join row would reference a missing restaurant or pizza.
	// It is always joined with ErrRestaurantNotFound or ErrPizzaNotFound, including when the
	// foreign key constraint rejects the insert.
	ErrReferentialIntegrity = errors.New("referenced entity does not exist")

	ErrUserAlreadyExists = errors.New("user already exists")
	ErrClientNotFound    = errors.New("client not found")
)
