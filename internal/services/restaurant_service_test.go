package services

import (
	"context"
	"errors"
	"testing"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRestaurantRejectsDuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewRestaurantService(db)
	ctx := context.Background()

	created, err := service.CreateRestaurant(ctx, models.Restaurant{Name: "Sottocasa", Address: "298 Atlantic Ave"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = service.CreateRestaurant(ctx, models.Restaurant{Name: "Sottocasa", Address: "somewhere else"})
	assert.ErrorIs(t, err, ErrRestaurantNameTaken)

	restaurants, err := service.GetAllRestaurants(ctx)
	require.NoError(t, err)
	assert.Len(t, restaurants, 1)
}

func TestUniqueIndexRejectsDuplicateNameWithoutPrecheck(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateRestaurant(t, db, "Sottocasa", "298 Atlantic Ave")

	err := db.Create(&models.Restaurant{Name: "Sottocasa", Address: "elsewhere"}).Error
	require.Error(t, err)
	assert.ErrorIs(t, uniquenessError(err), ErrRestaurantNameTaken)
}

func TestUpdateRestaurant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewRestaurantService(db)
	ctx := context.Background()

	first := testutil.CreateRestaurant(t, db, "First", "1 Street")
	testutil.CreateRestaurant(t, db, "Second", "2 Street")

	updated, err := service.UpdateRestaurant(ctx, models.Restaurant{ID: first.ID, Name: "First Renamed", Address: "1a Street"})
	require.NoError(t, err)
	assert.Equal(t, "First Renamed", updated.Name)
	assert.Equal(t, "1a Street", updated.Address)

	// Keeping its own name is not a conflict
	_, err = service.UpdateRestaurant(ctx, models.Restaurant{ID: first.ID, Name: "First Renamed", Address: "1b Street"})
	assert.NoError(t, err)

	_, err = service.UpdateRestaurant(ctx, models.Restaurant{ID: first.ID, Name: "Second", Address: "x"})
	assert.ErrorIs(t, err, ErrRestaurantNameTaken)

	_, err = service.UpdateRestaurant(ctx, models.Restaurant{ID: 999, Name: "Ghost", Address: "x"})
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestGetRestaurantByIDPreloadsJoinRowsInOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewRestaurantService(db)

	restaurant := testutil.CreateRestaurant(t, db, "Kiki's Pizza", "address3")
	margherita := testutil.CreatePizza(t, db, "Margherita", "Tomato, Mozzarella")
	diavola := testutil.CreatePizza(t, db, "Diavola", "Tomato, Salami")
	testutil.CreateRestaurantPizza(t, db, restaurant.ID, diavola.ID, 14)
	testutil.CreateRestaurantPizza(t, db, restaurant.ID, margherita.ID, 11)

	loaded, err := service.GetRestaurantByID(context.Background(), restaurant.ID)
	require.NoError(t, err)
	require.Len(t, loaded.RestaurantPizzas, 2)
	assert.Equal(t, "Diavola", loaded.RestaurantPizzas[0].Pizza.Name)
	assert.Equal(t, 11, loaded.RestaurantPizzas[1].Price)

	names := []string{}
	for _, p := range loaded.Pizzas() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Diavola", "Margherita"}, names)

	_, err = service.GetRestaurantByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestDeleteRestaurantCascadesJoinRows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewRestaurantService(db)
	ctx := context.Background()

	doomed := testutil.CreateRestaurant(t, db, "Doomed", "1 Street")
	survivor := testutil.CreateRestaurant(t, db, "Survivor", "2 Street")
	pizza := testutil.CreatePizza(t, db, "Margherita", "Tomato")
	testutil.CreateRestaurantPizza(t, db, doomed.ID, pizza.ID, 10)
	testutil.CreateRestaurantPizza(t, db, doomed.ID, pizza.ID, 12)
	kept := testutil.CreateRestaurantPizza(t, db, survivor.ID, pizza.ID, 9)

	require.NoError(t, service.DeleteRestaurant(ctx, doomed.ID))

	var rows []models.RestaurantPizza
	require.NoError(t, db.Where("restaurant_id = ?", doomed.ID).Find(&rows).Error)
	assert.Empty(t, rows)

	var remaining []models.RestaurantPizza
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)

	// The pizza itself is untouched
	var pizzaCount int64
	db.Model(&models.Pizza{}).Count(&pizzaCount)
	assert.Equal(t, int64(1), pizzaCount)

	err := service.DeleteRestaurant(ctx, doomed.ID)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestRestaurantPizzasProjection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewRestaurantService(db)
	ctx := context.Background()

	restaurant := testutil.CreateRestaurant(t, db, "Sanjay's Pizza", "address2")
	other := testutil.CreateRestaurant(t, db, "Other", "address9")
	emma := testutil.CreatePizza(t, db, "Emma", "Dough, Tomato Sauce, Cheese")
	geri := testutil.CreatePizza(t, db, "Geri", "Dough, Tomato Sauce, Cheese, Pepperoni")

	_, err := service.AddPizza(ctx, restaurant.ID, geri.ID, 4)
	require.NoError(t, err)
	_, err = service.AddPizza(ctx, restaurant.ID, emma.ID, 6)
	require.NoError(t, err)
	_, err = service.AddPizza(ctx, other.ID, emma.ID, 7)
	require.NoError(t, err)

	pizzas, err := service.Pizzas(ctx, restaurant.ID)
	require.NoError(t, err)
	require.Len(t, pizzas, 2)
	assert.Equal(t, "Geri", pizzas[0].Name)
	assert.Equal(t, "Emma", pizzas[1].Name)

	_, err = service.Pizzas(ctx, 12345)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestAddPizzaRequiresValidPrice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewRestaurantService(db)
	ctx := context.Background()

	restaurant := testutil.CreateRestaurant(t, db, "Strict", "1 Street")
	pizza := testutil.CreatePizza(t, db, "Emma", "Dough")

	_, err := service.AddPizza(ctx, restaurant.ID, pizza.ID, 0)
	assert.True(t, errors.Is(err, models.ErrValidation))

	pizzas, err := service.Pizzas(ctx, restaurant.ID)
	require.NoError(t, err)
	assert.Empty(t, pizzas)
}

func TestRestaurantRequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := NewRestaurantService(db)
	ctx := context.Background()

	testCases := []struct {
		name       string
		restaurant models.Restaurant
		field      string
	}{
		{name: "empty restaurant", restaurant: models.Restaurant{}, field: "name"},
		{name: "blank name", restaurant: models.Restaurant{Name: "   ", Address: "1 Street"}, field: "name"},
		{name: "missing address", restaurant: models.Restaurant{Name: "Nameless Street"}, field: "address"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateRestaurant(ctx, tt.restaurant)
			require.ErrorIs(t, err, models.ErrValidation)

			var required *models.RequiredFieldError
			require.True(t, errors.As(err, &required))
			assert.Equal(t, tt.field, required.Field)
		})
	}

	var count int64
	db.Model(&models.Restaurant{}).Count(&count)
	assert.Zero(t, count)

	existing := testutil.CreateRestaurant(t, db, "Kept", "1 Street")

	_, err := service.UpdateRestaurant(ctx, models.Restaurant{ID: existing.ID, Name: "", Address: "2 Street"})
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = service.UpdateRestaurant(ctx, models.Restaurant{ID: existing.ID, Name: "Kept", Address: ""})
	assert.ErrorIs(t, err, models.ErrValidation)

	// Column updates are checked against the written value
	err = db.Model(&existing).Update("address", " ").Error
	assert.ErrorIs(t, err, models.ErrValidation)

	var stored models.Restaurant
	require.NoError(t, db.First(&stored, existing.ID).Error)
	assert.Equal(t, "Kept", stored.Name)
	assert.Equal(t, "1 Street", stored.Address)
}
