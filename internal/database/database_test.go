package database

import (
	"path/filepath"
	"testing"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDatabase(DatabaseConfig{
		Driver:      "sqlite",
		Path:        filepath.Join(t.TempDir(), "pizza.sqlite"),
		MaxAttempts: 1,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestDSN(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      DatabaseConfig
		expected string
	}{
		{
			name:     "sqlite enables foreign keys",
			cfg:      DatabaseConfig{Driver: "sqlite", Path: "pizza.sqlite"},
			expected: "pizza.sqlite?_foreign_keys=on",
		},
		{
			name:     "sqlite keeps existing query",
			cfg:      DatabaseConfig{Driver: "sqlite", Path: "file:pizza.sqlite?cache=shared"},
			expected: "file:pizza.sqlite?cache=shared&_foreign_keys=on",
		},
		{
			name:     "empty driver defaults to sqlite",
			cfg:      DatabaseConfig{Path: "x.db"},
			expected: "x.db?_foreign_keys=on",
		},
		{
			name:     "postgres",
			cfg:      DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", User: "u", Password: "p", Name: "pizzas", SSLMode: "disable"},
			expected: "host=db user=u password=p dbname=pizzas port=5432 sslmode=disable",
		},
		{
			name:     "unknown driver",
			cfg:      DatabaseConfig{Driver: "oracle"},
			expected: "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.DSN())
		})
	}
}

func TestDatabaseConfigStringMasksPassword(t *testing.T) {
	cfg := DatabaseConfig{Driver: "postgres", Password: "hunter2"}
	assert.NotContains(t, cfg.String(), "hunter2")
	assert.Contains(t, cfg.String(), "[REDACTED]")
}

func TestInitDatabaseRejectsUnknownDriver(t *testing.T) {
	db, err := InitDatabase(DatabaseConfig{Driver: "oracle"})
	assert.Nil(t, db)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMigrateCreatesNamedForeignKeys(t *testing.T) {
	db := openTestDB(t)

	migrator := db.Migrator()
	assert.True(t, migrator.HasTable("restaurants"))
	assert.True(t, migrator.HasTable("pizzas"))
	assert.True(t, migrator.HasTable("restaurant_pizzas"))

	assert.True(t, migrator.HasConstraint(&models.RestaurantPizza{},
		models.ForeignKeyName("restaurant_pizzas", "restaurant_id", "restaurants")))
	assert.True(t, migrator.HasConstraint(&models.RestaurantPizza{},
		models.ForeignKeyName("restaurant_pizzas", "pizza_id", "pizzas")))
	assert.True(t, migrator.HasIndex(&models.Restaurant{}, "uq_restaurant_name"))
}

func TestForeignKeysAreEnforced(t *testing.T) {
	db := openTestDB(t)

	err := db.Create(&models.RestaurantPizza{Price: 10, RestaurantID: 99, PizzaID: 99}).Error
	assert.Error(t, err)
}

func TestDatabaseCascadesJoinRows(t *testing.T) {
	db := openTestDB(t)

	restaurant := models.Restaurant{Name: "Cascade", Address: "1 Road"}
	require.NoError(t, db.Create(&restaurant).Error)
	pizza := models.Pizza{Name: "Plain", Ingredients: "Dough"}
	require.NoError(t, db.Create(&pizza).Error)
	require.NoError(t, db.Create(&models.RestaurantPizza{Price: 5, RestaurantID: restaurant.ID, PizzaID: pizza.ID}).Error)

	// Plain delete without any application-level cleanup
	require.NoError(t, db.Delete(&models.Restaurant{}, restaurant.ID).Error)

	var count int64
	require.NoError(t, db.Model(&models.RestaurantPizza{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckConstraintRejectsPriceWrittenAroundHooks(t *testing.T) {
	db := openTestDB(t)

	restaurant := models.Restaurant{Name: "Check", Address: "2 Road"}
	require.NoError(t, db.Create(&restaurant).Error)
	pizza := models.Pizza{Name: "Plain", Ingredients: "Dough"}
	require.NoError(t, db.Create(&pizza).Error)

	err := db.Exec("INSERT INTO restaurant_pizzas (price, pizza_id, restaurant_id) VALUES (?, ?, ?)", 31, pizza.ID, restaurant.ID).Error
	assert.Error(t, err)
}

func TestSeedIfEmptyIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SeedIfEmpty(db))
	require.NoError(t, SeedIfEmpty(db))

	var restaurants, pizzas, prices int64
	db.Model(&models.Restaurant{}).Count(&restaurants)
	db.Model(&models.Pizza{}).Count(&pizzas)
	db.Model(&models.RestaurantPizza{}).Count(&prices)
	assert.Equal(t, int64(len(seedRestaurants)), restaurants)
	assert.Equal(t, int64(len(seedPizzas)), pizzas)
	assert.Equal(t, int64(len(seedPrices)), prices)
}

func TestReset(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Seed(db))

	require.NoError(t, Reset(db))

	var count int64
	db.Model(&models.Restaurant{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.RestaurantPizza{}).Count(&count)
	assert.Zero(t, count)
}
