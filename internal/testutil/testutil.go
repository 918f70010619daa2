package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/database"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB opens a migrated SQLite database in the test's temp dir.
// A file is used instead of :memory: so every pooled connection sees the same data.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := database.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.sqlite")}
	db, err := gorm.Open(sqlite.Open(cfg.DSN()), database.GormConfig())
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateRestaurant inserts a restaurant fixture
func CreateRestaurant(t *testing.T, db *gorm.DB, name, address string) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{Name: name, Address: address}
	require.NoError(t, db.Create(&restaurant).Error)
	return restaurant
}

// CreatePizza inserts a pizza fixture
func CreatePizza(t *testing.T, db *gorm.DB, name, ingredients string) models.Pizza {
	t.Helper()
	pizza := models.Pizza{Name: name, Ingredients: ingredients}
	require.NoError(t, db.Create(&pizza).Error)
	return pizza
}

// CreateRestaurantPizza links a restaurant and a pizza at the given price
func CreateRestaurantPizza(t *testing.T, db *gorm.DB, restaurantID, pizzaID uint, price int) models.RestaurantPizza {
	t.Helper()
	rp, err := models.NewRestaurantPizza(restaurantID, pizzaID, price)
	require.NoError(t, err)
	require.NoError(t, db.Create(rp).Error)
	return *rp
}

// TB is the part of testing.TB that request helpers need
type TB interface {
	require.TestingT
	Helper()
}

// PerformRequest sends body as JSON (when non-nil) through handler and records the response.
// A body that cannot be encoded fails the test.
func PerformRequest(t TB, handler http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "encoding request body")
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// DecodeJSON decodes the response body into v
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
