package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/services"
	"github.com/gin-gonic/gin"
)

// RestaurantController handles HTTP requests related to restaurants
type RestaurantController interface {
	// GetAllRestaurants lists restaurants without their menus
	GetAllRestaurants(c *gin.Context)
	// GetRestaurantByID returns a restaurant with its menu rows
	GetRestaurantByID(c *gin.Context)
	// GetRestaurantPizzas lists the pizzas a restaurant sells
	GetRestaurantPizzas(c *gin.Context)
	CreateRestaurant(c *gin.Context)
	UpdateRestaurant(c *gin.Context)
	// DeleteRestaurant removes a restaurant and its menu rows
	DeleteRestaurant(c *gin.Context)
	// AddPizza puts an existing pizza on the restaurant's menu
	AddPizza(c *gin.Context)
}

type restaurantController struct {
	service services.RestaurantService
}

// NewRestaurantController creates a new instance of RestaurantController
func NewRestaurantController(service services.RestaurantService) RestaurantController {
	return &restaurantController{service: service}
}

type createRestaurantRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
}

type updateRestaurantRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1"`
	Address *string `json:"address" binding:"omitempty,min=1"`
}

type addPizzaRequest struct {
	PizzaID uint `json:"pizza_id" binding:"required"`
	Price   *int `json:"price" binding:"required"`
}

// GetAllRestaurants godoc
// @Summary Get all restaurants
// @Description List restaurants with their own attributes only
// @Tags restaurants
// @Produce json
// @Success 200 {array} models.RestaurantView
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/restaurants [get]
func (c *restaurantController) GetAllRestaurants(ctx *gin.Context) {
	restaurants, err := c.service.GetAllRestaurants(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	views := make([]models.RestaurantView, 0, len(restaurants))
	for i := range restaurants {
		views = append(views, restaurants[i].Summary())
	}
	ctx.JSON(http.StatusOK, views)
}

// GetRestaurantByID godoc
// @Summary Get restaurant by ID
// @Description Get a restaurant with its menu rows and their pizzas
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} models.RestaurantView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/restaurants/{id} [get]
func (c *restaurantController) GetRestaurantByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	restaurant, err := c.service.GetRestaurantByID(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, restaurant.Export())
}

// GetRestaurantPizzas godoc
// @Summary List a restaurant's pizzas
// @Description Pizzas sold by the restaurant, one entry per menu row
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {array} models.PizzaView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/restaurants/{id}/pizzas [get]
func (c *restaurantController) GetRestaurantPizzas(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	pizzas, err := c.service.Pizzas(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	views := make([]models.PizzaView, 0, len(pizzas))
	for i := range pizzas {
		views = append(views, pizzas[i].Summary())
	}
	ctx.JSON(http.StatusOK, views)
}

// CreateRestaurant godoc
// @Summary Create a restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Param restaurant body createRestaurantRequest true "Restaurant"
// @Success 201 {object} models.RestaurantView
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/restaurants [post]
func (c *restaurantController) CreateRestaurant(ctx *gin.Context) {
	var req createRestaurantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithBindError(ctx, err)
		return
	}

	restaurant, err := c.service.CreateRestaurant(ctx.Request.Context(), models.Restaurant{Name: req.Name, Address: req.Address})
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, restaurant.Summary())
}

// UpdateRestaurant godoc
// @Summary Update a restaurant
// @Description Change the name and/or address of a restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Param id path int true "Restaurant ID"
// @Param restaurant body updateRestaurantRequest true "Fields to change"
// @Success 200 {object} models.RestaurantView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/restaurants/{id} [patch]
func (c *restaurantController) UpdateRestaurant(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req updateRestaurantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithBindError(ctx, err)
		return
	}

	existing, err := c.service.GetRestaurantByID(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Address != nil {
		existing.Address = *req.Address
	}

	updated, err := c.service.UpdateRestaurant(ctx.Request.Context(), existing)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated.Summary())
}

// DeleteRestaurant godoc
// @Summary Delete a restaurant
// @Description Delete a restaurant together with all of its menu rows
// @Tags restaurants
// @Param id path int true "Restaurant ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/restaurants/{id} [delete]
func (c *restaurantController) DeleteRestaurant(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.service.DeleteRestaurant(ctx.Request.Context(), id); err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AddPizza godoc
// @Summary Add a pizza to a restaurant's menu
// @Tags restaurants
// @Accept json
// @Produce json
// @Param id path int true "Restaurant ID"
// @Param item body addPizzaRequest true "Pizza and price"
// @Success 201 {object} models.RestaurantPizzaView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/restaurants/{id}/pizzas [post]
func (c *restaurantController) AddPizza(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req addPizzaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithBindError(ctx, err)
		return
	}

	rp, err := c.service.AddPizza(ctx.Request.Context(), id, req.PizzaID, *req.Price)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, rp.Export())
}
