package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/services"
	"github.com/gin-gonic/gin"
)

// RestaurantPizzaController handles menu rows linking restaurants and pizzas
type RestaurantPizzaController interface {
	GetRestaurantPizzaByID(c *gin.Context)
	CreateRestaurantPizza(c *gin.Context)
	// UpdatePrice changes the price of a menu row
	UpdatePrice(c *gin.Context)
	DeleteRestaurantPizza(c *gin.Context)
}

type restaurantPizzaController struct {
	service services.RestaurantPizzaService
}

// NewRestaurantPizzaController creates a new instance of RestaurantPizzaController
func NewRestaurantPizzaController(service services.RestaurantPizzaService) RestaurantPizzaController {
	return &restaurantPizzaController{service: service}
}

type createRestaurantPizzaRequest struct {
	Price        *int `json:"price" binding:"required"`
	PizzaID      uint `json:"pizza_id" binding:"required"`
	RestaurantID uint `json:"restaurant_id" binding:"required"`
}

type updatePriceRequest struct {
	Price *int `json:"price" binding:"required"`
}

// GetRestaurantPizzaByID godoc
// @Summary Get a menu row
// @Description Get a menu row with its restaurant and pizza
// @Tags restaurant_pizzas
// @Produce json
// @Param id path int true "RestaurantPizza ID"
// @Success 200 {object} models.RestaurantPizzaView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/restaurant_pizzas/{id} [get]
func (c *restaurantPizzaController) GetRestaurantPizzaByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	rp, err := c.service.GetRestaurantPizzaByID(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rp.Export())
}

// CreateRestaurantPizza godoc
// @Summary Put a pizza on a restaurant's menu
// @Description Price must be between 1 and 30 inclusive
// @Tags restaurant_pizzas
// @Accept json
// @Produce json
// @Param restaurant_pizza body createRestaurantPizzaRequest true "Menu row"
// @Success 201 {object} models.RestaurantPizzaView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/restaurant_pizzas [post]
func (c *restaurantPizzaController) CreateRestaurantPizza(ctx *gin.Context) {
	var req createRestaurantPizzaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithBindError(ctx, err)
		return
	}

	rp, err := c.service.CreateRestaurantPizza(ctx.Request.Context(), req.RestaurantID, req.PizzaID, *req.Price)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, rp.Export())
}

// UpdatePrice godoc
// @Summary Change a menu row's price
// @Description An out of range price is rejected and the stored price is kept
// @Tags restaurant_pizzas
// @Accept json
// @Produce json
// @Param id path int true "RestaurantPizza ID"
// @Param price body updatePriceRequest true "New price"
// @Success 200 {object} models.RestaurantPizzaView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/restaurant_pizzas/{id} [patch]
func (c *restaurantPizzaController) UpdatePrice(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req updatePriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithBindError(ctx, err)
		return
	}

	rp, err := c.service.UpdatePrice(ctx.Request.Context(), id, *req.Price)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rp.Export())
}

// DeleteRestaurantPizza godoc
// @Summary Remove a pizza from a restaurant's menu
// @Tags restaurant_pizzas
// @Param id path int true "RestaurantPizza ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/restaurant_pizzas/{id} [delete]
func (c *restaurantPizzaController) DeleteRestaurantPizza(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.service.DeleteRestaurantPizza(ctx.Request.Context(), id); err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
