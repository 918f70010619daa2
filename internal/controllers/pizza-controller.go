package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/services"
	"github.com/gin-gonic/gin"
)

// PizzaController handles HTTP requests related to pizzas
type PizzaController interface {
	// GetAllPizzas retrieves all pizzas
	GetAllPizzas(c *gin.Context)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(c *gin.Context)
	// GetPizzaRestaurants lists the restaurants selling a pizza
	GetPizzaRestaurants(c *gin.Context)
	// CreatePizza creates a new pizza
	CreatePizza(c *gin.Context)
	// UpdatePizza updates an existing pizza
	UpdatePizza(c *gin.Context)
	// DeletePizza deletes a pizza by its ID
	DeletePizza(c *gin.Context)
	// AddRestaurant puts the pizza on an existing restaurant's menu
	AddRestaurant(c *gin.Context)
}

type pizzaController struct {
	service services.PizzaService
}

// NewPizzaController creates a new instance of PizzaController
func NewPizzaController(service services.PizzaService) PizzaController {
	return &pizzaController{service: service}
}

type createPizzaRequest struct {
	Name        string `json:"name" binding:"required"`
	Ingredients string `json:"ingredients" binding:"required"`
}

type updatePizzaRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Ingredients *string `json:"ingredients" binding:"omitempty,min=1"`
}

type addRestaurantRequest struct {
	RestaurantID uint `json:"restaurant_id" binding:"required"`
	Price        *int `json:"price" binding:"required"`
}

// GetAllPizzas godoc
// @Summary Get all pizzas
// @Description Get a list of all pizzas
// @Tags pizzas
// @Produce json
// @Success 200 {array} models.PizzaView
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/pizzas [get]
func (c *pizzaController) GetAllPizzas(ctx *gin.Context) {
	pizzas, err := c.service.GetAllPizzas(ctx.Request.Context())
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

// GetPizzaByID godoc
// @Summary Get pizza by ID
// @Description Get a single pizza with the restaurants selling it
// @Tags pizzas
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 200 {object} models.PizzaView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/pizzas/{id} [get]
func (c *pizzaController) GetPizzaByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	pizza, err := c.service.GetPizzaByID(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pizza.Export())
}

// GetPizzaRestaurants godoc
// @Summary List restaurants selling a pizza
// @Tags pizzas
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 200 {array} models.RestaurantView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/pizzas/{id}/restaurants [get]
func (c *pizzaController) GetPizzaRestaurants(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	restaurants, err := c.service.Restaurants(ctx.Request.Context(), id)
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

// CreatePizza godoc
// @Summary Create a new pizza
// @Description Create a new pizza with the input payload
// @Tags pizzas
// @Accept json
// @Produce json
// @Param pizza body createPizzaRequest true "Pizza"
// @Success 201 {object} models.PizzaView
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas [post]
func (c *pizzaController) CreatePizza(ctx *gin.Context) {
	var req createPizzaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithBindError(ctx, err)
		return
	}

	pizza, err := c.service.CreatePizza(ctx.Request.Context(), models.Pizza{Name: req.Name, Ingredients: req.Ingredients})
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, pizza.Summary())
}

// UpdatePizza godoc
// @Summary Update a pizza
// @Description Change the name and/or ingredients of a pizza
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path int true "Pizza ID"
// @Param pizza body updatePizzaRequest true "Fields to change"
// @Success 200 {object} models.PizzaView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas/{id} [patch]
func (c *pizzaController) UpdatePizza(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req updatePizzaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithBindError(ctx, err)
		return
	}

	existing, err := c.service.GetPizzaByID(ctx.Request.Context(), id)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Ingredients != nil {
		existing.Ingredients = *req.Ingredients
	}

	updated, err := c.service.UpdatePizza(ctx.Request.Context(), existing)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated.Summary())
}

// DeletePizza godoc
// @Summary Delete a pizza
// @Description Delete a pizza and remove it from every menu
// @Tags pizzas
// @Param id path int true "Pizza ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas/{id} [delete]
func (c *pizzaController) DeletePizza(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.service.DeletePizza(ctx.Request.Context(), id); err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AddRestaurant godoc
// @Summary Put a pizza on a restaurant's menu
// @Tags pizzas
// @Accept json
// @Produce json
// @Param id path int true "Pizza ID"
// @Param item body addRestaurantRequest true "Restaurant and price"
// @Success 201 {object} models.RestaurantPizzaView
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/pizzas/{id}/restaurants [post]
func (c *pizzaController) AddRestaurant(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req addRestaurantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithBindError(ctx, err)
		return
	}

	rp, err := c.service.AddRestaurant(ctx.Request.Context(), id, req.RestaurantID, *req.Price)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, rp.Export())
}
