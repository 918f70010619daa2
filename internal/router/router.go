package router

import (
	"net/http"
	"time"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/auth"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/config"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/controllers"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/metrics"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/middleware"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/services"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// NewRouter builds the HTTP API on top of an open, migrated database
func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	restaurantService := services.NewRestaurantService(db)
	pizzaService := services.NewPizzaService(db)
	restaurantPizzaService := services.NewRestaurantPizzaService(db)

	restaurantController := controllers.NewRestaurantController(restaurantService)
	pizzaController := controllers.NewPizzaController(pizzaService)
	restaurantPizzaController := controllers.NewRestaurantPizzaController(restaurantPizzaService)
	clientController := controllers.NewClientController(services.NewClientService(db))

	oauthService := auth.NewOAuthService(db, cfg.JWTSecret)
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		metrics.Middleware(),
		middleware.CORS(cfg.AllowedOrigins),
	)

	router.GET("/health", healthCheckHandler(db))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.POST("/oauth/token", limiter.Middleware(), oauthService.HandleToken)

	v1 := router.Group("/api/v1")
	v1.Use(limiter.Middleware())
	{
		publicApi := v1.Group("/public")
		{
			publicApi.GET("/restaurants", restaurantController.GetAllRestaurants)
			publicApi.GET("/restaurants/:id", restaurantController.GetRestaurantByID)
			publicApi.GET("/restaurants/:id/pizzas", restaurantController.GetRestaurantPizzas)
			publicApi.GET("/pizzas", pizzaController.GetAllPizzas)
			publicApi.GET("/pizzas/:id", pizzaController.GetPizzaByID)
			publicApi.GET("/pizzas/:id/restaurants", pizzaController.GetPizzaRestaurants)
			publicApi.GET("/restaurant_pizzas/:id", restaurantPizzaController.GetRestaurantPizzaByID)
		}

		// Protected routes require a Bearer access token from /oauth/token
		protectedApi := v1.Group("/protected")
		protectedApi.Use(middleware.OAuth2Auth([]byte(cfg.JWTSecret)))
		{
			adminApi := protectedApi.Group("/admin")
			adminApi.Use(middleware.RequireRole("admin"))
			{
				adminApi.POST("/restaurants", restaurantController.CreateRestaurant)
				adminApi.PATCH("/restaurants/:id", restaurantController.UpdateRestaurant)
				adminApi.DELETE("/restaurants/:id", restaurantController.DeleteRestaurant)
				adminApi.POST("/restaurants/:id/pizzas", restaurantController.AddPizza)

				adminApi.POST("/pizzas", pizzaController.CreatePizza)
				adminApi.PATCH("/pizzas/:id", pizzaController.UpdatePizza)
				adminApi.DELETE("/pizzas/:id", pizzaController.DeletePizza)
				adminApi.POST("/pizzas/:id/restaurants", pizzaController.AddRestaurant)

				adminApi.POST("/restaurant_pizzas", restaurantPizzaController.CreateRestaurantPizza)
				adminApi.PATCH("/restaurant_pizzas/:id", restaurantPizzaController.UpdatePrice)
				adminApi.DELETE("/restaurant_pizzas/:id", restaurantPizzaController.DeleteRestaurantPizza)

				adminApi.POST("/clients", clientController.CreateClient)
				adminApi.GET("/clients", clientController.ListClients)
				adminApi.DELETE("/clients/:id", clientController.DeleteClient)
			}
		}
	}

	return router
}

// healthCheckHandler godoc
// @Summary Health check
// @Description Check if the service and its database are reachable
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "gin-pizza-restaurants",
		})
	}
}
