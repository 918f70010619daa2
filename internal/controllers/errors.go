package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// respondWithError maps service and domain errors to an APIError response
func respondWithError(ctx *gin.Context, err error) {
	var rangeErr *models.OutOfRangeError

	switch {
	case errors.As(err, &rangeErr):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, rangeErr.Error(), map[string]interface{}{
			"errors": []string{"validation errors"},
			"field":  rangeErr.Field,
			"value":  rangeErr.Value,
			"min":    rangeErr.Min,
			"max":    rangeErr.Max,
		}))
	case errors.Is(err, models.ErrValidation):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error(), map[string]interface{}{
			"errors": []string{"validation errors"},
		}))
	case errors.Is(err, services.ErrRestaurantNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrRestaurantNotFound, "Restaurant not found"))
	case errors.Is(err, services.ErrPizzaNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrPizzaNotFound, "Pizza not found"))
	case errors.Is(err, services.ErrRestaurantPizzaNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrRestaurantPizzaNotFound, "Restaurant pizza not found"))
	case errors.Is(err, services.ErrReferentialIntegrity):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "Referenced restaurant or pizza does not exist"))
	case errors.Is(err, services.ErrClientNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "Client not found"))
	case errors.Is(err, services.ErrRestaurantNameTaken):
		ctx.JSON(http.StatusConflict, models.NewAPIError(models.ErrRestaurantNameTaken, "Restaurant name already exists"))
	default:
		log.WithError(err).WithField("path", ctx.FullPath()).Error("Unhandled error")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Internal server error"))
	}
}

// respondWithBindError reports a malformed or incomplete request body
func respondWithBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body", map[string]interface{}{
		"errors": []string{"validation errors"},
		"reason": err.Error(),
	}))
}

// pathID parses a positive numeric path parameter, writing a 400 when it is not one
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid "+name+" format"))
		return 0, false
	}
	return uint(id), true
}
