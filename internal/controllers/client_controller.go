package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/middleware"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ClientController lets an administrator manage the OAuth clients issued on their behalf
type ClientController struct {
	clientService services.ClientService
}

func NewClientController(clientService services.ClientService) *ClientController {
	return &ClientController{clientService: clientService}
}

type createClientRequest struct {
	Name   string `json:"name" binding:"required"`
	Scopes string `json:"scopes"`
}

type clientResponse struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Scopes   string `json:"scopes"`
}

func newClientResponse(client *models.OAuthClient) clientResponse {
	return clientResponse{ClientID: client.ID, Name: client.Name, Scopes: client.Scopes}
}

// CreateClient godoc
// @Summary Create OAuth2 client
// @Description Register a client_credentials client owned by the caller. The secret is only returned here.
// @Tags OAuth2 Clients
// @Accept json
// @Produce json
// @Param client body createClientRequest true "Client details"
// @Success 201 {object} map[string]interface{} "Client created with client_id and client_secret"
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/clients [post]
func (cc *ClientController) CreateClient(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	userID := c.GetUint(middleware.ContextUserID)
	client, secret, err := cc.clientService.RegisterClient(c.Request.Context(), req.Name, userID, req.Scopes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	log.WithFields(logrus.Fields{"client_id": client.ID, "user_id": userID}).Info("OAuth client registered")
	c.JSON(http.StatusCreated, gin.H{
		"client_id":     client.ID,
		"client_secret": secret,
		"name":          client.Name,
		"scopes":        client.Scopes,
	})
}

// ListClients godoc
// @Summary List OAuth2 clients
// @Description Get all OAuth2 clients owned by the authenticated user
// @Tags OAuth2 Clients
// @Produce json
// @Success 200 {array} clientResponse
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/clients [get]
func (cc *ClientController) ListClients(c *gin.Context) {
	clients, err := cc.clientService.ListClients(c.Request.Context(), c.GetUint(middleware.ContextUserID))
	if err != nil {
		respondWithError(c, err)
		return
	}

	response := make([]clientResponse, 0, len(clients))
	for i := range clients {
		response = append(response, newClientResponse(&clients[i]))
	}
	c.JSON(http.StatusOK, response)
}

// DeleteClient godoc
// @Summary Delete OAuth2 client
// @Description Delete an OAuth2 client owned by the authenticated user
// @Tags OAuth2 Clients
// @Param id path string true "Client ID"
// @Success 204 "Client deleted successfully"
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/clients/{id} [delete]
func (cc *ClientController) DeleteClient(c *gin.Context) {
	if err := cc.clientService.DeleteClient(c.Request.Context(), c.Param("id"), c.GetUint(middleware.ContextUserID)); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
