package client

import (
	"net/http"
	"strconv"

	"carrental-service/internal/domain/client"
	"carrental-service/internal/pkg/response"
	service "carrental-service/internal/service/client"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientService *service.ClientService
}

func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid client ID", err)
		return 0, false
	}
	return id, true
}

func (h *ClientHandler) Register(c *gin.Context) {
	var req client.RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	cl, err := h.clientService.Register(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to register client", err)
		return
	}
	response.Success(c, http.StatusCreated, "client registered", cl)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	cl, err := h.clientService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "client not found", err)
		return
	}
	response.Success(c, http.StatusOK, "client", cl)
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clientService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list clients", err)
		return
	}
	response.Success(c, http.StatusOK, "clients", clients)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req client.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	cl, err := h.clientService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update client", err)
		return
	}
	response.Success(c, http.StatusOK, "client updated", cl)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete client", err)
		return
	}
	response.Success(c, http.StatusOK, "client deleted", nil)
}

// History lists every reservation the client ever made.
func (h *ClientHandler) History(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	reservations, err := h.clientService.History(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to load client history", err)
		return
	}
	response.Success(c, http.StatusOK, "client reservations", reservations)
}
