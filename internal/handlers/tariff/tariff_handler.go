package tariff

import (
	"net/http"
	"strconv"

	"carrental-service/internal/domain/tariff"
	"carrental-service/internal/pkg/response"
	service "carrental-service/internal/service/tariff"

	"github.com/gin-gonic/gin"
)

type TariffHandler struct {
	tariffService *service.TariffService
}

func NewTariffHandler(tariffService *service.TariffService) *TariffHandler {
	return &TariffHandler{tariffService: tariffService}
}

func (h *TariffHandler) Create(c *gin.Context) {
	var req tariff.CreateTariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	t, err := h.tariffService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create tariff", err)
		return
	}
	response.Success(c, http.StatusCreated, "tariff created", t)
}

func (h *TariffHandler) List(c *gin.Context) {
	tariffs, err := h.tariffService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list tariffs", err)
		return
	}
	response.Success(c, http.StatusOK, "tariffs", tariffs)
}

func (h *TariffHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid tariff ID", err)
		return
	}

	t, err := h.tariffService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "tariff not found", err)
		return
	}
	response.Success(c, http.StatusOK, "tariff", t)
}

func (h *TariffHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid tariff ID", err)
		return
	}

	if err := h.tariffService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete tariff", err)
		return
	}
	response.Success(c, http.StatusOK, "tariff deleted", nil)
}
