package vehicle

import (
	"net/http"
	"path/filepath"
	"strconv"

	"carrental-service/internal/domain/maintenance"
	"carrental-service/internal/domain/vehicle"
	"carrental-service/internal/pkg/response"
	service "carrental-service/internal/service/vehicle"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	vehicleService *service.VehicleService
	imageDir       string
}

func NewVehicleHandler(vehicleService *service.VehicleService, imageDir string) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService, imageDir: imageDir}
}

func pathInt64(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid "+label, err)
		return 0, false
	}
	return id, true
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var req vehicle.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	v, err := h.vehicleService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to add vehicle", err)
		return
	}
	response.Success(c, http.StatusCreated, "vehicle added", v)
}

func (h *VehicleHandler) Get(c *gin.Context) {
	id, ok := pathInt64(c, "id", "vehicle ID")
	if !ok {
		return
	}

	v, err := h.vehicleService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "vehicle not found", err)
		return
	}
	response.Success(c, http.StatusOK, "vehicle", v)
}

func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.vehicleService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list vehicles", err)
		return
	}
	response.Success(c, http.StatusOK, "vehicles", vehicles)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	id, ok := pathInt64(c, "id", "vehicle ID")
	if !ok {
		return
	}

	var req vehicle.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	v, err := h.vehicleService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update vehicle", err)
		return
	}
	response.Success(c, http.StatusOK, "vehicle updated", v)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	id, ok := pathInt64(c, "id", "vehicle ID")
	if !ok {
		return
	}

	if err := h.vehicleService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete vehicle", err)
		return
	}
	response.Success(c, http.StatusOK, "vehicle deleted", nil)
}

// Search lists vehicles of a type free over a date window. Public: the
// booking page drives it.
func (h *VehicleHandler) Search(c *gin.Context) {
	var req vehicle.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, "invalid search parameters", err)
		return
	}

	vehicles, err := h.vehicleService.Search(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "search failed", err)
		return
	}
	response.Success(c, http.StatusOK, "available vehicles", vehicles)
}

// ========== Images ==========

func (h *VehicleHandler) AddImage(c *gin.Context) {
	id, ok := pathInt64(c, "id", "vehicle ID")
	if !ok {
		return
	}

	var req vehicle.AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	img, err := h.vehicleService.AddImage(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to add image", err)
		return
	}
	response.Success(c, http.StatusCreated, "image added", img)
}

func (h *VehicleHandler) ListImages(c *gin.Context) {
	id, ok := pathInt64(c, "id", "vehicle ID")
	if !ok {
		return
	}

	images, err := h.vehicleService.ListImages(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to list images", err)
		return
	}
	response.Success(c, http.StatusOK, "images", images)
}

// PrimaryImage streams the primary image file for a vehicle. Stored paths are
// relative to the configured image directory.
func (h *VehicleHandler) PrimaryImage(c *gin.Context) {
	id, ok := pathInt64(c, "id", "vehicle ID")
	if !ok {
		return
	}

	img, err := h.vehicleService.PrimaryImage(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "image not found", err)
		return
	}
	c.File(filepath.Join(h.imageDir, filepath.Clean("/"+img.ImagePath)))
}

// ========== Maintenance ==========

func (h *VehicleHandler) ScheduleMaintenance(c *gin.Context) {
	id, ok := pathInt64(c, "id", "vehicle ID")
	if !ok {
		return
	}

	var req maintenance.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	m, err := h.vehicleService.ScheduleMaintenance(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to schedule maintenance", err)
		return
	}
	response.Success(c, http.StatusCreated, "maintenance scheduled", m)
}

func (h *VehicleHandler) StartMaintenance(c *gin.Context) {
	id, ok := pathInt64(c, "id", "maintenance ID")
	if !ok {
		return
	}

	m, err := h.vehicleService.StartMaintenance(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to start maintenance", err)
		return
	}
	response.Success(c, http.StatusOK, "maintenance started", m)
}

func (h *VehicleHandler) CompleteMaintenance(c *gin.Context) {
	id, ok := pathInt64(c, "id", "maintenance ID")
	if !ok {
		return
	}

	m, err := h.vehicleService.CompleteMaintenance(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to complete maintenance", err)
		return
	}
	response.Success(c, http.StatusOK, "maintenance completed", m)
}

func (h *VehicleHandler) CancelMaintenance(c *gin.Context) {
	id, ok := pathInt64(c, "id", "maintenance ID")
	if !ok {
		return
	}

	m, err := h.vehicleService.CancelMaintenance(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to cancel maintenance", err)
		return
	}
	response.Success(c, http.StatusOK, "maintenance cancelled", m)
}

func (h *VehicleHandler) ListMaintenance(c *gin.Context) {
	list, err := h.vehicleService.ListMaintenance(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list maintenance records", err)
		return
	}
	response.Success(c, http.StatusOK, "maintenance records", list)
}

func (h *VehicleHandler) VehicleMaintenance(c *gin.Context) {
	id, ok := pathInt64(c, "id", "vehicle ID")
	if !ok {
		return
	}

	list, err := h.vehicleService.ListVehicleMaintenance(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to list maintenance records", err)
		return
	}
	response.Success(c, http.StatusOK, "maintenance records", list)
}

// PendingMaintenance returns the vehicle's current Scheduled or InProgress
// workshop visit.
func (h *VehicleHandler) PendingMaintenance(c *gin.Context) {
	id, ok := pathInt64(c, "id", "vehicle ID")
	if !ok {
		return
	}

	m, err := h.vehicleService.CurrentPendingMaintenance(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "no pending maintenance", err)
		return
	}
	response.Success(c, http.StatusOK, "pending maintenance", m)
}

// ========== Vehicle types ==========

func (h *VehicleHandler) CreateType(c *gin.Context) {
	var req vehicle.CreateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	t, err := h.vehicleService.CreateType(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create vehicle type", err)
		return
	}
	response.Success(c, http.StatusCreated, "vehicle type created", t)
}

func (h *VehicleHandler) ListTypes(c *gin.Context) {
	types, err := h.vehicleService.ListTypes(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list vehicle types", err)
		return
	}
	response.Success(c, http.StatusOK, "vehicle types", types)
}

func (h *VehicleHandler) DeleteType(c *gin.Context) {
	id, ok := pathInt64(c, "id", "vehicle type ID")
	if !ok {
		return
	}

	if err := h.vehicleService.DeleteType(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete vehicle type", err)
		return
	}
	response.Success(c, http.StatusOK, "vehicle type deleted", nil)
}
