package reservation

import (
	"net/http"
	"strconv"

	"carrental-service/internal/domain/reservation"
	"carrental-service/internal/middleware"
	"carrental-service/internal/pkg/response"
	service "carrental-service/internal/service/reservation"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	reservationService *service.ReservationService
}

func NewReservationHandler(reservationService *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid reservation ID", err)
		return 0, false
	}
	return id, true
}

// Create books a vehicle on behalf of a client (staff flow).
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reservation.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	res, err := h.reservationService.Create(c.Request.Context(), &req, middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, "failed to create reservation", err)
		return
	}
	response.Success(c, http.StatusCreated, "reservation created", res)
}

// CreatePublic accepts the unauthenticated web booking form.
func (h *ReservationHandler) CreatePublic(c *gin.Context) {
	var req reservation.PublicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	res, err := h.reservationService.CreatePublicRequest(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to submit reservation request", err)
		return
	}
	response.Success(c, http.StatusCreated, "reservation request received", res)
}

func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.reservationService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "reservation not found", err)
		return
	}
	response.Success(c, http.StatusOK, "reservation", res)
}

func (h *ReservationHandler) ListActive(c *gin.Context) {
	list, err := h.reservationService.ListActive(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list reservations", err)
		return
	}
	response.Success(c, http.StatusOK, "reservations", list)
}

// Confirm approves a pending request, optionally assigning the vehicle.
func (h *ReservationHandler) Confirm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		VehicleID *int64 `json:"vehicle_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.ValidationError(c, "invalid request", err)
		return
	}

	res, err := h.reservationService.Confirm(c.Request.Context(), id, req.VehicleID)
	if err != nil {
		response.FromError(c, "failed to confirm reservation", err)
		return
	}
	response.Success(c, http.StatusOK, "reservation confirmed", res)
}

func (h *ReservationHandler) Pickup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.reservationService.Pickup(c.Request.Context(), id, middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, "failed to hand over vehicle", err)
		return
	}
	response.Success(c, http.StatusOK, "vehicle handed over", res)
}

func (h *ReservationHandler) Return(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Mileage int `json:"mileage" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.ValidationError(c, "invalid request", err)
		return
	}
	// Desk clients send the odometer reading as a query parameter instead.
	if q := c.Query("final_mileage"); req.Mileage == 0 && q != "" {
		m, err := strconv.Atoi(q)
		if err != nil || m < 0 {
			response.Error(c, http.StatusBadRequest, "invalid final mileage", err)
			return
		}
		req.Mileage = m
	}

	result, err := h.reservationService.Return(c.Request.Context(), id, req.Mileage, middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, "failed to close rental", err)
		return
	}
	response.Success(c, http.StatusOK, "vehicle returned", result)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.reservationService.Cancel(c.Request.Context(), id, middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, "failed to cancel reservation", err)
		return
	}
	response.Success(c, http.StatusOK, "reservation cancelled", res)
}

func (h *ReservationHandler) MarkNoShow(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.reservationService.MarkNoShow(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to mark no-show", err)
		return
	}
	response.Success(c, http.StatusOK, "reservation marked as no-show", res)
}

// RecordPayment stores a payment received against the reservation.
func (h *ReservationHandler) RecordPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req reservation.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	p, err := h.reservationService.RecordPayment(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to record payment", err)
		return
	}
	response.Success(c, http.StatusCreated, "payment recorded", p)
}

// ListPayments lists payments recorded against the reservation.
func (h *ReservationHandler) ListPayments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	payments, err := h.reservationService.ListPayments(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to list payments", err)
		return
	}
	response.Success(c, http.StatusOK, "payments", payments)
}
