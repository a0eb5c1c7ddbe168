package app

import (
	authHandler "carrental-service/internal/handlers/auth"
	clientHandler "carrental-service/internal/handlers/client"
	reportHandler "carrental-service/internal/handlers/report"
	reservationHandler "carrental-service/internal/handlers/reservation"
	tariffHandler "carrental-service/internal/handlers/tariff"
	vehicleHandler "carrental-service/internal/handlers/vehicle"
	wsHandler "carrental-service/internal/handlers/ws"
	"carrental-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler        *authHandler.AuthHandler
	ClientHandler      *clientHandler.ClientHandler
	VehicleHandler     *vehicleHandler.VehicleHandler
	TariffHandler      *tariffHandler.TariffHandler
	ReservationHandler *reservationHandler.ReservationHandler
	ReportHandler      *reportHandler.ReportHandler
	WSHandler          *wsHandler.WSHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ==================== Public ====================
	// The booking page: browse types, search availability, submit a request.
	public := api.Group("/public")
	{
		public.GET("/vehicle-types", h.VehicleHandler.ListTypes)
		public.GET("/vehicles/search", h.VehicleHandler.Search)
		public.GET("/vehicles/:id", h.VehicleHandler.Get)
		public.GET("/vehicles/:id/image", h.VehicleHandler.PrimaryImage)
		public.POST("/reservation-requests", h.ReservationHandler.CreatePublic)
	}

	// ==================== Auth ====================
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.AuthHandler.Login)

		authed := auth.Group("")
		authed.Use(h.AuthMiddleware.Auth())
		{
			authed.POST("/logout", h.AuthHandler.Logout)
			authed.GET("/me", h.AuthHandler.Me)
		}
	}

	// ==================== Staff accounts (admin) ====================
	users := api.Group("/users")
	users.Use(h.AuthMiddleware.AdminOnly()...)
	{
		users.POST("", h.AuthHandler.Register)
		users.GET("", h.AuthHandler.ListUsers)
		users.PUT("/:id/active", h.AuthHandler.SetActive)
	}

	// ==================== Fleet ====================
	vehicles := api.Group("/vehicles")
	vehicles.Use(h.AuthMiddleware.Auth())
	{
		vehicles.GET("", h.VehicleHandler.List)
		vehicles.POST("", h.VehicleHandler.Create)
		vehicles.GET("/:id", h.VehicleHandler.Get)
		vehicles.PUT("/:id", h.VehicleHandler.Update)
		vehicles.DELETE("/:id", h.VehicleHandler.Delete)

		vehicles.POST("/:id/images", h.VehicleHandler.AddImage)
		vehicles.GET("/:id/images", h.VehicleHandler.ListImages)

		vehicles.POST("/:id/maintenance", h.VehicleHandler.ScheduleMaintenance)
		vehicles.GET("/:id/maintenance", h.VehicleHandler.VehicleMaintenance)
		vehicles.GET("/:id/maintenance/pending", h.VehicleHandler.PendingMaintenance)
	}

	vehicleTypes := api.Group("/vehicle-types")
	vehicleTypes.Use(h.AuthMiddleware.Auth())
	{
		vehicleTypes.GET("", h.VehicleHandler.ListTypes)
		vehicleTypes.POST("", h.VehicleHandler.CreateType)
		vehicleTypes.DELETE("/:id", h.VehicleHandler.DeleteType)
	}

	maintenance := api.Group("/maintenance")
	maintenance.Use(h.AuthMiddleware.Auth())
	{
		maintenance.GET("", h.VehicleHandler.ListMaintenance)
		maintenance.POST("/:id/start", h.VehicleHandler.StartMaintenance)
		maintenance.POST("/:id/complete", h.VehicleHandler.CompleteMaintenance)
		maintenance.POST("/:id/cancel", h.VehicleHandler.CancelMaintenance)
	}

	// ==================== Tariffs ====================
	tariffs := api.Group("/tariffs")
	tariffs.Use(h.AuthMiddleware.Auth())
	{
		tariffs.GET("", h.TariffHandler.List)
		tariffs.POST("", h.TariffHandler.Create)
		tariffs.GET("/:id", h.TariffHandler.Get)
		tariffs.DELETE("/:id", h.TariffHandler.Delete)
	}

	// ==================== Clients ====================
	clients := api.Group("/clients")
	clients.Use(h.AuthMiddleware.Auth())
	{
		clients.GET("", h.ClientHandler.List)
		clients.POST("", h.ClientHandler.Register)
		clients.GET("/:id", h.ClientHandler.Get)
		clients.PUT("/:id", h.ClientHandler.Update)
		clients.DELETE("/:id", h.ClientHandler.Delete)
		clients.GET("/:id/reservations", h.ClientHandler.History)
	}

	// ==================== Reservations ====================
	reservations := api.Group("/reservations")
	reservations.Use(h.AuthMiddleware.Auth())
	{
		reservations.GET("", h.ReservationHandler.ListActive)
		reservations.POST("", h.ReservationHandler.Create)
		reservations.GET("/:id", h.ReservationHandler.Get)
		reservations.POST("/:id/confirm", h.ReservationHandler.Confirm)
		reservations.PUT("/:id/pickup", h.ReservationHandler.Pickup)
		reservations.PUT("/:id/return", h.ReservationHandler.Return)
		reservations.DELETE("/:id", h.ReservationHandler.Cancel)
		reservations.POST("/:id/no-show", h.ReservationHandler.MarkNoShow)
		reservations.POST("/:id/payments", h.ReservationHandler.RecordPayment)
		reservations.GET("/:id/payments", h.ReservationHandler.ListPayments)
	}

	// ==================== Reports ====================
	reports := api.Group("/reports")
	reports.Use(h.AuthMiddleware.Auth())
	{
		reports.GET("/summary", h.ReportHandler.Summary)
		reports.GET("/financial", h.ReportHandler.Financial)
		reports.GET("/dashboard", h.ReportHandler.Dashboard)
	}

	// ==================== WebSocket ====================
	r.GET("/ws", h.AuthMiddleware.Auth(), h.WSHandler.HandleConnection)
	api.GET("/ws/stats", append(h.AuthMiddleware.AdminOnly(), h.WSHandler.Stats)...)
}
