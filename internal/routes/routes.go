package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/handlers"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// A doctor's published availability is browsable without logging in
		public.GET("/schedules/doctor/:doctorId", scheduleHandler.GetDoctorSchedules)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User directory
		userRoutes := private.Group("/users")
		{
			// Doctor directory - accessible by all authenticated users
			userRoutes.GET("/doctors", userHandler.GetDoctors)

			// Patient list for a doctor's dashboard
			userRoutes.GET("/doctor-patients", userHandler.GetDoctorPatients)
		}

		// Schedule (slot catalog) management - doctors publish their own
		// availability, admins may act on a doctor's behalf
		scheduleRoutes := private.Group("/schedules")
		{
			scheduleRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), scheduleHandler.PublishSchedule)
			scheduleRoutes.DELETE("/slot", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), scheduleHandler.DeleteScheduleSlot)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			// Patients book for themselves; doctors/admins may book on behalf of a patient
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleDoctor, models.RoleAdmin), appointmentHandler.BookAppointment)

			// Live queue and wait estimate for a doctor's dashboard
			appointmentRoutes.GET("/queue/:doctorId", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), appointmentHandler.GetQueue)
			appointmentRoutes.GET("/queue/:doctorId/wait-time", appointmentHandler.GetWaitTime)

			// Lifecycle updates (ownership enforced in the handlers)
			appointmentRoutes.PATCH("/:id/status", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), appointmentHandler.UpdateAppointmentStatus)
			appointmentRoutes.PATCH("/:id/remarks", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), appointmentHandler.SetRemarks)

			// History views
			appointmentRoutes.GET("/patient", appointmentHandler.GetPatientAppointments)
			appointmentRoutes.GET("/doctor", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), appointmentHandler.GetDoctorAppointments)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
