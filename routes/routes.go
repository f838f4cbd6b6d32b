package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"medibook/handlers"
	"medibook/middleware"
)

// HandlerBundle carries the assembled handlers for route registration.
type HandlerBundle struct {
	Patient *handlers.PatientHandler
	Doctor  *handlers.DoctorHandler
	Admin   *handlers.AdminHandler
	Booking *handlers.BookingHandler
}

// RegisterRoutes wires every endpoint group onto the engine.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPublicRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm MediBook"})
	})
}

// RegisterPublicRoutes registers unauthenticated discovery endpoints.
func RegisterPublicRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		api.GET("", hb.Doctor.ListDoctorsHandler)
		api.GET("/:id", hb.Doctor.GetDoctorHandler)
		api.GET("/:id/slots", hb.Booking.ListSlotsHandler)
	}
}

// RegisterPatientRoutes registers the patient surface.
func RegisterPatientRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/user")
	{
		api.POST("/register", hb.Patient.RegisterHandler)
		api.POST("/login", hb.Patient.SignInHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthPatientMiddleware())
		api.POST("/logout", handlers.SignOutHandler)
		api.GET("/profile", hb.Patient.GetProfileHandler)
		api.PUT("/profile", hb.Patient.UpdateProfileHandler)
		api.GET("/slots/:doctorId", hb.Booking.ListSlotsHandler)
		api.POST("/book-appointment", hb.Booking.BookAppointmentHandler)
		api.GET("/appointments", hb.Booking.PatientAppointmentsHandler)
		api.POST("/cancel-appointment", hb.Booking.CancelAppointmentHandler)
	}
}

// RegisterDoctorRoutes registers the doctor surface.
func RegisterDoctorRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/doctor")
	{
		api.POST("/login", hb.Doctor.SignInHandler)

		api.Use(middleware.JWTAuthDoctorMiddleware())
		api.POST("/logout", handlers.SignOutHandler)
		api.GET("/appointments", hb.Booking.DoctorAppointmentsHandler)
		api.POST("/complete-appointment", hb.Booking.CompleteAppointmentHandler)
		api.POST("/cancel-appointment", hb.Booking.CancelAppointmentHandler)
		api.POST("/change-availability", hb.Doctor.ChangeAvailabilityHandler)
		api.GET("/dashboard", hb.Doctor.DashboardHandler)
	}
}

// RegisterAdminRoutes registers the operator surface.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.POST("/login", hb.Admin.SignInHandler)

		api.Use(middleware.JWTAuthAdminMiddleware())
		api.POST("/add-doctor", hb.Admin.AddDoctorHandler)
		api.GET("/doctors", hb.Admin.ListDoctorsHandler)
		api.POST("/change-availability", hb.Admin.ChangeDoctorAvailabilityHandler)
		api.GET("/appointments", hb.Booking.AllAppointmentsHandler)
		api.POST("/mark-paid", hb.Booking.MarkPaidHandler)
		api.POST("/cancel-appointment", hb.Booking.CancelAppointmentHandler)
		api.GET("/dashboard", hb.Admin.DashboardHandler)
	}
}
