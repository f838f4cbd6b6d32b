// File: medibook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"medibook/config"
	"medibook/database"
	appointmentRepoPkg "medibook/database/repository/appointment"
	doctorRepoPkg "medibook/database/repository/doctor"
	patientRepoPkg "medibook/database/repository/patient"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	adminSvc "medibook/services/admin"
	appointmentSvc "medibook/services/appointment"
	doctorSvc "medibook/services/doctor"
	patientSvc "medibook/services/patient"
	"medibook/services/scheduling"
	"medibook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	patientRepo := patientRepoPkg.NewMongoPatientRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()

	// The ledger is the enforcement point for double-booking. Warm it with
	// the stored occupancy so restarts do not forget reservations.
	ledger := scheduling.NewSlotLedger()
	if doctors, err := doctorRepo.GetAll(); err != nil {
		logger.Sugar().Fatalf("main: failed to warm slot ledger: %v", err)
	} else {
		for _, d := range doctors {
			ledger.Seed(d.ID, d.BookedSlots)
		}
	}

	// services.
	appointmentService, err := appointmentSvc.NewDefaultAppointmentService(ledger, doctorRepo, appointmentRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize appointment service: %v", err)
	}
	patientService, err := patientSvc.NewDefaultPatientService(patientRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize patient service: %v", err)
	}
	doctorService, err := doctorSvc.NewDefaultDoctorService(doctorRepo, appointmentRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize doctor service: %v", err)
	}
	adminService, err := adminSvc.NewDefaultAdminService(doctorRepo, patientRepo, appointmentRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize admin service: %v", err)
	}

	// Assemble the handler bundle and register routes.
	hb := &routes.HandlerBundle{
		Patient: handlers.NewPatientHandler(patientService),
		Doctor:  handlers.NewDoctorHandler(doctorService),
		Admin:   handlers.NewAdminHandler(adminService, doctorService),
		Booking: handlers.NewBookingHandler(appointmentService),
	}
	routes.RegisterRoutes(router, hb)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
