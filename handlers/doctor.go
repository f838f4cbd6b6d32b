package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/doctor"
)

// DoctorHandler exposes doctor discovery and the doctor account surface.
type DoctorHandler struct {
	Service doctor.DoctorService
}

func NewDoctorHandler(service doctor.DoctorService) *DoctorHandler {
	return &DoctorHandler{Service: service}
}

// ListDoctorsHandler is the public discovery listing. With ?speciality= it
// filters; otherwise the (cached) full availability listing is returned.
func (h *DoctorHandler) ListDoctorsHandler(c *gin.Context) {
	logger := getLogger(c)

	var (
		doctors []models.DoctorSummary
		err     error
	)
	if speciality := c.Query("speciality"); speciality != "" {
		doctors, err = h.Service.ListBySpeciality(speciality)
	} else {
		doctors, err = h.Service.ListAvailable()
	}
	if err != nil {
		logger.Error("failed to list doctors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get doctors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

// GetDoctorHandler returns the public view of one doctor.
func (h *DoctorHandler) GetDoctorHandler(c *gin.Context) {
	id := c.Param("id")
	d, err := h.Service.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "doctor not found"})
		return
	}
	c.JSON(http.StatusOK, d.PublicView())
}

func (h *DoctorHandler) SignInHandler(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.SignIn(req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChangeAvailabilityHandler lets the authenticated doctor flip their own
// availability flag.
func (h *DoctorHandler) ChangeAvailabilityHandler(c *gin.Context) {
	logger := getLogger(c)
	var req struct {
		Available bool `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	doctorID := c.GetString(middleware.ContextActorID)
	if err := h.Service.SetAvailability(doctorID, req.Available); err != nil {
		logger.Error("failed to change availability", zap.String("doctorID", doctorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change availability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": req.Available})
}

// DashboardHandler returns the doctor's earnings and activity summary.
func (h *DoctorHandler) DashboardHandler(c *gin.Context) {
	logger := getLogger(c)
	doctorID := c.GetString(middleware.ContextActorID)

	dash, err := h.Service.Dashboard(doctorID)
	if err != nil {
		logger.Error("failed to build doctor dashboard", zap.String("doctorID", doctorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}
	c.JSON(http.StatusOK, dash)
}
