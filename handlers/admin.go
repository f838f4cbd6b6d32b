package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medibook/models"
	"medibook/services/admin"
	"medibook/services/doctor"
)

// AdminHandler exposes the operator surface.
type AdminHandler struct {
	Service       admin.AdminService
	DoctorService doctor.DoctorService
}

func NewAdminHandler(service admin.AdminService, doctorService doctor.DoctorService) *AdminHandler {
	return &AdminHandler{Service: service, DoctorService: doctorService}
}

func (h *AdminHandler) SignInHandler(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.SignIn(req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin credentials"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) AddDoctorHandler(c *gin.Context) {
	logger := getLogger(c)
	var req models.AddDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	d, err := h.Service.AddDoctor(req)
	if err != nil {
		if errors.Is(err, admin.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("failed to add doctor", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add doctor"})
		return
	}
	c.JSON(http.StatusCreated, d.PublicView())
}

func (h *AdminHandler) ListDoctorsHandler(c *gin.Context) {
	logger := getLogger(c)
	doctors, err := h.Service.ListDoctors()
	if err != nil {
		logger.Error("failed to list doctors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get doctors"})
		return
	}
	// Admin sees the full records, credentials excluded by the JSON tags.
	c.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

// ChangeDoctorAvailabilityHandler lets the admin toggle any doctor.
func (h *AdminHandler) ChangeDoctorAvailabilityHandler(c *gin.Context) {
	logger := getLogger(c)
	var req struct {
		DoctorID  string `json:"doctorId" binding:"required"`
		Available bool   `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.DoctorService.SetAvailability(req.DoctorID, req.Available); err != nil {
		logger.Error("failed to change availability", zap.String("doctorID", req.DoctorID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change availability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctorId": req.DoctorID, "available": req.Available})
}

func (h *AdminHandler) DashboardHandler(c *gin.Context) {
	logger := getLogger(c)
	dash, err := h.Service.Dashboard()
	if err != nil {
		logger.Error("failed to build admin dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}
	c.JSON(http.StatusOK, dash)
}
