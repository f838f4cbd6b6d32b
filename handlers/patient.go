package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/patient"
)

// PatientHandler exposes patient account endpoints.
type PatientHandler struct {
	Service patient.PatientService
}

func NewPatientHandler(service patient.PatientService) *PatientHandler {
	return &PatientHandler{Service: service}
}

func (h *PatientHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)
	var req models.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.Register(req)
	if err != nil {
		if errors.Is(err, patient.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("patient registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PatientHandler) SignInHandler(c *gin.Context) {
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

func (h *PatientHandler) GetProfileHandler(c *gin.Context) {
	p, err := h.Service.GetProfile(c.GetString(middleware.ContextActorID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PatientHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	p, err := h.Service.GetProfile(c.GetString(middleware.ContextActorID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Phone != "" {
		p.Phone = req.Phone
	}
	if err := h.Service.UpdateProfile(p); err != nil {
		logger.Error("profile update failed", zap.String("patientID", p.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, p)
}
