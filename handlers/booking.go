package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/appointment"
)

// BookingHandler exposes slot discovery and the appointment lifecycle.
type BookingHandler struct {
	Service appointment.AppointmentService
}

func NewBookingHandler(service appointment.AppointmentService) *BookingHandler {
	return &BookingHandler{Service: service}
}

func actorFromContext(c *gin.Context) appointment.Actor {
	return appointment.Actor{
		ID:   c.GetString(middleware.ContextActorID),
		Role: appointment.Role(c.GetString(middleware.ContextRole)),
	}
}

// ListSlotsHandler returns the offerable day buckets for a doctor.
func (h *BookingHandler) ListSlotsHandler(c *gin.Context) {
	logger := getLogger(c)
	doctorID := c.Param("doctorId")
	if doctorID == "" {
		doctorID = c.Param("id") // public /api/doctors/:id/slots route
	}

	buckets, err := h.Service.ListAvailableSlots(doctorID)
	if err != nil {
		logger.Warn("failed to list slots", zap.String("doctorID", doctorID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": buckets})
}

// BookAppointmentHandler reserves a slot for the authenticated patient.
func (h *BookingHandler) BookAppointmentHandler(c *gin.Context) {
	logger := getLogger(c)
	var req models.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Service.Book(actorFromContext(c), req)
	if err != nil {
		logger.Warn("booking rejected",
			zap.String("doctorID", req.DoctorID),
			zap.String("slotDate", req.DayKey),
			zap.String("slotTime", req.TimeLabel),
			zap.Error(err))
		respondError(c, err)
		return
	}
	logger.Info("slot booked", zap.String("slotKey", appt.SlotKey), zap.String("appointmentID", appt.ID))
	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// CancelAppointmentHandler cancels on behalf of whichever actor the route
// authenticated; the lifecycle decides whether that actor may cancel.
func (h *BookingHandler) CancelAppointmentHandler(c *gin.Context) {
	logger := getLogger(c)
	var req models.AppointmentActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Service.Cancel(actorFromContext(c), req.AppointmentID)
	if err != nil {
		logger.Warn("cancellation rejected", zap.String("appointmentID", req.AppointmentID), zap.Error(err))
		respondError(c, err)
		return
	}
	logger.Info("appointment cancelled", zap.String("appointmentID", appt.ID))
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// CompleteAppointmentHandler marks a paid appointment completed (doctor only).
func (h *BookingHandler) CompleteAppointmentHandler(c *gin.Context) {
	logger := getLogger(c)
	var req models.AppointmentActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Service.Complete(actorFromContext(c), req.AppointmentID)
	if err != nil {
		logger.Warn("completion rejected", zap.String("appointmentID", req.AppointmentID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// MarkPaidHandler confirms payment for an appointment (admin only).
func (h *BookingHandler) MarkPaidHandler(c *gin.Context) {
	logger := getLogger(c)
	var req models.AppointmentActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Service.SetPaid(actorFromContext(c), req.AppointmentID)
	if err != nil {
		logger.Warn("payment confirmation rejected", zap.String("appointmentID", req.AppointmentID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// PatientAppointmentsHandler lists the authenticated patient's history.
func (h *BookingHandler) PatientAppointmentsHandler(c *gin.Context) {
	appts, err := h.Service.ListByPatient(c.GetString(middleware.ContextActorID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// DoctorAppointmentsHandler lists the authenticated doctor's bookings.
func (h *BookingHandler) DoctorAppointmentsHandler(c *gin.Context) {
	appts, err := h.Service.ListByDoctor(c.GetString(middleware.ContextActorID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// AllAppointmentsHandler lists every appointment for the admin surface.
func (h *BookingHandler) AllAppointmentsHandler(c *gin.Context) {
	appts, err := h.Service.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
