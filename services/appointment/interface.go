package appointment

import "medibook/models"

// AppointmentService is the boundary the HTTP surface calls into for slot
// discovery and the appointment lifecycle. All transition methods return a
// *LifecycleError or *scheduling.LedgerError on rejection and perform no
// partial mutation on failure.
type AppointmentService interface {
	// ListAvailableSlots derives the offerable day buckets for a doctor
	// from the current doctor snapshot.
	ListAvailableSlots(doctorID string) ([]models.DayBucket, error)
	// Book reserves a slot and creates the appointment in the requested
	// state. The reservation is atomic: of two concurrent requests for the
	// same slot exactly one succeeds.
	Book(actor Actor, req models.BookAppointmentRequest) (*models.Appointment, error)
	// SetPaid marks an appointment paid (admin transition).
	SetPaid(actor Actor, appointmentID string) (*models.Appointment, error)
	// Complete marks a paid appointment completed (doctor transition).
	Complete(actor Actor, appointmentID string) (*models.Appointment, error)
	// Cancel cancels a pre-terminal appointment and releases its slot.
	Cancel(actor Actor, appointmentID string) (*models.Appointment, error)

	// Listings for the actor surfaces. Cancelled and completed
	// appointments are retained as history.
	ListByPatient(patientID string) ([]models.Appointment, error)
	ListByDoctor(doctorID string) ([]models.Appointment, error)
	ListAll() ([]models.Appointment, error)
}
