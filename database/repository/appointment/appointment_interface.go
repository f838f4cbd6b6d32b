package appointmentRepo

import "medibook/models"

// AppointmentRepository defines data access for appointment records.
// Records are created once and updated only through lifecycle transitions;
// they are never deleted.
type AppointmentRepository interface {
	Create(appt *models.Appointment) error
	GetByID(id string) (*models.Appointment, error)
	UpdateFlags(appt *models.Appointment) error
	GetByPatient(patientID string) ([]models.Appointment, error)
	GetByDoctor(doctorID string) ([]models.Appointment, error)
	GetAll() ([]models.Appointment, error)
	Latest(limit int64) ([]models.Appointment, error)
	Count() (int64, error)
}
