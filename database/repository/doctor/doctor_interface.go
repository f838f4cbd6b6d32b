package doctorRepo

import "medibook/models"

// DoctorRepository defines data access for doctors. The booked-slot methods
// mirror ledger reserve/release onto the stored document; they are called
// only by the appointment service after the ledger has decided.
type DoctorRepository interface {
	Create(doctor *models.Doctor) error
	GetByID(id string) (*models.Doctor, error)
	GetByEmail(email string) (*models.Doctor, error)
	GetAll() ([]models.Doctor, error)
	GetAvailable() ([]models.Doctor, error)
	GetBySpeciality(speciality string) ([]models.Doctor, error)
	SetAvailability(id string, available bool) error
	Count() (int64, error)

	AddBookedSlot(doctorID, dayKey, timeLabel string) error
	RemoveBookedSlot(doctorID, dayKey, timeLabel string) error
}
