package patientRepo

import "medibook/models"

// PatientRepository defines data access for patient accounts.
type PatientRepository interface {
	Create(patient *models.Patient) error
	GetByID(id string) (*models.Patient, error)
	GetByEmail(email string) (*models.Patient, error)
	Update(patient *models.Patient) error
	Count() (int64, error)
}
