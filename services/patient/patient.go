package patient

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	patientRepo "medibook/database/repository/patient"
	"medibook/models"
	"medibook/utils"
)

// ErrInvalidCredentials is returned when signin fails; the caller should not
// learn whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken is returned when registering with an email that already has
// an account.
var ErrEmailTaken = errors.New("an account with this email already exists")

const tokenTTL = 72 * time.Hour

// PatientService manages patient accounts.
type PatientService interface {
	Register(req models.RegisterPatientRequest) (*models.AuthResponse, error)
	SignIn(req models.SignInRequest) (*models.AuthResponse, error)
	GetProfile(id string) (*models.Patient, error)
	UpdateProfile(patient *models.Patient) error
}

// DefaultPatientService is the production implementation.
type DefaultPatientService struct {
	Repo patientRepo.PatientRepository
}

func NewDefaultPatientService(repo patientRepo.PatientRepository) (*DefaultPatientService, error) {
	if repo == nil {
		return nil, fmt.Errorf("patient service initialization error: repository is nil")
	}
	return &DefaultPatientService{Repo: repo}, nil
}

func (s *DefaultPatientService) Register(req models.RegisterPatientRequest) (*models.AuthResponse, error) {
	if existing, _ := s.Repo.GetByEmail(req.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	patient := &models.Patient{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Phone:     req.Phone,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(patient); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(patient.ID, "patient", tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, Role: "patient", ID: patient.ID, Name: patient.Name}, nil
}

func (s *DefaultPatientService) SignIn(req models.SignInRequest) (*models.AuthResponse, error) {
	patient, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(patient.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(patient.ID, "patient", tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, Role: "patient", ID: patient.ID, Name: patient.Name}, nil
}

func (s *DefaultPatientService) GetProfile(id string) (*models.Patient, error) {
	return s.Repo.GetByID(id)
}

func (s *DefaultPatientService) UpdateProfile(patient *models.Patient) error {
	return s.Repo.Update(patient)
}
