package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"medibook/config"
	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"
	"medibook/models"
	"medibook/utils"
)

// ErrInvalidCredentials is returned when admin signin fails.
var ErrInvalidCredentials = errors.New("invalid admin credentials")

// ErrEmailTaken is returned when onboarding a doctor with an email that is
// already registered.
var ErrEmailTaken = errors.New("a doctor with this email already exists")

const tokenTTL = 24 * time.Hour

// AdminService covers the operator surface: signin, doctor onboarding and
// the platform dashboard.
type AdminService interface {
	SignIn(req models.SignInRequest) (*models.AuthResponse, error)
	AddDoctor(req models.AddDoctorRequest) (*models.Doctor, error)
	ListDoctors() ([]models.Doctor, error)
	Dashboard() (*models.AdminDashboard, error)
}

// DefaultAdminService is the production implementation. The admin account
// is a single operator configured via config, not a collection.
type DefaultAdminService struct {
	Doctors  doctorRepo.DoctorRepository
	Patients patientRepo.PatientRepository
	Appts    appointmentRepo.AppointmentRepository
}

func NewDefaultAdminService(
	doctors doctorRepo.DoctorRepository,
	patients patientRepo.PatientRepository,
	appts appointmentRepo.AppointmentRepository,
) (*DefaultAdminService, error) {
	if doctors == nil || patients == nil || appts == nil {
		return nil, fmt.Errorf("admin service initialization error: one or more dependencies are nil")
	}
	return &DefaultAdminService{Doctors: doctors, Patients: patients, Appts: appts}, nil
}

func (s *DefaultAdminService) SignIn(req models.SignInRequest) (*models.AuthResponse, error) {
	if req.Email != config.AppConfig.AdminEmail || req.Password != config.AppConfig.AdminPassword ||
		config.AppConfig.AdminEmail == "" {
		return nil, ErrInvalidCredentials
	}
	token, err := utils.GenerateToken(req.Email, "admin", tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, Role: "admin", ID: req.Email}, nil
}

func (s *DefaultAdminService) AddDoctor(req models.AddDoctorRequest) (*models.Doctor, error) {
	if existing, _ := s.Doctors.GetByEmail(req.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	doctor := &models.Doctor{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hashed),
		Speciality:  req.Speciality,
		Degree:      req.Degree,
		Experience:  req.Experience,
		About:       req.About,
		Fee:         req.Fee,
		Available:   true,
		BookedSlots: map[string][]string{},
	}
	if err := s.Doctors.Create(doctor); err != nil {
		return nil, err
	}

	// The public listing now has a new doctor.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = utils.GetCacheClient().Del(ctx, utils.DoctorListCacheKey).Err()

	return doctor, nil
}

func (s *DefaultAdminService) ListDoctors() ([]models.Doctor, error) {
	return s.Doctors.GetAll()
}

func (s *DefaultAdminService) Dashboard() (*models.AdminDashboard, error) {
	doctors, err := s.Doctors.Count()
	if err != nil {
		return nil, err
	}
	patients, err := s.Patients.Count()
	if err != nil {
		return nil, err
	}
	appts, err := s.Appts.Count()
	if err != nil {
		return nil, err
	}
	latest, err := s.Appts.Latest(5)
	if err != nil {
		return nil, err
	}
	return &models.AdminDashboard{
		Doctors:            int(doctors),
		Appointments:       int(appts),
		Patients:           int(patients),
		LatestAppointments: latest,
	}, nil
}
