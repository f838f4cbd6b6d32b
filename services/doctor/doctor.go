package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	"medibook/models"
	"medibook/utils"
)

// ErrInvalidCredentials is returned when doctor signin fails.
var ErrInvalidCredentials = errors.New("invalid email or password")

const (
	tokenTTL     = 72 * time.Hour
	listCacheTTL = 5 * time.Minute
)

// DoctorService manages doctor accounts, discovery and the doctor dashboard.
type DoctorService interface {
	SignIn(req models.SignInRequest) (*models.AuthResponse, error)
	GetByID(id string) (*models.Doctor, error)
	// ListAvailable returns the public listing of doctors taking
	// appointments, cached in Redis with a short TTL.
	ListAvailable() ([]models.DoctorSummary, error)
	ListBySpeciality(speciality string) ([]models.DoctorSummary, error)
	// SetAvailability flips the availability flag and invalidates the
	// cached listing.
	SetAvailability(id string, available bool) error
	Dashboard(id string) (*models.DoctorDashboard, error)
}

// DefaultDoctorService is the production implementation.
type DefaultDoctorService struct {
	Repo  doctorRepo.DoctorRepository
	Appts appointmentRepo.AppointmentRepository
}

func NewDefaultDoctorService(
	repo doctorRepo.DoctorRepository,
	appts appointmentRepo.AppointmentRepository,
) (*DefaultDoctorService, error) {
	if repo == nil || appts == nil {
		return nil, fmt.Errorf("doctor service initialization error: one or more dependencies are nil")
	}
	return &DefaultDoctorService{Repo: repo, Appts: appts}, nil
}

func (s *DefaultDoctorService) SignIn(req models.SignInRequest) (*models.AuthResponse, error) {
	doctor, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(doctor.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(doctor.ID, "doctor", tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, Role: "doctor", ID: doctor.ID, Name: doctor.Name}, nil
}

func (s *DefaultDoctorService) GetByID(id string) (*models.Doctor, error) {
	return s.Repo.GetByID(id)
}

func (s *DefaultDoctorService) ListAvailable() ([]models.DoctorSummary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cache := utils.GetCacheClient()
	if cached, err := cache.Get(ctx, utils.DoctorListCacheKey).Result(); err == nil {
		var summaries []models.DoctorSummary
		if json.Unmarshal([]byte(cached), &summaries) == nil {
			return summaries, nil
		}
	}

	doctors, err := s.Repo.GetAvailable()
	if err != nil {
		return nil, err
	}
	summaries := make([]models.DoctorSummary, 0, len(doctors))
	for _, d := range doctors {
		summaries = append(summaries, d.PublicView())
	}

	if data, err := json.Marshal(summaries); err == nil {
		_ = cache.Set(ctx, utils.DoctorListCacheKey, data, listCacheTTL).Err()
	}
	return summaries, nil
}

func (s *DefaultDoctorService) ListBySpeciality(speciality string) ([]models.DoctorSummary, error) {
	doctors, err := s.Repo.GetBySpeciality(speciality)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.DoctorSummary, 0, len(doctors))
	for _, d := range doctors {
		summaries = append(summaries, d.PublicView())
	}
	return summaries, nil
}

func (s *DefaultDoctorService) SetAvailability(id string, available bool) error {
	if err := s.Repo.SetAvailability(id, available); err != nil {
		return err
	}
	s.invalidateListing()
	return nil
}

// Dashboard aggregates earnings, appointment volume and distinct patient
// count. Earnings count paid appointments, completed ones included.
func (s *DefaultDoctorService) Dashboard(id string) (*models.DoctorDashboard, error) {
	appts, err := s.Appts.GetByDoctor(id)
	if err != nil {
		return nil, err
	}

	var earnings float64
	patients := make(map[string]struct{})
	for _, a := range appts {
		if a.Paid {
			earnings += a.Fee
		}
		patients[a.PatientID] = struct{}{}
	}

	latest := appts
	if len(latest) > 5 {
		latest = latest[len(latest)-5:]
	}
	return &models.DoctorDashboard{
		Earnings:           earnings,
		Appointments:       len(appts),
		Patients:           len(patients),
		LatestAppointments: latest,
	}, nil
}

func (s *DefaultDoctorService) invalidateListing() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = utils.GetCacheClient().Del(ctx, utils.DoctorListCacheKey).Err()
}
