package appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	"medibook/models"
	"medibook/services/scheduling"
	"medibook/utils"
)

// DefaultAppointmentService is the production implementation. The ledger
// decides slot occupancy; Mongo is kept in sync afterwards, and the ledger
// decision is rolled back if persistence fails so no booking is half-made.
type DefaultAppointmentService struct {
	Ledger  scheduling.Ledger
	Doctors doctorRepo.DoctorRepository
	Appts   appointmentRepo.AppointmentRepository
	Now     func() time.Time // nil means time.Now
}

func NewDefaultAppointmentService(
	ledger scheduling.Ledger,
	doctors doctorRepo.DoctorRepository,
	appts appointmentRepo.AppointmentRepository,
) (*DefaultAppointmentService, error) {
	if ledger == nil || doctors == nil || appts == nil {
		return nil, fmt.Errorf("appointment service initialization error: one or more dependencies are nil")
	}
	return &DefaultAppointmentService{
		Ledger:  ledger,
		Doctors: doctors,
		Appts:   appts,
	}, nil
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAppointmentService) ListAvailableSlots(doctorID string) ([]models.DayBucket, error) {
	doctor, err := s.Doctors.GetByID(doctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.Available {
		return nil, ErrDoctorUnavailable
	}
	return scheduling.GenerateSlots(*doctor, s.now()), nil
}

func (s *DefaultAppointmentService) Book(actor Actor, req models.BookAppointmentRequest) (*models.Appointment, error) {
	if err := authorize(actor.Role, TransitionCreate); err != nil {
		return nil, err
	}

	doctor, err := s.Doctors.GetByID(req.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.Available {
		return nil, ErrDoctorUnavailable
	}

	// Make sure the ledger tracks this doctor before deciding.
	s.Ledger.Seed(doctor.ID, doctor.BookedSlots)

	slotKey, err := s.Ledger.Reserve(doctor.ID, req.DayKey, req.TimeLabel)
	if err != nil {
		return nil, err
	}

	// Mirror the reservation onto the doctor document. If persistence
	// fails, give the slot back so the ledger stays consistent.
	if err := s.Doctors.AddBookedSlot(doctor.ID, req.DayKey, req.TimeLabel); err != nil {
		s.releaseQuietly(doctor.ID, req.DayKey, req.TimeLabel)
		return nil, err
	}

	appt := &models.Appointment{
		ID:        uuid.New().String(),
		PatientID: actor.ID,
		DoctorID:  doctor.ID,
		DayKey:    req.DayKey,
		TimeLabel: req.TimeLabel,
		SlotKey:   slotKey,
		Fee:       doctor.Fee,
		CreatedAt: s.now(),
	}
	if err := s.Appts.Create(appt); err != nil {
		if rerr := s.Doctors.RemoveBookedSlot(doctor.ID, req.DayKey, req.TimeLabel); rerr != nil {
			utils.GetLogger().Error("failed to roll back booked slot", zap.String("slotKey", slotKey), zap.Error(rerr))
		}
		s.releaseQuietly(doctor.ID, req.DayKey, req.TimeLabel)
		return nil, err
	}
	return appt, nil
}

func (s *DefaultAppointmentService) SetPaid(actor Actor, appointmentID string) (*models.Appointment, error) {
	if err := authorize(actor.Role, TransitionMarkPaid); err != nil {
		return nil, err
	}
	appt, err := s.Appts.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if err := markPaid(appt); err != nil {
		return nil, err
	}
	if err := s.Appts.UpdateFlags(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *DefaultAppointmentService) Complete(actor Actor, appointmentID string) (*models.Appointment, error) {
	if err := authorize(actor.Role, TransitionComplete); err != nil {
		return nil, err
	}
	appt, err := s.Appts.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != actor.ID {
		return nil, ErrForbidden
	}
	if err := complete(appt); err != nil {
		return nil, err
	}
	if err := s.Appts.UpdateFlags(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *DefaultAppointmentService) Cancel(actor Actor, appointmentID string) (*models.Appointment, error) {
	if err := authorize(actor.Role, TransitionCancel); err != nil {
		return nil, err
	}
	appt, err := s.Appts.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	// Patients and doctors may only touch their own appointments.
	switch actor.Role {
	case RolePatient:
		if appt.PatientID != actor.ID {
			return nil, ErrForbidden
		}
	case RoleDoctor:
		if appt.DoctorID != actor.ID {
			return nil, ErrForbidden
		}
	}
	if err := cancel(appt, actor.Role); err != nil {
		return nil, err
	}
	if err := s.Appts.UpdateFlags(appt); err != nil {
		return nil, err
	}

	// Give the slot back. Release completes before Cancel returns, so a
	// subsequent reservation of the same slot succeeds.
	if doctor, derr := s.Doctors.GetByID(appt.DoctorID); derr == nil {
		s.Ledger.Seed(doctor.ID, doctor.BookedSlots)
	}
	if err := s.Ledger.Release(appt.DoctorID, appt.DayKey, appt.TimeLabel); err != nil {
		utils.GetLogger().Warn("cancel released an untracked slot",
			zap.String("slotKey", appt.SlotKey), zap.Error(err))
	}
	if err := s.Doctors.RemoveBookedSlot(appt.DoctorID, appt.DayKey, appt.TimeLabel); err != nil {
		utils.GetLogger().Error("failed to free booked slot after cancellation",
			zap.String("slotKey", appt.SlotKey), zap.Error(err))
	}
	return appt, nil
}

func (s *DefaultAppointmentService) ListByPatient(patientID string) ([]models.Appointment, error) {
	return s.Appts.GetByPatient(patientID)
}

func (s *DefaultAppointmentService) ListByDoctor(doctorID string) ([]models.Appointment, error) {
	return s.Appts.GetByDoctor(doctorID)
}

func (s *DefaultAppointmentService) ListAll() ([]models.Appointment, error) {
	return s.Appts.GetAll()
}

func (s *DefaultAppointmentService) releaseQuietly(doctorID, dayKey, timeLabel string) {
	if err := s.Ledger.Release(doctorID, dayKey, timeLabel); err != nil {
		utils.GetLogger().Error("failed to release slot during rollback",
			zap.String("doctorID", doctorID), zap.String("dayKey", dayKey),
			zap.String("timeLabel", timeLabel), zap.Error(err))
	}
}
