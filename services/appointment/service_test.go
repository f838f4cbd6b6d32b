package appointment

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibook/models"
	"medibook/services/scheduling"
)

// fakeDoctorRepo is an in-memory DoctorRepository.
type fakeDoctorRepo struct {
	mu      sync.Mutex
	doctors map[string]*models.Doctor
}

func newFakeDoctorRepo(doctors ...*models.Doctor) *fakeDoctorRepo {
	r := &fakeDoctorRepo{doctors: make(map[string]*models.Doctor)}
	for _, d := range doctors {
		if d.BookedSlots == nil {
			d.BookedSlots = map[string][]string{}
		}
		r.doctors[d.ID] = d
	}
	return r
}

func (r *fakeDoctorRepo) Create(d *models.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctors[d.ID] = d
	return nil
}

func (r *fakeDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok {
		return nil, fmt.Errorf("doctor %s not found", id)
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDoctorRepo) GetByEmail(email string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.doctors {
		if d.Email == email {
			copied := *d
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("doctor with email %s not found", email)
}

func (r *fakeDoctorRepo) GetAll() ([]models.Doctor, error)       { return nil, nil }
func (r *fakeDoctorRepo) GetAvailable() ([]models.Doctor, error) { return nil, nil }
func (r *fakeDoctorRepo) GetBySpeciality(string) ([]models.Doctor, error) {
	return nil, nil
}
func (r *fakeDoctorRepo) SetAvailability(string, bool) error { return nil }
func (r *fakeDoctorRepo) Count() (int64, error)              { return int64(len(r.doctors)), nil }

func (r *fakeDoctorRepo) AddBookedSlot(doctorID, dayKey, timeLabel string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[doctorID]
	if !ok {
		return fmt.Errorf("doctor %s not found", doctorID)
	}
	for _, label := range d.BookedSlots[dayKey] {
		if label == timeLabel {
			return nil
		}
	}
	d.BookedSlots[dayKey] = append(d.BookedSlots[dayKey], timeLabel)
	return nil
}

func (r *fakeDoctorRepo) RemoveBookedSlot(doctorID, dayKey, timeLabel string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[doctorID]
	if !ok {
		return fmt.Errorf("doctor %s not found", doctorID)
	}
	labels := d.BookedSlots[dayKey]
	for i, label := range labels {
		if label == timeLabel {
			d.BookedSlots[dayKey] = append(labels[:i], labels[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeAppointmentRepo is an in-memory AppointmentRepository.
type fakeAppointmentRepo struct {
	mu    sync.Mutex
	appts map[string]*models.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appts: make(map[string]*models.Appointment)}
}

func (r *fakeAppointmentRepo) Create(a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *a
	r.appts[a.ID] = &copied
	return nil
}

func (r *fakeAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok {
		return nil, fmt.Errorf("appointment %s not found", id)
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAppointmentRepo) UpdateFlags(a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appts[a.ID]
	if !ok {
		return fmt.Errorf("appointment %s not found", a.ID)
	}
	stored.Paid = a.Paid
	stored.Completed = a.Completed
	stored.Cancelled = a.Cancelled
	return nil
}

func (r *fakeAppointmentRepo) GetByPatient(patientID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) GetByDoctor(doctorID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) GetAll() ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) Latest(int64) ([]models.Appointment, error) { return r.GetAll() }
func (r *fakeAppointmentRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.appts)), nil
}

func newTestService(t *testing.T, doctors ...*models.Doctor) *DefaultAppointmentService {
	t.Helper()
	svc, err := NewDefaultAppointmentService(
		scheduling.NewSlotLedger(),
		newFakeDoctorRepo(doctors...),
		newFakeAppointmentRepo(),
	)
	require.NoError(t, err)
	svc.Now = func() time.Time {
		return time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func availableDoctor() *models.Doctor {
	return &models.Doctor{ID: "doc-1", Name: "Dr. Adams", Fee: 50, Available: true}
}

func TestBook(t *testing.T) {
	patient := Actor{ID: "pat-1", Role: RolePatient}
	req := models.BookAppointmentRequest{DoctorID: "doc-1", DayKey: "5_3_2025", TimeLabel: "15:00"}

	t.Run("Creates Requested Appointment", func(t *testing.T) {
		svc := newTestService(t, availableDoctor())

		appt, err := svc.Book(patient, req)
		require.NoError(t, err)

		assert.Equal(t, "pat-1", appt.PatientID)
		assert.Equal(t, "doc-1", appt.DoctorID)
		assert.Equal(t, "slot_doc-1_5_3_2025_1500", appt.SlotKey)
		assert.Equal(t, 50.0, appt.Fee)
		assert.False(t, appt.Paid)
		assert.False(t, appt.Completed)
		assert.False(t, appt.Cancelled)

		doctor, err := svc.Doctors.GetByID("doc-1")
		require.NoError(t, err)
		assert.Contains(t, doctor.BookedSlots["5_3_2025"], "15:00")
	})

	t.Run("Second Patient Gets SlotTaken", func(t *testing.T) {
		svc := newTestService(t, availableDoctor())

		_, err := svc.Book(patient, req)
		require.NoError(t, err)

		_, err = svc.Book(Actor{ID: "pat-2", Role: RolePatient}, req)
		assert.ErrorIs(t, err, scheduling.ErrSlotTaken)
	})

	t.Run("Concurrent Booking Has One Winner", func(t *testing.T) {
		svc := newTestService(t, availableDoctor())

		const callers = 16
		var wg sync.WaitGroup
		errs := make([]error, callers)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				actor := Actor{ID: fmt.Sprintf("pat-%d", i), Role: RolePatient}
				_, errs[i] = svc.Book(actor, req)
			}(i)
		}
		wg.Wait()

		winners := 0
		for _, err := range errs {
			if err == nil {
				winners++
			}
		}
		assert.Equal(t, 1, winners)
	})

	t.Run("Unavailable Doctor Is Rejected", func(t *testing.T) {
		d := availableDoctor()
		d.Available = false
		svc := newTestService(t, d)

		_, err := svc.Book(patient, req)
		assert.ErrorIs(t, err, ErrDoctorUnavailable)
	})

	t.Run("Only Patients May Book", func(t *testing.T) {
		svc := newTestService(t, availableDoctor())
		_, err := svc.Book(Actor{ID: "doc-1", Role: RoleDoctor}, req)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestLifecycleTransitions(t *testing.T) {
	patient := Actor{ID: "pat-1", Role: RolePatient}
	doctorActor := Actor{ID: "doc-1", Role: RoleDoctor}
	adminActor := Actor{ID: "admin@clinic.test", Role: RoleAdmin}
	req := models.BookAppointmentRequest{DoctorID: "doc-1", DayKey: "5_3_2025", TimeLabel: "15:00"}

	book := func(t *testing.T, svc *DefaultAppointmentService) *models.Appointment {
		t.Helper()
		appt, err := svc.Book(patient, req)
		require.NoError(t, err)
		return appt
	}

	t.Run("Complete Before Payment Fails", func(t *testing.T) {
		svc := newTestService(t, availableDoctor())
		appt := book(t, svc)

		_, err := svc.Complete(doctorActor, appt.ID)
		assert.ErrorIs(t, err, ErrPaymentRequired)

		stored, err := svc.Appts.GetByID(appt.ID)
		require.NoError(t, err)
		assert.False(t, stored.Completed, "rejected transition must not mutate")
	})

	t.Run("Admin Pays Then Doctor Completes", func(t *testing.T) {
		svc := newTestService(t, availableDoctor())
		appt := book(t, svc)

		paid, err := svc.SetPaid(adminActor, appt.ID)
		require.NoError(t, err)
		assert.True(t, paid.Paid)

		completed, err := svc.Complete(doctorActor, appt.ID)
		require.NoError(t, err)
		assert.True(t, completed.Completed)
	})

	t.Run("Patient Cancel Before Payment Releases The Slot", func(t *testing.T) {
		svc := newTestService(t, availableDoctor())
		appt := book(t, svc)

		cancelled, err := svc.Cancel(patient, appt.ID)
		require.NoError(t, err)
		assert.True(t, cancelled.Cancelled)

		// The released slot is immediately bookable again.
		_, err = svc.Book(Actor{ID: "pat-2", Role: RolePatient}, req)
		assert.NoError(t, err)
	})

	t.Run("Patient Cannot Cancel After Payment", func(t *testing.T) {
		svc := newTestService(t, availableDoctor())
		appt := book(t, svc)

		_, err := svc.SetPaid(adminActor, appt.ID)
		require.NoError(t, err)

		_, err = svc.Cancel(patient, appt.ID)
		assert.ErrorIs(t, err, ErrCancellationNotAllowed)
	})

	t.Run("Staff Cancel A Paid Appointment", func(t *testing.T) {
		svc := newTestService(t, availableDoctor())
		appt := book(t, svc)

		_, err := svc.SetPaid(adminActor, appt.ID)
		require.NoError(t, err)

		cancelled, err := svc.Cancel(adminActor, appt.ID)
		require.NoError(t, err)
		assert.True(t, cancelled.Cancelled)
	})

	t.Run("Completed Appointment Is Terminal", func(t *testing.T) {
		svc := newTestService(t, availableDoctor())
		appt := book(t, svc)

		_, err := svc.SetPaid(adminActor, appt.ID)
		require.NoError(t, err)
		_, err = svc.Complete(doctorActor, appt.ID)
		require.NoError(t, err)

		_, err = svc.Cancel(adminActor, appt.ID)
		assert.ErrorIs(t, err, ErrTerminalState)
		_, err = svc.SetPaid(adminActor, appt.ID)
		assert.ErrorIs(t, err, ErrTerminalState)
	})

	t.Run("Cancelled Appointment Is Terminal", func(t *testing.T) {
		svc := newTestService(t, availableDoctor())
		appt := book(t, svc)

		_, err := svc.Cancel(patient, appt.ID)
		require.NoError(t, err)

		_, err = svc.SetPaid(adminActor, appt.ID)
		assert.ErrorIs(t, err, ErrTerminalState)
		_, err = svc.Complete(doctorActor, appt.ID)
		assert.ErrorIs(t, err, ErrTerminalState)
	})

	t.Run("Ownership Is Enforced", func(t *testing.T) {
		svc := newTestService(t, availableDoctor())
		appt := book(t, svc)

		_, err := svc.Cancel(Actor{ID: "pat-2", Role: RolePatient}, appt.ID)
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = svc.SetPaid(adminActor, appt.ID)
		require.NoError(t, err)
		_, err = svc.Complete(Actor{ID: "doc-2", Role: RoleDoctor}, appt.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestListAvailableSlots(t *testing.T) {
	t.Run("Booked Slot Disappears From The Listing", func(t *testing.T) {
		svc := newTestService(t, availableDoctor())
		patient := Actor{ID: "pat-1", Role: RolePatient}
		req := models.BookAppointmentRequest{DoctorID: "doc-1", DayKey: "5_3_2025", TimeLabel: "15:00"}

		_, err := svc.Book(patient, req)
		require.NoError(t, err)

		buckets, err := svc.ListAvailableSlots("doc-1")
		require.NoError(t, err)
		for _, b := range buckets {
			if b.DayKey != "5_3_2025" {
				continue
			}
			for _, s := range b.Slots {
				assert.NotEqual(t, "15:00", s.TimeLabel)
			}
		}
	})

	t.Run("Unavailable Doctor Offers Nothing", func(t *testing.T) {
		d := availableDoctor()
		d.Available = false
		svc := newTestService(t, d)

		_, err := svc.ListAvailableSlots("doc-1")
		assert.ErrorIs(t, err, ErrDoctorUnavailable)
	})
}
