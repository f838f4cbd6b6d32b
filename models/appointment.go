package models

import "time"

// Appointment is the durable booking record. It is never deleted; cancelled
// and completed appointments remain as history.
//
// The three flags are the stored representation; Paid and Cancelled and
// Completed are only flipped through lifecycle transitions, never by direct
// field edits from a handler. Completed and Cancelled are mutually
// exclusive, and Completed implies Paid.
type Appointment struct {
	ID        string    `bson:"id" json:"id"`
	PatientID string    `bson:"patient_id" json:"patient_id"`
	DoctorID  string    `bson:"doctor_id" json:"doctor_id"`
	DayKey    string    `bson:"slot_date" json:"slot_date"` // "day_month_year", no zero padding
	TimeLabel string    `bson:"slot_time" json:"slot_time"` // "HH:MM"
	SlotKey   string    `bson:"slot_key" json:"slot_key"`   // slot_<doctorID>_<day>_<month>_<year>_<HHMM>
	Fee       float64   `bson:"fee" json:"fee"`
	Paid      bool      `bson:"paid" json:"paid"`
	Completed bool      `bson:"completed" json:"completed"`
	Cancelled bool      `bson:"cancelled" json:"cancelled"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// BookAppointmentRequest is the patient payload for reserving a slot.
type BookAppointmentRequest struct {
	DoctorID  string `json:"doctorId" binding:"required"`
	DayKey    string `json:"slotDate" binding:"required"`
	TimeLabel string `json:"slotTime" binding:"required"`
}

// AppointmentActionRequest identifies an appointment for a lifecycle transition.
type AppointmentActionRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
}
