package models

// AdminDashboard aggregates platform-wide counts for the admin overview.
type AdminDashboard struct {
	Doctors            int           `json:"doctors"`
	Appointments       int           `json:"appointments"`
	Patients           int           `json:"patients"`
	LatestAppointments []Appointment `json:"latestAppointments"`
}

// DoctorDashboard aggregates a single doctor's earnings and activity.
// Earnings counts the fees of paid (including completed) appointments.
type DoctorDashboard struct {
	Earnings           float64       `json:"earnings"`
	Appointments       int           `json:"appointments"`
	Patients           int           `json:"patients"`
	LatestAppointments []Appointment `json:"latestAppointments"`
}
