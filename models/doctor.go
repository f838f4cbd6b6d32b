package models

// Doctor represents a practitioner offering bookable slots.
//
// BookedSlots maps a calendar day key ("day_month_year", no zero padding) to
// the time labels ("HH:MM") already taken on that day. It is mutated only by
// the booking ledger; no time label appears twice for the same day.
type Doctor struct {
	ID          string              `bson:"id" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Email       string              `bson:"email" json:"email"`
	Password    string              `bson:"password" json:"-"`
	Speciality  string              `bson:"speciality" json:"speciality"`
	Degree      string              `bson:"degree" json:"degree"`
	Experience  string              `bson:"experience" json:"experience"`
	About       string              `bson:"about" json:"about"`
	Fee         float64             `bson:"fee" json:"fee"`
	Available   bool                `bson:"available" json:"available"`
	BookedSlots map[string][]string `bson:"bookedSlots,omitempty" json:"bookedSlots,omitempty"`
}

// PublicView strips credentials and occupancy detail for the discovery listing.
func (d Doctor) PublicView() DoctorSummary {
	return DoctorSummary{
		ID:         d.ID,
		Name:       d.Name,
		Speciality: d.Speciality,
		Degree:     d.Degree,
		Experience: d.Experience,
		About:      d.About,
		Fee:        d.Fee,
		Available:  d.Available,
	}
}

// DoctorSummary is the public listing shape returned to patients.
type DoctorSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Speciality string  `json:"speciality"`
	Degree     string  `json:"degree"`
	Experience string  `json:"experience"`
	About      string  `json:"about"`
	Fee        float64 `json:"fee"`
	Available  bool    `json:"available"`
}

// AddDoctorRequest is the admin payload for onboarding a doctor.
type AddDoctorRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	Speciality string  `json:"speciality" binding:"required"`
	Degree     string  `json:"degree"`
	Experience string  `json:"experience"`
	About      string  `json:"about"`
	Fee        float64 `json:"fee" binding:"required"`
}
