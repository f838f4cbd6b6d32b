package models

import "time"

// Slot is a transient bookable (day, time) unit produced by the slot
// generator; it is not persisted.
type Slot struct {
	DayKey    string    `json:"slotDate"` // "day_month_year", no zero padding
	TimeLabel string    `json:"slotTime"` // "HH:MM", 24-hour
	Start     time.Time `json:"datetime"`
}

// DayBucket groups the offerable slots of one calendar day, in ascending
// time order. Days with no offerable slots are not represented.
type DayBucket struct {
	DayKey string `json:"slotDate"`
	Slots  []Slot `json:"slots"`
}
