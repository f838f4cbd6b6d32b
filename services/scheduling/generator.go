package scheduling

import (
	"time"

	"medibook/models"
)

const (
	// Booking window length in days.
	windowDays = 7
	// Per-day slot boundaries: slots run from 10:00 up to (not including) 21:00.
	openingHour = 10
	closingHour = 21
	// Fixed slot granularity.
	slotInterval = 30 * time.Minute
)

// GenerateSlots derives the offerable slots for a doctor over a rolling
// 7-day window, excluding (day, time) pairs already present in the doctor's
// booked set. Days that end up with zero slots are omitted from the result.
//
// The window starts today unless now is at or past 21:00, in which case it
// starts tomorrow. On the current day the first slot is rounded up to the
// next 30-minute boundary after now.
//
// The output is chronological by day and ascending by time within a day,
// and is a pure function of (doctor, now).
func GenerateSlots(doctor models.Doctor, now time.Time) []models.DayBucket {
	startDay := 0
	if now.Hour() >= closingHour {
		startDay = 1
	}

	var buckets []models.DayBucket
	for offset := startDay; offset < windowDays+startDay; offset++ {
		day := now.AddDate(0, 0, offset)
		midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

		startHour := openingHour
		startMinute := 0

		// On the current day, do not offer slots in the past: round up to
		// the next half-hour boundary after now.
		if offset == 0 && startDay == 0 && now.Hour() >= openingHour {
			if now.Minute() <= 30 {
				startHour = now.Hour()
				startMinute = 30
			} else {
				startHour = now.Hour() + 1
				startMinute = 0
			}
			if startHour >= closingHour {
				continue
			}
		}

		cursor := midnight.Add(time.Duration(startHour)*time.Hour + time.Duration(startMinute)*time.Minute)
		end := midnight.Add(time.Duration(closingHour) * time.Hour)

		var slots []models.Slot
		dayKey := DayKey(cursor)
		for cursor.Before(end) {
			label := TimeLabel(cursor)
			if !isBooked(doctor.BookedSlots, dayKey, label) {
				slots = append(slots, models.Slot{
					DayKey:    dayKey,
					TimeLabel: label,
					Start:     cursor,
				})
			}
			cursor = cursor.Add(slotInterval)
		}

		if len(slots) > 0 {
			buckets = append(buckets, models.DayBucket{DayKey: dayKey, Slots: slots})
		}
	}
	return buckets
}

func isBooked(booked map[string][]string, dayKey, timeLabel string) bool {
	for _, label := range booked[dayKey] {
		if label == timeLabel {
			return true
		}
	}
	return false
}
