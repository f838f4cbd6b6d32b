package scheduling

import (
	"fmt"
	"strings"
	"time"
)

// DayKey formats a calendar day as "day_month_year" with no zero padding
// (e.g. "5_3_2025"). This format is part of the external contract and must
// stay stable.
func DayKey(t time.Time) string {
	return fmt.Sprintf("%d_%d_%d", t.Day(), int(t.Month()), t.Year())
}

// TimeLabel formats a slot start as a 24-hour "HH:MM" label. The label is
// the uniqueness key within a day.
func TimeLabel(t time.Time) string {
	return t.Format("15:04")
}

// SlotKey derives the globally unique, stable key for a doctor+day+time
// combination: slot_<doctorID>_<day>_<month>_<year>_<HHMM>.
func SlotKey(doctorID, dayKey, timeLabel string) string {
	return "slot_" + doctorID + "_" + dayKey + "_" + strings.ReplaceAll(timeLabel, ":", "")
}
