package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibook/models"
)

func day(year int, month time.Month, d, hour, min int) time.Time {
	return time.Date(year, month, d, hour, min, 0, 0, time.UTC)
}

func TestGenerateSlotsWindow(t *testing.T) {
	doctor := models.Doctor{ID: "doc-1"}

	t.Run("Morning Start Offers Today From Opening", func(t *testing.T) {
		now := day(2025, time.March, 3, 9, 0)
		buckets := GenerateSlots(doctor, now)

		require.Len(t, buckets, 7)
		assert.Equal(t, "3_3_2025", buckets[0].DayKey)
		assert.Equal(t, "10:00", buckets[0].Slots[0].TimeLabel)
	})

	t.Run("Mid Afternoon Rounds Up To Next Hour", func(t *testing.T) {
		now := day(2025, time.March, 3, 14, 40)
		buckets := GenerateSlots(doctor, now)

		require.NotEmpty(t, buckets)
		assert.Equal(t, "3_3_2025", buckets[0].DayKey)
		assert.Equal(t, "15:00", buckets[0].Slots[0].TimeLabel, "minute 40 > 30 rounds to next hour")
	})

	t.Run("Minute At Or Below Thirty Rounds To Half Hour", func(t *testing.T) {
		now := day(2025, time.March, 3, 14, 20)
		buckets := GenerateSlots(doctor, now)

		require.NotEmpty(t, buckets)
		assert.Equal(t, "14:30", buckets[0].Slots[0].TimeLabel)
	})

	t.Run("After Nine PM Window Starts Tomorrow", func(t *testing.T) {
		now := day(2025, time.March, 3, 22, 0)
		buckets := GenerateSlots(doctor, now)

		require.Len(t, buckets, 7)
		for _, b := range buckets {
			assert.NotEqual(t, "3_3_2025", b.DayKey, "today must not be offered after hours")
		}
		assert.Equal(t, "4_3_2025", buckets[0].DayKey)
		assert.Equal(t, "10:00", buckets[0].Slots[0].TimeLabel)
	})

	t.Run("Late Evening Before Cutoff Skips Today Entirely", func(t *testing.T) {
		// 20:45 rounds up to 21:00, past the last slot; today is omitted,
		// not returned as an empty bucket.
		now := day(2025, time.March, 3, 20, 45)
		buckets := GenerateSlots(doctor, now)

		require.Len(t, buckets, 6)
		assert.Equal(t, "4_3_2025", buckets[0].DayKey)
	})
}

func TestGenerateSlotsContents(t *testing.T) {
	t.Run("Slots Stay Within Bounds And Are Unique Per Day", func(t *testing.T) {
		doctor := models.Doctor{ID: "doc-1"}
		now := day(2025, time.March, 3, 9, 0)
		buckets := GenerateSlots(doctor, now)

		for _, b := range buckets {
			seen := make(map[string]bool)
			last := ""
			for _, s := range b.Slots {
				assert.False(t, seen[s.TimeLabel], "duplicate time label %s", s.TimeLabel)
				seen[s.TimeLabel] = true
				assert.True(t, s.TimeLabel >= "10:00" && s.TimeLabel < "21:00", "slot %s out of bounds", s.TimeLabel)
				assert.True(t, s.TimeLabel > last, "slots must ascend within a day")
				last = s.TimeLabel
			}
			assert.Equal(t, b.DayKey, DayKey(b.Slots[0].Start))
		}

		// A full day holds every half-hour between 10:00 and 21:00.
		assert.Len(t, buckets[1].Slots, 22)
	})

	t.Run("Booked Pairs Are Excluded", func(t *testing.T) {
		doctor := models.Doctor{
			ID: "doc-1",
			BookedSlots: map[string][]string{
				"4_3_2025": {"10:00", "15:30"},
			},
		}
		now := day(2025, time.March, 3, 9, 0)
		buckets := GenerateSlots(doctor, now)

		require.Len(t, buckets, 7)
		tomorrow := buckets[1]
		require.Equal(t, "4_3_2025", tomorrow.DayKey)
		assert.Len(t, tomorrow.Slots, 20)
		for _, s := range tomorrow.Slots {
			assert.NotEqual(t, "10:00", s.TimeLabel)
			assert.NotEqual(t, "15:30", s.TimeLabel)
		}
	})

	t.Run("Deterministic For Identical Inputs", func(t *testing.T) {
		doctor := models.Doctor{
			ID:          "doc-1",
			BookedSlots: map[string][]string{"5_3_2025": {"12:00"}},
		}
		now := day(2025, time.March, 3, 11, 17)

		first := GenerateSlots(doctor, now)
		second := GenerateSlots(doctor, now)
		assert.Equal(t, first, second)
	})
}

func TestKeys(t *testing.T) {
	t.Run("Day Key Has No Zero Padding", func(t *testing.T) {
		assert.Equal(t, "5_3_2025", DayKey(day(2025, time.March, 5, 0, 0)))
		assert.Equal(t, "28_11_2025", DayKey(day(2025, time.November, 28, 0, 0)))
	})

	t.Run("Slot Key Is Stable", func(t *testing.T) {
		assert.Equal(t, "slot_doc-1_5_3_2025_1530", SlotKey("doc-1", "5_3_2025", "15:30"))
	})
}
