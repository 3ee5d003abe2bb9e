package utils

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-app-server/internal/models"
)

func TestSlotStartMinutes(t *testing.T) {
	tests := []struct {
		slot    string
		minutes int
	}{
		{"09:00 AM - 10:00 AM", 9 * 60},
		{"10:00 AM - 11:00 AM", 10 * 60},
		{"02:00 PM - 03:00 PM", 14 * 60},
		{"12:00 PM - 01:00 PM", 12 * 60},
		{"12:30 AM - 01:00 AM", 30},
		{"09:00 AM", 9 * 60}, // bare start time, no range
	}

	for _, tt := range tests {
		t.Run(tt.slot, func(t *testing.T) {
			minutes, err := SlotStartMinutes(tt.slot)
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, minutes)
		})
	}
}

func TestSlotStartMinutesInvalid(t *testing.T) {
	for _, slot := range []string{"", "morning", "25:00 AM - 26:00 AM", "9 o'clock"} {
		_, err := SlotStartMinutes(slot)
		assert.Error(t, err, "slot %q should not parse", slot)
	}
}

func TestSlotOrderingIsNumericNotLexical(t *testing.T) {
	slots := []string{"02:00 PM - 03:00 PM", "10:00 AM - 11:00 AM", "09:00 AM - 10:00 AM"}

	sort.Slice(slots, func(i, j int) bool {
		a, _ := SlotStartMinutes(slots[i])
		b, _ := SlotStartMinutes(slots[j])
		return a < b
	})

	assert.Equal(t, []string{
		"09:00 AM - 10:00 AM",
		"10:00 AM - 11:00 AM",
		"02:00 PM - 03:00 PM",
	}, slots)
}

func TestValidateSlotLabel(t *testing.T) {
	require.NoError(t, ValidateSlotLabel("09:00 AM - 10:00 AM"))
	require.NoError(t, ValidateSlotLabel("11:30 PM - 11:45 PM"))

	assert.Error(t, ValidateSlotLabel("09:00 AM"))
	assert.Error(t, ValidateSlotLabel("09:00 - 10:00"))
	assert.Error(t, ValidateSlotLabel("whenever - whenever"))
}

func TestNextSlotOccurrenceSameDayFuture(t *testing.T) {
	// Wednesday 2025-03-12 08:00 local.
	now := time.Date(2025, 3, 12, 8, 0, 0, 0, time.Local)

	got := NextSlotOccurrence(now, models.Wednesday, 9*60)
	assert.Equal(t, time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local), got)
}

func TestNextSlotOccurrenceSameDayPassedRollsForward(t *testing.T) {
	// Wednesday 10:00, slot starts 09:00: next Wednesday.
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)

	got := NextSlotOccurrence(now, models.Wednesday, 9*60)
	assert.Equal(t, time.Date(2025, 3, 19, 9, 0, 0, 0, time.Local), got)
}

func TestNextSlotOccurrenceOtherWeekday(t *testing.T) {
	// Wednesday booking a Monday slot: the following Monday.
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)

	got := NextSlotOccurrence(now, models.Monday, 14*60)
	assert.Equal(t, time.Date(2025, 3, 17, 14, 0, 0, 0, time.Local), got)
}

func TestNextSlotOccurrenceNeverInThePast(t *testing.T) {
	days := []models.DayOfWeek{
		models.Monday, models.Tuesday, models.Wednesday, models.Thursday,
		models.Friday, models.Saturday, models.Sunday,
	}

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	for offset := 0; offset < 7; offset++ {
		for hour := 0; hour < 24; hour += 3 {
			now := base.AddDate(0, 0, offset).Add(time.Duration(hour) * time.Hour)
			for _, day := range days {
				for _, minutes := range []int{0, 9 * 60, 14*60 + 30, 23*60 + 59} {
					got := NextSlotOccurrence(now, day, minutes)
					assert.False(t, got.Before(now),
						"resolved %v is before now %v (day=%s start=%d)", got, now, day, minutes)
					assert.Equal(t, day.Weekday(), got.Weekday())
				}
			}
		}
	}
}

func TestNextSlotOccurrenceDeterministic(t *testing.T) {
	now := time.Date(2025, 3, 12, 8, 0, 0, 0, time.Local)
	first := NextSlotOccurrence(now, models.Friday, 9*60)
	second := NextSlotOccurrence(now, models.Friday, 9*60)
	assert.Equal(t, first, second)
}
