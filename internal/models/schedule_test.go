package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOfWeekOrderAndValidity(t *testing.T) {
	days := []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
	for i, day := range days {
		assert.True(t, day.IsValid())
		assert.Equal(t, i, day.Order(), "Monday-first ordering for %s", day)
	}
	assert.False(t, DayOfWeek("Funday").IsValid())
	assert.Equal(t, time.Monday, Monday.Weekday())
	assert.Equal(t, time.Sunday, Sunday.Weekday())
}

func TestSlotListRoundTrip(t *testing.T) {
	slots := SlotList{"09:00 AM - 10:00 AM", "10:00 AM - 11:00 AM"}

	value, err := slots.Value()
	require.NoError(t, err)

	var decoded SlotList
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, slots, decoded)

	assert.True(t, decoded.Contains("09:00 AM - 10:00 AM"))
	assert.False(t, decoded.Contains("11:00 AM - 12:00 PM"))

	remaining := decoded.Remove("09:00 AM - 10:00 AM")
	assert.Equal(t, SlotList{"10:00 AM - 11:00 AM"}, remaining)
}

func TestSlotListScanString(t *testing.T) {
	var slots SlotList
	require.NoError(t, slots.Scan(`["02:00 PM - 03:00 PM"]`))
	assert.Equal(t, SlotList{"02:00 PM - 03:00 PM"}, slots)

	require.NoError(t, slots.Scan(nil))
	assert.Nil(t, slots)

	assert.Error(t, slots.Scan(42))
}
