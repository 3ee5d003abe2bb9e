package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentStatusIsValid(t *testing.T) {
	assert.True(t, StatusWaiting.IsValid())
	assert.True(t, StatusInProgress.IsValid())
	assert.True(t, StatusCompleted.IsValid())
	assert.False(t, AppointmentStatus("cancelled").IsValid())
	assert.False(t, AppointmentStatus("").IsValid())
}

func TestAppointmentStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"waiting to in_progress", StatusWaiting, StatusInProgress, true},
		{"in_progress to completed", StatusInProgress, StatusCompleted, true},
		{"waiting directly to completed", StatusWaiting, StatusCompleted, true},
		{"in_progress back to waiting", StatusInProgress, StatusWaiting, false},
		{"completed back to in_progress", StatusCompleted, StatusInProgress, false},
		{"completed back to waiting", StatusCompleted, StatusWaiting, false},
		{"waiting to unknown", StatusWaiting, AppointmentStatus("cancelled"), false},
		{"waiting to waiting", StatusWaiting, StatusWaiting, true},
		{"completed to completed", StatusCompleted, StatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestSessionMinutes(t *testing.T) {
	checkIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	done := checkIn.Add(25 * time.Minute)

	appt := Appointment{Status: StatusCompleted, CheckInTime: &checkIn, CompletedTime: &done}
	minutes, ok := appt.SessionMinutes()
	require.True(t, ok)
	assert.InDelta(t, 25.0, minutes, 0.001)

	// Missing timestamps mean the session never yields a duration.
	_, ok = (&Appointment{Status: StatusCompleted, CheckInTime: &checkIn}).SessionMinutes()
	assert.False(t, ok)

	// Non-completed appointments are never counted.
	_, ok = (&Appointment{Status: StatusInProgress, CheckInTime: &checkIn, CompletedTime: &done}).SessionMinutes()
	assert.False(t, ok)
}
