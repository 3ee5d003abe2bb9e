package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"clinic-app-server/internal/models"
)

func completedAppointment(sessionMinutes int) models.Appointment {
	checkIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	done := checkIn.Add(time.Duration(sessionMinutes) * time.Minute)
	return models.Appointment{
		Status:        models.StatusCompleted,
		CheckInTime:   &checkIn,
		CompletedTime: &done,
	}
}

func waitingAppointments(n int) []models.Appointment {
	appts := make([]models.Appointment, n)
	for i := range appts {
		appts[i] = models.Appointment{Status: models.StatusWaiting}
	}
	return appts
}

func TestPredictWaitTimeDefaultWhenNoHistory(t *testing.T) {
	appts := waitingAppointments(3)
	assert.Equal(t, 30, PredictWaitTime(appts))
}

func TestPredictWaitTimeFloorsShortSessions(t *testing.T) {
	// One 2-minute session and two waiting patients: the 10-minute
	// floor applies, so the estimate is 20, not 4.
	appts := append(waitingAppointments(2), completedAppointment(2))
	assert.Equal(t, 20, PredictWaitTime(appts))
}

func TestPredictWaitTimeUsesObservedAverage(t *testing.T) {
	appts := append(waitingAppointments(2), completedAppointment(20), completedAppointment(40))
	assert.Equal(t, 60, PredictWaitTime(appts))
}

func TestPredictWaitTimeEmptyQueue(t *testing.T) {
	appts := []models.Appointment{completedAppointment(30)}
	assert.Equal(t, 0, PredictWaitTime(appts))
}

func TestPredictWaitTimeIgnoresIncompleteTimestamps(t *testing.T) {
	checkIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	appts := []models.Appointment{
		{Status: models.StatusCompleted, CheckInTime: &checkIn}, // no completion timestamp
		{Status: models.StatusCompleted},                        // no timestamps at all
		{Status: models.StatusWaiting},
	}
	// No usable history: the 10-minute default applies per waiting patient.
	assert.Equal(t, 10, PredictWaitTime(appts))
}

func TestPredictWaitTimeRoundsToNearestMinute(t *testing.T) {
	// 25 and 30 minute sessions average 27.5; one waiting patient
	// rounds to 28.
	appts := append(waitingAppointments(1), completedAppointment(25), completedAppointment(30))
	assert.Equal(t, 28, PredictWaitTime(appts))
}

func TestPredictWaitTimeInProgressNotCounted(t *testing.T) {
	appts := []models.Appointment{
		{Status: models.StatusInProgress},
		{Status: models.StatusWaiting},
	}
	assert.Equal(t, 10, PredictWaitTime(appts))
}
