package utils

import (
	"math"

	"clinic-app-server/internal/models"
)

// minSessionMinutes is the floor applied to the average session length.
// It doubles as the default when no completed session carries both a
// check-in and a completion timestamp, and protects against short
// outlier sessions producing near-zero estimates.
const minSessionMinutes = 10.0

// PredictWaitTime estimates the wait in minutes for a doctor's queue:
// the average observed session duration (floored at ten minutes)
// multiplied by the number of patients currently waiting, rounded to
// the nearest whole minute.
func PredictWaitTime(appointments []models.Appointment) int {
	var total float64
	var completed int
	var waiting int

	for i := range appointments {
		if appointments[i].Status == models.StatusWaiting {
			waiting++
		}
		if minutes, ok := appointments[i].SessionMinutes(); ok {
			total += minutes
			completed++
		}
	}

	avg := minSessionMinutes
	if completed > 0 {
		avg = total / float64(completed)
		if avg < minSessionMinutes {
			avg = minSessionMinutes
		}
	}

	return int(math.Round(avg * float64(waiting)))
}
