package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusWaiting    AppointmentStatus = "waiting"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
)

// statusOrder defines the forward progression of the appointment lifecycle.
var statusOrder = map[AppointmentStatus]int{
	StatusWaiting:    0,
	StatusInProgress: 1,
	StatusCompleted:  2,
}

// IsValid reports whether s is a recognized appointment status.
func (s AppointmentStatus) IsValid() bool {
	_, ok := statusOrder[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed.
// The lifecycle only moves forward: waiting -> in_progress -> completed.
// Skipping ahead (waiting -> completed) is allowed, moving backward is not.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	from, ok := statusOrder[s]
	if !ok {
		return false
	}
	to, ok := statusOrder[next]
	if !ok {
		return false
	}
	return to >= from
}

// Appointment represents one patient-doctor booking. Appointments are
// permanent history and are never deleted.
type Appointment struct {
	BaseModel
	DoctorID       string            `gorm:"size:36;index;not null" json:"doctorId"`
	PatientID      string            `gorm:"size:36;index;not null" json:"patientId"`
	ScheduledTime  time.Time         `json:"scheduledTime"`
	Status         AppointmentStatus `gorm:"size:20;default:'waiting'" json:"status"`
	Remarks        string            `gorm:"type:text" json:"remarks,omitempty"`
	RemarksAddedAt *time.Time        `json:"remarksAddedAt,omitempty"`
	CheckInTime    *time.Time        `json:"checkInTime,omitempty"`
	CompletedTime  *time.Time        `json:"completedTime,omitempty"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"patient"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor"`
}

// SessionMinutes returns the observed session duration in minutes, and
// whether both the check-in and completion timestamps were recorded.
func (a *Appointment) SessionMinutes() (float64, bool) {
	if a.Status != StatusCompleted || a.CheckInTime == nil || a.CompletedTime == nil {
		return 0, false
	}
	return a.CompletedTime.Sub(*a.CheckInTime).Minutes(), true
}
