package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB *gorm.DB
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db}
}

// BookAppointmentRequest represents the request body for booking an appointment.
// The patient picks a recurring (weekday, slot) pair from a doctor's schedule;
// the server resolves it to a concrete timestamp.
type BookAppointmentRequest struct {
	DoctorID  string `json:"doctorId" binding:"required,uuid"`
	PatientID string `json:"patientId" binding:"omitempty,uuid"` // defaults to the authenticated user
	DayOfWeek string `json:"dayOfWeek" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Slot      string `json:"slot" binding:"required"`
}

// BookAppointment handles creating a new appointment. Initiated by a patient.
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	callerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	callerRole, _ := middleware.GetUserRoleFromContext(c)

	patientID := req.PatientID
	if patientID == "" {
		patientID = callerID
	}
	// Patients can only book for themselves; doctors and admins may book on
	// a patient's behalf.
	if callerRole == models.RolePatient && patientID != callerID {
		utils.Forbidden(c, "Patients can only book appointments for themselves.")
		return
	}

	// Verify doctor exists and is a doctor
	var doctor models.User
	if err := h.DB.Where("id = ? AND role = ?", req.DoctorID, models.RoleDoctor).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found or user is not a doctor")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}
	// Verify patient exists
	var patient models.User
	if err := h.DB.Where("id = ? AND role = ?", patientID, models.RolePatient).First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	startMinutes, err := utils.SlotStartMinutes(req.Slot)
	if err != nil {
		utils.BadRequest(c, "Invalid slot time: "+err.Error())
		return
	}

	// The chosen pair is not checked against the doctor's published schedule;
	// the catalog advertises availability, it does not reserve capacity.
	scheduledTime := utils.NextSlotOccurrence(time.Now(), models.DayOfWeek(req.DayOfWeek), startMinutes)

	appointment := models.Appointment{
		DoctorID:      req.DoctorID,
		PatientID:     patientID,
		ScheduledTime: scheduledTime,
		Status:        models.StatusWaiting,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment booked successfully", appointment)
}

// GetQueue handles fetching a doctor's live queue: every waiting or
// in-progress appointment, earliest scheduled time first. This is the
// order patients will be served in.
func (h *AppointmentHandler) GetQueue(c *gin.Context) {
	doctorID := c.Param("doctorId")
	if _, err := uuid.Parse(doctorID); err != nil {
		utils.BadRequest(c, "Invalid Doctor ID format")
		return
	}

	var queue []models.Appointment
	err := h.DB.Preload("Patient").
		Where("doctor_id = ? AND status IN ?", doctorID, []models.AppointmentStatus{models.StatusWaiting, models.StatusInProgress}).
		Order("scheduled_time asc").
		Find(&queue).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch queue: "+err.Error())
		return
	}

	utils.Success(c, "Queue fetched successfully", queue)
}

// WaitTimeResponse carries the on-demand wait estimate for a doctor's queue.
type WaitTimeResponse struct {
	DoctorID    string `json:"doctorId"`
	WaitMinutes int    `json:"waitMinutes"`
}

// GetWaitTime estimates how long a newly arrived patient would wait,
// recomputed from the doctor's appointment history on every call.
func (h *AppointmentHandler) GetWaitTime(c *gin.Context) {
	doctorID := c.Param("doctorId")
	if _, err := uuid.Parse(doctorID); err != nil {
		utils.BadRequest(c, "Invalid Doctor ID format")
		return
	}

	var appointments []models.Appointment
	if err := h.DB.Where("doctor_id = ?", doctorID).Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Wait time estimated successfully", WaitTimeResponse{
		DoctorID:    doctorID,
		WaitMinutes: utils.PredictWaitTime(appointments),
	})
}

// UpdateAppointmentStatusRequest represents the request body for updating an
// appointment's status.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=waiting in_progress completed"`
}

// UpdateAppointmentStatus moves an appointment through its lifecycle.
// Only forward moves are permitted; completed is terminal. Check-in and
// completion timestamps are recorded on the corresponding transitions so
// wait-time estimation has real session durations to work from.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	appointmentID := c.Param("id")
	if _, err := uuid.Parse(appointmentID); err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole != models.RoleAdmin && userID != appointment.DoctorID {
		utils.Forbidden(c, "Only the appointment's doctor can update its status.")
		return
	}

	if !appointment.Status.CanTransitionTo(req.Status) {
		utils.BadRequest(c, "Cannot move appointment from '"+string(appointment.Status)+"' to '"+string(req.Status)+"'")
		return
	}

	now := time.Now()
	if req.Status == models.StatusInProgress && appointment.CheckInTime == nil {
		appointment.CheckInTime = &now
	}
	if req.Status == models.StatusCompleted && appointment.CompletedTime == nil {
		appointment.CompletedTime = &now
	}
	appointment.Status = req.Status

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}

	utils.Success(c, "Appointment status updated successfully", appointment)
}

// SetRemarksRequest represents the request body for attaching doctor remarks.
type SetRemarksRequest struct {
	Remarks string `json:"remarks" binding:"required"`
}

// SetRemarks attaches or updates the doctor's remarks on an appointment.
// The text must be non-empty after trimming.
func (h *AppointmentHandler) SetRemarks(c *gin.Context) {
	appointmentID := c.Param("id")
	if _, err := uuid.Parse(appointmentID); err != nil {
		utils.BadRequest(c, "Invalid Appointment ID format")
		return
	}

	var req SetRemarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	remarks := strings.TrimSpace(req.Remarks)
	if remarks == "" {
		utils.BadRequest(c, "Remarks text is required")
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole != models.RoleAdmin && userID != appointment.DoctorID {
		utils.Forbidden(c, "Only the appointment's doctor can add remarks.")
		return
	}

	now := time.Now()
	appointment.Remarks = remarks
	appointment.RemarksAddedAt = &now

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to save remarks: "+err.Error())
		return
	}

	utils.Success(c, "Remarks saved successfully", appointment)
}

// GetPatientAppointments returns the full appointment history for a patient,
// most recent scheduled time first. Defaults to the authenticated user; an
// explicit patientId query parameter is honored for doctors and admins.
func (h *AppointmentHandler) GetPatientAppointments(c *gin.Context) {
	callerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	callerRole, _ := middleware.GetUserRoleFromContext(c)

	patientID := callerID
	if override := c.Query("patientId"); override != "" {
		if callerRole == models.RolePatient && override != callerID {
			utils.Forbidden(c, "Patients can only view their own appointments.")
			return
		}
		patientID = override
	}

	query := h.DB.Preload("Doctor").Where("patient_id = ?", patientID).Order("scheduled_time desc")
	query, ok := applyStatusFilter(c, query)
	if !ok {
		return
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetDoctorAppointments returns the full appointment history for a doctor,
// most recent scheduled time first.
func (h *AppointmentHandler) GetDoctorAppointments(c *gin.Context) {
	callerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	callerRole, _ := middleware.GetUserRoleFromContext(c)

	doctorID := callerID
	if override := c.Query("doctorId"); override != "" {
		if callerRole == models.RoleDoctor && override != callerID {
			utils.Forbidden(c, "Doctors can only view their own appointments.")
			return
		}
		doctorID = override
	}

	query := h.DB.Preload("Patient").Where("doctor_id = ?", doctorID).Order("scheduled_time desc")
	query, ok := applyStatusFilter(c, query)
	if !ok {
		return
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// applyStatusFilter narrows a history query by the optional ?status=
// parameter. Returns false after responding if the value is not a
// recognized status.
func applyStatusFilter(c *gin.Context, query *gorm.DB) (*gorm.DB, bool) {
	status := c.Query("status")
	if status == "" {
		return query, true
	}
	if !models.AppointmentStatus(status).IsValid() {
		utils.BadRequest(c, "Invalid status filter: "+status)
		return nil, false
	}
	return query.Where("status = ?", status), true
}
