package handlers

import (
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// ScheduleHandler handles doctor availability schedules.
type ScheduleHandler struct {
	DB *gorm.DB
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{DB: db}
}

// PublishScheduleRequest represents the request body for publishing a day's slots.
type PublishScheduleRequest struct {
	DoctorID  string   `json:"doctorId" binding:"omitempty,uuid"` // admins may publish for a doctor
	DayOfWeek string   `json:"dayOfWeek" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Slots     []string `json:"availableSlots" binding:"required,min=1"`
}

// resolveDoctorID returns the doctor the caller may act for: doctors act for
// themselves, admins for the doctor named in the request.
func resolveDoctorID(c *gin.Context, requested string) (string, bool) {
	callerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return "", false
	}
	callerRole, _ := middleware.GetUserRoleFromContext(c)

	if requested == "" || requested == callerID {
		return callerID, true
	}
	if callerRole != models.RoleAdmin {
		utils.Forbidden(c, "Doctors can only manage their own schedule.")
		return "", false
	}
	return requested, true
}

// PublishSchedule creates or replaces a doctor's slot set for one weekday.
// Publishing the same (doctor, day) twice never produces a second entry.
func (h *ScheduleHandler) PublishSchedule(c *gin.Context) {
	var req PublishScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, ok := resolveDoctorID(c, req.DoctorID)
	if !ok {
		return
	}

	slots := make(models.SlotList, 0, len(req.Slots))
	for _, slot := range req.Slots {
		if err := utils.ValidateSlotLabel(slot); err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		if !slots.Contains(slot) {
			slots = append(slots, slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool {
		a, _ := utils.SlotStartMinutes(slots[i])
		b, _ := utils.SlotStartMinutes(slots[j])
		return a < b
	})

	day := models.DayOfWeek(req.DayOfWeek)

	// Upsert by (doctor, day): replace the slot set on the existing entry
	// rather than creating a duplicate.
	var schedule models.Schedule
	err := h.DB.Where("doctor_id = ? AND day_of_week = ?", doctorID, day).First(&schedule).Error
	switch {
	case err == nil:
		schedule.Slots = slots
		if err := h.DB.Save(&schedule).Error; err != nil {
			utils.InternalServerError(c, "Failed to update schedule: "+err.Error())
			return
		}
		utils.Success(c, "Schedule updated successfully", schedule)
	case err == gorm.ErrRecordNotFound:
		schedule = models.Schedule{DoctorID: doctorID, DayOfWeek: day, Slots: slots}
		if err := h.DB.Create(&schedule).Error; err != nil {
			utils.InternalServerError(c, "Failed to create schedule: "+err.Error())
			return
		}
		utils.Created(c, "Schedule created successfully", schedule)
	default:
		utils.InternalServerError(c, "Database error: "+err.Error())
	}
}

// ScheduleSlot is one advertised (weekday, time label) pair in a doctor's
// merged schedule.
type ScheduleSlot struct {
	DayOfWeek models.DayOfWeek `json:"dayOfWeek"`
	Time      string           `json:"time"`
}

// DoctorScheduleResponse is the flattened slot list for one doctor.
type DoctorScheduleResponse struct {
	DoctorID       string         `json:"doctorId"`
	AvailableSlots []ScheduleSlot `json:"availableSlots"`
}

// GetDoctorSchedules returns every slot a doctor has published, flattened
// across weekdays and ordered Monday-first, then by slot start time.
func (h *ScheduleHandler) GetDoctorSchedules(c *gin.Context) {
	doctorID := c.Param("doctorId")
	if _, err := uuid.Parse(doctorID); err != nil {
		utils.BadRequest(c, "Invalid Doctor ID format")
		return
	}

	var schedules []models.Schedule
	if err := h.DB.Where("doctor_id = ?", doctorID).Find(&schedules).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch schedules: "+err.Error())
		return
	}
	if len(schedules) == 0 {
		utils.NotFound(c, "No schedules found for this doctor")
		return
	}

	utils.Success(c, "Schedules fetched successfully", DoctorScheduleResponse{
		DoctorID:       doctorID,
		AvailableSlots: FlattenSchedules(schedules),
	})
}

// FlattenSchedules merges per-day schedule entries into one ordered list of
// (weekday, slot) pairs: Monday before Sunday, earlier start times first.
func FlattenSchedules(schedules []models.Schedule) []ScheduleSlot {
	type keyedSlot struct {
		slot    ScheduleSlot
		day     int
		minutes int
	}

	keyed := make([]keyedSlot, 0, len(schedules))
	for _, s := range schedules {
		for _, slot := range s.Slots {
			minutes, err := utils.SlotStartMinutes(slot)
			if err != nil {
				// Unparseable labels sort after everything on their day.
				minutes = 24 * 60
			}
			keyed = append(keyed, keyedSlot{
				slot:    ScheduleSlot{DayOfWeek: s.DayOfWeek, Time: slot},
				day:     s.DayOfWeek.Order(),
				minutes: minutes,
			})
		}
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		if keyed[i].day != keyed[j].day {
			return keyed[i].day < keyed[j].day
		}
		return keyed[i].minutes < keyed[j].minutes
	})

	out := make([]ScheduleSlot, len(keyed))
	for i, k := range keyed {
		out[i] = k.slot
	}
	return out
}

// DeleteScheduleSlotRequest represents the request body for removing one slot.
type DeleteScheduleSlotRequest struct {
	DoctorID  string `json:"doctorId" binding:"omitempty,uuid"`
	DayOfWeek string `json:"dayOfWeek" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Slot      string `json:"slot" binding:"required"`
}

// DeleteScheduleSlot removes one slot label from a doctor's weekday entry.
// Removing the last slot deletes the entry entirely; an empty entry is
// never persisted.
func (h *ScheduleHandler) DeleteScheduleSlot(c *gin.Context) {
	var req DeleteScheduleSlotRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, ok := resolveDoctorID(c, req.DoctorID)
	if !ok {
		return
	}

	var schedule models.Schedule
	if err := h.DB.Where("doctor_id = ? AND day_of_week = ?", doctorID, models.DayOfWeek(req.DayOfWeek)).First(&schedule).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Schedule entry not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !schedule.Slots.Contains(req.Slot) {
		utils.NotFound(c, "Slot not found in schedule")
		return
	}

	remaining := schedule.Slots.Remove(req.Slot)
	if len(remaining) == 0 {
		if err := h.DB.Delete(&schedule).Error; err != nil {
			utils.InternalServerError(c, "Failed to delete schedule entry: "+err.Error())
			return
		}
		utils.Success(c, "Last slot removed, schedule entry deleted", nil)
		return
	}

	schedule.Slots = remaining
	if err := h.DB.Save(&schedule).Error; err != nil {
		utils.InternalServerError(c, "Failed to update schedule: "+err.Error())
		return
	}
	utils.Success(c, "Slot removed successfully", schedule)
}
