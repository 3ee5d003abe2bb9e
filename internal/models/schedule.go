package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DayOfWeek is one of the seven weekday names used by schedules.
type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
	Sunday    DayOfWeek = "Sunday"
)

// weekdayOrder assigns Monday-first positions used when sorting schedules.
var weekdayOrder = map[DayOfWeek]int{
	Monday:    0,
	Tuesday:   1,
	Wednesday: 2,
	Thursday:  3,
	Friday:    4,
	Saturday:  5,
	Sunday:    6,
}

// weekdayValue maps schedule weekday names onto time.Weekday.
var weekdayValue = map[DayOfWeek]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
	Sunday:    time.Sunday,
}

// IsValid reports whether d is one of the seven weekday names.
func (d DayOfWeek) IsValid() bool {
	_, ok := weekdayOrder[d]
	return ok
}

// Order returns the Monday-first sort position of d.
func (d DayOfWeek) Order() int {
	return weekdayOrder[d]
}

// Weekday returns the time.Weekday corresponding to d.
func (d DayOfWeek) Weekday() time.Weekday {
	return weekdayValue[d]
}

// SlotList stores a schedule's slot labels as a JSON array in a text column.
type SlotList []string

// Value implements driver.Valuer.
func (s SlotList) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *SlotList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for SlotList: %T", value)
	}
}

// Contains reports whether slot is present in the list.
func (s SlotList) Contains(slot string) bool {
	for _, existing := range s {
		if existing == slot {
			return true
		}
	}
	return false
}

// Remove returns the list without the given slot.
func (s SlotList) Remove(slot string) SlotList {
	out := make(SlotList, 0, len(s))
	for _, existing := range s {
		if existing != slot {
			out = append(out, existing)
		}
	}
	return out
}

// Schedule holds a doctor's bookable slot labels for one weekday.
// There is at most one row per (doctor, day) pair; publishing again
// replaces the slot set rather than adding a second row.
type Schedule struct {
	BaseModel
	DoctorID  string    `gorm:"size:36;not null;uniqueIndex:idx_doctor_day" json:"doctorId"`
	DayOfWeek DayOfWeek `gorm:"size:10;not null;uniqueIndex:idx_doctor_day" json:"dayOfWeek"`
	Slots     SlotList  `gorm:"type:text" json:"availableSlots"`

	// Relations
	Doctor User `gorm:"foreignKey:DoctorID" json:"-"`
}
