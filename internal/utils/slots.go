package utils

import (
	"fmt"
	"strings"
	"time"

	"clinic-app-server/internal/models"
)

// slotTimeLayout parses the 12-hour clock labels used in schedules,
// e.g. "09:00 AM".
const slotTimeLayout = "03:04 PM"

// SlotStartMinutes parses the leading time of a slot label such as
// "09:00 AM - 10:00 AM" and returns it as minutes since midnight.
// A numeric value is required for ordering: lexically "02:00 PM"
// sorts before "09:00 AM" even though it is five hours later.
func SlotStartMinutes(slot string) (int, error) {
	start := slot
	if idx := strings.Index(slot, "-"); idx >= 0 {
		start = slot[:idx]
	}
	parsed, err := time.Parse(slotTimeLayout, strings.TrimSpace(start))
	if err != nil {
		return 0, fmt.Errorf("invalid slot time %q: %w", slot, err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// ValidateSlotLabel checks that a slot label has the expected
// "HH:MM AM/PM - HH:MM AM/PM" shape with both halves parseable.
func ValidateSlotLabel(slot string) error {
	parts := strings.Split(slot, "-")
	if len(parts) != 2 {
		return fmt.Errorf("invalid slot label %q: expected \"HH:MM AM/PM - HH:MM AM/PM\"", slot)
	}
	for _, part := range parts {
		if _, err := time.Parse(slotTimeLayout, strings.TrimSpace(part)); err != nil {
			return fmt.Errorf("invalid slot label %q: %w", slot, err)
		}
	}
	return nil
}

// NextSlotOccurrence resolves a recurring (weekday, slot start) pair to the
// nearest future instant in now's location. Today counts if the start time
// has not yet passed; otherwise the date rolls forward seven days. The
// result is always >= now for a valid input.
func NextSlotOccurrence(now time.Time, day models.DayOfWeek, startMinutes int) time.Time {
	daysAhead := (int(day.Weekday()) - int(now.Weekday()) + 7) % 7
	candidate := time.Date(
		now.Year(), now.Month(), now.Day()+daysAhead,
		startMinutes/60, startMinutes%60, 0, 0,
		now.Location(),
	)
	if candidate.Before(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}
