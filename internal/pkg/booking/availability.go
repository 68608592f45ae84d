package booking

import (
	"time"

	"github.com/vetdeskhq/vetdesk/app/models"
)

// DefaultSlotLength is used when a clinic has no explicit slot configuration.
const DefaultSlotLength = 30 * time.Minute

// Slot is one bookable window on a clinic's calendar.
type Slot struct {
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// FreeSlots computes the open windows for one clinic day. Slots run from the
// clinic's opening hour to its closing hour in fixed-length steps; a slot is
// taken when any blocking appointment overlaps it. Canceled and no-show
// appointments never block.
//
// The day's date and the clinic timezone come in through day's location;
// callers resolve the clinic timezone before calling.
func FreeSlots(clinic *models.Clinic, appointments []models.Appointment, day time.Time, slotLength time.Duration) []Slot {
	if slotLength <= 0 {
		slotLength = DefaultSlotLength
	}

	open := time.Date(day.Year(), day.Month(), day.Day(), clinic.OpeningHour, 0, 0, 0, day.Location())
	close := time.Date(day.Year(), day.Month(), day.Day(), clinic.ClosingHour, 0, 0, 0, day.Location())
	if !open.Before(close) {
		return nil
	}

	blocking := make([]models.Appointment, 0, len(appointments))
	for _, appt := range appointments {
		if appt.BlocksSlot() {
			blocking = append(blocking, appt)
		}
	}

	var free []Slot
	for start := open; !start.Add(slotLength).After(close); start = start.Add(slotLength) {
		end := start.Add(slotLength)
		if !overlapsAny(blocking, start, end) {
			free = append(free, Slot{StartsAt: start, EndsAt: end})
		}
	}
	return free
}

func overlapsAny(appointments []models.Appointment, start, end time.Time) bool {
	for _, appt := range appointments {
		if appt.StartsAt.Before(end) && appt.EndsAt.After(start) {
			return true
		}
	}
	return false
}
