// Package booking holds the daily slot catalog and the availability
// computation over it. It is pure: persistence lookups happen in the
// handlers, this package only classifies slots.
package booking

// SlotCatalog is the fixed ordered list of bookable daily time labels.
// The gap between 12:00 and 14:00 is the lunch break.
var SlotCatalog = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"12:00", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00",
}

// SlotStatus reports the booking state of a single catalog slot.
type SlotStatus struct {
	Time      string `json:"time"`
	Status    string `json:"status"` // "booked" or "available"
	Available bool   `json:"available"`
}

// Availability classifies every catalog slot against the time labels of the
// appointments already booked for a given doctor and date. The result always
// has one entry per catalog slot, in catalog order.
func Availability(bookedTimes []string) []SlotStatus {
	booked := make(map[string]struct{}, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = struct{}{}
	}

	slots := make([]SlotStatus, 0, len(SlotCatalog))
	for _, t := range SlotCatalog {
		_, isBooked := booked[t]
		status := "available"
		if isBooked {
			status = "booked"
		}
		slots = append(slots, SlotStatus{
			Time:      t,
			Status:    status,
			Available: !isBooked,
		})
	}
	return slots
}

// IsCatalogSlot reports whether the given time label is part of the catalog.
func IsCatalogSlot(t string) bool {
	for _, s := range SlotCatalog {
		if s == t {
			return true
		}
	}
	return false
}
