package booking

import "testing"

func TestAvailability_EmptySchedule(t *testing.T) {
	slots := Availability(nil)

	if len(slots) != 14 {
		t.Fatalf("expected 14 slots, got %d", len(slots))
	}
	for i, slot := range slots {
		if slot.Time != SlotCatalog[i] {
			t.Fatalf("slot %d: expected time %s, got %s", i, SlotCatalog[i], slot.Time)
		}
		if slot.Status != "available" || !slot.Available {
			t.Fatalf("slot %s: expected available, got %+v", slot.Time, slot)
		}
	}
}

func TestAvailability_OneBookedSlot(t *testing.T) {
	slots := Availability([]string{"10:00"})

	if len(slots) != 14 {
		t.Fatalf("expected 14 slots, got %d", len(slots))
	}
	for _, slot := range slots {
		if slot.Time == "10:00" {
			if slot.Status != "booked" || slot.Available {
				t.Fatalf("10:00 should be booked, got %+v", slot)
			}
			continue
		}
		if slot.Status != "available" || !slot.Available {
			t.Fatalf("%s should be available, got %+v", slot.Time, slot)
		}
	}
}

func TestAvailability_StatusIsBinary(t *testing.T) {
	slots := Availability([]string{"09:00", "14:00", "17:00"})

	for _, slot := range slots {
		if slot.Status != "booked" && slot.Status != "available" {
			t.Fatalf("slot %s has unexpected status %q", slot.Time, slot.Status)
		}
		if slot.Available == (slot.Status == "booked") {
			t.Fatalf("slot %s: Available flag inconsistent with status %q", slot.Time, slot.Status)
		}
	}
}

func TestAvailability_IgnoresNonCatalogTimes(t *testing.T) {
	// A record holding "13:00" (lunch) must not create a 15th entry.
	slots := Availability([]string{"13:00"})

	if len(slots) != 14 {
		t.Fatalf("expected 14 slots, got %d", len(slots))
	}
	for _, slot := range slots {
		if slot.Status != "available" {
			t.Fatalf("slot %s: expected available, got %s", slot.Time, slot.Status)
		}
	}
}

func TestSlotCatalog_LunchGap(t *testing.T) {
	for _, s := range SlotCatalog {
		if s == "12:30" || s == "13:00" || s == "13:30" {
			t.Fatalf("catalog must not contain lunch slot %s", s)
		}
	}
}

func TestIsCatalogSlot(t *testing.T) {
	if !IsCatalogSlot("09:00") || !IsCatalogSlot("17:00") {
		t.Fatal("catalog boundary slots should be recognized")
	}
	if IsCatalogSlot("13:00") || IsCatalogSlot("08:30") || IsCatalogSlot("") {
		t.Fatal("non-catalog times must not be recognized")
	}
}
