package scheduling

import (
	"context"
	"strings"
	"time"
)

const slotTimeLayout = "15:04"

// AvailabilityIndex enumerates a doctor's free slot starts for a given date.
type AvailabilityIndex struct {
	store Store
}

func NewAvailabilityIndex(st Store) *AvailabilityIndex {
	return &AvailabilityIndex{store: st}
}

// ListAvailable returns the start times ("HH:MM") of the doctor's template
// slots that are not already booked on date, in declared template order.
// Malformed and duplicate template entries are skipped.
func (ai *AvailabilityIndex) ListAvailable(ctx context.Context, doctorID string, date time.Time) ([]string, error) {
	doc, err := ai.store.DoctorByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	from := startOfDay(date)
	booked, err := ai.store.DayAppointments(ctx, doctorID, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	// compare wall times in the caller's zone; the store may hand back
	// timestamps in a different location
	taken := make(map[string]bool, len(booked))
	for _, a := range booked {
		taken[a.StartTime.In(date.Location()).Format(slotTimeLayout)] = true
	}

	var out []string
	seen := make(map[string]bool, len(doc.AvailableSlots))
	for _, slot := range doc.AvailableSlots {
		start, ok := parseSlotStart(slot)
		if !ok || seen[start] {
			continue
		}
		seen[start] = true
		if taken[start] {
			continue
		}
		out = append(out, start)
	}
	return out, nil
}

// ValidStart reports whether start coincides with the start of one of the
// doctor's declared slots. Booking itself does not enforce this; it is a
// pre-check for callers that want one.
func (ai *AvailabilityIndex) ValidStart(ctx context.Context, doctorID string, start time.Time) (bool, error) {
	doc, err := ai.store.DoctorByID(ctx, doctorID)
	if err != nil {
		return false, err
	}
	want := start.Format(slotTimeLayout)
	for _, slot := range doc.AvailableSlots {
		if s, ok := parseSlotStart(slot); ok && s == want {
			return true, nil
		}
	}
	return false, nil
}

// parseSlotStart extracts the normalized "HH:MM" start from a "HH:MM-HH:MM"
// template entry. ok is false for entries that don't parse.
func parseSlotStart(slot string) (string, bool) {
	start, _, found := strings.Cut(slot, "-")
	if !found {
		return "", false
	}
	t, err := time.Parse(slotTimeLayout, strings.TrimSpace(start))
	if err != nil {
		return "", false
	}
	return t.Format(slotTimeLayout), true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SlotPeriod classifies a slot start for AM/PM filtering of doctor searches.
func SlotPeriod(slot string) (string, bool) {
	start, ok := parseSlotStart(slot)
	if !ok {
		return "", false
	}
	t, _ := time.Parse(slotTimeLayout, start)
	if t.Hour() < 12 {
		return "am", true
	}
	return "pm", true
}
