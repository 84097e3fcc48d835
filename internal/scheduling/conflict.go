package scheduling

import (
	"context"
	"time"
)

// ConflictDetector decides whether a candidate time window collides with an
// existing appointment for the same doctor.
type ConflictDetector struct {
	store Store
}

func NewConflictDetector(st Store) *ConflictDetector {
	return &ConflictDetector{store: st}
}

// HasConflict reports whether any appointment other than excludeID overlaps
// the half-open window [start, end) for the doctor. Two intervals [s1,e1) and
// [s2,e2) overlap iff s1 < e2 && s2 < e1; adjacent slots do not conflict.
// excludeID is the update path checking a booking against itself.
func (cd *ConflictDetector) HasConflict(ctx context.Context, doctorID string, start, end time.Time, excludeID string) (bool, error) {
	appts, err := cd.store.AppointmentsIntersecting(ctx, doctorID, start, end)
	if err != nil {
		return false, err
	}
	for i := range appts {
		a := &appts[i]
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		if a.StartTime.Before(end) && start.Before(a.EndTime()) {
			return true, nil
		}
	}
	return false, nil
}
