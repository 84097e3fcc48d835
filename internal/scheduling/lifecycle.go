package scheduling

import "clinic-management-api/internal/model"

// Appointment lifecycle: Scheduled is the initial state, Completed is
// terminal. Cancellation is a hard delete, not a transition.

// ValidStatus reports whether s is a known status code.
func ValidStatus(s int) bool {
	return s == model.StatusScheduled || s == model.StatusCompleted
}

// CanTransition reports whether moving from one status to another is legal.
// Same-status writes are allowed as no-ops; the only real transition is
// Scheduled to Completed. Nothing leaves Completed.
func CanTransition(from, to int) bool {
	if from == to {
		return ValidStatus(to)
	}
	return from == model.StatusScheduled && to == model.StatusCompleted
}
