package scheduling

import "errors"

// Failure kinds returned by scheduling operations. Callers compare with
// errors.Is; anything else coming out of an operation is an internal
// persistence failure.
var (
	ErrInvalidInput  = errors.New("missing required field")
	ErrInvalidDoctor = errors.New("doctor not found")
	ErrSlotTaken     = errors.New("timeslot not available")
	ErrNotFound      = errors.New("appointment not found")
	ErrUnauthorized  = errors.New("requester does not own appointment")
)
