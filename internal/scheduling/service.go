package scheduling

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"clinic-management-api/internal/model"
)

// SlotDuration is the fixed length of every appointment.
const SlotDuration = time.Hour

// Service orchestrates booking, update, cancellation and status changes.
// Authorization happens outside: callers pass the already-resolved patient id
// of the requester where ownership matters.
type Service struct {
	store     Store
	avail     *AvailabilityIndex
	conflicts *ConflictDetector

	// strictCancel additionally refuses to cancel completed appointments.
	strictCancel bool
}

type Option func(*Service)

// WithStrictCancel makes Cancel refuse appointments that are already
// completed instead of deleting them.
func WithStrictCancel() Option {
	return func(s *Service) { s.strictCancel = true }
}

func NewService(st Store, opts ...Option) *Service {
	s := &Service{
		store:     st,
		avail:     NewAvailabilityIndex(st),
		conflicts: NewConflictDetector(st),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Availability exposes the index for callers that list or pre-check slots.
func (s *Service) Availability() *AvailabilityIndex { return s.avail }

// Book creates a one-hour appointment starting at start. It checks the doctor
// exists and the window is free; it does not require start to match the
// doctor's availability template. Returns the new appointment id.
func (s *Service) Book(ctx context.Context, doctorID, patientID string, start time.Time) (string, error) {
	if doctorID == "" || patientID == "" || start.IsZero() {
		return "", ErrInvalidInput
	}
	if _, err := s.store.DoctorByID(ctx, doctorID); err != nil {
		return "", err
	}

	end := start.Add(SlotDuration)
	conflict, err := s.conflicts.HasConflict(ctx, doctorID, start, end, "")
	if err != nil {
		return "", err
	}
	if conflict {
		return "", ErrSlotTaken
	}

	a := &model.Appointment{
		ID:        uuid.New().String(),
		DoctorID:  doctorID,
		PatientID: patientID,
		StartTime: start,
		Status:    model.StatusScheduled,
	}
	// The store's uniqueness constraint settles concurrent bookings that both
	// passed the check above; the loser comes back as ErrSlotTaken.
	if err := s.store.CreateAppointment(ctx, a); err != nil {
		return "", err
	}
	return a.ID, nil
}

// Patch carries the optional fields of an update. Zero values mean keep the
// existing value.
type Patch struct {
	DoctorID  string
	StartTime *time.Time
	PatientID string
	Status    *int
}

// Update reschedules or amends an appointment on behalf of the owning
// patient. The conflict check runs against the effective doctor and time with
// the appointment itself excluded, so an update that keeps the slot never
// collides with itself.
func (s *Service) Update(ctx context.Context, appointmentID string, patch Patch, requestingPatientID string) error {
	if appointmentID == "" || requestingPatientID == "" {
		return ErrInvalidInput
	}
	existing, err := s.store.AppointmentByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if existing.PatientID != requestingPatientID {
		return ErrUnauthorized
	}

	doctorID := existing.DoctorID
	if patch.DoctorID != "" {
		doctorID = patch.DoctorID
	}
	if _, err := s.store.DoctorByID(ctx, doctorID); err != nil {
		return err
	}

	start := existing.StartTime
	if patch.StartTime != nil {
		start = *patch.StartTime
	}
	conflict, err := s.conflicts.HasConflict(ctx, doctorID, start, start.Add(SlotDuration), appointmentID)
	if err != nil {
		return err
	}
	if conflict {
		return ErrSlotTaken
	}

	existing.DoctorID = doctorID
	existing.StartTime = start
	if patch.PatientID != "" {
		existing.PatientID = patch.PatientID
	}
	if patch.Status != nil && ValidStatus(*patch.Status) {
		existing.Status = *patch.Status
	}
	return s.store.UpdateAppointment(ctx, existing)
}

// Cancel hard-deletes an appointment owned by requestingPatientID. It returns
// false, nil when the appointment is missing, owned by someone else, or (with
// strict cancel) already completed; errors are reserved for store failures.
func (s *Service) Cancel(ctx context.Context, appointmentID, requestingPatientID string) (bool, error) {
	existing, err := s.store.AppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if existing.PatientID != requestingPatientID {
		return false, nil
	}
	if s.strictCancel && existing.Status == model.StatusCompleted {
		return false, nil
	}
	if err := s.store.DeleteAppointment(ctx, appointmentID); err != nil {
		return false, err
	}
	return true, nil
}

// ChangeStatus applies a lifecycle-legal status change and reports whether it
// was applied. Callers are trusted to have authorized the change; there is no
// ownership check here.
func (s *Service) ChangeStatus(ctx context.Context, appointmentID string, status int) (bool, error) {
	if !ValidStatus(status) {
		return false, nil
	}
	existing, err := s.store.AppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if !CanTransition(existing.Status, status) {
		return false, nil
	}
	if err := s.store.SetAppointmentStatus(ctx, appointmentID, status); err != nil {
		return false, err
	}
	return true, nil
}

// DayAppointments lists a doctor's appointments starting within the given
// date, ordered by start time, optionally narrowed by a case-insensitive
// substring match on the patient name.
func (s *Service) DayAppointments(ctx context.Context, doctorID string, date time.Time, patientName string) ([]model.Appointment, error) {
	if doctorID == "" {
		return nil, ErrInvalidInput
	}
	from := startOfDay(date)
	to := from.AddDate(0, 0, 1)
	if strings.TrimSpace(patientName) == "" {
		return s.store.DayAppointments(ctx, doctorID, from, to)
	}
	return s.store.DayAppointmentsByPatientName(ctx, doctorID, patientName, from, to)
}
