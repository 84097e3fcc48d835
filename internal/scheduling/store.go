package scheduling

import (
	"context"
	"time"

	"clinic-management-api/internal/model"
)

// Store is the persistence surface the scheduling core runs against. The
// Postgres implementation lives in internal/store; tests use an in-memory one.
//
// Error contract: DoctorByID returns ErrInvalidDoctor and AppointmentByID
// returns ErrNotFound when the row is absent. CreateAppointment and
// UpdateAppointment return ErrSlotTaken when the doctor/time uniqueness
// constraint rejects the write, which is what makes booking atomic per
// (doctor, time window) even when the advisory conflict check races.
type Store interface {
	DoctorByID(ctx context.Context, id string) (*model.Doctor, error)

	AppointmentByID(ctx context.Context, id string) (*model.Appointment, error)
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	UpdateAppointment(ctx context.Context, a *model.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
	SetAppointmentStatus(ctx context.Context, id string, status int) error

	// AppointmentsIntersecting returns the doctor's appointments whose
	// one-hour interval intersects the half-open window [from, to).
	AppointmentsIntersecting(ctx context.Context, doctorID string, from, to time.Time) ([]model.Appointment, error)

	// DayAppointments returns appointments starting in [from, to) ordered by
	// start time; the ByPatientName variant narrows by case-insensitive
	// substring match on the patient's name.
	DayAppointments(ctx context.Context, doctorID string, from, to time.Time) ([]model.Appointment, error)
	DayAppointmentsByPatientName(ctx context.Context, doctorID, patientName string, from, to time.Time) ([]model.Appointment, error)

	// History queries, one per filter combination.
	HistoryByPatient(ctx context.Context, patientID string) ([]model.AppointmentView, error)
	HistoryByPatientAndStatus(ctx context.Context, patientID string, status int) ([]model.AppointmentView, error)
	HistoryByPatientAndDoctorName(ctx context.Context, patientID, doctorName string) ([]model.AppointmentView, error)
	HistoryByPatientAndDoctorNameAndStatus(ctx context.Context, patientID, doctorName string, status int) ([]model.AppointmentView, error)
}
