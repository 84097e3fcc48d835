package model

import "time"

// Appointment status codes. Stored as ints; the history "past" condition maps
// to completed and "future" to scheduled.
const (
	StatusScheduled = 0
	StatusCompleted = 1
)

type Doctor struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Specialty    string
	Phone        string
	// AvailableSlots is the doctor's daily template, one "HH:MM-HH:MM" entry
	// per offered hour. Malformed entries are skipped on read, never fatal.
	AvailableSlots []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Patient struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Address      string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Appointment is a fixed one-hour booking of a doctor by a patient. The end
// of the slot is derived from StartTime and never stored.
type Appointment struct {
	ID        string
	DoctorID  string
	PatientID string
	StartTime time.Time
	Status    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the exclusive end of the one-hour slot.
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Hour)
}

// AppointmentView is the flattened history row handed to patients: doctor and
// patient fields are denormalized so callers never receive linked entities.
type AppointmentView struct {
	ID             string
	DoctorID       string
	DoctorName     string
	PatientID      string
	PatientName    string
	PatientEmail   string
	PatientPhone   string
	PatientAddress string
	StartTime      time.Time
	Status         int
}

type Prescription struct {
	ID            string
	AppointmentID string
	PatientName   string
	Medication    string
	Dosage        string
	DoctorNotes   string
	CreatedAt     time.Time
}
