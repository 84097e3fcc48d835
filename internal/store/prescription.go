package store

import (
	"context"
	"errors"
	"fmt"

	"clinic-management-api/internal/model"
)

// ErrDuplicatePrescription is returned when the appointment already has a
// prescription recorded.
var ErrDuplicatePrescription = errors.New("prescription already exists for appointment")

func (s *Store) CreatePrescription(ctx context.Context, p *model.Prescription) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO prescriptions (id, appointment_id, patient_name, medication, dosage, doctor_notes)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.AppointmentID, p.PatientName, p.Medication, p.Dosage, p.DoctorNotes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePrescription
		}
		return fmt.Errorf("create prescription: %w", err)
	}
	return nil
}

func (s *Store) PrescriptionsByAppointment(ctx context.Context, appointmentID string) ([]model.Prescription, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, appointment_id, patient_name, medication, dosage, doctor_notes, created_at
		 FROM prescriptions WHERE appointment_id = $1`, appointmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("query prescriptions: %w", err)
	}
	defer rows.Close()

	var out []model.Prescription
	for rows.Next() {
		var p model.Prescription
		if err := rows.Scan(&p.ID, &p.AppointmentID, &p.PatientName, &p.Medication,
			&p.Dosage, &p.DoctorNotes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prescription: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
