package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"clinic-management-api/internal/model"
	"clinic-management-api/internal/scheduling"
)

const appointmentCols = `id, doctor_id, patient_id, appointment_time, status, created_at, updated_at`

func scanAppointment(row pgx.Row, a *model.Appointment) error {
	return row.Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.StartTime, &a.Status, &a.CreatedAt, &a.UpdatedAt)
}

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO appointments (id, doctor_id, patient_id, appointment_time, status)
		 VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.DoctorID, a.PatientID, a.StartTime, a.Status,
	)
	if err != nil {
		// the (doctor_id, appointment_time) unique index caught a race
		if isUniqueViolation(err) {
			return scheduling.ErrSlotTaken
		}
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (s *Store) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	row := s.pool.QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE id = $1`, id)
	if err := scanAppointment(row, a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, scheduling.ErrNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func (s *Store) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments
		 SET doctor_id=$1, patient_id=$2, appointment_time=$3, status=$4, updated_at=NOW()
		 WHERE id=$5`,
		a.DoctorID, a.PatientID, a.StartTime, a.Status, a.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return scheduling.ErrSlotTaken
		}
		return fmt.Errorf("update appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scheduling.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}

func (s *Store) SetAppointmentStatus(ctx context.Context, id string, status int) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return fmt.Errorf("set appointment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scheduling.ErrNotFound
	}
	return nil
}

func (s *Store) AppointmentsIntersecting(ctx context.Context, doctorID string, from, to time.Time) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+appointmentCols+`
		 FROM appointments
		 WHERE doctor_id = $1
		   AND appointment_time < $3
		   AND appointment_time + interval '1 hour' > $2
		 ORDER BY appointment_time`, doctorID, from, to,
	)
	return collectAppointments(rows, err)
}

func (s *Store) DayAppointments(ctx context.Context, doctorID string, from, to time.Time) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+appointmentCols+`
		 FROM appointments
		 WHERE doctor_id = $1
		   AND appointment_time >= $2 AND appointment_time < $3
		 ORDER BY appointment_time`, doctorID, from, to,
	)
	return collectAppointments(rows, err)
}

func (s *Store) DayAppointmentsByPatientName(ctx context.Context, doctorID, patientName string, from, to time.Time) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.doctor_id, a.patient_id, a.appointment_time, a.status, a.created_at, a.updated_at
		 FROM appointments a
		 JOIN patients p ON p.id = a.patient_id
		 WHERE a.doctor_id = $1
		   AND p.name ILIKE '%' || $2 || '%'
		   AND a.appointment_time >= $3 AND a.appointment_time < $4
		 ORDER BY a.appointment_time`, doctorID, patientName, from, to,
	)
	return collectAppointments(rows, err)
}

func collectAppointments(rows pgx.Rows, err error) ([]model.Appointment, error) {
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := scanAppointment(rows, &a); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
