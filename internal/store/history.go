package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"clinic-management-api/internal/model"
)

const historySelect = `
	SELECT a.id, d.id, d.name, p.id, p.name, p.email, p.phone, p.address, a.appointment_time, a.status
	FROM appointments a
	JOIN doctors d ON d.id = a.doctor_id
	JOIN patients p ON p.id = a.patient_id`

func (s *Store) HistoryByPatient(ctx context.Context, patientID string) ([]model.AppointmentView, error) {
	rows, err := s.pool.Query(ctx,
		historySelect+` WHERE a.patient_id = $1`, patientID)
	return collectViews(rows, err)
}

func (s *Store) HistoryByPatientAndStatus(ctx context.Context, patientID string, status int) ([]model.AppointmentView, error) {
	rows, err := s.pool.Query(ctx,
		historySelect+` WHERE a.patient_id = $1 AND a.status = $2
		 ORDER BY a.appointment_time`, patientID, status)
	return collectViews(rows, err)
}

func (s *Store) HistoryByPatientAndDoctorName(ctx context.Context, patientID, doctorName string) ([]model.AppointmentView, error) {
	rows, err := s.pool.Query(ctx,
		historySelect+` WHERE a.patient_id = $1 AND d.name ILIKE '%' || $2 || '%'`,
		patientID, doctorName)
	return collectViews(rows, err)
}

func (s *Store) HistoryByPatientAndDoctorNameAndStatus(ctx context.Context, patientID, doctorName string, status int) ([]model.AppointmentView, error) {
	rows, err := s.pool.Query(ctx,
		historySelect+` WHERE a.patient_id = $1 AND d.name ILIKE '%' || $2 || '%' AND a.status = $3`,
		patientID, doctorName, status)
	return collectViews(rows, err)
}

func collectViews(rows pgx.Rows, err error) ([]model.AppointmentView, error) {
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []model.AppointmentView
	for rows.Next() {
		var v model.AppointmentView
		if err := rows.Scan(
			&v.ID, &v.DoctorID, &v.DoctorName,
			&v.PatientID, &v.PatientName, &v.PatientEmail, &v.PatientPhone, &v.PatientAddress,
			&v.StartTime, &v.Status,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
