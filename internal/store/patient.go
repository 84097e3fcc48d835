package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"clinic-management-api/internal/model"
)

var (
	// ErrDuplicatePatient is returned when a patient with the same email or
	// phone already exists.
	ErrDuplicatePatient = errors.New("patient already exists")
	ErrPatientNotFound  = errors.New("patient not found")
)

const patientCols = `id, name, email, phone, address, password_hash, created_at, updated_at`

func scanPatient(row pgx.Row, p *model.Patient) error {
	return row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Address, &p.PasswordHash,
		&p.CreatedAt, &p.UpdatedAt)
}

func (s *Store) CreatePatient(ctx context.Context, p *model.Patient) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO patients (id, name, email, phone, address, password_hash)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.Name, p.Email, p.Phone, p.Address, p.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePatient
		}
		return fmt.Errorf("create patient: %w", err)
	}
	return nil
}

func (s *Store) PatientByID(ctx context.Context, id string) (*model.Patient, error) {
	p := &model.Patient{}
	row := s.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id)
	if err := scanPatient(row, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

func (s *Store) PatientByEmail(ctx context.Context, email string) (*model.Patient, error) {
	p := &model.Patient{}
	row := s.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE email = $1`, email)
	if err := scanPatient(row, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("get patient by email: %w", err)
	}
	return p, nil
}

// PatientExists reports whether a patient with the given email or phone is
// already registered.
func (s *Store) PatientExists(ctx context.Context, email, phone string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM patients WHERE email = $1 OR phone = $2)`,
		email, phone,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("patient exists: %w", err)
	}
	return exists, nil
}
