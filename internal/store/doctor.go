package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"clinic-management-api/internal/model"
	"clinic-management-api/internal/scheduling"
)

// ErrDuplicateDoctor is returned when a doctor with the same email exists.
var ErrDuplicateDoctor = errors.New("doctor already exists")

const doctorCols = `id, name, email, password_hash, specialty, phone, available_slots, created_at, updated_at`

func scanDoctor(row pgx.Row, d *model.Doctor) error {
	return row.Scan(&d.ID, &d.Name, &d.Email, &d.PasswordHash, &d.Specialty, &d.Phone,
		&d.AvailableSlots, &d.CreatedAt, &d.UpdatedAt)
}

func (s *Store) CreateDoctor(ctx context.Context, d *model.Doctor) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO doctors (id, name, email, password_hash, specialty, phone, available_slots)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		d.ID, d.Name, d.Email, d.PasswordHash, d.Specialty, d.Phone, d.AvailableSlots,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateDoctor
		}
		return fmt.Errorf("create doctor: %w", err)
	}
	return nil
}

func (s *Store) DoctorByID(ctx context.Context, id string) (*model.Doctor, error) {
	d := &model.Doctor{}
	row := s.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id)
	if err := scanDoctor(row, d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, scheduling.ErrInvalidDoctor
		}
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return d, nil
}

func (s *Store) DoctorByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	d := &model.Doctor{}
	row := s.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE email = $1`, email)
	if err := scanDoctor(row, d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, scheduling.ErrInvalidDoctor
		}
		return nil, fmt.Errorf("get doctor by email: %w", err)
	}
	return d, nil
}

func (s *Store) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+doctorCols+` FROM doctors ORDER BY name`)
	return collectDoctors(rows, err)
}

// FilterDoctors narrows by case-insensitive name substring and exact
// specialty; empty arguments skip that filter. Period (am/pm) filtering on
// slot templates happens in the caller.
func (s *Store) FilterDoctors(ctx context.Context, name, specialty string) ([]model.Doctor, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+doctorCols+`
		 FROM doctors
		 WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		   AND ($2 = '' OR LOWER(specialty) = LOWER($2))
		 ORDER BY name`, name, specialty,
	)
	return collectDoctors(rows, err)
}

// DeleteDoctor removes a doctor and all of that doctor's appointments in one
// transaction.
func (s *Store) DeleteDoctor(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM appointments WHERE doctor_id = $1`, id); err != nil {
		return fmt.Errorf("delete doctor appointments: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scheduling.ErrInvalidDoctor
	}
	return tx.Commit(ctx)
}

func collectDoctors(rows pgx.Rows, err error) ([]model.Doctor, error) {
	if err != nil {
		return nil, fmt.Errorf("query doctors: %w", err)
	}
	defer rows.Close()

	var out []model.Doctor
	for rows.Next() {
		var d model.Doctor
		if err := scanDoctor(rows, &d); err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
