package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"clinic-management-api/internal/model"
)

var ErrAdminNotFound = errors.New("admin not found")

func (s *Store) AdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	a := &model.Admin{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM admins WHERE username = $1`,
		username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return a, nil
}

// EnsureAdmin creates the admin account if no admin with that username
// exists. Used at startup to seed the initial operator.
func (s *Store) EnsureAdmin(ctx context.Context, a *model.Admin) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO admins (id, username, password_hash) VALUES ($1,$2,$3)
		 ON CONFLICT (username) DO NOTHING`,
		a.ID, a.Username, a.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	return nil
}
