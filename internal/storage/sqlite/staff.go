package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lxxjn0/jwp-refactoring/internal/models"
)

const staffColumns = "id, email, display_name, password_hash, created_at, updated_at"

// CreateStaff inserts a new staff account.
func (s *queries) CreateStaff(ctx context.Context, staff *models.Staff) error {
	_, err := s.q.ExecContext(ctx,
		"INSERT INTO staff ("+staffColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		staff.ID,
		staff.Email,
		staff.DisplayName,
		staff.PasswordHash,
		staff.CreatedAt,
		staff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

// GetStaffByEmail retrieves a staff account by email address.
func (s *queries) GetStaffByEmail(ctx context.Context, email string) (*models.Staff, error) {
	return s.getStaff(ctx, "email", email)
}

// GetStaffByID retrieves a staff account by ID.
func (s *queries) GetStaffByID(ctx context.Context, id string) (*models.Staff, error) {
	return s.getStaff(ctx, "id", id)
}

func (s *queries) getStaff(ctx context.Context, column, value string) (*models.Staff, error) {
	staff := &models.Staff{}
	err := s.q.QueryRowContext(ctx,
		"SELECT "+staffColumns+" FROM staff WHERE "+column+" = ?", value,
	).Scan(
		&staff.ID,
		&staff.Email,
		&staff.DisplayName,
		&staff.PasswordHash,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("staff", value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff by %s: %w", column, err)
	}
	return staff, nil
}
