package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lxxjn0/jwp-refactoring/internal/models"
)

const staffColumns = "id, email, display_name, password_hash, created_at, updated_at"

func (s *queries) CreateStaff(ctx context.Context, staff *models.Staff) error {
	_, err := s.q.Exec(ctx,
		"INSERT INTO staff ("+staffColumns+") VALUES ($1, $2, $3, $4, $5, $6)",
		staff.ID, staff.Email, staff.DisplayName, staff.PasswordHash, staff.CreatedAt, staff.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create staff: %w", mapError(err))
	}
	return nil
}

func (s *queries) GetStaffByEmail(ctx context.Context, email string) (*models.Staff, error) {
	return s.getStaff(ctx, "email", email)
}

func (s *queries) GetStaffByID(ctx context.Context, id string) (*models.Staff, error) {
	return s.getStaff(ctx, "id", id)
}

func (s *queries) getStaff(ctx context.Context, column, value string) (*models.Staff, error) {
	staff := &models.Staff{}
	err := s.q.QueryRow(ctx,
		"SELECT "+staffColumns+" FROM staff WHERE "+column+" = $1", value,
	).Scan(&staff.ID, &staff.Email, &staff.DisplayName, &staff.PasswordHash, &staff.CreatedAt, &staff.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("staff", value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff by %s: %w", column, mapError(err))
	}
	return staff, nil
}
