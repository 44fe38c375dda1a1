package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/internal/repository"
)

const staffColumns = `id, email, password_hash, first_name, last_name, phone, role, specialization, is_active, created_at, updated_at`

type staffRepository struct {
	*BaseRepository
}

func NewStaffRepository(db *sqlx.DB) repository.StaffRepository {
	return &staffRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *staffRepository) Create(ctx context.Context, staff *model.Staff) error {
	query := `
		INSERT INTO staff (email, password_hash, first_name, last_name, phone, role, specialization, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		staff.Email, staff.PasswordHash, staff.FirstName, staff.LastName,
		staff.Phone, staff.Role, staff.Specialization, staff.IsActive,
	).Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id int64) (*model.Staff, error) {
	var staff model.Staff
	query := fmt.Sprintf(`SELECT %s FROM staff WHERE id = $1`, staffColumns)

	if err := r.db.GetContext(ctx, &staff, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	var staff model.Staff
	query := fmt.Sprintf(`SELECT %s FROM staff WHERE LOWER(email) = LOWER($1)`, staffColumns)

	if err := r.db.GetContext(ctx, &staff, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get staff by email: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) List(ctx context.Context, filters model.StaffFilters) ([]*model.Staff, error) {
	query := fmt.Sprintf(`SELECT %s FROM staff WHERE 1=1`, staffColumns)
	args := []interface{}{}

	if filters.Role != nil {
		args = append(args, *filters.Role)
		query += fmt.Sprintf(" AND role = $%d", len(args))
	}
	if filters.IsActive != nil {
		args = append(args, *filters.IsActive)
		query += fmt.Sprintf(" AND is_active = $%d", len(args))
	}
	query += " ORDER BY last_name, first_name"

	staff := []*model.Staff{}
	if err := r.db.SelectContext(ctx, &staff, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (r *staffRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return repository.ErrNoFields
	}

	query, args := buildPatch("staff", "id", id, fields)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update staff: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *staffRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE staff SET password_hash = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *staffRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE staff SET is_active = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("failed to set staff active flag: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *staffRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM staff WHERE LOWER(email) = LOWER($1))`

	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}
