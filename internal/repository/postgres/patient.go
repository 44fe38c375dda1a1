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

// date_of_birth is cast to text so it round-trips as an ISO date
// string rather than a timestamp.
const patientColumns = `id, medical_record_number, first_name, last_name, date_of_birth::text AS date_of_birth,
	gender, phone, email, address, city, state, zip_code, allergies, blood_type,
	emergency_contact_name, emergency_contact_phone, is_archived, created_at, updated_at`

type patientRepository struct {
	*BaseRepository
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (medical_record_number, first_name, last_name, date_of_birth, gender,
			phone, email, allergies, blood_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		patient.MedicalRecordNumber, patient.FirstName, patient.LastName,
		patient.DateOfBirth, patient.Gender, patient.Phone, patient.Email,
		patient.Allergies, patient.BloodType,
	).Scan(&patient.ID, &patient.CreatedAt, &patient.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) GetByID(ctx context.Context, id int64) (*model.Patient, error) {
	var patient model.Patient
	query := fmt.Sprintf(`SELECT %s FROM patients WHERE id = $1`, patientColumns)

	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context, filters model.PatientFilters) ([]*model.Patient, error) {
	query := fmt.Sprintf(`SELECT %s FROM patients WHERE 1=1`, patientColumns)
	args := []interface{}{}

	if filters.IsArchived != nil {
		args = append(args, *filters.IsArchived)
		query += fmt.Sprintf(" AND is_archived = $%d", len(args))
	}
	if filters.Gender != nil {
		args = append(args, *filters.Gender)
		query += fmt.Sprintf(" AND gender = $%d", len(args))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		query += fmt.Sprintf(
			" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR medical_record_number ILIKE $%d)",
			n, n, n,
		)
	}
	query += " ORDER BY created_at DESC"

	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Search(ctx context.Context, q model.PatientSearchQuery) ([]*model.Patient, error) {
	query := fmt.Sprintf(`SELECT %s FROM patients WHERE is_archived = FALSE`, patientColumns)
	pattern := "%" + q.Term + "%"
	args := []interface{}{}

	switch q.Field {
	case "name":
		args = append(args, pattern)
		n := len(args)
		query += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d)", n, n)
	case "mrn":
		args = append(args, pattern)
		query += fmt.Sprintf(" AND medical_record_number ILIKE $%d", len(args))
	case "phone":
		args = append(args, pattern)
		query += fmt.Sprintf(" AND phone ILIKE $%d", len(args))
	default:
		args = append(args, pattern)
		n := len(args)
		query += fmt.Sprintf(
			" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR medical_record_number ILIKE $%d OR phone ILIKE $%d)",
			n, n, n, n,
		)
	}
	query += " ORDER BY last_name, first_name LIMIT 20"

	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return repository.ErrNoFields
	}

	query, args := buildPatch("patients", "id", id, fields)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *patientRepository) SetArchived(ctx context.Context, id int64, archived bool) error {
	query := `UPDATE patients SET is_archived = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, archived, id)
	if err != nil {
		return fmt.Errorf("failed to set patient archive flag: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *patientRepository) MRNExists(ctx context.Context, mrn string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM patients WHERE medical_record_number = $1)`

	if err := r.db.GetContext(ctx, &exists, query, mrn); err != nil {
		return false, fmt.Errorf("failed to check medical record number: %w", err)
	}
	return exists, nil
}

func (r *patientRepository) Counts(ctx context.Context) (*model.PatientCount, error) {
	var counts model.PatientCount
	query := `
		SELECT
			COUNT(*) FILTER (WHERE is_archived = FALSE) AS active_patients,
			COUNT(*) FILTER (WHERE is_archived = TRUE)  AS archived_patients,
			COUNT(*)                                    AS total
		FROM patients`

	row := r.db.QueryRowxContext(ctx, query)
	if err := row.Scan(&counts.ActivePatients, &counts.ArchivedPatients, &counts.Total); err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}
	return &counts, nil
}
