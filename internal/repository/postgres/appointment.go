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

// Date and time columns are cast to text so they round-trip as the
// ISO strings the API speaks.
const appointmentColumns = `a.id, a.patient_id, a.doctor_id,
	a.appointment_date::text AS appointment_date,
	to_char(a.appointment_time, 'HH24:MI') AS appointment_time,
	a.status, a.notes, a.created_at, a.updated_at`

const appointmentDetailColumns = appointmentColumns + `,
	p.first_name AS patient_first_name,
	p.last_name AS patient_last_name,
	p.medical_record_number,
	s.first_name AS doctor_first_name,
	s.last_name AS doctor_last_name,
	s.role AS staff_role`

const appointmentDetailFrom = `
	FROM appointments a
	JOIN patients p ON p.id = a.patient_id
	JOIN staff s ON s.id = a.doctor_id`

type appointmentRepository struct {
	*BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{BaseRepository: NewBaseRepository(db)}
}

// lockDoctor takes a row lock on the doctor's staff record. All
// bookings for one doctor serialize behind this lock, which makes the
// subsequent slot conflict check race-free.
func lockDoctor(ctx context.Context, tx *sqlx.Tx, doctorID int64) error {
	var id int64
	err := tx.GetContext(ctx, &id, `SELECT id FROM staff WHERE id = $1 FOR UPDATE`, doctorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to lock doctor row: %w", err)
	}
	return nil
}

func slotTaken(ctx context.Context, tx *sqlx.Tx, doctorID int64, date, timeOfDay string, excludeID int64) (bool, error) {
	var taken bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE doctor_id = $1
			  AND appointment_date = $2
			  AND appointment_time = $3
			  AND status <> 'Cancelled'
			  AND id <> $4
		)`

	if err := tx.GetContext(ctx, &taken, query, doctorID, date, timeOfDay, excludeID); err != nil {
		return false, fmt.Errorf("failed to check slot availability: %w", err)
	}
	return taken, nil
}

func (r *appointmentRepository) Book(ctx context.Context, appt *model.Appointment) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockDoctor(ctx, tx, appt.DoctorID); err != nil {
			return err
		}

		taken, err := slotTaken(ctx, tx, appt.DoctorID, appt.AppointmentDate, appt.AppointmentTime, 0)
		if err != nil {
			return err
		}
		if taken {
			return repository.ErrSlotConflict
		}

		query := `
			INSERT INTO appointments (patient_id, doctor_id, appointment_date, appointment_time, status, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at`

		err = tx.QueryRowxContext(ctx, query,
			appt.PatientID, appt.DoctorID, appt.AppointmentDate,
			appt.AppointmentTime, appt.Status, appt.Notes,
		).Scan(&appt.ID, &appt.CreatedAt, &appt.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return nil
	})
}

// Reschedule applies a partial update that may move the appointment to
// a different slot. appt carries the post-merge doctor, date and time
// used for the conflict check; fields carries the columns to write.
func (r *appointmentRepository) Reschedule(ctx context.Context, appt *model.Appointment, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return repository.ErrNoFields
	}

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockDoctor(ctx, tx, appt.DoctorID); err != nil {
			return err
		}

		taken, err := slotTaken(ctx, tx, appt.DoctorID, appt.AppointmentDate, appt.AppointmentTime, appt.ID)
		if err != nil {
			return err
		}
		if taken {
			return repository.ErrSlotConflict
		}

		query, args := buildPatch("appointments", "id", appt.ID, fields)
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (r *appointmentRepository) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	var appt model.Appointment
	query := fmt.Sprintf(`SELECT %s FROM appointments a WHERE a.id = $1`, appointmentColumns)

	if err := r.db.GetContext(ctx, &appt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appt, nil
}

func (r *appointmentRepository) GetDetail(ctx context.Context, id int64) (*model.AppointmentDetail, error) {
	var detail model.AppointmentDetail
	query := fmt.Sprintf(`SELECT %s %s WHERE a.id = $1`, appointmentDetailColumns, appointmentDetailFrom)

	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment detail: %w", err)
	}
	return &detail, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE 1=1`, appointmentDetailColumns, appointmentDetailFrom)
	args := []interface{}{}

	if filters.Date != "" {
		args = append(args, filters.Date)
		query += fmt.Sprintf(" AND a.appointment_date = $%d", len(args))
	}
	if filters.StartDate != "" {
		args = append(args, filters.StartDate)
		query += fmt.Sprintf(" AND a.appointment_date >= $%d", len(args))
	}
	if filters.EndDate != "" {
		args = append(args, filters.EndDate)
		query += fmt.Sprintf(" AND a.appointment_date <= $%d", len(args))
	}
	if filters.DoctorID != nil {
		args = append(args, *filters.DoctorID)
		query += fmt.Sprintf(" AND a.doctor_id = $%d", len(args))
	}
	if filters.PatientID != nil {
		args = append(args, *filters.PatientID)
		query += fmt.Sprintf(" AND a.patient_id = $%d", len(args))
	}
	if filters.Status != nil {
		args = append(args, *filters.Status)
		query += fmt.Sprintf(" AND a.status = $%d", len(args))
	}
	query += " ORDER BY a.appointment_date, a.appointment_time"

	appts := []*model.AppointmentDetail{}
	if err := r.db.SelectContext(ctx, &appts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

func (r *appointmentRepository) ListForPatient(ctx context.Context, patientID int64) ([]*model.AppointmentDetail, error) {
	query := fmt.Sprintf(
		`SELECT %s %s WHERE a.patient_id = $1 ORDER BY a.appointment_date DESC, a.appointment_time DESC`,
		appointmentDetailColumns, appointmentDetailFrom,
	)

	appts := []*model.AppointmentDetail{}
	if err := r.db.SelectContext(ctx, &appts, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return appts, nil
}

func (r *appointmentRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return repository.ErrNoFields
	}

	query, args := buildPatch("appointments", "id", id, fields)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	query := `UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
