package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Paudel3101/meditrack/internal/model"
)

// Sentinel errors surfaced by repositories. Services translate these
// into application errors at the boundary.
var (
	ErrNotFound     = errors.New("record not found")
	ErrNoFields     = errors.New("no fields to update")
	ErrSlotConflict = errors.New("appointment slot already taken")
)

// StaffRepository manages staff accounts.
type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	GetByID(ctx context.Context, id int64) (*model.Staff, error)
	GetByEmail(ctx context.Context, email string) (*model.Staff, error)
	List(ctx context.Context, filters model.StaffFilters) ([]*model.Staff, error)
	// Update applies the given column values. Returns ErrNoFields when
	// the map is empty and ErrNotFound when no row matches.
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetActive(ctx context.Context, id int64, active bool) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

// PatientRepository manages patient records.
type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	GetByID(ctx context.Context, id int64) (*model.Patient, error)
	List(ctx context.Context, filters model.PatientFilters) ([]*model.Patient, error)
	Search(ctx context.Context, query model.PatientSearchQuery) ([]*model.Patient, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	SetArchived(ctx context.Context, id int64, archived bool) error
	MRNExists(ctx context.Context, mrn string) (bool, error)
	Counts(ctx context.Context) (*model.PatientCount, error)
}

// AppointmentRepository manages appointments. Book and Reschedule run
// transactionally and perform the doctor slot conflict check under a
// lock on the doctor's staff row, so two concurrent requests for the
// same slot cannot both succeed.
type AppointmentRepository interface {
	Book(ctx context.Context, appt *model.Appointment) error
	Reschedule(ctx context.Context, appt *model.Appointment, fields map[string]interface{}) error
	GetByID(ctx context.Context, id int64) (*model.Appointment, error)
	GetDetail(ctx context.Context, id int64) (*model.AppointmentDetail, error)
	List(ctx context.Context, filters model.AppointmentFilters) ([]*model.AppointmentDetail, error)
	ListForPatient(ctx context.Context, patientID int64) ([]*model.AppointmentDetail, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error
	Delete(ctx context.Context, id int64) error
}

// DashboardRepository aggregates counters for the dashboard endpoints.
type DashboardRepository interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
	RecentAppointments(ctx context.Context, limit int) ([]*model.AppointmentDetail, error)
}

// OutboxRepository persists domain events for asynchronous delivery.
type OutboxRepository interface {
	CreateEvent(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
}
