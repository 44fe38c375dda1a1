package patient

import (
	"context"
	"errors"
	"strings"

	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/internal/repository"
	apperrors "github.com/Paudel3101/meditrack/pkg/errors"
	"github.com/Paudel3101/meditrack/pkg/logger"
)

// Service manages patient records.
type Service interface {
	Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	Get(ctx context.Context, id int64, includeAppointments bool) (*model.Patient, error)
	List(ctx context.Context, filters model.PatientFilters) ([]*model.Patient, error)
	Search(ctx context.Context, query model.PatientSearchQuery) ([]*model.Patient, error)
	Update(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error)
	Archive(ctx context.Context, id int64) error
	Unarchive(ctx context.Context, id int64) error
	Counts(ctx context.Context) (*model.PatientCount, error)
}

type service struct {
	repo     repository.PatientRepository
	apptRepo repository.AppointmentRepository
	logger   *logger.Logger
}

func NewService(repo repository.PatientRepository, apptRepo repository.AppointmentRepository, log *logger.Logger) Service {
	return &service{repo: repo, apptRepo: apptRepo, logger: log}
}

func (s *service) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	exists, err := s.repo.MRNExists(ctx, req.MedicalRecordNumber)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.Conflict("medical record number already exists")
	}

	patient := &model.Patient{
		MedicalRecordNumber: req.MedicalRecordNumber,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		DateOfBirth:         req.DateOfBirth,
		Gender:              req.Gender,
		Phone:               req.Phone,
		Email:               req.Email,
		Allergies:           req.Allergies,
		BloodType:           req.BloodType,
	}
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, apperrors.Internal(err)
	}
	return patient, nil
}

func (s *service) Get(ctx context.Context, id int64, includeAppointments bool) (*model.Patient, error) {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, apperrors.Internal(err)
	}

	if includeAppointments {
		appts, err := s.apptRepo.ListForPatient(ctx, id)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		patient.Appointments = appts
	}
	return patient, nil
}

func (s *service) List(ctx context.Context, filters model.PatientFilters) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return patients, nil
}

func (s *service) Search(ctx context.Context, query model.PatientSearchQuery) ([]*model.Patient, error) {
	if strings.TrimSpace(query.Term) == "" {
		return nil, apperrors.Validation("search term is required")
	}

	patients, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return patients, nil
}

// Update applies a partial update. Identity fields (name, date of
// birth, gender) are ignored when submitted empty so they can never be
// cleared. Contact and clinical fields follow presence: absent means
// untouched, an explicit empty string clears the column.
func (s *service) Update(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	fields := map[string]interface{}{}

	setIdentity := func(col string, v *string) {
		if v != nil && *v != "" {
			fields[col] = *v
		}
	}
	setPresent := func(col string, v *string) {
		if v == nil {
			return
		}
		if *v == "" {
			fields[col] = nil
		} else {
			fields[col] = *v
		}
	}

	setIdentity("first_name", req.FirstName)
	setIdentity("last_name", req.LastName)
	setIdentity("date_of_birth", req.DateOfBirth)
	setIdentity("gender", req.Gender)

	setPresent("phone", req.Phone)
	setPresent("email", req.Email)
	setPresent("address", req.Address)
	setPresent("city", req.City)
	setPresent("state", req.State)
	setPresent("zip_code", req.ZipCode)
	setPresent("allergies", req.Allergies)
	setPresent("blood_type", req.BloodType)
	setPresent("emergency_contact_name", req.EmergencyContactName)
	setPresent("emergency_contact_phone", req.EmergencyContactPhone)

	if len(fields) == 0 {
		return nil, apperrors.Validation("no fields to update")
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NotFound("patient")
		case errors.Is(err, repository.ErrNoFields):
			return nil, apperrors.Validation("no fields to update")
		default:
			return nil, apperrors.Internal(err)
		}
	}
	return s.Get(ctx, id, false)
}

func (s *service) Archive(ctx context.Context, id int64) error {
	return s.setArchived(ctx, id, true)
}

func (s *service) Unarchive(ctx context.Context, id int64) error {
	return s.setArchived(ctx, id, false)
}

func (s *service) setArchived(ctx context.Context, id int64, archived bool) error {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("patient")
		}
		return apperrors.Internal(err)
	}
	if patient.IsArchived == archived {
		if archived {
			return apperrors.State("patient is already archived")
		}
		return apperrors.State("patient is not archived")
	}

	if err := s.repo.SetArchived(ctx, id, archived); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("patient")
		}
		return apperrors.Internal(err)
	}
	return nil
}

func (s *service) Counts(ctx context.Context) (*model.PatientCount, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return counts, nil
}
