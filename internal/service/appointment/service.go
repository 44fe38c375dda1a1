package appointment

import (
	"context"
	"errors"

	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/internal/repository"
	apperrors "github.com/Paudel3101/meditrack/pkg/errors"
	"github.com/Paudel3101/meditrack/pkg/logger"
)

// Service schedules and manages appointments. Slot uniqueness per
// doctor is enforced transactionally by the repository; this layer
// owns the eligibility and lifecycle rules.
type Service interface {
	Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.AppointmentDetail, error)
	Get(ctx context.Context, id int64) (*model.AppointmentDetail, error)
	List(ctx context.Context, filters model.AppointmentFilters) ([]*model.AppointmentDetail, error)
	Update(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.AppointmentDetail, error)
	UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) (*model.AppointmentDetail, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	staffRepo   repository.StaffRepository
	logger      *logger.Logger
}

func NewService(repo repository.AppointmentRepository, patientRepo repository.PatientRepository, staffRepo repository.StaffRepository, log *logger.Logger) Service {
	return &service{
		repo:        repo,
		patientRepo: patientRepo,
		staffRepo:   staffRepo,
		logger:      log,
	}
}

func (s *service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.AppointmentDetail, error) {
	patient, err := s.patientRepo.GetByID(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, apperrors.Internal(err)
	}
	if patient.IsArchived {
		return nil, apperrors.NotFound("patient")
	}

	if err := s.checkDoctor(ctx, req.DoctorID); err != nil {
		return nil, err
	}

	appt := &model.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Status:          model.AppointmentStatusScheduled,
		Notes:           req.Notes,
	}
	if err := s.repo.Book(ctx, appt); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotConflict):
			return nil, apperrors.Conflict("doctor already has an appointment at this time")
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NotFound("doctor")
		default:
			return nil, apperrors.Internal(err)
		}
	}

	return s.Get(ctx, appt.ID)
}

func (s *service) Get(ctx context.Context, id int64) (*model.AppointmentDetail, error) {
	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, apperrors.Internal(err)
	}
	return detail, nil
}

func (s *service) List(ctx context.Context, filters model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	appts, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return appts, nil
}

// Update reschedules or annotates an appointment. Cancelled
// appointments are frozen. Date and time are ignored when submitted
// empty; notes clear on an explicit empty string.
func (s *service) Update(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.AppointmentDetail, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, apperrors.Internal(err)
	}
	if appt.Status == model.AppointmentStatusCancelled {
		return nil, apperrors.State("cannot update a cancelled appointment")
	}

	fields := map[string]interface{}{}
	moved := false
	if req.AppointmentDate != nil && *req.AppointmentDate != "" {
		fields["appointment_date"] = *req.AppointmentDate
		appt.AppointmentDate = *req.AppointmentDate
		moved = true
	}
	if req.AppointmentTime != nil && *req.AppointmentTime != "" {
		fields["appointment_time"] = *req.AppointmentTime
		appt.AppointmentTime = *req.AppointmentTime
		moved = true
	}
	if req.Notes != nil {
		if *req.Notes == "" {
			fields["notes"] = nil
		} else {
			fields["notes"] = *req.Notes
		}
	}

	if len(fields) == 0 {
		return nil, apperrors.Validation("no fields to update")
	}

	if moved {
		err = s.repo.Reschedule(ctx, appt, fields)
	} else {
		err = s.repo.Update(ctx, id, fields)
	}
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotConflict):
			return nil, apperrors.Conflict("doctor already has an appointment at this time")
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NotFound("appointment")
		default:
			return nil, apperrors.Internal(err)
		}
	}
	return s.Get(ctx, id)
}

// UpdateStatus moves an appointment to any status. Transitions are
// deliberately unrestricted so front-desk corrections (for example
// No-show back to Scheduled) need no special casing.
func (s *service) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) (*model.AppointmentDetail, error) {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, apperrors.Internal(err)
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("appointment")
		}
		return apperrors.Internal(err)
	}
	if appt.Status == model.AppointmentStatusCompleted || appt.Status == model.AppointmentStatusNoShow {
		return apperrors.State("cannot delete an appointment that has taken place")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("appointment")
		}
		return apperrors.Internal(err)
	}
	return nil
}

func (s *service) checkDoctor(ctx context.Context, doctorID int64) error {
	doctor, err := s.staffRepo.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("doctor")
		}
		return apperrors.Internal(err)
	}
	if doctor.Role != model.RoleDoctor || !doctor.IsActive {
		return apperrors.NotFound("doctor")
	}
	return nil
}
