package staff

import (
	"context"
	"errors"

	"github.com/Paudel3101/meditrack/internal/email"
	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/internal/repository"
	apperrors "github.com/Paudel3101/meditrack/pkg/errors"
	"github.com/Paudel3101/meditrack/pkg/logger"
	"github.com/Paudel3101/meditrack/pkg/security"
)

// Service manages staff accounts.
type Service interface {
	Create(ctx context.Context, req *model.CreateStaffRequest) (*model.Staff, error)
	Get(ctx context.Context, id int64) (*model.Staff, error)
	List(ctx context.Context, filters model.StaffFilters) ([]*model.Staff, error)
	Update(ctx context.Context, id int64, req *model.UpdateStaffRequest) (*model.Staff, error)
	Deactivate(ctx context.Context, id int64) error
	Reactivate(ctx context.Context, id int64) error
}

type service struct {
	repo   repository.StaffRepository
	hasher security.PasswordHasher
	email  email.Service
	logger *logger.Logger
}

func NewService(repo repository.StaffRepository, hasher security.PasswordHasher, mailer email.Service, log *logger.Logger) Service {
	return &service{repo: repo, hasher: hasher, email: mailer, logger: log}
}

func (s *service) Create(ctx context.Context, req *model.CreateStaffRequest) (*model.Staff, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.Conflict("email is already registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	staff := &model.Staff{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.email.SendWelcome(staff); err != nil {
		s.logger.Error(err, "welcome email failed", "staff_id", staff.ID)
	}
	return staff, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.Staff, error) {
	staff, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("staff")
		}
		return nil, apperrors.Internal(err)
	}
	return staff, nil
}

func (s *service) List(ctx context.Context, filters model.StaffFilters) ([]*model.Staff, error) {
	staff, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return staff, nil
}

// Update applies a partial update. Every staff field is identity-like:
// a field submitted empty is ignored rather than cleared.
func (s *service) Update(ctx context.Context, id int64, req *model.UpdateStaffRequest) (*model.Staff, error) {
	fields := map[string]interface{}{}
	if req.FirstName != nil && *req.FirstName != "" {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil && *req.LastName != "" {
		fields["last_name"] = *req.LastName
	}
	if req.Phone != nil && *req.Phone != "" {
		fields["phone"] = *req.Phone
	}
	if req.Role != nil && *req.Role != "" {
		fields["role"] = *req.Role
	}
	if req.Specialization != nil && *req.Specialization != "" {
		fields["specialization"] = *req.Specialization
	}

	if len(fields) == 0 {
		return nil, apperrors.Validation("no fields to update")
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NotFound("staff")
		case errors.Is(err, repository.ErrNoFields):
			return nil, apperrors.Validation("no fields to update")
		default:
			return nil, apperrors.Internal(err)
		}
	}
	return s.Get(ctx, id)
}

func (s *service) Deactivate(ctx context.Context, id int64) error {
	return s.setActive(ctx, id, false)
}

func (s *service) Reactivate(ctx context.Context, id int64) error {
	return s.setActive(ctx, id, true)
}

func (s *service) setActive(ctx context.Context, id int64, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("staff")
		}
		return apperrors.Internal(err)
	}
	return nil
}
