package auth

import (
	"context"
	"errors"

	"github.com/Paudel3101/meditrack/internal/email"
	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/internal/repository"
	"github.com/Paudel3101/meditrack/pkg/auth"
	apperrors "github.com/Paudel3101/meditrack/pkg/errors"
	"github.com/Paudel3101/meditrack/pkg/logger"
	"github.com/Paudel3101/meditrack/pkg/security"
)

// Service handles staff authentication and the caller's own account.
type Service interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Register(ctx context.Context, req *model.RegisterRequest) (*model.LoginResponse, error)
	GetProfile(ctx context.Context, staffID int64) (*model.Staff, error)
	UpdatePassword(ctx context.Context, staffID int64, req *model.UpdatePasswordRequest) error
}

type service struct {
	staffRepo repository.StaffRepository
	jwt       auth.JWTService
	hasher    security.PasswordHasher
	email     email.Service
	logger    *logger.Logger
}

func NewService(staffRepo repository.StaffRepository, jwt auth.JWTService, hasher security.PasswordHasher, mailer email.Service, log *logger.Logger) Service {
	return &service{
		staffRepo: staffRepo,
		jwt:       jwt,
		hasher:    hasher,
		email:     mailer,
		logger:    log,
	}
}

// Login verifies credentials and issues a token. Unknown email, wrong
// password and deactivated account all collapse to the same response
// so the endpoint cannot be used to probe for accounts.
func (s *service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Authentication("invalid credentials")
		}
		return nil, apperrors.Internal(err)
	}

	if !staff.IsActive {
		return nil, apperrors.Authentication("invalid credentials")
	}
	if err := s.hasher.Compare(staff.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Authentication("invalid credentials")
	}

	return s.issueToken(staff)
}

func (s *service) Register(ctx context.Context, req *model.RegisterRequest) (*model.LoginResponse, error) {
	exists, err := s.staffRepo.EmailExists(ctx, req.Email)
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
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.email.SendWelcome(staff); err != nil {
		s.logger.Error(err, "welcome email failed", "staff_id", staff.ID)
	}

	return s.issueToken(staff)
}

func (s *service) GetProfile(ctx context.Context, staffID int64) (*model.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("staff")
		}
		return nil, apperrors.Internal(err)
	}
	return staff, nil
}

func (s *service) UpdatePassword(ctx context.Context, staffID int64, req *model.UpdatePasswordRequest) error {
	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("staff")
		}
		return apperrors.Internal(err)
	}

	if err := s.hasher.Compare(staff.PasswordHash, req.CurrentPassword); err != nil {
		return apperrors.Authentication("current password is incorrect")
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return apperrors.Internal(err)
	}
	if err := s.staffRepo.UpdatePassword(ctx, staffID, hash); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *service) issueToken(staff *model.Staff) (*model.LoginResponse, error) {
	token, err := s.jwt.Generate(staff)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.LoginResponse{
		Token: token,
		Staff: model.StaffSummary{
			ID:        staff.ID,
			Email:     staff.Email,
			FirstName: staff.FirstName,
			LastName:  staff.LastName,
			Role:      staff.Role,
		},
	}, nil
}
