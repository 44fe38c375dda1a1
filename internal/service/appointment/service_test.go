package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/internal/repository"
	apperrors "github.com/Paudel3101/meditrack/pkg/errors"
	"github.com/Paudel3101/meditrack/pkg/logger"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Book(ctx context.Context, appt *model.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *mockAppointmentRepo) Reschedule(ctx context.Context, appt *model.Appointment, fields map[string]interface{}) error {
	args := m.Called(ctx, appt, fields)
	return args.Error(0)
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) GetDetail(ctx context.Context, id int64) (*model.AppointmentDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AppointmentDetail), args.Error(1)
}

func (m *mockAppointmentRepo) List(ctx context.Context, filters model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AppointmentDetail), args.Error(1)
}

func (m *mockAppointmentRepo) ListForPatient(ctx context.Context, patientID int64) ([]*model.AppointmentDetail, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AppointmentDetail), args.Error(1)
}

func (m *mockAppointmentRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPatientRepo struct {
	mock.Mock
}

func (m *mockPatientRepo) Create(ctx context.Context, patient *model.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id int64) (*model.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *mockPatientRepo) List(ctx context.Context, filters model.PatientFilters) ([]*model.Patient, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Patient), args.Error(1)
}

func (m *mockPatientRepo) Search(ctx context.Context, query model.PatientSearchQuery) ([]*model.Patient, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Patient), args.Error(1)
}

func (m *mockPatientRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *mockPatientRepo) SetArchived(ctx context.Context, id int64, archived bool) error {
	args := m.Called(ctx, id, archived)
	return args.Error(0)
}

func (m *mockPatientRepo) MRNExists(ctx context.Context, mrn string) (bool, error) {
	args := m.Called(ctx, mrn)
	return args.Bool(0), args.Error(1)
}

func (m *mockPatientRepo) Counts(ctx context.Context) (*model.PatientCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PatientCount), args.Error(1)
}

type mockStaffRepo struct {
	mock.Mock
}

func (m *mockStaffRepo) Create(ctx context.Context, staff *model.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *mockStaffRepo) GetByID(ctx context.Context, id int64) (*model.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Staff), args.Error(1)
}

func (m *mockStaffRepo) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Staff), args.Error(1)
}

func (m *mockStaffRepo) List(ctx context.Context, filters model.StaffFilters) ([]*model.Staff, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Staff), args.Error(1)
}

func (m *mockStaffRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *mockStaffRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *mockStaffRepo) SetActive(ctx context.Context, id int64, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *mockStaffRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newTestService() (Service, *mockAppointmentRepo, *mockPatientRepo, *mockStaffRepo) {
	apptRepo := new(mockAppointmentRepo)
	patientRepo := new(mockPatientRepo)
	staffRepo := new(mockStaffRepo)
	svc := NewService(apptRepo, patientRepo, staffRepo, logger.NewLogger(nil))
	return svc, apptRepo, patientRepo, staffRepo
}

func activeDoctor(id int64) *model.Staff {
	return &model.Staff{ID: id, Role: model.RoleDoctor, IsActive: true}
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()
	req := &model.CreateAppointmentRequest{
		PatientID:       1,
		DoctorID:        2,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
	}

	t.Run("books a free slot", func(t *testing.T) {
		svc, apptRepo, patientRepo, staffRepo := newTestService()
		patientRepo.On("GetByID", ctx, int64(1)).Return(&model.Patient{ID: 1}, nil)
		staffRepo.On("GetByID", ctx, int64(2)).Return(activeDoctor(2), nil)
		apptRepo.On("Book", ctx, mock.AnythingOfType("*model.Appointment")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.Appointment).ID = 10
			}).
			Return(nil)
		apptRepo.On("GetDetail", ctx, int64(10)).
			Return(&model.AppointmentDetail{Appointment: model.Appointment{ID: 10, Status: model.AppointmentStatusScheduled}}, nil)

		detail, err := svc.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, int64(10), detail.ID)
		assert.Equal(t, model.AppointmentStatusScheduled, detail.Status)
		apptRepo.AssertExpectations(t)
	})

	t.Run("taken slot is a conflict", func(t *testing.T) {
		svc, apptRepo, patientRepo, staffRepo := newTestService()
		patientRepo.On("GetByID", ctx, int64(1)).Return(&model.Patient{ID: 1}, nil)
		staffRepo.On("GetByID", ctx, int64(2)).Return(activeDoctor(2), nil)
		apptRepo.On("Book", ctx, mock.AnythingOfType("*model.Appointment")).
			Return(repository.ErrSlotConflict)

		_, err := svc.Create(ctx, req)

		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	})

	t.Run("archived patient reads as missing", func(t *testing.T) {
		svc, _, patientRepo, _ := newTestService()
		patientRepo.On("GetByID", ctx, int64(1)).Return(&model.Patient{ID: 1, IsArchived: true}, nil)

		_, err := svc.Create(ctx, req)

		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("inactive doctor reads as missing", func(t *testing.T) {
		svc, _, patientRepo, staffRepo := newTestService()
		patientRepo.On("GetByID", ctx, int64(1)).Return(&model.Patient{ID: 1}, nil)
		staffRepo.On("GetByID", ctx, int64(2)).
			Return(&model.Staff{ID: 2, Role: model.RoleDoctor, IsActive: false}, nil)

		_, err := svc.Create(ctx, req)

		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("non-doctor staff cannot be booked", func(t *testing.T) {
		svc, _, patientRepo, staffRepo := newTestService()
		patientRepo.On("GetByID", ctx, int64(1)).Return(&model.Patient{ID: 1}, nil)
		staffRepo.On("GetByID", ctx, int64(2)).
			Return(&model.Staff{ID: 2, Role: model.RoleNurse, IsActive: true}, nil)

		_, err := svc.Create(ctx, req)

		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestUpdateAppointment(t *testing.T) {
	ctx := context.Background()
	strPtr := func(s string) *string { return &s }

	t.Run("cancelled appointment is frozen", func(t *testing.T) {
		svc, apptRepo, _, _ := newTestService()
		apptRepo.On("GetByID", ctx, int64(5)).
			Return(&model.Appointment{ID: 5, Status: model.AppointmentStatusCancelled}, nil)

		_, err := svc.Update(ctx, 5, &model.UpdateAppointmentRequest{Notes: strPtr("late")})

		assert.True(t, apperrors.Is(err, apperrors.ErrState))
	})

	t.Run("no effective fields is a validation error", func(t *testing.T) {
		svc, apptRepo, _, _ := newTestService()
		apptRepo.On("GetByID", ctx, int64(5)).
			Return(&model.Appointment{ID: 5, Status: model.AppointmentStatusScheduled}, nil)

		// Empty date and time are ignored, leaving nothing to apply.
		_, err := svc.Update(ctx, 5, &model.UpdateAppointmentRequest{
			AppointmentDate: strPtr(""),
			AppointmentTime: strPtr(""),
		})

		assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	})

	t.Run("moving the slot goes through the conflict check", func(t *testing.T) {
		svc, apptRepo, _, _ := newTestService()
		apptRepo.On("GetByID", ctx, int64(5)).
			Return(&model.Appointment{
				ID: 5, DoctorID: 2, Status: model.AppointmentStatusScheduled,
				AppointmentDate: "2026-09-15", AppointmentTime: "10:30",
			}, nil)
		apptRepo.On("Reschedule", ctx, mock.MatchedBy(func(a *model.Appointment) bool {
			return a.AppointmentTime == "11:00" && a.AppointmentDate == "2026-09-15"
		}), mock.Anything).Return(repository.ErrSlotConflict)

		_, err := svc.Update(ctx, 5, &model.UpdateAppointmentRequest{AppointmentTime: strPtr("11:00")})

		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	})

	t.Run("notes-only update skips the slot check", func(t *testing.T) {
		svc, apptRepo, _, _ := newTestService()
		apptRepo.On("GetByID", ctx, int64(5)).
			Return(&model.Appointment{ID: 5, Status: model.AppointmentStatusScheduled}, nil)
		apptRepo.On("Update", ctx, int64(5), map[string]interface{}{"notes": "bring referral"}).Return(nil)
		apptRepo.On("GetDetail", ctx, int64(5)).
			Return(&model.AppointmentDetail{Appointment: model.Appointment{ID: 5}}, nil)

		_, err := svc.Update(ctx, 5, &model.UpdateAppointmentRequest{Notes: strPtr("bring referral")})

		assert.NoError(t, err)
		apptRepo.AssertNotCalled(t, "Reschedule", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty notes clear the column", func(t *testing.T) {
		svc, apptRepo, _, _ := newTestService()
		apptRepo.On("GetByID", ctx, int64(5)).
			Return(&model.Appointment{ID: 5, Status: model.AppointmentStatusScheduled}, nil)
		apptRepo.On("Update", ctx, int64(5), map[string]interface{}{"notes": nil}).Return(nil)
		apptRepo.On("GetDetail", ctx, int64(5)).
			Return(&model.AppointmentDetail{Appointment: model.Appointment{ID: 5}}, nil)

		_, err := svc.Update(ctx, 5, &model.UpdateAppointmentRequest{Notes: strPtr("")})

		assert.NoError(t, err)
		apptRepo.AssertExpectations(t)
	})
}

func TestUpdateAppointmentStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("any transition is allowed", func(t *testing.T) {
		svc, apptRepo, _, _ := newTestService()
		apptRepo.On("UpdateStatus", ctx, int64(5), model.AppointmentStatusScheduled).Return(nil)
		apptRepo.On("GetDetail", ctx, int64(5)).
			Return(&model.AppointmentDetail{Appointment: model.Appointment{ID: 5, Status: model.AppointmentStatusScheduled}}, nil)

		detail, err := svc.UpdateStatus(ctx, 5, model.AppointmentStatusScheduled)

		assert.NoError(t, err)
		assert.Equal(t, model.AppointmentStatusScheduled, detail.Status)
	})

	t.Run("missing appointment", func(t *testing.T) {
		svc, apptRepo, _, _ := newTestService()
		apptRepo.On("UpdateStatus", ctx, int64(99), model.AppointmentStatusCompleted).
			Return(repository.ErrNotFound)

		_, err := svc.UpdateStatus(ctx, 99, model.AppointmentStatusCompleted)

		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestDeleteAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("scheduled appointment can be deleted", func(t *testing.T) {
		svc, apptRepo, _, _ := newTestService()
		apptRepo.On("GetByID", ctx, int64(5)).
			Return(&model.Appointment{ID: 5, Status: model.AppointmentStatusScheduled}, nil)
		apptRepo.On("Delete", ctx, int64(5)).Return(nil)

		assert.NoError(t, svc.Delete(ctx, 5))
	})

	t.Run("completed appointment is kept for the record", func(t *testing.T) {
		svc, apptRepo, _, _ := newTestService()
		apptRepo.On("GetByID", ctx, int64(5)).
			Return(&model.Appointment{ID: 5, Status: model.AppointmentStatusCompleted}, nil)

		err := svc.Delete(ctx, 5)

		assert.True(t, apperrors.Is(err, apperrors.ErrState))
		apptRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("no-show appointment is kept for the record", func(t *testing.T) {
		svc, apptRepo, _, _ := newTestService()
		apptRepo.On("GetByID", ctx, int64(5)).
			Return(&model.Appointment{ID: 5, Status: model.AppointmentStatusNoShow}, nil)

		err := svc.Delete(ctx, 5)

		assert.True(t, apperrors.Is(err, apperrors.ErrState))
	})

	t.Run("cancelled appointment can be deleted", func(t *testing.T) {
		svc, apptRepo, _, _ := newTestService()
		apptRepo.On("GetByID", ctx, int64(5)).
			Return(&model.Appointment{ID: 5, Status: model.AppointmentStatusCancelled}, nil)
		apptRepo.On("Delete", ctx, int64(5)).Return(nil)

		assert.NoError(t, svc.Delete(ctx, 5))
	})
}
