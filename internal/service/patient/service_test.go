package patient

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

func newTestService() (Service, *mockPatientRepo, *mockAppointmentRepo) {
	repo := new(mockPatientRepo)
	apptRepo := new(mockAppointmentRepo)
	svc := NewService(repo, apptRepo, logger.NewLogger(nil))
	return svc, repo, apptRepo
}

func strPtr(s string) *string { return &s }

func TestCreatePatient(t *testing.T) {
	ctx := context.Background()
	req := &model.CreatePatientRequest{
		MedicalRecordNumber: "MRN001234",
		FirstName:           "Maria",
		LastName:            "Gomez",
		DateOfBirth:         "1985-04-12",
		Gender:              "Female",
	}

	t.Run("creates with a fresh record number", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("MRNExists", ctx, "MRN001234").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*model.Patient")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.Patient).ID = 1
			}).
			Return(nil)

		patient, err := svc.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), patient.ID)
		assert.Equal(t, "MRN001234", patient.MedicalRecordNumber)
	})

	t.Run("duplicate record number is a conflict", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("MRNExists", ctx, "MRN001234").Return(true, nil)

		_, err := svc.Create(ctx, req)

		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdatePatient(t *testing.T) {
	ctx := context.Background()

	t.Run("identity fields ignore empty values", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("Update", ctx, int64(1), map[string]interface{}{"last_name": "Gomez-Reyes"}).Return(nil)
		repo.On("GetByID", ctx, int64(1)).Return(&model.Patient{ID: 1, LastName: "Gomez-Reyes"}, nil)

		patient, err := svc.Update(ctx, 1, &model.UpdatePatientRequest{
			FirstName: strPtr(""),
			LastName:  strPtr("Gomez-Reyes"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "Gomez-Reyes", patient.LastName)
		repo.AssertExpectations(t)
	})

	t.Run("contact fields clear on explicit empty", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("Update", ctx, int64(1), map[string]interface{}{"phone": nil, "allergies": "penicillin"}).Return(nil)
		repo.On("GetByID", ctx, int64(1)).Return(&model.Patient{ID: 1}, nil)

		_, err := svc.Update(ctx, 1, &model.UpdatePatientRequest{
			Phone:     strPtr(""),
			Allergies: strPtr("penicillin"),
		})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("absent fields stay untouched", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("Update", ctx, int64(1), map[string]interface{}{"city": "Lisbon"}).Return(nil)
		repo.On("GetByID", ctx, int64(1)).Return(&model.Patient{ID: 1}, nil)

		_, err := svc.Update(ctx, 1, &model.UpdatePatientRequest{City: strPtr("Lisbon")})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("empty request is a validation error", func(t *testing.T) {
		svc, repo, _ := newTestService()

		_, err := svc.Update(ctx, 1, &model.UpdatePatientRequest{})

		assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing patient", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("Update", ctx, int64(9), mock.Anything).Return(repository.ErrNotFound)

		_, err := svc.Update(ctx, 9, &model.UpdatePatientRequest{City: strPtr("Porto")})

		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestGetPatient(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds appointments on request", func(t *testing.T) {
		svc, repo, apptRepo := newTestService()
		repo.On("GetByID", ctx, int64(1)).Return(&model.Patient{ID: 1}, nil)
		apptRepo.On("ListForPatient", ctx, int64(1)).
			Return([]*model.AppointmentDetail{{Appointment: model.Appointment{ID: 3}}}, nil)

		patient, err := svc.Get(ctx, 1, true)

		assert.NoError(t, err)
		assert.Len(t, patient.Appointments, 1)
	})

	t.Run("missing patient", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("GetByID", ctx, int64(9)).Return(nil, repository.ErrNotFound)

		_, err := svc.Get(ctx, 9, false)

		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestSearchPatients(t *testing.T) {
	ctx := context.Background()

	t.Run("blank term is rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Search(ctx, model.PatientSearchQuery{Term: "   "})

		assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	})

	t.Run("delegates to the repository", func(t *testing.T) {
		svc, repo, _ := newTestService()
		query := model.PatientSearchQuery{Term: "gom", Field: "name"}
		repo.On("Search", ctx, query).Return([]*model.Patient{{ID: 1}}, nil)

		patients, err := svc.Search(ctx, query)

		assert.NoError(t, err)
		assert.Len(t, patients, 1)
	})
}

func TestArchivePatient(t *testing.T) {
	ctx := context.Background()

	t.Run("archives an active patient", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("GetByID", ctx, int64(1)).Return(&model.Patient{ID: 1, IsArchived: false}, nil)
		repo.On("SetArchived", ctx, int64(1), true).Return(nil)

		assert.NoError(t, svc.Archive(ctx, 1))
		repo.AssertExpectations(t)
	})

	t.Run("unarchives an archived patient", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("GetByID", ctx, int64(1)).Return(&model.Patient{ID: 1, IsArchived: true}, nil)
		repo.On("SetArchived", ctx, int64(1), false).Return(nil)

		assert.NoError(t, svc.Unarchive(ctx, 1))
		repo.AssertExpectations(t)
	})

	t.Run("archiving an archived patient is a state error", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("GetByID", ctx, int64(1)).Return(&model.Patient{ID: 1, IsArchived: true}, nil)

		err := svc.Archive(ctx, 1)

		assert.True(t, apperrors.Is(err, apperrors.ErrState))
		repo.AssertNotCalled(t, "SetArchived", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unarchiving an active patient is a state error", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("GetByID", ctx, int64(1)).Return(&model.Patient{ID: 1, IsArchived: false}, nil)

		err := svc.Unarchive(ctx, 1)

		assert.True(t, apperrors.Is(err, apperrors.ErrState))
		repo.AssertNotCalled(t, "SetArchived", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing patient", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("GetByID", ctx, int64(9)).Return(nil, repository.ErrNotFound)

		err := svc.Archive(ctx, 9)

		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}
