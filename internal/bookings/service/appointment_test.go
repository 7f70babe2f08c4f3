package service

import (
	"context"
	"testing"
	"time"

	bookingerrors "github.com/anshif14/petzify-sub001/internal/bookings/errors"
	"github.com/anshif14/petzify-sub001/internal/bookings/validator"
	"github.com/anshif14/petzify-sub001/pkg/config"
	apperrors "github.com/anshif14/petzify-sub001/pkg/errors"
	"github.com/anshif14/petzify-sub001/pkg/logger"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

type mockAppointmentRepository struct {
	createFunc   func(ctx context.Context, appointment *model.Appointment) error
	findByIDFunc func(ctx context.Context, id string) (*model.Appointment, error)
	updateFunc   func(ctx context.Context, id string, appointment *model.Appointment) error

	created []*model.Appointment
	updated []*model.Appointment
}

func (m *mockAppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	m.created = append(m.created, appointment)
	if m.createFunc != nil {
		return m.createFunc(ctx, appointment)
	}
	appointment.ID = "64f1b2a3c4d5e6f7a8b9c0d1"
	return nil
}

func (m *mockAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingerrors.ErrNotFound
}

func (m *mockAppointmentRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, error) {
	return nil, nil
}

func (m *mockAppointmentRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockAppointmentRepository) Update(ctx context.Context, id string, appointment *model.Appointment) error {
	m.updated = append(m.updated, appointment)
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, appointment)
	}
	return nil
}

func (m *mockAppointmentRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockAppointmentRepository) FindByCustomer(ctx context.Context, customerEmail, status string, day *time.Time, limit int, offset int64) ([]*model.Appointment, error) {
	return nil, nil
}

func (m *mockAppointmentRepository) CountByCustomer(ctx context.Context, customerEmail, status string, day *time.Time) (int64, error) {
	return 0, nil
}

func (m *mockAppointmentRepository) FindPendingReminders(ctx context.Context, day time.Time) ([]*model.Appointment, error) {
	return nil, nil
}

func (m *mockAppointmentRepository) MarkReminderSent(ctx context.Context, id string) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func newTestService(repo *mockAppointmentRepository) AppointmentService {
	cfg := testConfig()
	return NewAppointmentService(repo, validator.NewAppointmentValidator(cfg.Log), cfg)
}

func storedAppointment() *model.Appointment {
	return &model.Appointment{
		ID:              "64f1b2a3c4d5e6f7a8b9c0d1",
		ServiceType:     model.ServiceGrooming,
		PetName:         "Bruno",
		CustomerName:    "Asha Nair",
		CustomerEmail:   "asha@example.com",
		AppointmentDate: time.Date(2026, time.September, 4, 0, 0, 0, 0, time.UTC),
		StartTime:       "14:30",
		EndTime:         "15:30",
		Status:          model.StatusConfirmed,
		ReminderSent:    true,
	}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	repo := &mockAppointmentRepository{}
	svc := newTestService(repo)

	a := storedAppointment()
	a.ID = ""
	a.Status = ""
	a.ReminderSent = true // clients cannot pre-set the reminder flag

	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Status != model.StatusPending {
		t.Errorf("status = %q, want %q", a.Status, model.StatusPending)
	}
	if a.ReminderSent {
		t.Error("ReminderSent should be reset to false on create")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 create call, got %d", len(repo.created))
	}
}

func TestCreate_RejectsInvalidAppointment(t *testing.T) {
	repo := &mockAppointmentRepository{}
	svc := newTestService(repo)

	a := storedAppointment()
	a.ID = ""
	a.StartTime = "26:00"

	err := svc.Create(context.Background(), a)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected %s, got: %v", apperrors.CodeValidation, err)
	}
	if len(repo.created) != 0 {
		t.Error("invalid appointment must not reach the repository")
	}
}

func TestUpdate_RescheduleDateResetsReminder(t *testing.T) {
	existing := storedAppointment()
	repo := &mockAppointmentRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			return existing, nil
		},
	}
	svc := newTestService(repo)

	newDate := time.Date(2026, time.September, 11, 0, 0, 0, 0, time.UTC)
	err := svc.Update(context.Background(), existing.ID, &model.AppointmentUpdate{
		AppointmentDate: &newDate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.updated) != 1 {
		t.Fatalf("expected 1 update call, got %d", len(repo.updated))
	}
	merged := repo.updated[0]
	if merged.ReminderSent {
		t.Error("ReminderSent should reset to false when the date changes")
	}
	if !merged.AppointmentDate.Equal(newDate) {
		t.Errorf("appointment date = %v, want %v", merged.AppointmentDate, newDate)
	}
}

func TestUpdate_RescheduleStartTimeResetsReminder(t *testing.T) {
	existing := storedAppointment()
	repo := &mockAppointmentRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			return existing, nil
		},
	}
	svc := newTestService(repo)

	err := svc.Update(context.Background(), existing.ID, &model.AppointmentUpdate{
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	merged := repo.updated[0]
	if merged.ReminderSent {
		t.Error("ReminderSent should reset to false when the start time changes")
	}
}

func TestUpdate_NonScheduleChangeKeepsReminderFlag(t *testing.T) {
	existing := storedAppointment()
	repo := &mockAppointmentRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			return existing, nil
		},
	}
	svc := newTestService(repo)

	err := svc.Update(context.Background(), existing.ID, &model.AppointmentUpdate{
		Notes: "Bring the short clippers",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	merged := repo.updated[0]
	if !merged.ReminderSent {
		t.Error("ReminderSent must survive updates that do not move the slot")
	}
	if merged.Notes != "Bring the short clippers" {
		t.Errorf("notes = %q", merged.Notes)
	}
}

func TestUpdate_SameSlotValuesKeepReminderFlag(t *testing.T) {
	existing := storedAppointment()
	repo := &mockAppointmentRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Appointment, error) {
			return existing, nil
		},
	}
	svc := newTestService(repo)

	sameDate := existing.AppointmentDate
	err := svc.Update(context.Background(), existing.ID, &model.AppointmentUpdate{
		AppointmentDate: &sameDate,
		StartTime:       existing.StartTime,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	merged := repo.updated[0]
	if !merged.ReminderSent {
		t.Error("re-submitting the existing slot is not a reschedule")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &mockAppointmentRepository{}
	svc := newTestService(repo)

	err := svc.Update(context.Background(), "64f1b2a3c4d5e6f7a8b9c0d1", &model.AppointmentUpdate{Notes: "x"})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected %s, got: %v", apperrors.CodeNotFound, err)
	}
}

func TestGetByID_EmptyID(t *testing.T) {
	svc := newTestService(&mockAppointmentRepository{})

	_, err := svc.GetByID(context.Background(), "")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected %s, got: %v", apperrors.CodeInvalidInput, err)
	}
}
