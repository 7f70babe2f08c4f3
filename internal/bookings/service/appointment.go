package service

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingerrors "github.com/anshif14/petzify-sub001/internal/bookings/errors"
	"github.com/anshif14/petzify-sub001/internal/bookings/repository"
	"github.com/anshif14/petzify-sub001/internal/bookings/validator"
	"github.com/anshif14/petzify-sub001/pkg/config"
	apperrors "github.com/anshif14/petzify-sub001/pkg/errors"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

type AppointmentService interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, int64, error)
	Update(ctx context.Context, id string, updates *model.AppointmentUpdate) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, customerEmail, status string, day *time.Time, limit int, offset int64) ([]*model.Appointment, int64, error)
}

type appointmentService struct {
	repo      repository.AppointmentRepository
	validator *validator.AppointmentValidator
	cfg       *config.Config
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	validator *validator.AppointmentValidator,
	cfg *config.Config,
) AppointmentService {
	return &appointmentService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *appointmentService) Create(ctx context.Context, appointment *model.Appointment) error {
	s.applyDefaults(appointment)
	if err := s.validate(appointment); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		s.cfg.Log.Error("Failed to create appointment", "error", err)
		return apperrors.Internal("Failed to create appointment", err)
	}

	s.cfg.Log.Info("Appointment created successfully",
		"id", appointment.ID,
		"service_type", appointment.ServiceType,
		"customer_email", appointment.CustomerEmail,
		"appointment_date", appointment.AppointmentDate,
		"start_time", appointment.StartTime,
	)
	return nil
}

func (s *appointmentService) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Appointment", id)
		}
		if errors.Is(err, bookingerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid appointment ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve appointment", err)
	}

	return appointment, nil
}

func (s *appointmentService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, int64, error) {
	var count int64
	var appointments []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count appointments", "error", errCount)
			errCount = apperrors.Internal("Failed to count appointments", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		appointments, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list appointments", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve appointments", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return appointments, count, nil
}

func (s *appointmentService) Update(ctx context.Context, id string, updates *model.AppointmentUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Appointment", id)
		}
		if errors.Is(err, bookingerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid appointment ID format")
		}
		return apperrors.Internal("Failed to check appointment existence", err)
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Appointment update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeAppointmentUpdates(existing, updates)
	if err := s.validate(merged); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update appointment", "id", id, "error", err)
		return apperrors.Internal("Failed to update appointment", err)
	}

	s.cfg.Log.Info("Appointment updated successfully",
		"id", id,
		"reminder_rearmed", existing.ReminderSent && !merged.ReminderSent,
	)
	return nil
}

func (s *appointmentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Appointment", id)
		}
		if errors.Is(err, bookingerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid appointment ID format")
		}
		return apperrors.Internal("Failed to delete appointment", err)
	}

	s.cfg.Log.Info("Appointment deleted successfully", "id", id)
	return nil
}

func (s *appointmentService) Search(ctx context.Context, customerEmail, status string, day *time.Time, limit int, offset int64) ([]*model.Appointment, int64, error) {
	if customerEmail == "" {
		return nil, 0, apperrors.InvalidInput("customer_email is required")
	}
	if status != "" && status != model.StatusPending && status != model.StatusConfirmed &&
		status != model.StatusCompleted && status != model.StatusCancelled {
		return nil, 0, apperrors.InvalidInput("unknown status: " + status)
	}

	var count int64
	var appointments []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByCustomer(ctx, customerEmail, status, day)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count appointments by customer",
				"customer_email", customerEmail,
				"error", errCount,
			)
			errCount = apperrors.Internal("Failed to count appointments", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		appointments, errFind = s.repo.FindByCustomer(ctx, customerEmail, status, day, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to search appointments",
				"customer_email", customerEmail,
				"status", status,
				"error", errFind,
			)
			errFind = apperrors.Internal("Failed to search appointments", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	s.cfg.Log.Debug("Appointment search completed",
		"customer_email", customerEmail,
		"count", len(appointments),
		"total_count", count,
	)
	return appointments, count, nil
}

// --- Helpers ---

func (s *appointmentService) applyDefaults(a *model.Appointment) {
	if a.Status == "" {
		a.Status = model.StatusPending
	}
	// New appointments have never been reminded.
	a.ReminderSent = false
}

// mergeAppointmentUpdates overlays non-zero update fields on the stored
// appointment. Moving the appointment to a different day or start time resets
// ReminderSent so the rescheduled slot gets its own reminder.
func (s *appointmentService) mergeAppointmentUpdates(existing *model.Appointment, updates *model.AppointmentUpdate) *model.Appointment {
	merged := *existing

	if updates.ServiceType != "" {
		merged.ServiceType = updates.ServiceType
	}
	if updates.PetName != "" {
		merged.PetName = updates.PetName
	}
	if updates.ProviderName != "" {
		merged.ProviderName = updates.ProviderName
	}
	if updates.ProviderEmail != "" {
		merged.ProviderEmail = updates.ProviderEmail
	}

	rescheduled := false
	if updates.AppointmentDate != nil && !sameDay(*updates.AppointmentDate, existing.AppointmentDate) {
		merged.AppointmentDate = *updates.AppointmentDate
		rescheduled = true
	}
	if updates.StartTime != "" && updates.StartTime != existing.StartTime {
		merged.StartTime = updates.StartTime
		rescheduled = true
	}
	if updates.EndTime != "" {
		merged.EndTime = updates.EndTime
	}
	if rescheduled {
		merged.ReminderSent = false
	}

	if updates.Status != "" {
		merged.Status = updates.Status
	}
	if updates.Notes != "" {
		merged.Notes = updates.Notes
	}

	return &merged
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (s *appointmentService) validate(appointment *model.Appointment) error {
	if err := s.validator.Validate(appointment); err != nil {
		s.cfg.Log.Warn("Appointment validation failed", "error", err)
		return apperrors.Validation("Appointment validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
