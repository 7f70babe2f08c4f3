package reminders

import (
	"context"
	"errors"
	"time"

	bookingerrors "github.com/anshif14/petzify-sub001/internal/bookings/errors"
	"github.com/anshif14/petzify-sub001/internal/bookings/repository"
	"github.com/anshif14/petzify-sub001/pkg/config"
	"github.com/anshif14/petzify-sub001/pkg/logger"
)

// Scheduler polls for confirmed appointments approaching their start time
// and sends each one exactly one reminder. An appointment qualifies when its
// start is within the tolerance band around the configured lead time, e.g.
// with a 30m lead and 5m tolerance anything starting 25 to 35 minutes from
// now, bounds included.
//
// The guarantee is at-most-once per scheduled slot: the reminder flag is set
// after the notification attempt whether or not any delivery succeeded, so a
// failed send is never retried. Rescheduling clears the flag and re-arms the
// new slot.
type Scheduler struct {
	repo      repository.AppointmentRepository
	notifier  Notifier
	interval  time.Duration
	leadTime  time.Duration
	tolerance time.Duration
	log       *logger.Logger
}

func NewScheduler(repo repository.AppointmentRepository, notifier Notifier, cfg *config.Config) *Scheduler {
	return &Scheduler{
		repo:      repo,
		notifier:  notifier,
		interval:  cfg.ReminderInterval,
		leadTime:  cfg.ReminderLeadTime,
		tolerance: cfg.ReminderTolerance,
		log:       cfg.Log,
	}
}

// Run polls until the context is cancelled. The first scan happens
// immediately rather than one interval in.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("Reminder scheduler started",
		"interval", s.interval,
		"lead_time", s.leadTime,
		"tolerance", s.tolerance,
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.ProcessOnce(ctx, time.Now())

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Reminder scheduler stopped")
			return
		case <-ticker.C:
			s.ProcessOnce(ctx, time.Now())
		}
	}
}

// ProcessOnce runs a single scan at the given instant. Failures on one
// appointment are logged and never abort the rest of the scan.
func (s *Scheduler) ProcessOnce(ctx context.Context, now time.Time) {
	appointments, err := s.repo.FindPendingReminders(ctx, now)
	if err != nil {
		s.log.Error("Failed to query pending reminders", "error", err)
		return
	}

	var sent int
	for _, appointment := range appointments {
		startsAt, err := appointment.StartsAt()
		if err != nil {
			s.log.Error("Skipping appointment with unparseable start time",
				"appointment_id", appointment.ID,
				"start_time", appointment.StartTime,
				"error", err,
			)
			continue
		}

		if !s.dueForReminder(now, startsAt) {
			continue
		}

		result := s.notifier.Notify(ctx, appointment)
		if result.Delivered < result.Attempted {
			s.log.Warn("Reminder partially delivered",
				"appointment_id", appointment.ID,
				"delivered", result.Delivered,
				"attempted", result.Attempted,
			)
		}

		// Mark sent even on total delivery failure. A stale reminder sent
		// on a later run is worse than a lost one, and the flag is what
		// keeps the at-most-once guarantee.
		if err := s.repo.MarkReminderSent(ctx, appointment.ID); err != nil {
			if errors.Is(err, bookingerrors.ErrAlreadySent) {
				s.log.Warn("Reminder already marked by a concurrent run", "appointment_id", appointment.ID)
				continue
			}
			s.log.Error("Failed to mark reminder sent",
				"appointment_id", appointment.ID,
				"error", err,
			)
			continue
		}
		sent++
	}

	if sent > 0 || len(appointments) > 0 {
		s.log.Info("Reminder scan completed",
			"candidates", len(appointments),
			"sent", sent,
		)
	}
}

// dueForReminder reports whether startsAt falls inside the inclusive
// reminder window around the lead time.
func (s *Scheduler) dueForReminder(now, startsAt time.Time) bool {
	diff := startsAt.Sub(now)
	return diff >= s.leadTime-s.tolerance && diff <= s.leadTime+s.tolerance
}
