package reminders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anshif14/petzify-sub001/pkg/kafka"
	"github.com/anshif14/petzify-sub001/pkg/logger"
	"github.com/anshif14/petzify-sub001/pkg/mailer"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

const EventReminderSent = "appointment.reminder.sent"

// Notifier fans a reminder out to every interested party. Each delivery is
// independent: a failed email to one recipient never blocks the others, and
// the caller is told how many deliveries succeeded.
type Notifier interface {
	Notify(ctx context.Context, appointment *model.Appointment) NotifyResult
}

type NotifyResult struct {
	Attempted int
	Delivered int
}

// reminderEvent is the payload published to the reminder topic after a
// notification run, regardless of how many emails got through.
type reminderEvent struct {
	AppointmentID   string    `json:"appointment_id"`
	ServiceType     string    `json:"service_type"`
	CustomerEmail   string    `json:"customer_email"`
	ProviderEmail   string    `json:"provider_email,omitempty"`
	AppointmentDate time.Time `json:"appointment_date"`
	StartTime       string    `json:"start_time"`
	Delivered       int       `json:"delivered"`
	Attempted       int       `json:"attempted"`
}

type emailNotifier struct {
	sender   mailer.Sender
	producer *kafka.Producer
	log      *logger.Logger
}

func NewEmailNotifier(sender mailer.Sender, producer *kafka.Producer, log *logger.Logger) Notifier {
	return &emailNotifier{
		sender:   sender,
		producer: producer,
		log:      log,
	}
}

func (n *emailNotifier) Notify(ctx context.Context, appointment *model.Appointment) NotifyResult {
	var result NotifyResult

	recipients := []struct {
		address string
		subject string
		body    string
	}{
		{
			address: appointment.CustomerEmail,
			subject: customerSubject(appointment),
			body:    customerBody(appointment),
		},
	}
	if appointment.ProviderEmail != "" {
		recipients = append(recipients, struct {
			address string
			subject string
			body    string
		}{
			address: appointment.ProviderEmail,
			subject: providerSubject(appointment),
			body:    providerBody(appointment),
		})
	}

	for _, r := range recipients {
		result.Attempted++
		if err := n.sender.Send(ctx, r.address, r.subject, r.body); err != nil {
			n.log.Error("Failed to deliver reminder email",
				"appointment_id", appointment.ID,
				"to", r.address,
				"error", err,
			)
			continue
		}
		result.Delivered++
	}

	n.publishEvent(ctx, appointment, result)
	return result
}

// publishEvent emits the reminder event. The producer tolerates a nil
// receiver, and a publish failure is logged rather than surfaced so the
// scheduler's mark-sent step is never held hostage by the broker.
func (n *emailNotifier) publishEvent(ctx context.Context, appointment *model.Appointment, result NotifyResult) {
	event := reminderEvent{
		AppointmentID:   appointment.ID,
		ServiceType:     appointment.ServiceType,
		CustomerEmail:   appointment.CustomerEmail,
		ProviderEmail:   appointment.ProviderEmail,
		AppointmentDate: appointment.AppointmentDate,
		StartTime:       appointment.StartTime,
		Delivered:       result.Delivered,
		Attempted:       result.Attempted,
	}

	if err := n.producer.Publish(ctx, appointment.ID, EventReminderSent, event); err != nil {
		n.log.Error("Failed to publish reminder event",
			"appointment_id", appointment.ID,
			"error", err,
		)
	}
}

func customerSubject(a *model.Appointment) string {
	return fmt.Sprintf("Reminder: %s appointment for %s at %s", titleCase(a.ServiceType), a.PetName, a.StartTime)
}

func customerBody(a *model.Appointment) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(fmt.Sprintf("<p>Hi %s,</p>", a.CustomerName))
	b.WriteString(fmt.Sprintf("<p>This is a reminder that <strong>%s</strong> has a %s appointment today at <strong>%s</strong>.</p>",
		a.PetName, a.ServiceType, a.StartTime))
	if a.ProviderName != "" {
		b.WriteString(fmt.Sprintf("<p>Provider: %s</p>", a.ProviderName))
	}
	if a.Notes != "" {
		b.WriteString(fmt.Sprintf("<p>Notes: %s</p>", a.Notes))
	}
	b.WriteString("<p>See you soon!<br>The Petzify Team</p>")
	b.WriteString("</body></html>")
	return b.String()
}

func providerSubject(a *model.Appointment) string {
	return fmt.Sprintf("Upcoming %s appointment at %s: %s", a.ServiceType, a.StartTime, a.PetName)
}

func providerBody(a *model.Appointment) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(fmt.Sprintf("<p>Hi %s,</p>", a.ProviderName))
	b.WriteString(fmt.Sprintf("<p>A %s appointment for <strong>%s</strong> (owner: %s) starts at <strong>%s</strong>.</p>",
		a.ServiceType, a.PetName, a.CustomerName, a.StartTime))
	if a.Notes != "" {
		b.WriteString(fmt.Sprintf("<p>Customer notes: %s</p>", a.Notes))
	}
	b.WriteString("<p>The Petzify Team</p>")
	b.WriteString("</body></html>")
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
