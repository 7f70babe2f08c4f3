package model

import (
	"fmt"
	"time"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"

	ServiceGrooming  = "grooming"
	ServiceBoarding  = "boarding"
	ServiceTransport = "transport"
)

// Appointment is a booked pet service. AppointmentDate carries the calendar
// day; StartTime and EndTime are wall-clock "HH:MM" strings within that day.
// ReminderSent is mutated only by the reminder scheduler, except that a
// reschedule (date or start time change) resets it to false so the new slot
// becomes eligible for its own reminder.
type Appointment struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ServiceType     string    `json:"service_type" bson:"service_type" validate:"required,oneof=grooming boarding transport"`
	PetID           string    `json:"pet_id,omitempty" bson:"pet_id,omitempty" validate:"omitempty,mongodb"`
	PetName         string    `json:"pet_name" bson:"pet_name" validate:"required,min=1,max=100"`
	CustomerName    string    `json:"customer_name" bson:"customer_name" validate:"required,min=2,max=100"`
	CustomerEmail   string    `json:"customer_email" bson:"customer_email" validate:"required,email"`
	ProviderName    string    `json:"provider_name,omitempty" bson:"provider_name,omitempty" validate:"omitempty,min=2,max=100"`
	ProviderEmail   string    `json:"provider_email,omitempty" bson:"provider_email,omitempty" validate:"omitempty,email"`
	AppointmentDate time.Time `json:"appointment_date" bson:"appointment_date" validate:"required"`
	StartTime       string    `json:"start_time" bson:"start_time" validate:"required,clock_time"`
	EndTime         string    `json:"end_time" bson:"end_time" validate:"required,clock_time"`
	Status          string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	ReminderSent    bool      `json:"reminder_sent" bson:"reminder_sent"`
	Notes           string    `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=500"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}

// AppointmentUpdate carries partial updates; nil/zero fields are left as-is.
type AppointmentUpdate struct {
	ServiceType     string     `json:"service_type,omitempty" validate:"omitempty,oneof=grooming boarding transport"`
	PetName         string     `json:"pet_name,omitempty" validate:"omitempty,min=1,max=100"`
	ProviderName    string     `json:"provider_name,omitempty" validate:"omitempty,min=2,max=100"`
	ProviderEmail   string     `json:"provider_email,omitempty" validate:"omitempty,email"`
	AppointmentDate *time.Time `json:"appointment_date,omitempty"`
	StartTime       string     `json:"start_time,omitempty" validate:"omitempty,clock_time"`
	EndTime         string     `json:"end_time,omitempty" validate:"omitempty,clock_time"`
	Status          string     `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Notes           string     `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// StartsAt combines AppointmentDate and StartTime into a single instant in
// the date's location.
func (a *Appointment) StartsAt() (time.Time, error) {
	t, err := time.Parse("15:04", a.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start_time %q: %w", a.StartTime, err)
	}
	d := a.AppointmentDate
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, d.Location()), nil
}
