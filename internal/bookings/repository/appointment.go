package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingerrors "github.com/anshif14/petzify-sub001/internal/bookings/errors"
	"github.com/anshif14/petzify-sub001/pkg/config"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

const CollectionName = "Appointments"

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	FindByID(ctx context.Context, id string) (*model.Appointment, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, appointment *model.Appointment) error
	Delete(ctx context.Context, id string) error
	FindByCustomer(ctx context.Context, customerEmail, status string, day *time.Time, limit int, offset int64) ([]*model.Appointment, error)
	CountByCustomer(ctx context.Context, customerEmail, status string, day *time.Time) (int64, error)
	// FindPendingReminders returns confirmed appointments on the given
	// calendar day whose reminder flag is still unset.
	FindPendingReminders(ctx context.Context, day time.Time) ([]*model.Appointment, error)
	// MarkReminderSent flips the reminder flag from false to true. The
	// filter includes reminder_sent=false so a concurrent run cannot mark
	// the same appointment twice.
	MarkReminderSent(ctx context.Context, id string) error
}

type mongoAppointmentRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAppointmentRepository(cfg *config.Config) AppointmentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAppointmentRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAppointmentRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func objectIDFromHex(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, bookingerrors.ErrInvalidID
	}
	return oid, nil
}

func (r *mongoAppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	appointment.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, appointment)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		appointment.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var appointment model.Appointment
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find appointment: %w", err)
	}

	return &appointment, nil
}

func (r *mongoAppointmentRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "appointment_date", Value: 1}, {Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []*model.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}

	return appointments, nil
}

func (r *mongoAppointmentRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

func (r *mongoAppointmentRepository) Update(ctx context.Context, id string, appointment *model.Appointment) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"service_type":     appointment.ServiceType,
			"pet_id":           appointment.PetID,
			"pet_name":         appointment.PetName,
			"customer_name":    appointment.CustomerName,
			"customer_email":   appointment.CustomerEmail,
			"provider_name":    appointment.ProviderName,
			"provider_email":   appointment.ProviderEmail,
			"appointment_date": appointment.AppointmentDate,
			"start_time":       appointment.StartTime,
			"end_time":         appointment.EndTime,
			"status":           appointment.Status,
			"reminder_sent":    appointment.ReminderSent,
			"notes":            appointment.Notes,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingerrors.ErrNotFound
	}

	return nil
}

func (r *mongoAppointmentRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	if result.DeletedCount == 0 {
		return bookingerrors.ErrNotFound
	}

	return nil
}

func customerFilter(customerEmail, status string, day *time.Time) bson.M {
	filter := bson.M{"customer_email": customerEmail}
	if status != "" {
		filter["status"] = status
	}
	if day != nil {
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		filter["appointment_date"] = bson.M{
			"$gte": dayStart,
			"$lt":  dayStart.AddDate(0, 0, 1),
		}
	}
	return filter
}

func (r *mongoAppointmentRepository) FindByCustomer(ctx context.Context, customerEmail, status string, day *time.Time, limit int, offset int64) ([]*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "appointment_date", Value: 1}, {Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, customerFilter(customerEmail, status, day), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []*model.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}

	return appointments, nil
}

func (r *mongoAppointmentRepository) CountByCustomer(ctx context.Context, customerEmail, status string, day *time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, customerFilter(customerEmail, status, day))
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments by customer: %w", err)
	}
	return count, nil
}

func (r *mongoAppointmentRepository) FindPendingReminders(ctx context.Context, day time.Time) ([]*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	filter := bson.M{
		"status":        model.StatusConfirmed,
		"reminder_sent": false,
		"appointment_date": bson.M{
			"$gte": dayStart,
			"$lt":  dayEnd,
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending reminders: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []*model.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode pending reminders: %w", err)
	}

	return appointments, nil
}

func (r *mongoAppointmentRepository) MarkReminderSent(ctx context.Context, id string) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "reminder_sent": false}
	update := bson.M{"$set": bson.M{"reminder_sent": true}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingerrors.ErrAlreadySent
	}

	return nil
}
