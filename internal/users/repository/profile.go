package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	usererrors "github.com/anshif14/petzify-sub001/internal/users/errors"
	"github.com/anshif14/petzify-sub001/pkg/config"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

const CollectionName = "Users"

type UserProfileRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.UserProfile, error)
	Upsert(ctx context.Context, profile *model.UserProfile) error
	// UpdateLocation overwrites the profile's location sub-document wholesale.
	UpdateLocation(ctx context.Context, email string, record *model.LocationRecord) error
}

type mongoUserProfileRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoUserProfileRepository(cfg *config.Config) UserProfileRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoUserProfileRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoUserProfileRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoUserProfileRepository) FindByEmail(ctx context.Context, email string) (*model.UserProfile, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var profile model.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usererrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user profile: %w", err)
	}

	return &profile, nil
}

func (r *mongoUserProfileRepository) Upsert(ctx context.Context, profile *model.UserProfile) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	profile.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"email":      profile.Email,
			"name":       profile.Name,
			"phone":      profile.Phone,
			"updated_at": profile.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}
	if profile.Location != nil {
		update["$set"].(bson.M)["location"] = profile.Location
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, bson.M{"email": profile.Email}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert user profile: %w", err)
	}

	return nil
}

func (r *mongoUserProfileRepository) UpdateLocation(ctx context.Context, email string, record *model.LocationRecord) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"location":   record,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("failed to update user location: %w", err)
	}
	if result.MatchedCount == 0 {
		return usererrors.ErrNotFound
	}

	return nil
}
