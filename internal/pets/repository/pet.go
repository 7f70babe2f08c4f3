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

	peterrors "github.com/anshif14/petzify-sub001/internal/pets/errors"
	"github.com/anshif14/petzify-sub001/pkg/config"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

const CollectionName = "Pets"

type PetRepository interface {
	Create(ctx context.Context, pet *model.Pet) error
	FindByID(ctx context.Context, id string) (*model.Pet, error)
	FindByOwner(ctx context.Context, ownerEmail string) ([]*model.Pet, error)
	Update(ctx context.Context, id string, pet *model.Pet) error
	Delete(ctx context.Context, id string) error
}

type mongoPetRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPetRepository(cfg *config.Config) PetRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPetRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPetRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoPetRepository) Create(ctx context.Context, pet *model.Pet) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	pet.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, pet)
	if err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		pet.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPetRepository) FindByID(ctx context.Context, id string) (*model.Pet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, peterrors.ErrInvalidID
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var pet model.Pet
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&pet)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, peterrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find pet: %w", err)
	}

	return &pet, nil
}

func (r *mongoPetRepository) FindByOwner(ctx context.Context, ownerEmail string) ([]*model.Pet, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"owner_email": ownerEmail}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	defer cursor.Close(ctx)

	var pets []*model.Pet
	if err := cursor.All(ctx, &pets); err != nil {
		return nil, fmt.Errorf("failed to decode pets: %w", err)
	}

	return pets, nil
}

func (r *mongoPetRepository) Update(ctx context.Context, id string, pet *model.Pet) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return peterrors.ErrInvalidID
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"name":       pet.Name,
			"species":    pet.Species,
			"breed":      pet.Breed,
			"age_months": pet.AgeMonths,
			"notes":      pet.Notes,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update pet: %w", err)
	}
	if result.MatchedCount == 0 {
		return peterrors.ErrNotFound
	}

	return nil
}

func (r *mongoPetRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return peterrors.ErrInvalidID
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete pet: %w", err)
	}
	if result.DeletedCount == 0 {
		return peterrors.ErrNotFound
	}

	return nil
}
