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

	providererrors "github.com/anshif14/petzify-sub001/internal/providers/errors"
	"github.com/anshif14/petzify-sub001/pkg/config"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

const CollectionName = "Providers"

type ProviderRepository interface {
	Create(ctx context.Context, provider *model.Provider) error
	FindByID(ctx context.Context, id string) (*model.Provider, error)
	FindByService(ctx context.Context, serviceType string, limit int) ([]*model.Provider, error)
}

type mongoProviderRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoProviderRepository(cfg *config.Config) ProviderRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoProviderRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoProviderRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoProviderRepository) Create(ctx context.Context, provider *model.Provider) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	provider.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, provider)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		provider.ID = oid.Hex()
	}
	return nil
}

func (r *mongoProviderRepository) FindByID(ctx context.Context, id string) (*model.Provider, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", providererrors.ErrInvalidID, id)
	}

	var provider model.Provider
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&provider)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, providererrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find provider: %w", err)
	}

	return &provider, nil
}

func (r *mongoProviderRepository) FindByService(ctx context.Context, serviceType string, limit int) ([]*model.Provider, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if serviceType != "" {
		filter["services"] = serviceType
	}

	opts := options.Find().SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find providers: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []*model.Provider
	if err = cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}

	return providers, nil
}
