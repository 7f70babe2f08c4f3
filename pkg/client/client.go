package client

import (
	"context"
	"time"

	"github.com/anshif14/petzify-sub001/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"googlemaps.github.io/maps"
)

// Client holds the external platform connections shared across a service.
// Each Set* method is called once from main for the connections that
// service actually needs.
type Client struct {
	Mongo *mongo.Client
	Maps  *maps.Client

	log *logger.Logger
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetMongo(log *logger.Logger, mongoURI string, connTimeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), connTimeout)
	defer cancel()

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB",
			"error", err,
		)
	}

	if err := mc.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB", "error", err)
	}

	log.Info("Successfully connected to MongoDB")
	c.Mongo = mc
	c.log = log
}

func (c *Client) SetMaps(log *logger.Logger, apiKey string) {
	if apiKey == "" {
		log.Warn("Maps API key not set, geolocation and reverse geocoding disabled")
		return
	}

	mc, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		log.Fatal("Failed to create Maps client", "error", err)
	}

	log.Info("Maps client initialized")
	c.Maps = mc
	c.log = log
}

func (c *Client) GracefulShutdown() {
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.Mongo.Disconnect(ctx); err != nil && c.log != nil {
			c.log.Error("Failed to disconnect MongoDB client", "error", err)
		}
	}
}
