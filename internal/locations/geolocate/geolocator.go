package geolocate

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	locerrors "github.com/anshif14/petzify-sub001/internal/locations/errors"
	"github.com/anshif14/petzify-sub001/pkg/logger"
)

// Fix is a single position estimate with its accuracy radius in meters.
type Fix struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
}

// Geolocator requests one fresh position fix. Implementations never serve a
// previously cached fix; every call reaches the underlying capability.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (Fix, error)
}

type googleGeolocator struct {
	client  *maps.Client
	timeout time.Duration
	log     *logger.Logger
}

func NewGoogleGeolocator(client *maps.Client, timeout time.Duration, log *logger.Logger) Geolocator {
	return &googleGeolocator{client: client, timeout: timeout, log: log}
}

func (g *googleGeolocator) CurrentPosition(ctx context.Context) (Fix, error) {
	if g.client == nil {
		return Fix{}, locerrors.ErrGeolocatorUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Geolocate(ctx, &maps.GeolocationRequest{
		ConsiderIP: true,
	})
	if err != nil {
		return Fix{}, fmt.Errorf("geolocation request failed: %w", err)
	}

	g.log.Debug("Geolocation fix acquired",
		"lat", resp.Location.Lat,
		"lng", resp.Location.Lng,
		"accuracy_m", resp.Accuracy,
	)

	return Fix{
		Latitude:  resp.Location.Lat,
		Longitude: resp.Location.Lng,
		Accuracy:  resp.Accuracy,
	}, nil
}
